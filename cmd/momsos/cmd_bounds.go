// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/momsos/config"
	"github.com/katalvlaran/momsos/hierarchy"
	"github.com/katalvlaran/momsos/poly"
)

func newBoundsCmd(a *app) *cobra.Command {
	var (
		from, to, parallelism int
		radiusSq              float64
		center                []float64
		parallel              bool
	)
	cmd := &cobra.Command{
		Use:   "bounds",
		Short: "Lower bounds of the Motzkin polynomial on a ball, one per hierarchy level",
		Long: `Lower bounds of the Motzkin polynomial on a ball, one per hierarchy level.

Level d certifies M − γ = s0 + s1·(R² − ‖x − c‖²) with s0 of degree 2d.
Levels start at ceil(deg M / 2) = 3: a lower level cannot represent the
degree-6 target and is rejected instead of truncating it.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h := &a.cfg.Hierarchy
			flags := cmd.Flags()
			if flags.Changed("from") {
				h.From = from
			}
			if flags.Changed("to") {
				h.To = to
			}
			if flags.Changed("radius-sq") {
				h.RadiusSq = radiusSq
			}
			if flags.Changed("center") {
				h.Center = center
			}
			if flags.Changed("parallel") {
				h.Parallel = parallel
			}
			if flags.Changed("parallelism") {
				h.Parallelism = parallelism
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			d, err := a.driver()
			if err != nil {
				return err
			}

			return runBounds(cmd, d, *h)
		},
	}
	f := cmd.Flags()
	f.IntVar(&from, "from", 3, "first hierarchy level")
	f.IntVar(&to, "to", 7, "last hierarchy level")
	f.Float64Var(&radiusSq, "radius-sq", 2, "squared radius of the ball")
	f.Float64SliceVar(&center, "center", nil, "ball center x,y (origin when empty)")
	f.BoolVar(&parallel, "parallel", false, "solve all levels concurrently")
	f.IntVar(&parallelism, "parallelism", 0, "max concurrent solves (0 = GOMAXPROCS)")

	return cmd
}

// runBounds prints one table row per level. Levels that fail in the solver
// are reported in the table and the sweep goes on.
func runBounds(cmd *cobra.Command, d *hierarchy.Driver, h config.HierarchyConfig) error {
	ctx := cmd.Context()
	if lowest := (d.Target().Degree() + 1) / 2; h.From < lowest {
		return fmt.Errorf("--from %d: levels start at %d for a degree-%d target: %w",
			h.From, lowest, d.Target().Degree(), hierarchy.ErrInvalidArgument)
	}
	levels := hierarchy.Levels(h.From, h.To)
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "level\tstatus\tbound\titerations\telapsed")

	var failed []error
	emit := func(res hierarchy.Result, err error) error {
		if err != nil && !errors.Is(err, hierarchy.ErrSolverFailure) {
			return err
		}
		if err != nil {
			failed = append(failed, err)
		}
		b, _ := res.Bound()
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", res.Level, res.Status, formatBound(b), res.Iterations, res.Elapsed.Round(time.Millisecond))

		return nil
	}

	switch {
	case len(h.Center) > 0:
		region, err := poly.BallAround(h.Center, h.RadiusSq)
		if err != nil {
			return err
		}
		for _, l := range levels {
			res, err := d.LowerBound(ctx, l, region)
			if err = emit(res, err); err != nil {
				return err
			}
		}
	case h.Parallel:
		results, err := d.SweepParallel(ctx, levels, h.RadiusSq)
		if err != nil && !errors.Is(err, hierarchy.ErrSolverFailure) {
			return err
		}
		for _, res := range results {
			if err := emit(res, nil); err != nil {
				return err
			}
		}
		if err != nil {
			failed = append(failed, err)
		}
	default:
		for res, err := range d.Sweep(ctx, levels, h.RadiusSq) {
			if err = emit(res, err); err != nil {
				return err
			}
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	return reportFailures(cmd.ErrOrStderr(), failed)
}

// formatBound prints NaN for undefined bounds so the table stays numeric.
func formatBound(b float64) string { return strconv.FormatFloat(b, 'g', 8, 64) }

func reportFailures(w io.Writer, failed []error) error {
	for _, err := range failed {
		fmt.Fprintln(w, "warning:", err)
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d level(s) failed: %w", len(failed), errors.Join(failed...))
	}

	return nil
}
