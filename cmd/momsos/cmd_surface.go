// SPDX-License-Identifier: MIT

package main

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/momsos/config"
	"github.com/katalvlaran/momsos/poly"
)

func newSurfaceCmd(a *app) *cobra.Command {
	var (
		extent     float64
		resolution int
		out        string
	)
	cmd := &cobra.Command{
		Use:   "surface",
		Short: "Write the Motzkin surface on a square grid as x,y,z CSV",
		Long: `Evaluates the Motzkin polynomial on a resolution×resolution grid over
[-extent, extent]². Values outside [clip_min, clip_max] are written as NaN so
a plot focuses on the valleys around the zeros (±1, ±1).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := &a.cfg.Surface
			if cmd.Flags().Changed("extent") {
				s.Extent = extent
			}
			if cmd.Flags().Changed("resolution") {
				s.Resolution = resolution
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := writeSurface(w, *s); err != nil {
				return err
			}
			a.log.Info("surface written", "points", s.Resolution*s.Resolution, "out", out)

			return nil
		},
	}
	cmd.Flags().Float64Var(&extent, "extent", 1.4, "half width of the square grid")
	cmd.Flags().IntVar(&resolution, "resolution", 401, "points per axis")
	cmd.Flags().StringVar(&out, "out", "", "output file (stdout when empty)")

	return cmd
}

// linspace returns n evenly spaced points from lo to hi inclusive.
func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi

	return out
}

// writeSurface evaluates the Motzkin polynomial on the meshgrid in one batch,
// row-major with y outer, and writes the clipped values.
func writeSurface(w io.Writer, s config.SurfaceConfig) error {
	axis := linspace(-s.Extent, s.Extent, s.Resolution)
	n := s.Resolution * s.Resolution
	xs, ys := make([]float64, 0, n), make([]float64, 0, n)
	for _, y := range axis {
		for _, x := range axis {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}
	zs, err := poly.EvaluateBatch(poly.Motzkin(), [][]float64{xs, ys})
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err = cw.Write([]string{"x", "y", "z"}); err != nil {
		return err
	}
	for i, z := range zs {
		if z < s.ClipMin || z > s.ClipMax {
			z = math.NaN()
		}
		rec := []string{fmtFloat(xs[i]), fmtFloat(ys[i]), fmtFloat(z)}
		if err = cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

func fmtFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
