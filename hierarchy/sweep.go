// SPDX-License-Identifier: MIT

package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math"

	"golang.org/x/sync/errgroup"
)

// Levels returns from, from+1, …, to; nil when to < from.
func Levels(from, to int) []int {
	if to < from {
		return nil
	}
	out := make([]int, 0, to-from+1)
	for l := from; l <= to; l++ {
		out = append(out, l)
	}

	return out
}

// checkAscending validates a level list for Sweep and SweepParallel.
func checkAscending(levels []int) error {
	for i, l := range levels {
		if l < 0 {
			return fmt.Errorf("level %d: %w", l, ErrInvalidArgument)
		}
		if i > 0 && l <= levels[i-1] {
			return fmt.Errorf("levels not strictly ascending at %d: %w", i, ErrInvalidArgument)
		}
	}

	return nil
}

// Sweep yields one LowerBoundOnBall result per level, lazily and in order.
// Each range over the sequence solves afresh. A level that fails with
// ErrSolverFailure is yielded with its error and the sweep continues;
// invalid levels and cancellation end it.
func (d *Driver) Sweep(ctx context.Context, levels []int, radiusSq float64) iter.Seq2[Result, error] {
	return func(yield func(Result, error) bool) {
		if err := checkAscending(levels); err != nil {
			yield(Result{Value: math.NaN()}, hierarchyErrorf("Sweep", err))

			return
		}
		for _, l := range levels {
			res, err := d.LowerBoundOnBall(ctx, l, radiusSq)
			if !yield(res, err) {
				return
			}
			if err != nil && (ctx.Err() != nil || !isSolverFailure(err)) {
				return
			}
		}
	}
}

// isSolverFailure reports errors that concern one level only.
func isSolverFailure(err error) bool { return errors.Is(err, ErrSolverFailure) }

// SweepParallel solves all levels concurrently (at most the configured
// parallelism at a time) and returns results in level order. The first
// error cancels the remaining solves; results of levels that finished are
// still returned.
func (d *Driver) SweepParallel(ctx context.Context, levels []int, radiusSq float64) ([]Result, error) {
	if err := checkAscending(levels); err != nil {
		return nil, hierarchyErrorf("SweepParallel", err)
	}
	results := make([]Result, len(levels))
	for i, l := range levels {
		results[i] = Result{Level: l, Value: math.NaN()}
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(d.parallelism)
	for i, l := range levels {
		g.Go(func() error {
			res, err := d.LowerBoundOnBall(gCtx, l, radiusSq)
			results[i] = res

			return err
		})
	}
	if err := g.Wait(); err != nil {
		return results, hierarchyErrorf("SweepParallel", err)
	}

	return results, nil
}
