// SPDX-License-Identifier: MIT

package hierarchy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"time"

	"github.com/katalvlaran/momsos/poly"
	"github.com/katalvlaran/momsos/ring"
	"github.com/katalvlaran/momsos/sdp"
	"github.com/katalvlaran/momsos/sos"
)

// Driver computes lower bounds of a fixed target polynomial.
// It is safe for concurrent use when its Solver is.
type Driver struct {
	solver      sdp.Solver
	target      *poly.Polynomial[poly.Real]
	log         *slog.Logger
	parallelism int
}

// Option configures a Driver.
type Option func(*Driver)

// WithTarget replaces the default Motzkin target.
func WithTarget(p *poly.Polynomial[poly.Real]) Option {
	return func(d *Driver) {
		if p != nil {
			d.target = p
		}
	}
}

// WithLogger routes per-level logs; nil keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.log = l
		}
	}
}

// WithParallelism caps concurrent solves in SweepParallel; n < 1 means
// GOMAXPROCS.
func WithParallelism(n int) Option {
	return func(d *Driver) { d.parallelism = n }
}

// NewDriver returns a Driver solving with s.
// Errors: ErrInvalidArgument for a nil solver.
func NewDriver(s sdp.Solver, opts ...Option) (*Driver, error) {
	if s == nil {
		return nil, hierarchyErrorf("NewDriver", fmt.Errorf("nil solver: %w", ErrInvalidArgument))
	}
	d := &Driver{
		solver: s,
		target: poly.Motzkin(),
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	if d.parallelism < 1 {
		d.parallelism = runtime.GOMAXPROCS(0)
	}

	return d, nil
}

// Target returns the polynomial being bounded.
func (d *Driver) Target() *poly.Polynomial[poly.Real] { return d.target }

// Result is the outcome of one hierarchy level.
type Result struct {
	Level      int
	Status     sdp.Status
	Value      float64 // γ*, NaN unless Status carries a solution
	Iterations int
	Elapsed    time.Duration
}

// Bound returns γ* or ErrUndefinedBound when the level produced no solution.
func (r Result) Bound() (float64, error) {
	if !r.Status.HasSolution() {
		return math.NaN(), fmt.Errorf("level %d (%s): %w", r.Level, r.Status, ErrUndefinedBound)
	}

	return r.Value, nil
}

// Bounds flattens results to plain numbers, NaN where the bound is undefined.
func Bounds(results []Result) []float64 {
	out := make([]float64, len(results))
	for i, r := range results {
		out[i], _ = r.Bound()
	}

	return out
}

// LowerBoundOnBall solves level `level` on the ball of squared radius
// radiusSq around the origin.
//
// Errors: ErrInvalidArgument when 2·level < deg target or radiusSq is
// negative; ErrSolverFailure; ctx.Err() on cancellation.
func (d *Driver) LowerBoundOnBall(ctx context.Context, level int, radiusSq float64) (Result, error) {
	ball, err := poly.Ball(d.target.Arity(), radiusSq)
	if err != nil {
		return Result{Level: level, Value: math.NaN()}, hierarchyErrorf("LowerBoundOnBall", fmt.Errorf("%w: %w", ErrInvalidArgument, err))
	}

	return d.LowerBound(ctx, level, ball)
}

// LowerBound solves level `level` with the given region polynomials
// (gᵢ ≥ 0 on the region). With no region it is the global SOS bound.
func (d *Driver) LowerBound(ctx context.Context, level int, regions ...*poly.Polynomial[poly.Real]) (Result, error) {
	res := Result{Level: level, Value: math.NaN()}
	if level < 0 || 2*level < d.target.Degree() {
		return res, hierarchyErrorf("LowerBound", fmt.Errorf("level %d below half of degree %d: %w", level, d.target.Degree(), ErrInvalidArgument))
	}
	start := time.Now()

	m := sdp.NewModel()
	gamma := m.Scalar("gamma")
	shifted := poly.Lift(d.target)
	one, err := ring.One(d.target.Arity())
	if err != nil {
		return res, hierarchyErrorf("LowerBound", err)
	}
	if err = shifted.Set(one, shifted.Coef(one).Minus(gamma.Expr())); err != nil {
		return res, hierarchyErrorf("LowerBound", err)
	}
	cert, err := sos.QuadraticModule(m, shifted, regions, level)
	if err != nil {
		if errors.Is(err, sos.ErrInvalidArgument) || errors.Is(err, poly.ErrArityMismatch) {
			err = fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}

		return res, hierarchyErrorf("LowerBound", err)
	}
	m.Maximize(gamma.Expr())

	sol, err := d.solver.Solve(ctx, m)
	if err != nil {
		return res, hierarchyErrorf("LowerBound", err)
	}
	res.Status, res.Iterations, res.Elapsed = sol.Status, sol.Iterations, time.Since(start)
	if sol.Status.HasSolution() {
		res.Value = sol.Objective
	}
	d.log.Info("level solved",
		"level", level, "regions", len(regions), "constraints", cert.Constraints,
		"status", res.Status, "bound", res.Value, "iterations", res.Iterations, "elapsed", res.Elapsed)

	if err = checkStatus(sol.Status); err != nil {
		return res, hierarchyErrorf("LowerBound", fmt.Errorf("level %d: %w", level, err))
	}

	return res, nil
}

// checkStatus maps statuses the driver cannot interpret to ErrSolverFailure.
func checkStatus(st sdp.Status) error {
	if st.IsUnbounded() || st.IsError() {
		return fmt.Errorf("status %s: %w", st, ErrSolverFailure)
	}

	return nil
}
