// SPDX-License-Identifier: MIT
package hierarchy_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/momsos/config"
	"github.com/katalvlaran/momsos/hierarchy"
	"github.com/katalvlaran/momsos/poly"
	"github.com/katalvlaran/momsos/sdp"
)

// shiftedSquare is (x − 1)² + 1 = x² − 2x + 2, minimum 1 at x = 1.
func shiftedSquare() *poly.Polynomial[poly.Real] {
	return poly.MustNew(poly.RealTerm(1, 2), poly.RealTerm(-2, 1), poly.RealTerm(2, 0))
}

func newDriver(t *testing.T, opts ...hierarchy.Option) *hierarchy.Driver {
	t.Helper()
	s, err := sdp.NewSolver()
	require.NoError(t, err)
	d, err := hierarchy.NewDriver(s, opts...)
	require.NoError(t, err)

	return d
}

// stubSolver returns a fixed status without solving.
type stubSolver struct{ status sdp.Status }

func (s stubSolver) Solve(context.Context, *sdp.Model) (*sdp.Solution, error) {
	return &sdp.Solution{Status: s.status, Margin: math.NaN()}, nil
}

func TestNewDriver(t *testing.T) {
	_, err := hierarchy.NewDriver(nil)
	assert.ErrorIs(t, err, hierarchy.ErrInvalidArgument)

	d := newDriver(t, nil, hierarchy.WithLogger(nil))
	assert.Equal(t, 6, d.Target().Degree(), "Motzkin by default")
}

func TestLowerBoundOnBall_Exact(t *testing.T) {
	d := newDriver(t, hierarchy.WithTarget(shiftedSquare()))
	res, err := d.LowerBoundOnBall(context.Background(), 1, 4)
	require.NoError(t, err)
	require.True(t, res.Status.HasSolution(), "status %s", res.Status)

	b, err := res.Bound()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, b, 1e-5)
	assert.Equal(t, 1, res.Level)
}

func TestLowerBound_GlobalAndShiftedBall(t *testing.T) {
	d := newDriver(t, hierarchy.WithTarget(shiftedSquare()))

	res, err := d.LowerBound(context.Background(), 1)
	require.NoError(t, err)
	b, err := res.Bound()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, b, 1e-5)

	// On [2.5, 3.5] the minimum is at x = 2.5: 1.5² + 1 = 3.25.
	region, err := poly.BallAround([]float64{3}, 0.25)
	require.NoError(t, err)
	res, err = d.LowerBound(context.Background(), 2, region)
	require.NoError(t, err)
	b, err = res.Bound()
	require.NoError(t, err)
	assert.InDelta(t, 3.25, b, 1e-4)
}

func TestLowerBound_InvalidLevels(t *testing.T) {
	d := newDriver(t)
	_, err := d.LowerBoundOnBall(context.Background(), 2, 1)
	assert.ErrorIs(t, err, hierarchy.ErrInvalidArgument, "2·level < deg Motzkin")
	_, err = d.LowerBoundOnBall(context.Background(), -1, 1)
	assert.ErrorIs(t, err, hierarchy.ErrInvalidArgument)
	_, err = d.LowerBoundOnBall(context.Background(), 3, -1)
	assert.ErrorIs(t, err, hierarchy.ErrInvalidArgument)
}

func TestLowerBound_SolverStatuses(t *testing.T) {
	tests := []struct {
		status  sdp.Status
		failure bool
	}{
		{sdp.Infeasible, false},
		{sdp.InfeasibleInaccurate, false},
		{sdp.Unbounded, true},
		{sdp.UnboundedInaccurate, true},
		{sdp.SolverError, true},
	}
	for _, tc := range tests {
		t.Run(tc.status.String(), func(t *testing.T) {
			d, err := hierarchy.NewDriver(stubSolver{status: tc.status})
			require.NoError(t, err)
			res, err := d.LowerBoundOnBall(context.Background(), 3, 1)
			if tc.failure {
				assert.ErrorIs(t, err, hierarchy.ErrSolverFailure)
				assert.ErrorIs(t, err, sdp.ErrSolverFailure)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.status, res.Status)
			_, err = res.Bound()
			assert.ErrorIs(t, err, hierarchy.ErrUndefinedBound)
		})
	}
}

func TestMotzkinOnBall(t *testing.T) {
	if testing.Short() {
		t.Skip("level-3 Motzkin solve")
	}
	tests := []struct {
		name     string
		radiusSq float64
		want     float64
	}{
		// zeros (±1, ±1) lie on the circle ‖x‖² = 2
		{"zeros on the boundary", 2, 0},
		// inside the unit disk the minimum is M(½, ½) = 1/2 at x² = y² = ½
		{"unit disk", 1, 0.5},
	}
	d := newDriver(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := d.LowerBoundOnBall(context.Background(), 3, tc.radiusSq)
			require.NoError(t, err)
			b, err := res.Bound()
			require.NoError(t, err, "status %s", res.Status)
			assert.InDelta(t, tc.want, b, 1e-3)
		})
	}
}

func TestSweep_MotzkinDefaultLevels(t *testing.T) {
	if testing.Short() {
		t.Skip("Motzkin levels 3..7")
	}
	cfg := config.DefaultConfig()
	levels := hierarchy.Levels(cfg.Hierarchy.From, cfg.Hierarchy.To)
	require.Equal(t, []int{3, 4, 5, 6, 7}, levels)

	d := newDriver(t)
	var got []int
	for res, err := range d.Sweep(context.Background(), levels, cfg.Hierarchy.RadiusSq) {
		require.NoError(t, err, "level %d", res.Level)
		require.True(t, res.Status.HasSolution(), "level %d: status %s", res.Level, res.Status)
		b, err := res.Bound()
		require.NoError(t, err)
		assert.LessOrEqual(t, b, 1e-3, "level %d", res.Level)
		assert.GreaterOrEqual(t, b, -1e-3, "level %d", res.Level)
		got = append(got, res.Level)
	}
	assert.Equal(t, levels, got)
}

func TestSweep(t *testing.T) {
	d := newDriver(t, hierarchy.WithTarget(shiftedSquare()))
	ctx := context.Background()

	var got []int
	for res, err := range d.Sweep(ctx, []int{1, 2}, 4) {
		require.NoError(t, err)
		got = append(got, res.Level)
		b, err := res.Bound()
		require.NoError(t, err)
		assert.InDelta(t, 1.0, b, 1e-5)
	}
	assert.Equal(t, []int{1, 2}, got)

	// restartable, and early break stops solving
	n := 0
	for range d.Sweep(ctx, []int{1, 2}, 4) {
		n++

		break
	}
	assert.Equal(t, 1, n)

	for _, levels := range [][]int{{2, 1}, {1, 1}, {-1, 0}} {
		var errs []error
		for _, err := range d.Sweep(ctx, levels, 4) {
			errs = append(errs, err)
		}
		require.Len(t, errs, 1, "levels %v", levels)
		assert.ErrorIs(t, errs[0], hierarchy.ErrInvalidArgument)
	}
}

func TestSweep_ContinuesAfterSolverFailure(t *testing.T) {
	d, err := hierarchy.NewDriver(stubSolver{status: sdp.SolverError}, hierarchy.WithTarget(shiftedSquare()))
	require.NoError(t, err)
	n := 0
	for _, err := range d.Sweep(context.Background(), []int{1, 2, 3}, 4) {
		assert.ErrorIs(t, err, hierarchy.ErrSolverFailure)
		n++
	}
	assert.Equal(t, 3, n)
}

func TestSweepParallel_MatchesSweep(t *testing.T) {
	d := newDriver(t, hierarchy.WithTarget(shiftedSquare()), hierarchy.WithParallelism(2))
	levels := hierarchy.Levels(1, 3)
	require.Equal(t, []int{1, 2, 3}, levels)

	par, err := d.SweepParallel(context.Background(), levels, 4)
	require.NoError(t, err)
	require.Len(t, par, 3)
	for i, res := range par {
		assert.Equal(t, levels[i], res.Level)
	}
	for i, b := range hierarchy.Bounds(par) {
		assert.InDelta(t, 1.0, b, 1e-5, "level %d", levels[i])
	}

	_, err = d.SweepParallel(context.Background(), []int{3, 1}, 4)
	assert.ErrorIs(t, err, hierarchy.ErrInvalidArgument)
	assert.Nil(t, hierarchy.Levels(3, 1))
}

func TestBounds_NaNForUndefined(t *testing.T) {
	got := hierarchy.Bounds([]hierarchy.Result{
		{Level: 1, Status: sdp.Optimal, Value: 0.5},
		{Level: 2, Status: sdp.Infeasible, Value: 7},
		{Level: 3, Status: sdp.OptimalInaccurate, Value: -0.25},
	})
	require.Len(t, got, 3)
	assert.Equal(t, 0.5, got[0])
	assert.True(t, math.IsNaN(got[1]))
	assert.Equal(t, -0.25, got[2])
}

func TestIsSos(t *testing.T) {
	d := newDriver(t)
	ctx := context.Background()

	check, err := d.IsSos(ctx, shiftedSquare())
	require.NoError(t, err)
	assert.True(t, check.IsSos, check.String())
	assert.Equal(t, 1, check.Level)
	require.NotNil(t, check.Gram)
	assert.NotEmpty(t, check.Squares)

	check, err = d.IsSos(ctx, poly.Motzkin())
	require.NoError(t, err)
	assert.False(t, check.IsSos, check.String())
	assert.True(t, check.Status.IsInfeasible())
	assert.Equal(t, 3, check.Level)
	assert.Nil(t, check.Gram)
}

func TestCancelled(t *testing.T) {
	d := newDriver(t, hierarchy.WithTarget(shiftedSquare()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := d.LowerBoundOnBall(ctx, 1, 4)
	assert.ErrorIs(t, err, context.Canceled)

	n := 0
	for _, err := range d.Sweep(ctx, []int{1, 2, 3}, 4) {
		assert.ErrorIs(t, err, context.Canceled)
		n++
	}
	assert.Equal(t, 1, n, "cancellation ends the sweep")
}

func TestIsSos_WeightedMotzkin(t *testing.T) {
	if testing.Short() {
		t.Skip("degree-8 SOS check")
	}
	r2, err := poly.NormSq(2)
	require.NoError(t, err)
	weighted, err := poly.Multiply(r2, poly.Motzkin())
	require.NoError(t, err)

	check, err := newDriver(t).IsSos(context.Background(), weighted)
	require.NoError(t, err)
	assert.Equal(t, 4, check.Level)
	assert.False(t, check.Status.IsError(), check.String())
	if check.IsSos {
		assert.NotNil(t, check.Gram)
	}
}
