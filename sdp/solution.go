// SPDX-License-Identifier: MIT

package sdp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/momsos/expr"
	"github.com/katalvlaran/momsos/matrix"
)

// Solution is what a Solver returns for a Model.
//
// Values are only meaningful when Status.HasSolution(); the accessors
// return ErrNoSolution otherwise.
type Solution struct {
	Status     Status
	Objective  float64 // model objective value; 0 for feasibility models
	Iterations int

	// Margin is the largest t such that every PSD block of the returned
	// point satisfies X ⪰ t·I. Backends fill it for feasibility models; a
	// negative margin is why such a model was declared infeasible. NaN when
	// not computed.
	Margin float64

	// Final relative residuals and duality gap, for reporting.
	PrimalResidual float64
	DualResidual   float64
	Gap            float64

	values []float64 // indexed by VarID
	blocks []*matrix.Dense
}

// newSolution builds a Solution without values.
func newSolution(st Status) *Solution {
	return &Solution{Status: st, Margin: math.NaN()}
}

// VarValue returns the value of one variable.
func (s *Solution) VarValue(id expr.VarID) (float64, error) {
	if !s.Status.HasSolution() || s.values == nil {
		return 0, sdpErrorf("VarValue", ErrNoSolution)
	}
	if id < 0 || int(id) >= len(s.values) {
		return 0, sdpErrorf("VarValue", fmt.Errorf("v%d: %w", id, ErrInvalidModel))
	}

	return s.values[id], nil
}

// Value evaluates an affine expression at the solution.
func (s *Solution) Value(e expr.Affine) (float64, error) {
	if !s.Status.HasSolution() || s.values == nil {
		return 0, sdpErrorf("Value", ErrNoSolution)
	}
	for _, v := range e.Vars() {
		if v < 0 || int(v) >= len(s.values) {
			return 0, sdpErrorf("Value", fmt.Errorf("v%d: %w", v, ErrInvalidModel))
		}
	}

	return e.Value(func(v expr.VarID) float64 { return s.values[v] }), nil
}

// ScalarValue returns the value of a free variable.
func (s *Solution) ScalarValue(v *ScalarVar) (float64, error) { return s.VarValue(v.id) }

// MatrixValue returns a copy of the numeric value of a PSD variable.
func (s *Solution) MatrixValue(v *MatrixVar) (*matrix.Dense, error) {
	if !s.Status.HasSolution() || s.blocks == nil {
		return nil, sdpErrorf("MatrixValue", ErrNoSolution)
	}
	if v.index < 0 || v.index >= len(s.blocks) || s.blocks[v.index].Rows() != v.n {
		return nil, sdpErrorf("MatrixValue", fmt.Errorf("%q: %w", v.name, ErrInvalidModel))
	}

	return s.blocks[v.index].Clone().(*matrix.Dense), nil
}

// Lookup adapts the solution to the assignment callback of expr.Affine.Value
// and poly.Numeric. Unknown variables evaluate to NaN.
func (s *Solution) Lookup() func(expr.VarID) float64 {
	return func(v expr.VarID) float64 {
		if v < 0 || int(v) >= len(s.values) {
			return math.NaN()
		}

		return s.values[v]
	}
}
