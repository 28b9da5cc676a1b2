// SPDX-License-Identifier: MIT

package sdp

import (
	"fmt"

	"github.com/katalvlaran/momsos/expr"
)

// Sense is the optimization direction of a Model.
type Sense int

const (
	// Feasibility means no objective: any point satisfying the constraints.
	Feasibility Sense = iota
	Minimize
	Maximize
)

// String names the sense for logs.
func (s Sense) String() string {
	switch s {
	case Minimize:
		return "minimize"
	case Maximize:
		return "maximize"
	default:
		return "feasibility"
	}
}

// varKind tells whether a VarID is a PSD-block entry or a free scalar.
type varKind uint8

const (
	kindBlock varKind = iota
	kindScalar
)

// varRef locates a VarID: entry (i,j), i ≤ j, of block `index`, or free
// scalar `index`.
type varRef struct {
	kind  varKind
	index int
	i, j  int
}

// Model is a semidefinite program under construction: symmetric PSD matrix
// variables, free scalar variables, affine equality constraints and an
// optional linear objective.
//
// A Model is built by one goroutine and is not safe for concurrent mutation.
// Build a fresh Model per solve.
type Model struct {
	refs        []varRef
	blocks      []*MatrixVar
	scalars     []*ScalarVar
	constraints []Constraint
	objective   expr.Affine
	sense       Sense
}

// NewModel returns an empty feasibility model.
func NewModel() *Model { return &Model{} }

// MatrixVar is a symmetric n×n matrix variable constrained PSD. Entries
// (i,j) and (j,i) are the same scalar variable.
type MatrixVar struct {
	model *Model
	name  string
	n     int
	index int
	ids   []expr.VarID // packed upper triangle, row-major
}

// ScalarVar is a free real variable.
type ScalarVar struct {
	model *Model
	name  string
	index int
	id    expr.VarID
}

// Constraint is the equality Expr == 0.
type Constraint struct {
	Expr expr.Affine
	Name string
}

// PSD declares an n×n symmetric positive semidefinite matrix variable.
// Errors: ErrInvalidModel for n < 1.
func (m *Model) PSD(name string, n int) (*MatrixVar, error) {
	if n < 1 {
		return nil, sdpErrorf("PSD", fmt.Errorf("%q: size %d: %w", name, n, ErrInvalidModel))
	}
	mv := &MatrixVar{model: m, name: name, n: n, index: len(m.blocks), ids: make([]expr.VarID, 0, n*(n+1)/2)}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			mv.ids = append(mv.ids, m.newVar(varRef{kind: kindBlock, index: mv.index, i: i, j: j}))
		}
	}
	m.blocks = append(m.blocks, mv)

	return mv, nil
}

// Scalar declares a free scalar variable.
func (m *Model) Scalar(name string) *ScalarVar {
	s := &ScalarVar{model: m, name: name, index: len(m.scalars)}
	s.id = m.newVar(varRef{kind: kindScalar, index: s.index})
	m.scalars = append(m.scalars, s)

	return s
}

func (m *Model) newVar(r varRef) expr.VarID {
	m.refs = append(m.refs, r)

	return expr.VarID(len(m.refs) - 1)
}

// Equal adds the constraint lhs == rhs.
func (m *Model) Equal(lhs, rhs expr.Affine) {
	m.constraints = append(m.constraints, Constraint{Expr: lhs.Minus(rhs)})
}

// EqualNamed is Equal with a label carried into logs.
func (m *Model) EqualNamed(name string, lhs, rhs expr.Affine) {
	m.constraints = append(m.constraints, Constraint{Expr: lhs.Minus(rhs), Name: name})
}

// Maximize sets the objective to maximize e.
func (m *Model) Maximize(e expr.Affine) { m.objective, m.sense = e, Maximize }

// Minimize sets the objective to minimize e.
func (m *Model) Minimize(e expr.Affine) { m.objective, m.sense = e, Minimize }

// Sense reports the optimization direction.
func (m *Model) Sense() Sense { return m.sense }

// Objective returns the objective expression (zero for feasibility).
func (m *Model) Objective() expr.Affine { return m.objective }

// Constraints returns the equality constraints in insertion order.
func (m *Model) Constraints() []Constraint { return m.constraints }

// Blocks returns the PSD variables in declaration order.
func (m *Model) Blocks() []*MatrixVar { return m.blocks }

// Scalars returns the free variables in declaration order.
func (m *Model) Scalars() []*ScalarVar { return m.scalars }

// NumVars is the number of scalar variables, PSD entries included.
func (m *Model) NumVars() int { return len(m.refs) }

// Validate checks that every variable referenced by the constraints and the
// objective belongs to this model and that there is something to solve.
func (m *Model) Validate() error {
	if len(m.refs) == 0 {
		return sdpErrorf("Validate", fmt.Errorf("no variables: %w", ErrInvalidModel))
	}
	check := func(where string, e expr.Affine) error {
		for _, v := range e.Vars() {
			if v < 0 || int(v) >= len(m.refs) {
				return sdpErrorf("Validate", fmt.Errorf("%s references unknown variable v%d: %w", where, v, ErrInvalidModel))
			}
		}

		return nil
	}
	for i, c := range m.constraints {
		if err := check(fmt.Sprintf("constraint %d", i), c.Expr); err != nil {
			return err
		}
	}

	return check("objective", m.objective)
}

// Name returns the declared name.
func (v *MatrixVar) Name() string { return v.name }

// Size is n for an n×n variable.
func (v *MatrixVar) Size() int { return v.n }

// Rows is n.
func (v *MatrixVar) Rows() int { return v.n }

// Cols is n.
func (v *MatrixVar) Cols() int { return v.n }

// ID returns the variable of entry (i,j); (j,i) maps to the same ID.
func (v *MatrixVar) ID(i, j int) (expr.VarID, error) {
	if i < 0 || j < 0 || i >= v.n || j >= v.n {
		return 0, sdpErrorf("MatrixVar.ID", fmt.Errorf("%q (%d,%d): %w", v.name, i, j, ErrInvalidModel))
	}
	if i > j {
		i, j = j, i
	}
	// packed upper-triangle offset of (i,j)
	off := i*v.n - i*(i-1)/2 + (j - i)

	return v.ids[off], nil
}

// At returns entry (i,j) as an affine expression, so a MatrixVar can be
// expanded as a Gram matrix.
func (v *MatrixVar) At(i, j int) (expr.Affine, error) {
	id, err := v.ID(i, j)
	if err != nil {
		return expr.Affine{}, err
	}

	return expr.Var(id), nil
}

// Trace returns Σ X[i,i].
func (v *MatrixVar) Trace() expr.Affine {
	var acc expr.Affine
	for i := 0; i < v.n; i++ {
		id, _ := v.ID(i, i)
		acc = acc.Plus(expr.Var(id))
	}

	return acc
}

// Name returns the declared name.
func (s *ScalarVar) Name() string { return s.name }

// ID returns the variable identifier.
func (s *ScalarVar) ID() expr.VarID { return s.id }

// Expr returns 1·s.
func (s *ScalarVar) Expr() expr.Affine { return expr.Var(s.id) }
