// SPDX-License-Identifier: MIT

// Package expr models affine expressions c + Σ aᵢ·vᵢ over scalar solver
// variables. They are the symbolic coefficients of polynomials whose
// coefficients are Gram-matrix entries or free bounds.
//
// Affine values are immutable; every operation returns a fresh value and the
// zero value Affine{} is the constant 0.
package expr

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// ErrNonlinear is returned when a product of two non-constant affine
// expressions is requested; such a product has no affine representation.
var ErrNonlinear = errors.New("expr: product of two non-constant affine expressions")

// VarID identifies a scalar variable inside one model.
type VarID int

// Affine is c + Σ aᵢ·vᵢ. Terms with coefficient exactly 0 are never stored.
type Affine struct {
	constant float64
	terms    map[VarID]float64
}

// Constant returns the affine constant c.
func Constant(c float64) Affine { return Affine{constant: c} }

// Var returns 1·v.
func Var(v VarID) Affine { return Term(v, 1) }

// Term returns a·v (the constant 0 when a == 0).
func Term(v VarID, a float64) Affine {
	if a == 0 {
		return Affine{}
	}

	return Affine{terms: map[VarID]float64{v: a}}
}

// Const returns the constant part.
func (a Affine) Const() float64 { return a.constant }

// Coef returns the coefficient of v (0 when absent).
func (a Affine) Coef(v VarID) float64 { return a.terms[v] }

// Len is the number of variables with a non-zero coefficient.
func (a Affine) Len() int { return len(a.terms) }

// IsConstant reports whether a references no variable.
func (a Affine) IsConstant() bool { return len(a.terms) == 0 }

// IsZero reports whether a is the constant 0.
func (a Affine) IsZero() bool { return a.constant == 0 && len(a.terms) == 0 }

// Vars returns the referenced variables in ascending order.
func (a Affine) Vars() []VarID {
	return slices.Sorted(maps.Keys(a.terms))
}

// Terms yields (variable, coefficient) pairs in ascending variable order.
func (a Affine) Terms() iter.Seq2[VarID, float64] {
	return func(yield func(VarID, float64) bool) {
		for _, v := range a.Vars() {
			if !yield(v, a.terms[v]) {
				return
			}
		}
	}
}

// Plus returns a + b. Coefficients that cancel exactly are dropped.
func (a Affine) Plus(b Affine) Affine {
	out := Affine{constant: a.constant + b.constant}
	if len(a.terms)+len(b.terms) == 0 {
		return out
	}
	out.terms = make(map[VarID]float64, len(a.terms)+len(b.terms))
	for v, c := range a.terms {
		out.terms[v] = c
	}
	for v, c := range b.terms {
		if s := out.terms[v] + c; s != 0 {
			out.terms[v] = s
		} else {
			delete(out.terms, v)
		}
	}

	return out
}

// Minus returns a − b.
func (a Affine) Minus(b Affine) Affine { return a.Plus(b.Scale(-1)) }

// Scale returns alpha·a.
func (a Affine) Scale(alpha float64) Affine {
	out := Affine{constant: alpha * a.constant}
	if alpha == 0 || len(a.terms) == 0 {
		return out
	}
	out.terms = make(map[VarID]float64, len(a.terms))
	for v, c := range a.terms {
		out.terms[v] = alpha * c
	}

	return out
}

// Times returns a·b when at least one factor is constant, ErrNonlinear otherwise.
func (a Affine) Times(b Affine) (Affine, error) {
	switch {
	case a.IsConstant():
		return b.Scale(a.constant), nil
	case b.IsConstant():
		return a.Scale(b.constant), nil
	default:
		return Affine{}, ErrNonlinear
	}
}

// Value evaluates a with the variable assignment val.
func (a Affine) Value(val func(VarID) float64) float64 {
	s := a.constant
	for v, c := range a.Terms() {
		s += c * val(v)
	}

	return s
}

// Equal reports exact structural equality.
func (a Affine) Equal(b Affine) bool {
	if a.constant != b.constant || len(a.terms) != len(b.terms) {
		return false
	}
	for v, c := range a.terms {
		if bc, ok := b.terms[v]; !ok || bc != c {
			return false
		}
	}

	return true
}

// String renders a as "c + a1*v1 - a2*v2" in variable order, e.g. "1 + 2*v0".
func (a Affine) String() string {
	var b strings.Builder
	wrote := false
	if a.constant != 0 || len(a.terms) == 0 {
		b.WriteString(strconv.FormatFloat(a.constant, 'g', -1, 64))
		wrote = true
	}
	for v, c := range a.Terms() {
		switch {
		case !wrote && c < 0:
			b.WriteString("-")
		case wrote && c < 0:
			b.WriteString(" - ")
		case wrote:
			b.WriteString(" + ")
		}
		if ac := math.Abs(c); ac != 1 {
			b.WriteString(strconv.FormatFloat(ac, 'g', -1, 64))
			b.WriteString("*")
		}
		fmt.Fprintf(&b, "v%d", v)
		wrote = true
	}

	return b.String()
}
