// SPDX-License-Identifier: MIT

package poly

import (
	"fmt"

	"github.com/katalvlaran/momsos/expr"
)

// Map converts every coefficient with f, keeping the keys.
func Map[T Coefficient[T], U Coefficient[U]](p *Polynomial[T], f func(T) (U, error)) (*Polynomial[U], error) {
	out := &Polynomial[U]{n: p.n, terms: make(map[string]Term[U], len(p.terms))}
	for k, t := range p.terms {
		c, err := f(t.Coef)
		if err != nil {
			return nil, polyErrorf("Map", fmt.Errorf("%v: %w", t.Mono, err))
		}
		out.terms[k] = Term[U]{Mono: t.Mono.Clone(), Coef: c}
	}

	return out, nil
}

// Lift turns a numeric polynomial into one with constant affine coefficients.
func Lift(p *Polynomial[Real]) *Polynomial[expr.Affine] {
	out, _ := Map(p, func(c Real) (expr.Affine, error) { return expr.Constant(float64(c)), nil })

	return out
}

// Numeric evaluates every affine coefficient under val.
func Numeric(p *Polynomial[expr.Affine], val func(expr.VarID) float64) *Polynomial[Real] {
	out, _ := Map(p, func(c expr.Affine) (Real, error) { return Real(c.Value(val)), nil })

	return out
}

// ToReal converts a polynomial whose affine coefficients are all constant.
// Errors: ErrNotNumeric if any coefficient references a variable.
func ToReal(p *Polynomial[expr.Affine]) (*Polynomial[Real], error) {
	return Map(p, func(c expr.Affine) (Real, error) {
		if !c.IsConstant() {
			return 0, ErrNotNumeric
		}

		return Real(c.Const()), nil
	})
}
