// SPDX-License-Identifier: MIT

package poly

import "fmt"

// Add returns p + q over the union of their keys.
// Errors: ErrArityMismatch.
// Complexity: O(|p| + |q|).
func Add[T Coefficient[T]](p, q *Polynomial[T]) (*Polynomial[T], error) {
	if p.n != q.n {
		return nil, polyErrorf("Add", ErrArityMismatch)
	}
	out := p.Clone()
	for _, t := range q.terms {
		out.accumulate(t.Mono, t.Coef)
	}

	return out, nil
}

// Sum folds Add over ps. At least one polynomial is required.
func Sum[T Coefficient[T]](ps ...*Polynomial[T]) (*Polynomial[T], error) {
	if len(ps) == 0 {
		return nil, polyErrorf("Sum", ErrInvalidArgument)
	}
	acc := ps[0].Clone()
	for i, p := range ps[1:] {
		if p.n != acc.n {
			return nil, polyErrorf("Sum", fmt.Errorf("operand %d: %w", i+1, ErrArityMismatch))
		}
		for _, t := range p.terms {
			acc.accumulate(t.Mono, t.Coef)
		}
	}

	return acc, nil
}

// Multiply returns p·q: every pair of terms contributes its coefficient
// product at the summed exponent.
//
// Errors: ErrArityMismatch; any error from T.Times (expr.ErrNonlinear when
// both coefficients are symbolic).
// Complexity: O(|p|·|q|·n).
func Multiply[T Coefficient[T]](p, q *Polynomial[T]) (*Polynomial[T], error) {
	if p.n != q.n {
		return nil, polyErrorf("Multiply", ErrArityMismatch)
	}
	out := &Polynomial[T]{n: p.n, terms: make(map[string]Term[T], len(p.terms)*len(q.terms))}
	// Canonical iteration keeps accumulation order, and so rounding, reproducible.
	for _, ma := range p.Monomials() {
		ta := p.terms[ma.Key()]
		for _, mb := range q.Monomials() {
			tb := q.terms[mb.Key()]
			c, err := ta.Coef.Times(tb.Coef)
			if err != nil {
				return nil, polyErrorf("Multiply", fmt.Errorf("%v·%v: %w", ma, mb, err))
			}
			m, err := ma.Add(mb)
			if err != nil {
				return nil, polyErrorf("Multiply", err)
			}
			out.accumulate(m, c)
		}
	}

	return out, nil
}

// Scale returns c·p.
func Scale[T Coefficient[T]](p *Polynomial[T], c T) (*Polynomial[T], error) {
	k, err := Constant(p.n, c)
	if err != nil {
		return nil, polyErrorf("Scale", err)
	}

	return Multiply(k, p)
}
