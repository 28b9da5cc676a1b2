// SPDX-License-Identifier: MIT

package poly

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/katalvlaran/momsos/ring"
)

// Term is one monomial with its coefficient; the literal form accepted by New.
type Term[T Coefficient[T]] struct {
	Mono ring.Monomial
	Coef T
}

// RealTerm is shorthand for a Real literal term: RealTerm(3, 2, 0) is 3·x₁².
func RealTerm(c float64, exps ...int) Term[Real] {
	return Term[Real]{Mono: ring.Monomial(exps), Coef: Real(c)}
}

// Polynomial is a sparse map from monomial to coefficient with fixed arity.
//
// Absent keys have coefficient zero. The value is treated as immutable by
// every function in this package except Set.
type Polynomial[T Coefficient[T]] struct {
	n     int
	terms map[string]Term[T]
}

// New builds a polynomial from literal terms. The arity is taken from the
// first term and every other term must match it. Duplicate monomials
// accumulate.
//
// Errors: ErrInvalidArgument for no terms, an empty monomial or a negative
// exponent; ErrArityMismatch for inconsistent lengths.
func New[T Coefficient[T]](terms ...Term[T]) (*Polynomial[T], error) {
	if len(terms) == 0 {
		return nil, polyErrorf("New", ErrInvalidArgument)
	}
	p, err := Zero[T](len(terms[0].Mono))
	if err != nil {
		return nil, polyErrorf("New", err)
	}
	for i, t := range terms {
		if len(t.Mono) != p.n {
			return nil, polyErrorf("New", fmt.Errorf("term %d: %w", i, ErrArityMismatch))
		}
		for _, e := range t.Mono {
			if e < 0 {
				return nil, polyErrorf("New", fmt.Errorf("term %d: negative exponent: %w", i, ErrInvalidArgument))
			}
		}
		p.accumulate(t.Mono, t.Coef)
	}

	return p, nil
}

// MustNew is New for literals known to be valid; it panics on error.
func MustNew[T Coefficient[T]](terms ...Term[T]) *Polynomial[T] {
	p, err := New(terms...)
	if err != nil {
		panic(err)
	}

	return p
}

// Zero returns the polynomial with no terms in n variables.
func Zero[T Coefficient[T]](n int) (*Polynomial[T], error) {
	if n <= 0 {
		return nil, polyErrorf("Zero", ErrInvalidArgument)
	}

	return &Polynomial[T]{n: n, terms: make(map[string]Term[T])}, nil
}

// Constant returns the polynomial c in n variables.
func Constant[T Coefficient[T]](n int, c T) (*Polynomial[T], error) {
	p, err := Zero[T](n)
	if err != nil {
		return nil, err
	}
	p.accumulate(make(ring.Monomial, n), c)

	return p, nil
}

// accumulate adds c to the coefficient of m, storing a private copy of m.
func (p *Polynomial[T]) accumulate(m ring.Monomial, c T) {
	k := m.Key()
	if t, ok := p.terms[k]; ok {
		t.Coef = t.Coef.Plus(c)
		p.terms[k] = t

		return
	}
	p.terms[k] = Term[T]{Mono: m.Clone(), Coef: c}
}

// Arity is the number of variables.
func (p *Polynomial[T]) Arity() int { return p.n }

// Len is the number of stored terms, explicit zeros included.
func (p *Polynomial[T]) Len() int { return len(p.terms) }

// Degree is the largest total degree among stored keys (0 when none).
func (p *Polynomial[T]) Degree() int {
	d := 0
	for _, t := range p.terms {
		if td := t.Mono.Degree(); td > d {
			d = td
		}
	}

	return d
}

// Coef returns the coefficient of m, the zero value when absent.
func (p *Polynomial[T]) Coef(m ring.Monomial) T {
	return p.terms[m.Key()].Coef
}

// Has reports whether m is a stored key.
func (p *Polynomial[T]) Has(m ring.Monomial) bool {
	_, ok := p.terms[m.Key()]

	return ok
}

// Set replaces the coefficient of m in place. It is the one mutation the
// package offers, used to inject a scalar bound into the constant term.
func (p *Polynomial[T]) Set(m ring.Monomial, c T) error {
	if len(m) != p.n {
		return polyErrorf("Set", ErrArityMismatch)
	}
	p.terms[m.Key()] = Term[T]{Mono: m.Clone(), Coef: c}

	return nil
}

// Monomials returns the stored monomials in canonical order.
func (p *Polynomial[T]) Monomials() []ring.Monomial {
	out := make([]ring.Monomial, 0, len(p.terms))
	for _, t := range p.terms {
		out = append(out, t.Mono.Clone())
	}
	slices.SortFunc(out, ring.Compare)

	return out
}

// Terms yields (monomial, coefficient) in canonical order.
func (p *Polynomial[T]) Terms() iter.Seq2[ring.Monomial, T] {
	return func(yield func(ring.Monomial, T) bool) {
		for _, m := range p.Monomials() {
			if !yield(m, p.terms[m.Key()].Coef) {
				return
			}
		}
	}
}

// sortedTerms returns the stored terms in canonical order (shared monomials;
// read-only for callers).
func (p *Polynomial[T]) sortedTerms() []Term[T] {
	out := make([]Term[T], 0, len(p.terms))
	for _, t := range p.terms {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b Term[T]) int { return ring.Compare(a.Mono, b.Mono) })

	return out
}

// Clone returns an independent copy.
func (p *Polynomial[T]) Clone() *Polynomial[T] {
	out := &Polynomial[T]{n: p.n, terms: make(map[string]Term[T], len(p.terms))}
	for k, t := range p.terms {
		out.terms[k] = Term[T]{Mono: t.Mono.Clone(), Coef: t.Coef}
	}

	return out
}

// Compact returns a copy without the terms whose coefficient IsZero.
func (p *Polynomial[T]) Compact() *Polynomial[T] {
	out := &Polynomial[T]{n: p.n, terms: make(map[string]Term[T], len(p.terms))}
	for k, t := range p.terms {
		if !t.Coef.IsZero() {
			out.terms[k] = Term[T]{Mono: t.Mono.Clone(), Coef: t.Coef}
		}
	}

	return out
}

// String renders terms in canonical order, e.g. "1 - 3*x1^2*x2^2 + x1^4*x2^2".
// The polynomial without terms renders as "0".
func (p *Polynomial[T]) String() string {
	var b strings.Builder
	first := true
	for m, c := range p.Terms() {
		if c.IsZero() {
			continue
		}
		cs := fmt.Sprint(c)
		neg := negative(c)
		if neg {
			cs = strings.TrimPrefix(cs, "-")
		}
		switch {
		case first && neg:
			b.WriteString("-")
		case !first && neg:
			b.WriteString(" - ")
		case !first:
			b.WriteString(" + ")
		}
		switch {
		case m.IsConstant():
			b.WriteString(cs)
		case cs == "1":
			b.WriteString(m.String())
		default:
			if strings.Contains(cs, " ") {
				cs = "(" + cs + ")"
			}
			b.WriteString(cs)
			b.WriteString("*")
			b.WriteString(m.String())
		}
		first = false
	}
	if first {
		return "0"
	}

	return b.String()
}
