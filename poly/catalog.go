// SPDX-License-Identifier: MIT

package poly

import (
	"math"

	"github.com/katalvlaran/momsos/ring"
)

// Motzkin returns x⁴y² + x²y⁴ − 3x²y² + 1.
//
// It is nonnegative on ℝ², vanishes exactly at (±1, ±1), and is not a sum of
// squares of real polynomials.
func Motzkin() *Polynomial[Real] {
	return MustNew(
		RealTerm(1, 4, 2),
		RealTerm(1, 2, 4),
		RealTerm(-3, 2, 2),
		RealTerm(1, 0, 0),
	)
}

// Var returns the coordinate polynomial xᵢ (0-based i) in n variables.
func Var(n, i int) (*Polynomial[Real], error) {
	if n <= 0 || i < 0 || i >= n {
		return nil, polyErrorf("Var", ErrInvalidArgument)
	}
	m := make(ring.Monomial, n)
	m[i] = 1

	return New(Term[Real]{Mono: m, Coef: 1})
}

// NormSq returns Σxᵢ² in n variables.
func NormSq(n int) (*Polynomial[Real], error) {
	if n <= 0 {
		return nil, polyErrorf("NormSq", ErrInvalidArgument)
	}
	terms := make([]Term[Real], n)
	for i := range terms {
		m := make(ring.Monomial, n)
		m[i] = 2
		terms[i] = Term[Real]{Mono: m, Coef: 1}
	}

	return New(terms...)
}

// Ball returns radiusSq − Σxᵢ², the region polynomial of the closed ball of
// squared radius radiusSq around the origin.
func Ball(n int, radiusSq float64) (*Polynomial[Real], error) {
	if n <= 0 {
		return nil, polyErrorf("Ball", ErrInvalidArgument)
	}

	return BallAround(make([]float64, n), radiusSq)
}

// BallAround returns radiusSq − Σ(xᵢ − cᵢ)², expanded:
// (radiusSq − Σcᵢ²) + Σ 2cᵢxᵢ − Σxᵢ².
//
// Errors: ErrInvalidArgument for an empty center, a negative or non-finite
// radiusSq, or a non-finite center coordinate.
func BallAround(center []float64, radiusSq float64) (*Polynomial[Real], error) {
	n := len(center)
	if n == 0 || radiusSq < 0 || math.IsNaN(radiusSq) || math.IsInf(radiusSq, 0) {
		return nil, polyErrorf("BallAround", ErrInvalidArgument)
	}
	c0 := radiusSq
	for _, c := range center {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, polyErrorf("BallAround", ErrInvalidArgument)
		}
		c0 -= c * c
	}

	terms := make([]Term[Real], 0, 2*n+1)
	terms = append(terms, Term[Real]{Mono: make(ring.Monomial, n), Coef: Real(c0)})
	for i, c := range center {
		if c != 0 {
			m := make(ring.Monomial, n)
			m[i] = 1
			terms = append(terms, Term[Real]{Mono: m, Coef: Real(2 * c)})
		}
		sq := make(ring.Monomial, n)
		sq[i] = 2
		terms = append(terms, Term[Real]{Mono: sq, Coef: -1})
	}

	return New(terms...)
}
