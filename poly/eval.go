// SPDX-License-Identifier: MIT

package poly

import (
	"fmt"
	"math"
)

// Evaluate returns Σ c·Πxᵢ^eᵢ at point.
// Errors: ErrArityMismatch when len(point) != arity.
func Evaluate(p *Polynomial[Real], point []float64) (float64, error) {
	if len(point) != p.n {
		return 0, polyErrorf("Evaluate", ErrArityMismatch)
	}

	return evalTerms(p.sortedTerms(), point), nil
}

// evalTerms sums the terms at point; arity is the caller's responsibility.
func evalTerms(terms []Term[Real], point []float64) float64 {
	var s float64
	for _, t := range terms {
		s += float64(t.Coef) * t.Mono.Pow(point)
	}

	return s
}

// EvaluateBatch evaluates p at k points laid out one row per variable:
// coords[i][j] is variable i of point j. With coords = [[0,-1],[0,1]] the
// points are (0,0) and (−1,1).
//
// Errors: ErrArityMismatch when len(coords) != arity; ErrInvalidArgument
// when the rows have different lengths.
// Complexity: O(k·|p|·deg).
func EvaluateBatch(p *Polynomial[Real], coords [][]float64) ([]float64, error) {
	if len(coords) != p.n {
		return nil, polyErrorf("EvaluateBatch", ErrArityMismatch)
	}
	k := len(coords[0])
	for i, row := range coords {
		if len(row) != k {
			return nil, polyErrorf("EvaluateBatch", fmt.Errorf("row %d has %d points, want %d: %w", i, len(row), k, ErrInvalidArgument))
		}
	}
	terms := p.sortedTerms()
	out := make([]float64, k)
	point := make([]float64, p.n)
	var i, j int
	for j = 0; j < k; j++ {
		for i = 0; i < p.n; i++ {
			point[i] = coords[i][j]
		}
		out[j] = evalTerms(terms, point)
	}

	return out, nil
}

// Prune returns a copy of p without the coefficients with |c| ≤ eps.
// Prune(p, 0) equals p.Compact().
func Prune(p *Polynomial[Real], eps float64) (*Polynomial[Real], error) {
	if eps < 0 || math.IsNaN(eps) {
		return nil, polyErrorf("Prune", ErrInvalidArgument)
	}
	out := &Polynomial[Real]{n: p.n, terms: make(map[string]Term[Real], len(p.terms))}
	for k, t := range p.terms {
		if math.Abs(float64(t.Coef)) > eps {
			out.terms[k] = Term[Real]{Mono: t.Mono.Clone(), Coef: t.Coef}
		}
	}

	return out, nil
}
