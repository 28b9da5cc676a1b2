// SPDX-License-Identifier: MIT

package sos

import (
	"fmt"

	"github.com/katalvlaran/momsos/matrix"
	"github.com/katalvlaran/momsos/poly"
	"github.com/katalvlaran/momsos/ring"
)

// Square is one term Weight·Poly² of a sum-of-squares decomposition.
type Square struct {
	Weight float64
	Poly   *poly.Polynomial[poly.Real]
}

// Decompose splits a numeric Gram matrix over basis into weighted squares:
// Q = Σ λₖ uₖuₖᵀ gives vᵀQv = Σ λₖ (uₖᵀv)². Eigenvalues ≤ eps are dropped,
// which also discards the small negative eigenvalues a solver leaves behind.
// Squares are returned by decreasing weight.
//
// Errors: ErrInvalidArgument when basis does not match the matrix size or
// is empty; matrix errors from the eigen-solver.
func Decompose(gram matrix.Matrix, basis []ring.Monomial, eps float64) ([]Square, error) {
	L := len(basis)
	if L == 0 || gram.Rows() != L || gram.Cols() != L {
		return nil, sosErrorf("Decompose", fmt.Errorf("gram %dx%d, basis %d: %w", gram.Rows(), gram.Cols(), L, ErrInvalidArgument))
	}
	vals, V, err := matrix.Eigen(gram)
	if err != nil {
		return nil, sosErrorf("Decompose", err)
	}

	n := basis[0].Arity()
	var out []Square
	for k := L - 1; k >= 0; k-- {
		if vals[k] <= eps {
			break
		}
		q, err := poly.Zero[poly.Real](n)
		if err != nil {
			return nil, sosErrorf("Decompose", err)
		}
		for i, b := range basis {
			u, err := V.At(i, k)
			if err != nil {
				return nil, sosErrorf("Decompose", err)
			}
			if u == 0 {
				continue
			}
			if err = q.Set(b, poly.Real(u)); err != nil {
				return nil, sosErrorf("Decompose", err)
			}
		}
		out = append(out, Square{Weight: vals[k], Poly: q})
	}

	return out, nil
}

// Expand returns Σ Weight·Poly² over squares; the zero polynomial in n
// variables when squares is empty.
func Expand(n int, squares []Square) (*poly.Polynomial[poly.Real], error) {
	acc, err := poly.Zero[poly.Real](n)
	if err != nil {
		return nil, sosErrorf("Expand", err)
	}
	for _, s := range squares {
		sq, err := poly.Multiply(s.Poly, s.Poly)
		if err != nil {
			return nil, sosErrorf("Expand", err)
		}
		if sq, err = poly.Scale(sq, poly.Real(s.Weight)); err != nil {
			return nil, sosErrorf("Expand", err)
		}
		if acc, err = poly.Add(acc, sq); err != nil {
			return nil, sosErrorf("Expand", err)
		}
	}

	return acc, nil
}
