// SPDX-License-Identifier: MIT

package poly

import (
	"fmt"

	"github.com/katalvlaran/momsos/matrix"
	"github.com/katalvlaran/momsos/ring"
)

// Gram is a square array of coefficients indexed by a monomial basis.
// *sdp.MatrixVar is a Gram[expr.Affine]; NumericGram adapts a numeric matrix.
type Gram[T any] interface {
	Rows() int
	Cols() int
	At(i, j int) (T, error)
}

// FromGram expands p = vᵀQv over the canonical basis v = MonomialsUpTo(n, d):
// the coefficient at e is Σ Q[i,j] over all (i,j) with basis[i]+basis[j] = e.
// Both (i,j) and (j,i) contribute, so a symmetric Q doubles its off-diagonal.
//
// Errors: ErrInvalidArgument for invalid n or d; ErrShape when Q is not L×L.
// Complexity: O(L²·n), L = C(n+d, n).
func FromGram[T Coefficient[T]](n, d int, q Gram[T]) (*Polynomial[T], error) {
	basis, err := ring.MonomialsUpTo(n, d)
	if err != nil {
		return nil, polyErrorf("FromGram", fmt.Errorf("%w: %w", ErrInvalidArgument, err))
	}
	L := len(basis)
	if q.Rows() != L || q.Cols() != L {
		return nil, polyErrorf("FromGram", fmt.Errorf("got %dx%d, basis %d: %w", q.Rows(), q.Cols(), L, ErrShape))
	}

	out := &Polynomial[T]{n: n, terms: make(map[string]Term[T], ring.CountUpTo(n, 2*d))}
	var (
		i, j int
		qij  T
		m    ring.Monomial
	)
	for i = 0; i < L; i++ {
		for j = 0; j < L; j++ {
			if qij, err = q.At(i, j); err != nil {
				return nil, polyErrorf("FromGram", err)
			}
			if m, err = basis[i].Add(basis[j]); err != nil {
				return nil, polyErrorf("FromGram", err)
			}
			out.accumulate(m, qij)
		}
	}

	return out, nil
}

// numericGram adapts a matrix.Matrix to Gram[Real].
type numericGram struct{ m matrix.Matrix }

// NumericGram wraps a numeric matrix so FromGram can expand it.
func NumericGram(m matrix.Matrix) Gram[Real] { return numericGram{m: m} }

func (g numericGram) Rows() int { return g.m.Rows() }
func (g numericGram) Cols() int { return g.m.Cols() }
func (g numericGram) At(i, j int) (Real, error) {
	v, err := g.m.At(i, j)

	return Real(v), err
}
