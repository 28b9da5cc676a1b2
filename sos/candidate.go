// SPDX-License-Identifier: MIT

package sos

import (
	"fmt"

	"github.com/katalvlaran/momsos/expr"
	"github.com/katalvlaran/momsos/matrix"
	"github.com/katalvlaran/momsos/poly"
	"github.com/katalvlaran/momsos/ring"
	"github.com/katalvlaran/momsos/sdp"
)

// Candidate is a symbolic SOS polynomial vᵀQv of degree ≤ 2·Half in N
// variables, with Q a PSD variable of the model it was built in.
type Candidate struct {
	Var   *sdp.MatrixVar
	Poly  *poly.Polynomial[expr.Affine]
	Basis []ring.Monomial
	N     int
	Half  int
}

// BuildCandidate declares a PSD Gram variable of size C(n+d, n) in m and
// returns it with its expansion over MonomialsUpTo(n, d).
//
// Errors: ErrInvalidArgument for n < 1 or d < 0.
func BuildCandidate(m *sdp.Model, n, d int) (*Candidate, error) {
	basis, err := ring.MonomialsUpTo(n, d)
	if err != nil {
		return nil, sosErrorf("BuildCandidate", fmt.Errorf("%w: %w", ErrInvalidArgument, err))
	}
	q, err := m.PSD(fmt.Sprintf("Q%d", len(m.Blocks())), len(basis))
	if err != nil {
		return nil, sosErrorf("BuildCandidate", err)
	}
	p, err := poly.FromGram[expr.Affine](n, d, q)
	if err != nil {
		return nil, sosErrorf("BuildCandidate", err)
	}

	return &Candidate{Var: q, Poly: p, Basis: basis, N: n, Half: d}, nil
}

// Numeric reads the Gram matrix from sol and expands it into a numeric
// polynomial.
func (c *Candidate) Numeric(sol *sdp.Solution) (*matrix.Dense, *poly.Polynomial[poly.Real], error) {
	gram, err := sol.MatrixValue(c.Var)
	if err != nil {
		return nil, nil, sosErrorf("Candidate.Numeric", err)
	}
	p, err := poly.FromGram(c.N, c.Half, poly.NumericGram(gram))
	if err != nil {
		return nil, nil, sosErrorf("Candidate.Numeric", err)
	}

	return gram, p, nil
}
