// SPDX-License-Identifier: MIT

package sos

import (
	"fmt"

	"github.com/katalvlaran/momsos/expr"
	"github.com/katalvlaran/momsos/poly"
	"github.com/katalvlaran/momsos/ring"
	"github.com/katalvlaran/momsos/sdp"
)

// MatchCoefficients adds lhs[e] == rhs[e] to m for every monomial e of
// degree 0..maxDegree, in canonical order. Absent keys count as zero, so a
// monomial missing from both sides yields the trivial row 0 == 0. It returns
// the number of constraints added.
//
// Errors: ErrInvalidArgument for maxDegree < 0; poly.ErrArityMismatch when
// lhs and rhs disagree on arity.
func MatchCoefficients(m *sdp.Model, lhs, rhs *poly.Polynomial[expr.Affine], maxDegree int) (int, error) {
	if lhs.Arity() != rhs.Arity() {
		return 0, sosErrorf("MatchCoefficients", fmt.Errorf("%d vs %d: %w", lhs.Arity(), rhs.Arity(), poly.ErrArityMismatch))
	}
	monos, err := ring.MonomialsUpTo(lhs.Arity(), maxDegree)
	if err != nil {
		return 0, sosErrorf("MatchCoefficients", fmt.Errorf("%w: %w", ErrInvalidArgument, err))
	}
	for _, e := range monos {
		m.EqualNamed(e.String(), lhs.Coef(e), rhs.Coef(e))
	}

	return len(monos), nil
}

// SumOfSquares constrains target to equal an SOS candidate of half degree d.
// Coefficients are matched up to max(2d, deg target) so that target terms
// beyond the candidate's reach force infeasibility rather than vanish.
func SumOfSquares(m *sdp.Model, target *poly.Polynomial[expr.Affine], d int) (*Candidate, error) {
	c, err := BuildCandidate(m, target.Arity(), d)
	if err != nil {
		return nil, sosErrorf("SumOfSquares", err)
	}
	if _, err = MatchCoefficients(m, target, c.Poly, max(2*d, target.Degree())); err != nil {
		return nil, sosErrorf("SumOfSquares", err)
	}

	return c, nil
}

// Certificate is a quadratic-module representation s0 + Σ sᵢ·gᵢ built into
// a model.
type Certificate struct {
	S0          *Candidate
	Multipliers []*Candidate // Multipliers[i] weights Regions[i]
	Regions     []*poly.Polynomial[poly.Real]
	Poly        *poly.Polynomial[expr.Affine] // s0 + Σ sᵢ·gᵢ
	Constraints int
}

// QuadraticModule constrains target = s0 + Σ sᵢ·gᵢ where s0 has half degree
// level and sᵢ has half degree level − ceil(deg gᵢ / 2). With the single
// region Ball(n, R²) this is the level-d Putinar certificate
// target = s0 + s1·(R² − ‖x‖²).
//
// Errors: ErrInvalidArgument for level < 0 or a region whose degree needs
// more than level; poly.ErrArityMismatch when a region's arity differs from
// the target's.
func QuadraticModule(m *sdp.Model, target *poly.Polynomial[expr.Affine], regions []*poly.Polynomial[poly.Real], level int) (*Certificate, error) {
	n := target.Arity()
	for i, g := range regions {
		if g.Arity() != n {
			return nil, sosErrorf("QuadraticModule", fmt.Errorf("region %d: %w", i, poly.ErrArityMismatch))
		}
		if h := level - (g.Degree()+1)/2; h < 0 {
			return nil, sosErrorf("QuadraticModule", fmt.Errorf("region %d of degree %d exceeds level %d: %w", i, g.Degree(), level, ErrInvalidArgument))
		}
	}
	s0, err := BuildCandidate(m, n, level)
	if err != nil {
		return nil, sosErrorf("QuadraticModule", err)
	}
	cert := &Certificate{S0: s0, Regions: regions, Poly: s0.Poly}
	for _, g := range regions {
		si, err := BuildCandidate(m, n, level-(g.Degree()+1)/2)
		if err != nil {
			return nil, sosErrorf("QuadraticModule", err)
		}
		weighted, err := poly.Multiply(si.Poly, poly.Lift(g))
		if err != nil {
			return nil, sosErrorf("QuadraticModule", err)
		}
		if cert.Poly, err = poly.Add(cert.Poly, weighted); err != nil {
			return nil, sosErrorf("QuadraticModule", err)
		}
		cert.Multipliers = append(cert.Multipliers, si)
	}

	maxDeg := max(2*level, cert.Poly.Degree(), target.Degree())
	if cert.Constraints, err = MatchCoefficients(m, target, cert.Poly, maxDeg); err != nil {
		return nil, sosErrorf("QuadraticModule", err)
	}

	return cert, nil
}
