// SPDX-License-Identifier: MIT

// Package sos turns sum-of-squares certificates into constraints of an
// sdp.Model.
//
// A polynomial s of degree ≤ 2d is a sum of squares iff s = vᵀQv for the
// monomial basis v = MonomialsUpTo(n, d) and some Q ⪰ 0. BuildCandidate
// declares Q as a PSD block and expands vᵀQv with affine coefficients;
// MatchCoefficients then equates two such polynomials monomial by monomial.
//
// Certificates:
//
//	SumOfSquares     p = s0
//	QuadraticModule  p = s0 + Σ sᵢ·gᵢ      (Putinar, gᵢ ≥ 0 on the region)
//
// After a solve, Candidate.Numeric reads Q back and Decompose splits it into
// explicit weighted squares Σ λₖ·(uₖᵀv)².
package sos
