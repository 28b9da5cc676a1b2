// SPDX-License-Identifier: MIT

// Package poly implements sparse multivariate polynomials with a pluggable
// coefficient type.
//
// 🚀 What is in here?
//
//	A Polynomial[T] maps exponent tuples (ring.Monomial) to coefficients of
//	type T. The same Add/Multiply/FromGram code runs for plain numbers (Real)
//	and for affine expressions over solver variables (expr.Affine), so a
//	Gram expansion vᵀQv with a symbolic Q is just FromGram over a Gram[Affine].
//
// ✨ Key features:
//   - canonical term order everywhere (ring.Compare)
//   - batch evaluation in the "one row per variable" layout used for grids
//   - Gram expansion over the canonical basis (full double sum)
//   - named constants: Motzkin, Ball, BallAround
//
// ⚙️ Usage:
//
//	m := poly.Motzkin()
//	v, _ := poly.Evaluate(m, []float64{1, -1}) // 0
//
//	b, _ := poly.Ball(2, 4)                    // 4 − x² − y²
//	p, _ := poly.Multiply(m, b)
//
// Degree policy:
//
//	Degree is structural: the largest total degree among stored keys,
//	explicit zero coefficients included. Arithmetic never drops keys; call
//	Compact (exact zeros) or Prune (|c| ≤ eps, Real only) to trim.
package poly
