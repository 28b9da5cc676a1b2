// SPDX-License-Identifier: MIT

// Package hierarchy drives SOS lower-bound hierarchies over a polynomial
// target, by default the Motzkin polynomial.
//
// At level d the driver solves
//
//	maximize γ  s.t.  target − γ = s0 + Σ sᵢ·gᵢ,  s0, sᵢ SOS
//
// with s0 of degree ≤ 2d. Every level builds a fresh sdp.Model, so levels
// share nothing but the immutable target and may run concurrently
// (SweepParallel). IsSos answers the plain SOS question with the same
// machinery and no region.
//
// Statuses: infeasible levels are ordinary results with no bound;
// unbounded and solver_error surface as ErrSolverFailure.
package hierarchy
