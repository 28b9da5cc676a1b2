// SPDX-License-Identifier: MIT

// Package ring enumerates the monomials of the real polynomial ring
// ℝ[x₁,…,xₙ] in a fixed canonical order.
//
// What is the canonical order?
//
//	Degree-major (0, 1, 2, …), and inside one total degree descending
//	lexicographic: the first exponent takes its largest feasible value
//	first. For n=2, d≤2:
//
//	  (0,0) (1,0) (0,1) (2,0) (1,1) (0,2)
//
// The order is a contract, not an iteration accident: position k in
// MonomialsUpTo(n, d) is row/column k of every Gram matrix built over that
// basis. Compare exposes the same order as a comparator.
//
// Usage:
//
//	basis, err := ring.MonomialsUpTo(2, 3) // 10 monomials
//	for i, m := range basis {
//	    fmt.Println(i, m, m.Degree())
//	}
//
// Sizes:
//
//   - |MonomialsAtDegree(n,d)| = C(n+d−1, n−1)
//   - |MonomialsUpTo(n,d)|     = C(n+d, n)
package ring
