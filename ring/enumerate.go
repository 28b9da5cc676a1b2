// SPDX-License-Identifier: MIT

package ring

// MonomialsAtDegree returns every monomial of n variables with total degree
// exactly d, in descending lexicographic order.
//
// Algorithm:
//  1. The first exponent runs from d down to 0.
//  2. For each choice e, recurse on the remaining n−1 variables with degree d−e.
//  3. With one variable left it absorbs the remaining degree.
//
// Errors: ErrInvalidArgument for n ≤ 0 or d < 0.
// Complexity: O(n·C(n+d−1, n−1)).
func MonomialsAtDegree(n, d int) ([]Monomial, error) {
	if n <= 0 || d < 0 {
		return nil, ringErrorf("MonomialsAtDegree", ErrInvalidArgument)
	}
	out := make([]Monomial, 0, CountAtDegree(n, d))
	prefix := make([]int, 0, n)
	out = appendAtDegree(out, prefix, n, d)

	return out, nil
}

// appendAtDegree appends to out all completions of prefix with `left` more
// variables summing to d.
func appendAtDegree(out []Monomial, prefix []int, left, d int) []Monomial {
	if left == 1 {
		m := make(Monomial, len(prefix)+1)
		copy(m, prefix)
		m[len(prefix)] = d

		return append(out, m)
	}
	for e := d; e >= 0; e-- {
		out = appendAtDegree(out, append(prefix, e), left-1, d-e)
	}

	return out
}

// MonomialsUpTo returns the canonical basis of all monomials of n variables
// with total degree 0..d: MonomialsAtDegree(n, 0), then degree 1, and so on.
// Index k of the result is row/column k of a Gram matrix over this basis.
//
// Errors: ErrInvalidArgument for n ≤ 0 or d < 0.
func MonomialsUpTo(n, d int) ([]Monomial, error) {
	if n <= 0 || d < 0 {
		return nil, ringErrorf("MonomialsUpTo", ErrInvalidArgument)
	}
	out := make([]Monomial, 0, CountUpTo(n, d))
	prefix := make([]int, 0, n)
	for k := 0; k <= d; k++ {
		out = appendAtDegree(out, prefix, n, k)
	}

	return out, nil
}

// CountAtDegree returns C(n+d−1, n−1), or 0 for invalid arguments.
func CountAtDegree(n, d int) int {
	if n <= 0 || d < 0 {
		return 0
	}

	return binomial(n+d-1, n-1)
}

// CountUpTo returns C(n+d, n), or 0 for invalid arguments.
func CountUpTo(n, d int) int {
	if n <= 0 || d < 0 {
		return 0
	}

	return binomial(n+d, n)
}

// binomial computes C(n, k) with the multiplicative formula; every partial
// product is itself a binomial coefficient, so the division is exact.
func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	r := 1
	for i := 1; i <= k; i++ {
		r = r * (n - k + i) / i
	}

	return r
}
