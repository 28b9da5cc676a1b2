// SPDX-License-Identifier: MIT
// Package matrix: public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for common tasks across the package.
//   - Each facade delegates to the canonical kernel.

package matrix

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// NewScaledIdentity returns alpha·I_n; the usual interior-point starting block.
func NewScaledIdentity(n int, alpha float64) (*Dense, error) {
	I, err := NewIdentity(n)
	if err != nil {
		return nil, err
	}
	if alpha == 1 {
		return I, nil
	}

	return Scale(I, alpha)
}

// ZerosLike returns a new zero matrix with the same shape as m.
func ZerosLike(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}

	return NewDense(m.Rows(), m.Cols())
}

// Symmetrize returns (m + mᵀ)/2. Deterministic composition: Transpose → Add → Scale.
// Interior-point steps call it after every product to remove rounding drift.
func Symmetrize(m Matrix) (*Dense, error) {
	mt, err := Transpose(m)
	if err != nil {
		return nil, matrixErrorf("Symmetrize", err)
	}
	sum, err := Add(m, mt)
	if err != nil {
		return nil, matrixErrorf("Symmetrize", err)
	}

	return Scale(sum, 0.5)
}

// AddScaled returns a + alpha·b without an intermediate allocation for b.
func AddScaled(a Matrix, alpha float64, b Matrix) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf("AddScaled", err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf("AddScaled", err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf("AddScaled", err)
	}
	out, err := NewDense(da.r, da.c)
	if err != nil {
		return nil, matrixErrorf("AddScaled", err)
	}
	for k := range out.data {
		out.data[k] = da.data[k] + alpha*db.data[k]
	}

	return out, nil
}

// MinEigenvalue returns the smallest eigenvalue of a symmetric matrix.
// Thin composition over Eigen with default options.
func MinEigenvalue(m Matrix, opts ...Option) (float64, error) {
	vals, _, err := Eigen(m, opts...)
	if err != nil {
		return 0, err
	}

	lo := vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
	}

	return lo, nil
}
