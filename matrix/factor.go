// SPDX-License-Identifier: MIT
// Package matrix - factorizations and linear solves.
//
// Purpose:
//   - Cholesky for symmetric positive definite blocks (PSD membership tests,
//     SPD inverses, congruence transforms in step-length computation).
//   - LU with partial pivoting for general square systems. The KKT systems of
//     the interior-point backend carry a zero block, so a non-pivoting scheme
//     would hit exact zero pivots.
//
// Determinism:
//   - Fixed loop orders; pivot ties resolve to the smallest row index.

package matrix

import (
	"fmt"
	"math"
)

// Cholesky returns the lower-triangular L with A = L·Lᵀ.
//
// Implementation:
//   - Stage 1: ValidateSquareNonNil.
//   - Stage 2: column-oriented Cholesky–Banachiewicz; a pivot ≤ 0 (or NaN)
//     means A is not positive definite.
//
// Only the lower triangle of A is read.
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNotPositiveDefinite.
// Complexity: O(n³/3).
func Cholesky(a Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(a); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	A, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	n := A.r
	L, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}

	var (
		i, j, k int
		sum     float64
	)
	for j = 0; j < n; j++ {
		sum = A.data[j*n+j]
		for k = 0; k < j; k++ {
			sum -= L.data[j*n+k] * L.data[j*n+k]
		}
		if !(sum > 0) { // also catches NaN
			return nil, matrixErrorf(opCholesky, fmt.Errorf("pivot %d = %g: %w", j, sum, ErrNotPositiveDefinite))
		}
		L.data[j*n+j] = math.Sqrt(sum)
		for i = j + 1; i < n; i++ {
			sum = A.data[i*n+j]
			for k = 0; k < j; k++ {
				sum -= L.data[i*n+k] * L.data[j*n+k]
			}
			L.data[i*n+j] = sum / L.data[j*n+j]
		}
	}

	return L, nil
}

// IsPositiveDefinite reports whether Cholesky succeeds on a.
func IsPositiveDefinite(a Matrix) bool {
	_, err := Cholesky(a)

	return err == nil
}

// SolveLower returns X with L·X = B by forward substitution, L lower triangular.
// Errors: ErrDimensionMismatch, ErrSingular on a zero diagonal.
// Complexity: O(n²·c).
func SolveLower(l, b Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(l); err != nil {
		return nil, matrixErrorf(opForward, err)
	}
	if err := ValidateMulCompatible(l, b); err != nil {
		return nil, matrixErrorf(opForward, err)
	}
	L, err := asDense(l)
	if err != nil {
		return nil, matrixErrorf(opForward, err)
	}
	B, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opForward, err)
	}
	n, cols := L.r, B.c
	X, err := NewDense(n, cols)
	if err != nil {
		return nil, matrixErrorf(opForward, err)
	}

	var (
		i, k, col int
		sum, piv  float64
	)
	for col = 0; col < cols; col++ {
		for i = 0; i < n; i++ {
			sum = B.data[i*cols+col]
			for k = 0; k < i; k++ {
				sum -= L.data[i*n+k] * X.data[k*cols+col]
			}
			piv = L.data[i*n+i]
			if piv == 0 {
				return nil, matrixErrorf(opForward, ErrSingular)
			}
			X.data[i*cols+col] = sum / piv
		}
	}

	return X, nil
}

// InverseSPD returns A⁻¹ for a symmetric positive definite A via Cholesky:
// A⁻¹ = L⁻ᵀ·L⁻¹. The result is exactly symmetric.
// Errors: those of Cholesky/SolveLower.
func InverseSPD(a Matrix) (*Dense, error) {
	L, err := Cholesky(a)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	I, err := NewIdentity(L.r)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	Linv, err := SolveLower(L, I)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	LinvT, err := Transpose(Linv)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	inv, err := Mul(LinvT, Linv)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	return Symmetrize(inv)
}

// CongruenceInverse returns L⁻¹·S·L⁻ᵀ for symmetric S and lower-triangular L.
// With L = chol(X) its eigenvalues decide how far one can move from X along S
// before leaving the PSD cone.
func CongruenceInverse(l, s Matrix) (*Dense, error) {
	Y, err := SolveLower(l, s) // Y = L⁻¹ S
	if err != nil {
		return nil, err
	}
	Yt, err := Transpose(Y) // Yᵀ = S L⁻ᵀ
	if err != nil {
		return nil, err
	}
	G, err := SolveLower(l, Yt) // L⁻¹ S L⁻ᵀ
	if err != nil {
		return nil, err
	}

	return Symmetrize(G)
}

// Solve returns x with A·x = b using LU with partial pivoting.
//
// Implementation:
//   - Stage 1: validate square A and len(b) == n.
//   - Stage 2: Gaussian elimination on a working copy; at step k pick the row
//     with the largest |A[i,k]|, i ≥ k.
//   - Stage 3: back substitution.
//
// A pivot with |p| ≤ n·ε·max|A| is treated as singular (ErrSingular).
// Complexity: O(n³).
func Solve(a Matrix, b []float64) ([]float64, error) {
	if err := ValidateSquareNonNil(a); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	if err := ValidateVecLen(b, a.Rows()); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	src, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	n := src.r
	A := make([]float64, len(src.data))
	copy(A, src.data)
	x := make([]float64, n)
	copy(x, b)

	var scale float64
	for _, v := range A {
		if av := math.Abs(v); av > scale {
			scale = av
		}
	}
	if scale == 0 {
		return nil, matrixErrorf(opSolve, ErrSingular)
	}
	tiny := float64(n) * 2.220446049250313e-16 * scale

	var (
		i, j, k, piv int
		best, f      float64
	)
	for k = 0; k < n; k++ {
		// Partial pivoting: largest magnitude in column k at or below the diagonal.
		piv, best = k, math.Abs(A[k*n+k])
		for i = k + 1; i < n; i++ {
			if v := math.Abs(A[i*n+k]); v > best {
				piv, best = i, v
			}
		}
		if best <= tiny {
			return nil, matrixErrorf(opSolve, fmt.Errorf("column %d: %w", k, ErrSingular))
		}
		if piv != k {
			for j = 0; j < n; j++ {
				A[k*n+j], A[piv*n+j] = A[piv*n+j], A[k*n+j]
			}
			x[k], x[piv] = x[piv], x[k]
		}
		for i = k + 1; i < n; i++ {
			f = A[i*n+k] / A[k*n+k]
			if f == 0 {
				continue
			}
			A[i*n+k] = 0
			for j = k + 1; j < n; j++ {
				A[i*n+j] -= f * A[k*n+j]
			}
			x[i] -= f * x[k]
		}
	}
	for i = n - 1; i >= 0; i-- {
		f = x[i]
		for j = i + 1; j < n; j++ {
			f -= A[i*n+j] * x[j]
		}
		x[i] = f / A[i*n+i]
	}

	return x, nil
}
