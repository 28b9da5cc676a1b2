// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear algebra used by the SDP backend
// and by Gram-matrix post-processing.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with error-returning accessors.
//   - Element-wise and product kernels (Add, Sub, Mul, Transpose, Scale,
//     MatVec) plus Frobenius inner product and trace.
//   - Symmetric eigen-decomposition by cyclic Jacobi rotations (Eigen),
//     with eigenvalues returned in ascending order.
//   - Cholesky factorization, triangular substitution and SPD inverse, used
//     to keep interior-point iterates inside the PSD cone.
//   - LU with partial pivoting (Solve) for indefinite KKT systems.
//
// All kernels validate shapes up front and return sentinel errors from
// errors.go; nothing panics on user input. Loop orders are fixed so results
// are reproducible bit for bit on the same platform.
//
// Matrices here are small (Gram blocks of a few dozen rows), so the kernels
// favour clarity over blocking or SIMD tricks.
package matrix
