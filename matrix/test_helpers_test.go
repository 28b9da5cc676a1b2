// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures for the linear-algebra kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/momsos/matrix"
)

// tol is the absolute tolerance used by approximate comparisons.
const tol = 1e-9

// hide wraps any Matrix to hide its concrete type, forcing the At-based
// materialization path in kernels that special-case *Dense.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	if err != nil {
		t.Fatalf("NewDense(%d,%d): %v", r, c, err)
	}

	return m
}

// MustFrom builds a *Dense from literal rows or fails the test.
func MustFrom(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	if err != nil {
		t.Fatalf("NewDenseFrom: %v", err)
	}

	return m
}

// MustAt reads m[i,j] or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	if err != nil {
		t.Fatalf("At(%d,%d): %v", i, j, err)
	}

	return v
}

// MustSet writes m[i,j] = v or fails the test.
func MustSet(t *testing.T, m matrix.Matrix, i, j int, v float64) {
	t.Helper()
	if err := m.Set(i, j, v); err != nil {
		t.Fatalf("Set(%d,%d): %v", i, j, err)
	}
}

// AllClose reports whether a and b share a shape and agree entrywise within tol.
func AllClose(t *testing.T, a, b matrix.Matrix, tol float64) bool {
	t.Helper()
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return false
	}
	var i, j int
	for i = 0; i < a.Rows(); i++ {
		for j = 0; j < a.Cols(); j++ {
			if math.Abs(MustAt(t, a, i, j)-MustAt(t, b, i, j)) > tol {
				return false
			}
		}
	}

	return true
}

// spdFixture is a fixed 3×3 symmetric positive definite matrix
// (eigenvalues 2-√2, 2, 2+√2).
func spdFixture(t *testing.T) *matrix.Dense {
	t.Helper()

	return MustFrom(t, [][]float64{
		{2, -1, 0},
		{-1, 2, -1},
		{0, -1, 2},
	})
}
