// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/momsos/matrix"
)

// TestDefaultOptions_Documented verifies that NewMatrixOptions() reports the documented defaults.
func TestDefaultOptions_Documented(t *testing.T) {
	got := matrix.NewMatrixOptions().String()
	want := matrix.NewMatrixOptions(
		matrix.WithEpsilon(matrix.DefaultEpsilon),
		matrix.WithMaxSweeps(matrix.DefaultMaxSweeps),
		matrix.WithSymmetryTol(matrix.DefaultSymmetryTol),
	).String()
	assert.Equal(t, want, got)
	assert.Contains(t, got, "sorted=true")
}

// TestOptions_LastWriterWins ensures later options override earlier ones and nil setters are skipped.
func TestOptions_LastWriterWins(t *testing.T) {
	o := matrix.NewMatrixOptions(matrix.WithMaxSweeps(3), nil, matrix.WithMaxSweeps(7), matrix.WithUnsortedEigen())
	assert.Contains(t, o.String(), "sweeps=7")
	assert.Contains(t, o.String(), "sorted=false")
}

// TestOptions_InvalidPanics pins the programmer-error contract of the setters.
func TestOptions_InvalidPanics(t *testing.T) {
	assert.Panics(t, func() { matrix.WithEpsilon(-1) })
	assert.Panics(t, func() { matrix.WithEpsilon(math.NaN()) })
	assert.Panics(t, func() { matrix.WithEpsilon(math.Inf(1)) })
	assert.Panics(t, func() { matrix.WithMaxSweeps(0) })
	assert.NotPanics(t, func() { matrix.WithEpsilon(0) })
}

// TestOptions_DriveEigen checks that the options reach the Jacobi kernel.
func TestOptions_DriveEigen(t *testing.T) {
	_, _, err := matrix.Eigen(spdFixture(t), matrix.WithMaxSweeps(1))
	require.ErrorIs(t, err, matrix.ErrMatrixEigenFailed, "one sweep cannot converge on a tridiagonal 3x3")

	skew := MustFrom(t, [][]float64{{2, 0.01}, {0, 2}})
	_, _, err = matrix.Eigen(skew)
	require.ErrorIs(t, err, matrix.ErrAsymmetry)
	vals, _, err := matrix.Eigen(skew, matrix.WithSymmetryTol(0.1))
	require.NoError(t, err)
	assert.InDelta(t, 2.0, (vals[0]+vals[1])/2, 1e-12)
}
