// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/momsos/matrix"
)

func TestEigen_KnownSpectrum(t *testing.T) {
	vals, V, err := matrix.Eigen(spdFixture(t))
	require.NoError(t, err)
	require.Len(t, vals, 3)
	assert.InDelta(t, 2-math.Sqrt2, vals[0], tol)
	assert.InDelta(t, 2.0, vals[1], tol)
	assert.InDelta(t, 2+math.Sqrt2, vals[2], tol)

	// A·v_k = λ_k·v_k for every column.
	A := spdFixture(t)
	AV, err := matrix.Mul(A, V)
	require.NoError(t, err)
	var r, k int
	for k = 0; k < 3; k++ {
		for r = 0; r < 3; r++ {
			assert.InDelta(t, vals[k]*MustAt(t, V, r, k), MustAt(t, AV, r, k), 1e-8)
		}
	}
}

func TestEigen_Orthonormal(t *testing.T) {
	A := MustFrom(t, [][]float64{
		{4, 1, -2, 2},
		{1, 2, 0, 1},
		{-2, 0, 3, -2},
		{2, 1, -2, -1},
	})
	vals, V, err := matrix.Eigen(A)
	require.NoError(t, err)
	Vt, err := matrix.Transpose(V)
	require.NoError(t, err)
	VtV, err := matrix.Mul(Vt, V)
	require.NoError(t, err)
	I, err := matrix.NewIdentity(4)
	require.NoError(t, err)
	assert.True(t, AllClose(t, VtV, I, 1e-9), "VᵀV must be I")

	for k := 1; k < len(vals); k++ {
		assert.LessOrEqual(t, vals[k-1], vals[k], "ascending order")
	}
	tr, err := matrix.Trace(A)
	require.NoError(t, err)
	assert.InDelta(t, tr, vals[0]+vals[1]+vals[2]+vals[3], 1e-9)
}

func TestEigen_Errors(t *testing.T) {
	_, _, err := matrix.Eigen(MustFrom(t, [][]float64{{1, 2}, {3, 4}}))
	assert.ErrorIs(t, err, matrix.ErrAsymmetry)
	_, _, err = matrix.Eigen(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMinEigenvalue(t *testing.T) {
	lo, err := matrix.MinEigenvalue(MustFrom(t, [][]float64{{0, 1}, {1, 0}}))
	require.NoError(t, err)
	assert.InDelta(t, -1.0, lo, tol)

	lo, err = matrix.MinEigenvalue(MustFrom(t, [][]float64{{3, 0}, {0, 1}}), matrix.WithUnsortedEigen())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, lo, tol)
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { matrix.WithEpsilon(-1) })
	assert.Panics(t, func() { matrix.WithMaxSweeps(0) })
	o := matrix.NewMatrixOptions(matrix.WithEpsilon(1e-6), matrix.WithMaxSweeps(3))
	assert.Contains(t, o.String(), "sweeps=3")
}
