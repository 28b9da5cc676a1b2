// SPDX-License-Identifier: MIT
package ring_test

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/momsos/ring"
)

// choose is an independent Pascal-triangle reference for the closed forms.
func choose(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	row := []int{1}
	for i := 1; i <= n; i++ {
		next := make([]int, i+1)
		next[0], next[i] = 1, 1
		for j := 1; j < i; j++ {
			next[j] = row[j-1] + row[j]
		}
		row = next
	}

	return row[k]
}

func TestCounts(t *testing.T) {
	for n := 1; n <= 4; n++ {
		for d := 0; d <= 6; d++ {
			t.Run(fmt.Sprintf("n=%d,d=%d", n, d), func(t *testing.T) {
				at, err := ring.MonomialsAtDegree(n, d)
				require.NoError(t, err)
				assert.Len(t, at, choose(n+d-1, n-1))
				assert.Equal(t, len(at), ring.CountAtDegree(n, d))

				up, err := ring.MonomialsUpTo(n, d)
				require.NoError(t, err)
				assert.Len(t, up, choose(n+d, n))
				assert.Equal(t, len(up), ring.CountUpTo(n, d))

				seen := make(map[string]bool, len(up))
				for _, m := range up {
					assert.False(t, seen[m.Key()], "duplicate %v", m)
					seen[m.Key()] = true
					assert.Equal(t, n, m.Arity())
				}
			})
		}
	}
}

func TestMonomialsAtDegree_Order(t *testing.T) {
	got, err := ring.MonomialsAtDegree(2, 3)
	require.NoError(t, err)
	assert.Equal(t, []ring.Monomial{{3, 0}, {2, 1}, {1, 2}, {0, 3}}, got)

	got, err = ring.MonomialsAtDegree(3, 2)
	require.NoError(t, err)
	assert.Equal(t, []ring.Monomial{
		{2, 0, 0}, {1, 1, 0}, {1, 0, 1}, {0, 2, 0}, {0, 1, 1}, {0, 0, 2},
	}, got)
}

func TestMonomialsUpTo_Prefix(t *testing.T) {
	got, err := ring.MonomialsUpTo(2, 3)
	require.NoError(t, err)
	require.Len(t, got, 10)
	assert.Equal(t, []ring.Monomial{{0, 0}, {1, 0}, {0, 1}, {2, 0}}, got[:4])
	assert.Equal(t, ring.Monomial{0, 3}, got[9])
}

func TestInvalidArguments(t *testing.T) {
	_, err := ring.MonomialsAtDegree(0, 2)
	assert.ErrorIs(t, err, ring.ErrInvalidArgument)
	_, err = ring.MonomialsUpTo(2, -1)
	assert.ErrorIs(t, err, ring.ErrInvalidArgument)
	_, err = ring.NewMonomial(1, -1)
	assert.ErrorIs(t, err, ring.ErrInvalidArgument)
	_, err = ring.One(0)
	assert.ErrorIs(t, err, ring.ErrInvalidArgument)
	assert.Equal(t, 0, ring.CountUpTo(-1, 2))
}

func TestCompare_AgreesWithEnumeration(t *testing.T) {
	basis, err := ring.MonomialsUpTo(3, 4)
	require.NoError(t, err)

	shuffled := make([]ring.Monomial, len(basis))
	for i := range basis {
		// deterministic permutation: reverse
		shuffled[i] = basis[len(basis)-1-i]
	}
	sort.Slice(shuffled, func(i, j int) bool { return ring.Compare(shuffled[i], shuffled[j]) < 0 })
	assert.Equal(t, basis, shuffled)

	for i := 1; i < len(basis); i++ {
		assert.Equal(t, -1, ring.Compare(basis[i-1], basis[i]))
		assert.Equal(t, 1, ring.Compare(basis[i], basis[i-1]))
	}
	assert.Equal(t, 0, ring.Compare(ring.Monomial{1, 2}, ring.Monomial{1, 2}))
}

func TestMonomialOps(t *testing.T) {
	a := ring.Monomial{2, 1}
	b := ring.Monomial{0, 3}
	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, ring.Monomial{2, 4}, sum)
	assert.Equal(t, ring.Monomial{2, 1}, a, "operands stay untouched")
	assert.Equal(t, 6, sum.Degree())

	_, err = a.Add(ring.Monomial{1})
	assert.ErrorIs(t, err, ring.ErrArityMismatch)

	assert.Equal(t, "2,1", a.Key())
	assert.Equal(t, "x1^2*x2", a.String())
	assert.Equal(t, "1", ring.Monomial{0, 0}.String())
	assert.True(t, ring.Monomial{0, 0}.IsConstant())
	assert.True(t, a.Equal(ring.Monomial{2, 1}))
	assert.False(t, a.Equal(b))
	assert.Equal(t, 12.0, a.Pow([]float64{2, 3}))

	c := a.Clone()
	c[0] = 9
	assert.Equal(t, 2, a[0])
}

func ExampleMonomialsUpTo() {
	basis, _ := ring.MonomialsUpTo(2, 2)
	names := make([]string, len(basis))
	for i, m := range basis {
		names[i] = m.String()
	}
	fmt.Println(strings.Join(names, " "))
	// Output:
	// 1 x1 x2 x1^2 x1*x2 x2^2
}
