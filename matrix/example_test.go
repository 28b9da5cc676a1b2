// SPDX-License-Identifier: MIT
package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/momsos/matrix"
)

// ExampleEigen decomposes a small symmetric matrix.
func ExampleEigen() {
	A, _ := matrix.NewDenseFrom([][]float64{
		{2, 1},
		{1, 2},
	})
	vals, _, _ := matrix.Eigen(A)
	fmt.Printf("%.3f %.3f\n", vals[0], vals[1])
	// Output:
	// 1.000 3.000
}

// ExampleCholesky factors an SPD matrix.
func ExampleCholesky() {
	A, _ := matrix.NewDenseFrom([][]float64{
		{4, 2},
		{2, 5},
	})
	L, _ := matrix.Cholesky(A)
	fmt.Print(L)
	// Output:
	// [2, 0]
	// [1, 2]
}
