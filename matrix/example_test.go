// SPDX-License-Identifier: MIT

package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/elastic/matrix"
)

// ExampleCholesky factors a small symmetric positive definite matrix and
// prints the pivots (ratios of consecutive leading minors).
func ExampleCholesky() {
	a, _ := matrix.NewFromRows([][]float64{
		{4, 2, 0},
		{2, 5, 1},
		{0, 1, 2},
	})
	_, pivots, err := matrix.Cholesky(a)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Println(pivots)
	// Output:
	// [4 4 1.75]
}

// ExampleDet shows the pivoted determinant on an input with a zero leading entry.
func ExampleDet() {
	a, _ := matrix.NewFromRows([][]float64{{0, 2}, {3, 0}})
	d, _ := matrix.Det(a)
	fmt.Println(d)
	// Output:
	// -6
}
