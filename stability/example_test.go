// SPDX-License-Identifier: MIT

package stability_test

import (
	"fmt"

	"github.com/katalvlaran/elastic/matrix"
	"github.com/katalvlaran/elastic/stability"
)

// ExampleCheck locates the first leading minor that is not positive.
func ExampleCheck() {
	c, _ := matrix.NewFromRows([][]float64{
		{2, 0, 0, 0, 0, 0},
		{0, 3, 0, 0, 0, 0},
		{0, 0, -1, 0, 0, 0},
		{0, 0, 0, 4, 0, 0},
		{0, 0, 0, 0, 5, 0},
		{0, 0, 0, 0, 0, 6},
	})
	v, err := stability.Check(c, stability.LeadingMinors)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(v.Stable, v.Failed, v.Values[:v.Failed])
	// Output:
	// false 3 [2 6 -6]
}

// ExampleEvaluate runs all four criteria on a hexagonal crystal.
func ExampleEvaluate() {
	c, _ := matrix.NewFromRows([][]float64{
		{297.85, 126.9, 104.5, 0, 0, 0},
		{126.9, 297.85, 104.5, 0, 0, 0},
		{104.5, 104.5, 286.9, 0, 0, 0},
		{0, 0, 0, 59.225, 0, 0},
		{0, 0, 0, 0, 59.225, 0},
		{0, 0, 0, 0, 0, 85.475},
	})
	rep, err := stability.Evaluate(c)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, v := range rep.Verdicts {
		fmt.Printf("%-15s stable=%v\n", v.Method, v.Stable)
	}
	fmt.Println("consistent:", rep.Consistent())
	// Output:
	// cholesky        stable=true
	// eigenvalues     stable=true
	// leading-minors  stable=true
	// trailing-minors stable=true
	// consistent: true
}
