// SPDX-License-Identifier: MIT

package stiffness

import "math"

// DefaultSymmetryTolerance is the absolute bound on |C[i][j] − C[j][i]|.
const DefaultSymmetryTolerance = 1e-9

const panicToleranceInvalid = "stiffness: WithTolerance: tol must be finite, non-negative"

// Option configures construction.
type Option func(*options)

type options struct {
	tol        float64
	symmetrize bool
}

// WithTolerance sets the absolute symmetry tolerance.
// Panics on NaN, ±Inf or negative tol.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *options) { o.tol = tol }
}

// WithSymmetrize stores (C + Cᵀ)/2 instead of rejecting asymmetric input.
func WithSymmetrize() Option {
	return func(o *options) { o.symmetrize = true }
}

func gatherOptions(user ...Option) options {
	o := options{tol: DefaultSymmetryTolerance}
	for _, set := range user {
		set(&o)
	}

	return o
}
