// SPDX-License-Identifier: MIT

package crystal

import (
	"io"
	"log/slog"
	"math"

	"github.com/katalvlaran/elastic/stability"
)

// DefaultTolerance is the relative tolerance used for the equalities of the
// symmetry relations and for class selection (C16 = 0, C15 = 0). Two
// constants are treated as equal when they differ by at most tol·max|C_ij|.
const DefaultTolerance = 1e-6

const panicToleranceInvalid = "crystal: WithTolerance: tol must be finite, non-negative"

// Option configures Conditions, Check, ValidateSymmetry and Detect.
type Option func(*options)

type options struct {
	tol       float64
	logger    *slog.Logger
	stability []stability.Option
}

// WithTolerance sets the relative equality tolerance.
// Panics on NaN, ±Inf or negative tol.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *options) { o.tol = tol }
}

// WithLogger routes failed criteria and violated relations to l at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithStabilityOptions forwards opts to stability.IsStable for the triclinic
// criterion.
func WithStabilityOptions(opts ...stability.Option) Option {
	return func(o *options) { o.stability = append(o.stability, opts...) }
}

func gatherOptions(user ...Option) options {
	o := options{
		tol:    DefaultTolerance,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
