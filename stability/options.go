// SPDX-License-Identifier: MIT

package stability

import (
	"io"
	"log/slog"
	"math"

	"github.com/katalvlaran/elastic/matrix"
)

const (
	// DefaultTolerance is the relative positivity threshold (see package doc):
	// 32 ulps of the matrix scale, the rounding level of a 6×6 factorization.
	// The smallest pivot never falls below λ_min, so the methods can only
	// disagree when λ_min lies within this distance of zero.
	DefaultTolerance = 32 * 0x1p-52

	// DefaultSymmetryTolerance bounds |C[i][j] − C[j][i]| before a matrix is
	// rejected as asymmetric.
	DefaultSymmetryTolerance = matrix.DefaultEpsilon
)

const (
	panicToleranceInvalid = "stability: WithTolerance: tol must be finite, non-negative"
	panicSymTolInvalid    = "stability: WithSymmetryTolerance: tol must be finite, non-negative"
	panicNilBackend       = "stability: WithBackend: backend must not be nil"
)

// Option configures Check, IsStable and Evaluate.
type Option func(*Options)

// Options is the resolved configuration.
type Options struct {
	tol        float64
	symTol     float64
	symmetrize bool
	backend    Backend
	logger     *slog.Logger
}

// WithTolerance sets the relative positivity threshold. Zero means a bare
// "> 0" comparison. Panics on NaN, ±Inf or negative tol.
func WithTolerance(tol float64) Option {
	if !validTol(tol) {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tol = tol }
}

// WithSymmetryTolerance sets the absolute symmetry bound used before checking.
// Panics on NaN, ±Inf or negative tol.
func WithSymmetryTolerance(tol float64) Option {
	if !validTol(tol) {
		panic(panicSymTolInvalid)
	}

	return func(o *Options) { o.symTol = tol }
}

// WithSymmetrize checks (C + Cᵀ)/2 instead of rejecting asymmetric input.
func WithSymmetrize() Option {
	return func(o *Options) { o.symmetrize = true }
}

// WithBackend selects the numeric backend (Native by default).
func WithBackend(b Backend) Option {
	if b == nil {
		panic(panicNilBackend)
	}

	return func(o *Options) { o.backend = b }
}

// WithLogger routes diagnostics (failed criteria at warn, per-method results
// at debug) to l. A nil logger restores the silent default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = discardLogger()
		}
		o.logger = l
	}
}

func gatherOptions(user ...Option) Options {
	o := Options{
		tol:     DefaultTolerance,
		symTol:  DefaultSymmetryTolerance,
		backend: Native(),
		logger:  discardLogger(),
	}
	for _, set := range user {
		set(&o)
	}

	return o
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validTol(tol float64) bool {
	return !math.IsNaN(tol) && !math.IsInf(tol, 0) && tol >= 0
}
