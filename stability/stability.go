// SPDX-License-Identifier: MIT

package stability

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/elastic/matrix"
)

// Op tags used in wrapped errors.
const (
	opCheck    = "stability.Check"
	opEvaluate = "stability.Evaluate"
	opIsStable = "stability.IsStable"
)

func stabilityErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Check runs a single method on c.
//
// Implementation:
//   - Stage 1: validate non-nil, square, finite; reject asymmetry beyond the
//     symmetry tolerance unless WithSymmetrize is set.
//   - Stage 2: symmetrize exactly (the kernels require exact symmetry) and
//     compute the scale s = max|C_ij|.
//   - Stage 3: run the method on the configured backend and locate the first
//     value at or below its threshold.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch, matrix.ErrNaNInf,
//     matrix.ErrAsymmetry, matrix.ErrMatrixEigenFailed, ErrUnknownMethod.
func Check(c matrix.Matrix, method Method, opts ...Option) (Verdict, error) {
	o := gatherOptions(opts...)
	a, scale, err := prepare(c, o)
	if err != nil {
		return Verdict{}, stabilityErrorf(opCheck, err)
	}
	v, err := run(a, scale, method, o)
	if err != nil {
		return Verdict{}, stabilityErrorf(opCheck, err)
	}

	return v, nil
}

// IsStable reports whether c is positive definite, using the Cholesky test.
func IsStable(c matrix.Matrix, opts ...Option) (bool, error) {
	o := gatherOptions(opts...)
	a, scale, err := prepare(c, o)
	if err != nil {
		return false, stabilityErrorf(opIsStable, err)
	}
	v, err := run(a, scale, Cholesky, o)
	if err != nil {
		return false, stabilityErrorf(opIsStable, err)
	}

	return v.Stable, nil
}

// Evaluate runs every method on c and collects the verdicts. In exact
// arithmetic they always agree; Report.Consistent exposes disagreements caused
// by rounding on nearly singular inputs.
func Evaluate(c matrix.Matrix, opts ...Option) (Report, error) {
	o := gatherOptions(opts...)
	a, scale, err := prepare(c, o)
	if err != nil {
		return Report{}, stabilityErrorf(opEvaluate, err)
	}

	methods := Methods()
	rep := Report{Verdicts: make([]Verdict, 0, len(methods))}
	for _, m := range methods {
		v, err := run(a, scale, m, o)
		if err != nil {
			return Report{}, stabilityErrorf(opEvaluate, err)
		}
		rep.Verdicts = append(rep.Verdicts, v)
	}
	if !rep.Consistent() {
		o.logger.Warn("stability: methods disagree",
			slog.String("backend", o.backend.Name()),
			slog.Any("verdicts", summarize(rep)))
	}

	return rep, nil
}

// prepare validates c and returns an exactly symmetric dense copy with its scale.
func prepare(c matrix.Matrix, o Options) (*matrix.Dense, float64, error) {
	if err := matrix.ValidateSquareNonNil(c); err != nil {
		return nil, 0, err
	}
	if err := matrix.ValidateFinite(c); err != nil {
		return nil, 0, err
	}
	if !o.symmetrize {
		if err := matrix.ValidateSymmetric(c, o.symTol); err != nil {
			return nil, 0, err
		}
	}
	a, err := matrix.Symmetrize(c)
	if err != nil {
		return nil, 0, err
	}
	scale, err := matrix.MaxAbs(a)
	if err != nil {
		return nil, 0, err
	}

	return a, scale, nil
}

func run(a *matrix.Dense, scale float64, method Method, o Options) (Verdict, error) {
	var (
		v   Verdict
		err error
	)
	switch method {
	case Cholesky:
		v, err = checkCholesky(a, scale, o)
	case Eigenvalues:
		v, err = checkEigenvalues(a, scale, o)
	case LeadingMinors:
		v, err = checkMinors(a, scale, o, LeadingMinors, matrix.Leading)
	case TrailingMinors:
		v, err = checkMinors(a, scale, o, TrailingMinors, matrix.Trailing)
	default:
		return Verdict{}, fmt.Errorf("%v: %w", method, ErrUnknownMethod)
	}
	if err != nil {
		return Verdict{}, fmt.Errorf("%v (%s): %w", method, o.backend.Name(), err)
	}
	logVerdict(o, v)

	return v, nil
}

// checkCholesky fails at the first pivot d_k ≤ tol·s.
func checkCholesky(a *matrix.Dense, scale float64, o Options) (Verdict, error) {
	pivots, err := o.backend.Cholesky(a)
	if err != nil {
		return Verdict{}, err
	}
	v := Verdict{Method: Cholesky, Stable: true, Values: pivots}
	limit := o.tol * scale
	for k, d := range pivots {
		if !(d > limit) {
			v.Stable, v.Failed = false, k+1
			v.Values = pivots[:k+1]

			return v, nil
		}
	}
	// a truncated pivot list without a failing entry cannot certify the matrix
	if len(pivots) < a.Rows() {
		v.Stable, v.Failed = false, len(pivots)+1
	}

	return v, nil
}

// checkEigenvalues fails when λ_min ≤ tol·s; Failed is then 1 (ascending order).
func checkEigenvalues(a *matrix.Dense, scale float64, o Options) (Verdict, error) {
	vals, err := o.backend.Eigenvalues(a)
	if err != nil {
		return Verdict{}, err
	}
	v := Verdict{Method: Eigenvalues, Stable: true, Values: vals}
	limit := o.tol * scale
	for k, lambda := range vals {
		if !(lambda > limit) {
			v.Stable, v.Failed = false, k+1

			break
		}
	}

	return v, nil
}

// checkMinors computes all n principal minors D_1..D_n taken by sub and fails
// at the first D_k ≤ tol·s·|D_{k−1}| (D_0 = 1), which is the test applied to
// the k-th Cholesky pivot D_k/D_{k−1}.
func checkMinors(
	a *matrix.Dense,
	scale float64,
	o Options,
	method Method,
	sub func(matrix.Matrix, int) (*matrix.Dense, error),
) (Verdict, error) {
	n := a.Rows()
	v := Verdict{Method: method, Stable: true, Values: make([]float64, 0, n)}
	prev := 1.0
	for k := 1; k <= n; k++ {
		block, err := sub(a, k)
		if err != nil {
			return Verdict{}, err
		}
		det, err := o.backend.Det(block)
		if err != nil {
			return Verdict{}, err
		}
		v.Values = append(v.Values, det)
		if v.Stable && !(det > o.tol*scale*math.Abs(prev)) {
			v.Stable, v.Failed = false, k
		}
		prev = det
	}

	return v, nil
}

func logVerdict(o Options, v Verdict) {
	if v.Stable {
		o.logger.Debug("stability: criterion satisfied",
			slog.String("method", v.Method.String()),
			slog.String("backend", o.backend.Name()))

		return
	}
	value := math.NaN()
	if v.Failed >= 1 && v.Failed <= len(v.Values) {
		value = v.Values[v.Failed-1]
	}
	o.logger.Warn("stability: criterion not satisfied",
		slog.String("method", v.Method.String()),
		slog.String("backend", o.backend.Name()),
		slog.Int("index", v.Failed),
		slog.Float64("value", value),
		slog.String("criterion", criterionText(v.Method, v.Failed)))
}

// criterionText names the failing criterion, e.g. "D_3 > 0" or "λ_1 > 0".
func criterionText(m Method, k int) string {
	switch m {
	case Cholesky:
		return fmt.Sprintf("pivot d_%d > 0", k)
	case Eigenvalues:
		return fmt.Sprintf("λ_%d > 0", k)
	case LeadingMinors:
		return fmt.Sprintf("leading minor D_%d > 0", k)
	case TrailingMinors:
		return fmt.Sprintf("trailing minor D_%d > 0", k)
	default:
		return m.String()
	}
}

func summarize(r Report) map[string]bool {
	out := make(map[string]bool, len(r.Verdicts))
	for _, v := range r.Verdicts {
		out[v.Method.String()] = v.Stable
	}

	return out
}
