// SPDX-License-Identifier: MIT

package stability

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/elastic/matrix"
	"gonum.org/v1/gonum/mat"
)

// Backend supplies the three numeric kernels the criteria are built on.
// Inputs are always exactly symmetric, square and finite.
type Backend interface {
	// Name identifies the backend in log records.
	Name() string

	// Cholesky returns the pivots d_1..d_k of A = L·Lᵀ. When the factorization
	// breaks down, the slice ends at the first pivot that is not positive.
	Cholesky(a *matrix.Dense) ([]float64, error)

	// Eigenvalues returns all eigenvalues of A in ascending order.
	Eigenvalues(a *matrix.Dense) ([]float64, error)

	// Det returns det(A).
	Det(a *matrix.Dense) (float64, error)
}

// Native returns the backend built on the package matrix kernels
// (Cholesky–Banachiewicz, cyclic Jacobi, partially pivoted elimination).
func Native() Backend { return nativeBackend{} }

// Gonum returns the backend built on gonum.org/v1/gonum/mat
// (LAPACK-style Cholesky, symmetric eigendecomposition and LU determinant).
func Gonum() Backend { return gonumBackend{} }

// nativeEigenTolerance is the Jacobi off-diagonal stopping bound relative to
// max|A_ij|. It keeps the eigenvalue error (at most n times this bound) well
// under DefaultTolerance.
const nativeEigenTolerance = 1e-15

type nativeBackend struct{}

func (nativeBackend) Name() string { return "native" }

func (nativeBackend) Cholesky(a *matrix.Dense) ([]float64, error) {
	_, pivots, err := matrix.Cholesky(a)
	if err == nil {
		return pivots, nil
	}
	if ce, ok := matrix.AsCholeskyError(err); ok {
		return ce.Pivots, nil
	}

	return nil, err
}

func (nativeBackend) Eigenvalues(a *matrix.Dense) ([]float64, error) {
	s, err := matrix.MaxAbs(a)
	if err != nil {
		return nil, err
	}
	tol := nativeEigenTolerance * s
	if tol == 0 {
		tol = nativeEigenTolerance
	}
	vals, _, err := matrix.Eigen(a, tol, matrix.DefaultEigenMaxIter)
	if err != nil {
		return nil, err
	}
	sort.Float64s(vals)

	return vals, nil
}

func (nativeBackend) Det(a *matrix.Dense) (float64, error) {
	return matrix.Det(a)
}

type gonumBackend struct{}

func (gonumBackend) Name() string { return "gonum" }

// Cholesky reads the pivots off diag(L)². gonum does not report where a
// factorization broke down, so on failure the pivots are recovered as ratios
// of leading minors D_k / D_{k−1}, up to the first non-positive one.
func (g gonumBackend) Cholesky(a *matrix.Dense) ([]float64, error) {
	n := a.Rows()
	var ch mat.Cholesky
	if ch.Factorize(mat.NewSymDense(n, flatten(a))) {
		var l mat.TriDense
		ch.LTo(&l)
		pivots := make([]float64, n)
		for i := range pivots {
			d := l.At(i, i)
			pivots[i] = d * d
		}

		return pivots, nil
	}

	pivots := make([]float64, 0, n)
	prev := 1.0
	for k := 1; k <= n; k++ {
		sub, err := matrix.Leading(a, k)
		if err != nil {
			return nil, err
		}
		det, err := g.Det(sub)
		if err != nil {
			return nil, err
		}
		d := det / prev
		pivots = append(pivots, d)
		if !(d > 0) {
			break
		}
		prev = det
	}

	return pivots, nil
}

func (gonumBackend) Eigenvalues(a *matrix.Dense) ([]float64, error) {
	var es mat.EigenSym
	if !es.Factorize(mat.NewSymDense(a.Rows(), flatten(a)), false) {
		return nil, fmt.Errorf("gonum EigenSym: %w", matrix.ErrMatrixEigenFailed)
	}

	return es.Values(nil), nil
}

func (gonumBackend) Det(a *matrix.Dense) (float64, error) {
	return mat.Det(mat.NewDense(a.Rows(), a.Cols(), flatten(a))), nil
}

// flatten copies a into a fresh row-major slice for the gonum constructors.
func flatten(a *matrix.Dense) []float64 {
	r, c := a.Shape()
	out := make([]float64, 0, r*c)
	for _, row := range a.ToRows() {
		out = append(out, row...)
	}

	return out
}
