// SPDX-License-Identifier: MIT

// Package matrix provides the numeric kernels on any Matrix implementation:
// sum, scaling, transpose, symmetrization, Jacobi eigen decomposition,
// pivoted determinant, pivoted inverse and Cholesky factorization.
//
// Purpose:
//   - Keep every kernel deterministic (fixed loop orders, no pivot randomness).
//   - Validate through validators.go and wrap failures with an operation tag.
//
// Notes:
//   - Kernels work on the flat *Dense buffer. Inputs of other concrete types are
//     materialized once through denseOf, so there is a single code path per kernel.
package matrix

import (
	"errors"
	"fmt"
	"math"
)

// ZeroSum is the initial sum value for forward/backward substitution and similar.
const ZeroSum = 0.0

// ZeroPivot is the sentinel for detecting a zero pivot in Inverse and Det.
const ZeroPivot = 0.0

// Operation name constants for unified error wrapping.
const (
	opAdd        = "Add"
	opScale      = "Scale"
	opTranspose  = "Transpose"
	opSymmetrize = "Symmetrize"
	opEigen      = "Eigen"
	opInverse    = "Inverse"
	opDet        = "Det"
	opCholesky   = "Cholesky"
	opLeading    = "Leading"
	opTrailing   = "Trailing"
	opAllClose   = "AllClose"
	opMaxAbs     = "MaxAbs"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// denseOf returns m itself when it is a *Dense, otherwise a *Dense copy read
// through At. Callers that mutate the result must clone first.
// Complexity: O(1) for *Dense, O(r*c) otherwise.
func denseOf(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	out, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < out.r; i++ {
		for j = 0; j < out.c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			out.data[i*out.c+j] = v
		}
	}

	return out, nil
}

// Transpose returns mᵀ as a fresh Dense.
// Errors: ErrNilMatrix. Complexity: O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	md, err := denseOf(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	out, err := NewDense(md.c, md.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	for i := 0; i < md.r; i++ {
		for j := 0; j < md.c; j++ {
			out.data[j*out.c+i] = md.data[i*md.c+j]
		}
	}

	return out, nil
}

// Add returns the element-wise sum a + b.
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(r*c).
func Add(a, b Matrix) (*Dense, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	ad, err := denseOf(a)
	if err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	bd, err := denseOf(b)
	if err != nil {
		return nil, matrixErrorf(opAdd, err)
	}
	out := ad.clone()
	for idx := range out.data {
		out.data[idx] += bd.data[idx]
	}

	return out, nil
}

// Scale returns alpha·m.
// Errors: ErrNilMatrix. Complexity: O(r*c).
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	md, err := denseOf(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	out := md.clone()
	for idx := range out.data {
		out.data[idx] *= alpha
	}

	return out, nil
}

// Symmetrize returns (m + mᵀ)/2 for a square m. The result is exactly
// symmetric.
// Errors: ErrNilMatrix, ErrDimensionMismatch. Complexity: O(n²).
func Symmetrize(m Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}
	mt, err := Transpose(m)
	if err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}
	sum, err := Add(m, mt)
	if err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}
	out, err := Scale(sum, 0.5)
	if err != nil {
		return nil, matrixErrorf(opSymmetrize, err)
	}

	return out, nil
}

// MaxAbs returns max_{i,j} |m[i,j]|, the scale used by relative tolerances.
// Errors: ErrNilMatrix. Complexity: O(r*c).
func MaxAbs(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opMaxAbs, err)
	}
	md, err := denseOf(m)
	if err != nil {
		return 0, matrixErrorf(opMaxAbs, err)
	}
	var best float64
	for _, v := range md.data {
		if a := math.Abs(v); a > best {
			best = a
		}
	}

	return best, nil
}

// AllClose reports whether |a[i,j] - b[i,j]| ≤ eps for every cell, with eps
// resolved from opts (DefaultEpsilon unless WithEpsilon is given).
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func AllClose(a, b Matrix, opts ...Option) (bool, error) {
	o := gatherOptions(opts...)
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	ad, err := denseOf(a)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	bd, err := denseOf(b)
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	for i := range ad.data {
		if !(math.Abs(ad.data[i]-bd.data[i]) <= o.eps) {
			return false, nil
		}
	}

	return true, nil
}

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix via Jacobi rotations.
// Implementation:
//   - Stage 1: Validate symmetric square input within tol.
//   - Stage 2: Repeatedly pick (p,q) with the largest |A[p,q]| in i→j order and apply a
//     Jacobi rotation, accumulating it into Q.
//   - Stage 3: Verify convergence and read eigenvalues off the diagonal.
//
// Inputs:
//   - m: symmetric Matrix (within tol).
//   - tol: absolute off-diagonal convergence threshold (DefaultEigenTolerance scaled
//     by the magnitude of the entries is a good choice).
//   - maxIter: safety cap on rotations.
//
// Returns:
//   - []float64: eigenvalues in diagonal order (not sorted).
//   - *Dense: Q whose columns are the matching eigenvectors.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry, ErrNaNInf (bad tol),
//     ErrMatrixEigenFailed (max off-diagonal ≥ tol after maxIter rotations).
//
// Determinism:
//   - Fixed i→j pivot search and fixed update order produce stable results.
//
// Complexity:
//   - Time O(maxIter * n), plus O(n²) per pivot search; Space O(n²).
func Eigen(m Matrix, tol float64, maxIter int) ([]float64, *Dense, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	src, err := denseOf(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	a := src.clone() // working copy; the input is never mutated
	n := a.r
	q, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	var (
		iter, i, p, qi     int
		maxOff             float64
		app, aqq, apq      float64
		aip, aiq, qip, qiq float64
		theta, t, c, s     float64
	)
	for iter = 0; iter < maxIter; iter++ {
		// J.1: pivot (p,q) maximizing |A[p,q]|
		maxOff, p, qi = offDiagMax(a)

		// J.2: converged
		if maxOff < tol {
			break
		}

		// J.3: rotation parameters
		app = a.data[p*n+p]
		aqq = a.data[qi*n+qi]
		apq = a.data[p*n+qi]
		theta = (aqq - app) / (2 * apq)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c

		// J.4: rotate rows/cols p and q of A, keeping it symmetric
		for i = 0; i < n; i++ {
			if i == p || i == qi {
				continue
			}
			aip = a.data[i*n+p]
			aiq = a.data[i*n+qi]
			a.data[i*n+p], a.data[p*n+i] = c*aip-s*aiq, c*aip-s*aiq
			a.data[i*n+qi], a.data[qi*n+i] = s*aip+c*aiq, s*aip+c*aiq
		}
		a.data[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
		a.data[qi*n+qi] = s*s*app + 2*c*s*apq + c*c*aqq
		a.data[p*n+qi], a.data[qi*n+p] = 0, 0

		// J.5: accumulate the rotation into Q
		for i = 0; i < n; i++ {
			qip = q.data[i*n+p]
			qiq = q.data[i*n+qi]
			q.data[i*n+p] = c*qip - s*qiq
			q.data[i*n+qi] = s*qip + c*qiq
		}
	}

	if maxOff, _, _ = offDiagMax(a); maxOff >= tol {
		return nil, nil, matrixErrorf(opEigen, ErrMatrixEigenFailed)
	}

	eigs := make([]float64, n)
	for i = 0; i < n; i++ {
		eigs[i] = a.data[i*n+i]
	}

	return eigs, q, nil
}

// offDiagMax scans the strict upper triangle and returns the largest |A[i,j]|
// with its position. A 1×1 matrix reports (0, 0, 0).
func offDiagMax(a *Dense) (maxOff float64, p, q int) {
	n := a.r
	var off float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			off = math.Abs(a.data[i*n+j])
			if off > maxOff {
				maxOff, p, q = off, i, j
			}
		}
	}

	return maxOff, p, q
}

// Inverse computes A^{-1} by Gauss–Jordan elimination with partial pivoting.
// Implementation:
//   - Stage 1: Validate square input and build the augmented working pair [A | I].
//   - Stage 2: For each column pick the row with the largest |pivot| at or below the
//     diagonal (ties keep the lowest row), swap it up, normalize, and eliminate the
//     column from every other row.
//   - Stage 3: The right half now holds A^{-1}.
//
// A zero leading entry is not an error: any non-singular matrix, definite or
// not, is inverted.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrSingular (a column with no non-zero
//     pivot candidate).
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func Inverse(m Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	src, err := denseOf(m)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	a := src.clone()
	n := a.r
	inv, err := NewIdentity(n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	var (
		i, j, k, piv int
		best, f, p   float64
	)
	for k = 0; k < n; k++ {
		// G.1: partial pivot search in column k
		piv, best = k, math.Abs(a.data[k*n+k])
		for i = k + 1; i < n; i++ {
			if v := math.Abs(a.data[i*n+k]); v > best {
				piv, best = i, v
			}
		}
		if best == ZeroPivot {
			return nil, matrixErrorf(opInverse, fmt.Errorf("column %d: %w", k, ErrSingular))
		}
		if piv != k {
			swapRows(a, k, piv)
			swapRows(inv, k, piv)
		}

		// G.2: normalize the pivot row
		p = a.data[k*n+k]
		for j = 0; j < n; j++ {
			a.data[k*n+j] /= p
			inv.data[k*n+j] /= p
		}

		// G.3: eliminate column k from every other row
		for i = 0; i < n; i++ {
			if i == k {
				continue
			}
			f = a.data[i*n+k]
			if f == 0 {
				continue
			}
			for j = 0; j < n; j++ {
				a.data[i*n+j] -= f * a.data[k*n+j]
				inv.data[i*n+j] -= f * inv.data[k*n+j]
			}
		}
	}

	return inv, nil
}

// swapRows exchanges rows r1 and r2 of a square Dense in place.
func swapRows(a *Dense, r1, r2 int) {
	n := a.c
	for j := 0; j < n; j++ {
		a.data[r1*n+j], a.data[r2*n+j] = a.data[r2*n+j], a.data[r1*n+j]
	}
}

// Det computes det(A) by Gaussian elimination with partial pivoting.
// MAIN DESCRIPTION:
//   - Det accepts indefinite and singular inputs: a zero column below the
//     diagonal yields det = 0 rather than an error.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Determinism:
//   - Ties in the pivot search keep the first (lowest) row.
//
// Complexity:
//   - Time O(n^3), Space O(n^2) for the working copy.
func Det(m Matrix) (float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return 0, matrixErrorf(opDet, err)
	}
	src, err := denseOf(m)
	if err != nil {
		return 0, matrixErrorf(opDet, err)
	}
	a := src.clone()
	n := a.r

	var (
		i, j, k, piv int
		best, f, det float64
	)
	det = 1
	for k = 0; k < n; k++ {
		piv, best = k, math.Abs(a.data[k*n+k])
		for i = k + 1; i < n; i++ {
			if v := math.Abs(a.data[i*n+k]); v > best {
				piv, best = i, v
			}
		}
		if best == ZeroPivot {
			return 0, nil
		}
		if piv != k {
			swapRows(a, k, piv)
			det = -det
		}
		det *= a.data[k*n+k]
		for i = k + 1; i < n; i++ {
			f = a.data[i*n+k] / a.data[k*n+k]
			for j = k; j < n; j++ {
				a.data[i*n+j] -= f * a.data[k*n+j]
			}
		}
	}

	return det, nil
}

// CholeskyError reports the step at which a Cholesky factorization met a
// non-positive pivot. It unwraps to ErrNotPositiveDefinite.
type CholeskyError struct {
	Step   int       // 1-based index of the failing pivot
	Pivots []float64 // pivots computed so far, the failing one last
}

// Error implements error.
func (e *CholeskyError) Error() string {
	return fmt.Sprintf("%s: non-positive pivot %g at step %d",
		ErrNotPositiveDefinite.Error(), e.Pivots[len(e.Pivots)-1], e.Step)
}

// Unwrap exposes ErrNotPositiveDefinite to errors.Is.
func (e *CholeskyError) Unwrap() error { return ErrNotPositiveDefinite }

// Cholesky factors a symmetric matrix as A = L·Lᵀ (Cholesky–Banachiewicz order).
// Implementation:
//   - Stage 1: Validate symmetric square input (exact symmetry: callers symmetrize
//     noisy inputs first).
//   - Stage 2: For j=0..n-1: pivot d_j = A[j,j] − Σ_k L[j,k]²; fail unless d_j > 0;
//     L[j,j] = √d_j; L[i,j] = (A[i,j] − Σ_k L[i,k]L[j,k]) / L[j,j] for i > j.
//
// Returns:
//   - *Dense: lower-triangular L.
//   - []float64: the pivots d_j (d_j = D_j / D_{j-1}, the ratio of leading minors).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry,
//     *CholeskyError (errors.Is ErrNotPositiveDefinite) on the first d_j ≤ 0 or NaN.
//
// Complexity:
//   - Time O(n^3/3), Space O(n^2).
func Cholesky(m Matrix) (*Dense, []float64, error) {
	if err := ValidateSymmetric(m, 0); err != nil {
		return nil, nil, matrixErrorf(opCholesky, err)
	}
	a, err := denseOf(m)
	if err != nil {
		return nil, nil, matrixErrorf(opCholesky, err)
	}
	n := a.r
	l, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opCholesky, err)
	}
	pivots := make([]float64, 0, n)

	var (
		i, j, k int
		sum, d  float64
	)
	for j = 0; j < n; j++ {
		sum = ZeroSum
		for k = 0; k < j; k++ {
			sum += l.data[j*n+k] * l.data[j*n+k]
		}
		d = a.data[j*n+j] - sum
		pivots = append(pivots, d)
		if !(d > 0) {
			return nil, nil, matrixErrorf(opCholesky, &CholeskyError{Step: j + 1, Pivots: pivots})
		}
		l.data[j*n+j] = math.Sqrt(d)
		for i = j + 1; i < n; i++ {
			sum = ZeroSum
			for k = 0; k < j; k++ {
				sum += l.data[i*n+k] * l.data[j*n+k]
			}
			l.data[i*n+j] = (a.data[i*n+j] - sum) / l.data[j*n+j]
		}
	}

	return l, pivots, nil
}

// AsCholeskyError extracts a *CholeskyError from err, if any.
func AsCholeskyError(err error) (*CholeskyError, bool) {
	var ce *CholeskyError
	ok := errors.As(err, &ce)

	return ce, ok
}

// Leading returns the upper-left k×k principal submatrix of a square m.
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrOutOfRange (k outside 1..n).
func Leading(m Matrix, k int) (*Dense, error) {
	return principal(opLeading, m, k, func(n int) int { return 0 })
}

// Trailing returns the lower-right k×k principal submatrix of a square m.
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrOutOfRange (k outside 1..n).
func Trailing(m Matrix, k int) (*Dense, error) {
	return principal(opTrailing, m, k, func(n int) int { return n - k })
}

// principal extracts the k×k principal block starting at offset(n).
func principal(tag string, m Matrix, k int, offset func(n int) int) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(tag, err)
	}
	n := m.Rows()
	if k < 1 || k > n {
		return nil, matrixErrorf(tag, fmt.Errorf("k=%d of n=%d: %w", k, n, ErrOutOfRange))
	}
	md, err := denseOf(m)
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}
	idx := make([]int, k)
	start := offset(n)
	for i := range idx {
		idx[i] = start + i
	}
	out, err := md.Induced(idx, idx)
	if err != nil {
		return nil, matrixErrorf(tag, err)
	}

	return out, nil
}
