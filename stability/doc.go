// SPDX-License-Identifier: MIT

// Package stability decides whether an elastic constant matrix satisfies the
// Born elastic stability criterion, i.e. whether it is positive definite.
//
// 🚀 What is checked?
//
//	A crystal is elastically stable when its elastic energy is positive for
//	every strain, which holds iff its 6×6 Voigt stiffness matrix C is positive
//	definite. Four equivalent tests are provided:
//	  • Cholesky      : C = L·Lᵀ exists with strictly positive pivots
//	  • Eigenvalues   : every eigenvalue of C is strictly positive
//	  • LeadingMinors : Sylvester: det of each upper-left k×k block is positive
//	  • TrailingMinors: det of each lower-right k×k block is positive
//
// ✨ Key features:
//   - Verdicts carry the 1-based index of the first failing criterion and the
//     values that were examined (pivots, eigenvalues or minors).
//   - Evaluate runs all four methods; Report.Consistent exposes their agreement.
//   - Two numeric backends: Native (package matrix kernels) and Gonum
//     (gonum.org/v1/gonum/mat), selected with WithBackend.
//   - Marginal stability (a zero eigenvalue) is reported as unstable.
//
// ⚙️ Usage:
//
//	v, err := stability.Check(c.Dense(), stability.LeadingMinors)
//	if err != nil {
//	  // matrix.ErrAsymmetry, matrix.ErrDimensionMismatch, ...
//	}
//	if !v.Stable {
//	  fmt.Println("first failing minor:", v.Failed)
//	}
//
// Tolerance:
//
//	"Strictly positive" is measured relative to s = max|C_ij|: a pivot or
//	eigenvalue must exceed tol·s, and the k-th minor must exceed
//	tol·s·|D_{k−1}| (the same test as its Cholesky pivot). The default tol is
//	DefaultTolerance (32 ulps), so all four methods agree unless the smallest
//	eigenvalue lies within rounding distance of zero. WithTolerance(0) gives
//	the bare "> 0" comparison.
package stability
