// SPDX-License-Identifier: MIT

// Package elastic checks the Born elastic stability of crystals from their
// 6×6 elastic constant matrix (Voigt notation).
//
// 🚀 What is inside?
//
//	A small, deterministic toolkit organised as:
//		• matrix/   : dense float64 matrices, validators, Cholesky, Jacobi eigen,
//		               determinant, pivoted inverse and principal submatrices
//		• stiffness/: the elastic constant matrix C: 6×6, finite, symmetric;
//		               Voigt accessors, compliance S = C⁻¹, YAML encoding
//		• stability/: positive definiteness by Cholesky, eigenvalues, leading
//		               and trailing principal minors; native or gonum backend
//		• crystal/  : closed-form Born conditions of the seven crystal systems,
//		               symmetry relations and crystal-system detection
//
// ✨ Guarantees:
//
//   - Every criterion reports the 1-based index of the first failure.
//   - The four criteria agree on any symmetric input whose smallest eigenvalue
//     is not within rounding distance (about 32 ulps of max|C_ij|) of zero;
//     stability.Report.Consistent makes that observable.
//   - A zero eigenvalue (marginal stability) counts as unstable.
//
// Quick start:
//
//	c, err := stiffness.New(rows)          // 6×6 [][]float64, GPa
//	ok, err := stability.IsStable(c.Dense())
//	res, err := crystal.Check(c, crystal.Detect(c))
//
//	go get github.com/katalvlaran/elastic
package elastic
