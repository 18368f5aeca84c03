// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear-algebra primitives used by the
// elastic stability checks.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set and an
//     optional NaN/Inf rejection policy.
//   - Validators (ValidateNotNil, ValidateSquare, ValidateSymmetric, ...) that
//     return plain sentinels so kernels can wrap them uniformly.
//   - Element-wise Add and Scale, Transpose, Symmetrize and MaxAbs.
//   - Kernels for small symmetric systems: Cholesky, Jacobi Eigen,
//     pivoted Det, Inverse, and principal submatrices (Leading, Trailing).
//
// Matrices here are small (6×6 Voigt stiffness tensors are the main use), so
// every kernel favours deterministic loop orders over blocking or parallelism.
//
// See the examples in this package and in stability for usage patterns.
package matrix
