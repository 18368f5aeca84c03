// SPDX-License-Identifier: MIT

// Package stiffness models the second-order elastic constant matrix C of a
// crystal in Voigt notation.
//
// A Matrix is always 6×6, finite and symmetric (C[i][j] = C[j][i] within the
// configured tolerance). It is built once from measured or computed elastic
// constants and never mutated afterwards; every accessor hands out copies.
//
// Asymmetric input is rejected with matrix.ErrAsymmetry by default. Callers
// that trust their data but expect rounding noise can opt into
// WithSymmetrize, which stores (C + Cᵀ)/2 instead.
//
// Usage:
//
//	c, err := stiffness.New(rows)              // rows is [][]float64, 6×6
//	c11 := c.C(1, 1)                          // Voigt, 1-based
//	s, err := c.Compliance()                  // S = C⁻¹
//
// Values marshal to and from YAML as six rows of six numbers.
package stiffness
