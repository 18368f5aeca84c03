// SPDX-License-Identifier: MIT

package stiffness

import "errors"

var (
	// ErrShape is returned when the input is not exactly 6×6.
	ErrShape = errors.New("stiffness: elastic constant matrix must be 6x6")

	// ErrNilInput is returned when FromMatrix receives a nil matrix.
	ErrNilInput = errors.New("stiffness: nil input matrix")

	// ErrEmpty is returned by accessors of a Matrix that was not built by a
	// constructor (the zero value).
	ErrEmpty = errors.New("stiffness: empty matrix")
)
