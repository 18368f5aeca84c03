// SPDX-License-Identifier: MIT

package crystal

import "errors"

var (
	// ErrUnknownSystem is returned for a System outside the seven defined ones.
	ErrUnknownSystem = errors.New("crystal: unknown crystal system")

	// ErrNilStiffness is returned for a nil or empty *stiffness.Matrix.
	ErrNilStiffness = errors.New("crystal: nil stiffness matrix")

	// ErrSymmetryViolation is returned by ValidateSymmetry when a relation of
	// the requested system does not hold.
	ErrSymmetryViolation = errors.New("crystal: symmetry relation violated")
)
