// SPDX-License-Identifier: MIT

package stability

import "errors"

var (
	// ErrUnknownMethod is returned for a Method outside the four defined ones.
	ErrUnknownMethod = errors.New("stability: unknown method")
)
