// SPDX-License-Identifier: MIT

package stiffness

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/elastic/matrix"
)

// Size is the order of a Voigt stiffness matrix.
const Size = 6

const (
	opNew        = "stiffness.New"
	opCompliance = "stiffness.Compliance"
)

// Matrix is an immutable 6×6 symmetric elastic constant matrix. Values come
// from New, FromMatrix or UnmarshalYAML. The zero Matrix holds no constants:
// Compliance and MarshalYAML return ErrEmpty, Rows and Dense return nil, and
// C and Diagonal panic.
type Matrix struct {
	c *matrix.Dense
}

// New builds a stiffness matrix from six rows of six values.
//
// Errors:
//   - ErrShape when rows is not 6×6.
//   - matrix.ErrNaNInf for a non-finite constant.
//   - matrix.ErrAsymmetry when |C[i][j] − C[j][i]| exceeds the tolerance and
//     WithSymmetrize was not given.
func New(rows [][]float64, opts ...Option) (*Matrix, error) {
	if len(rows) != Size {
		return nil, fmt.Errorf("%s: got %d rows: %w", opNew, len(rows), ErrShape)
	}
	for i, row := range rows {
		if len(row) != Size {
			return nil, fmt.Errorf("%s: row %d has %d values: %w", opNew, i, len(row), ErrShape)
		}
	}
	d, err := matrix.NewFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}

	return build(d, gatherOptions(opts...))
}

// FromMatrix builds a stiffness matrix from any 6×6 matrix.Matrix.
// Errors are the same as New, plus ErrNilInput.
func FromMatrix(m matrix.Matrix, opts ...Option) (*Matrix, error) {
	if m == nil {
		return nil, fmt.Errorf("%s: %w", opNew, ErrNilInput)
	}
	if m.Rows() != Size || m.Cols() != Size {
		return nil, fmt.Errorf("%s: got %dx%d: %w", opNew, m.Rows(), m.Cols(), ErrShape)
	}
	if err := matrix.ValidateFinite(m); err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}
	rows := make([][]float64, Size)
	for i := range rows {
		rows[i] = make([]float64, Size)
		for j := range rows[i] {
			rows[i][j], _ = m.At(i, j) // in range: shape checked above
		}
	}
	d, err := matrix.NewFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}

	return build(d, gatherOptions(opts...))
}

// build applies the symmetry policy to an owned 6×6 Dense.
func build(d *matrix.Dense, o options) (*Matrix, error) {
	if o.symmetrize {
		sym, err := matrix.Symmetrize(d)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opNew, err)
		}
		return &Matrix{c: sym}, nil
	}
	if err := matrix.ValidateSymmetric(d, o.tol); err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}

	return &Matrix{c: d}, nil
}

// C returns the elastic constant C_ij with 1-based Voigt indices, so C(1, 1)
// is C11 and C(4, 4) is C44. It panics when i or j is outside 1..6.
func (s *Matrix) C(i, j int) float64 {
	if i < 1 || i > Size || j < 1 || j > Size {
		panic(fmt.Sprintf("stiffness: Voigt index C%d%d out of range 1..6", i, j))
	}
	if s.Empty() {
		panic(ErrEmpty.Error())
	}
	v, _ := s.c.At(i-1, j-1)

	return v
}

// Diagonal returns C11..C66.
func (s *Matrix) Diagonal() [Size]float64 {
	var out [Size]float64
	for i := range out {
		out[i] = s.C(i+1, i+1)
	}

	return out
}

// Empty reports whether s is nil or was not built by a constructor.
func (s *Matrix) Empty() bool { return s == nil || s.c == nil }

// Rows returns a copy of the constants as six rows, or nil for an empty Matrix.
func (s *Matrix) Rows() [][]float64 {
	if s.Empty() {
		return nil
	}

	return s.c.ToRows()
}

// Dense returns a copy of the constants as a matrix.Dense, or nil for an
// empty Matrix.
func (s *Matrix) Dense() *matrix.Dense {
	if s.Empty() {
		return nil
	}
	d, _ := matrix.NewFromRows(s.c.ToRows()) // finite 6×6 by construction

	return d
}

// Compliance returns the compliance matrix S = C⁻¹. Indefinite (unstable)
// but non-singular matrices are inverted as well.
// Errors: matrix.ErrSingular when C is singular, ErrEmpty for an empty Matrix.
func (s *Matrix) Compliance() (*matrix.Dense, error) {
	if s.Empty() {
		return nil, fmt.Errorf("%s: %w", opCompliance, ErrEmpty)
	}
	inv, err := matrix.Inverse(s.c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCompliance, err)
	}

	return inv, nil
}

// Equal reports whether both matrices hold identical constants.
func (s *Matrix) Equal(other *Matrix) bool {
	if s.Empty() || other.Empty() {
		return s.Empty() && other.Empty()
	}
	ok, _ := matrix.AllClose(s.c, other.c, matrix.WithEpsilon(0))

	return ok
}

// String formats the matrix as six bracketed rows.
func (s *Matrix) String() string {
	if s.Empty() {
		return ""
	}

	return strings.TrimSuffix(s.c.String(), "\n")
}
