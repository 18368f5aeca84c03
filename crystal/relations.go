// SPDX-License-Identifier: MIT

package crystal

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/katalvlaran/elastic/stiffness"
)

const (
	opValidateSymmetry = "crystal.ValidateSymmetry"
	opRelations        = "crystal.Relations"
)

// term is coef·C_ij with 1-based Voigt indices.
type term struct {
	i, j int
	coef float64
}

// Relation is one linear equality that the stiffness matrix of a crystal
// system satisfies in its standard setting, e.g. "C11 = C22" or "C14 = 0".
type Relation struct {
	Text string
	lhs  []term
	rhs  []term
}

// Holds reports whether the relation is satisfied by c within the absolute
// tolerance eps.
func (r Relation) Holds(c *stiffness.Matrix, eps float64) bool {
	return math.Abs(sum(c, r.lhs)-sum(c, r.rhs)) <= eps
}

func sum(c *stiffness.Matrix, ts []term) float64 {
	var s float64
	for _, t := range ts {
		s += t.coef * c.C(t.i, t.j)
	}

	return s
}

// at splits a two-digit Voigt label (e.g. 16) into its indices.
func at(ij int) term { return term{i: ij / 10, j: ij % 10, coef: 1} }

// eq is C_a = C_b.
func eq(a, b int) Relation {
	return Relation{Text: fmt.Sprintf("C%d = C%d", a, b), lhs: []term{at(a)}, rhs: []term{at(b)}}
}

// neg is C_a = −C_b.
func neg(a, b int) Relation {
	t := at(b)
	t.coef = -1

	return Relation{Text: fmt.Sprintf("C%d = −C%d", a, b), lhs: []term{at(a)}, rhs: []term{t}}
}

// zeros is C_a = 0 for every label.
func zeros(labels ...int) []Relation {
	out := make([]Relation, len(labels))
	for k, a := range labels {
		out[k] = Relation{Text: fmt.Sprintf("C%d = 0", a), lhs: []term{at(a)}}
	}

	return out
}

// halfDifference is C66 = (C11 − C12)/2.
func halfDifference() Relation {
	return Relation{
		Text: "C66 = (C11 − C12)/2",
		lhs:  []term{at(66)},
		rhs:  []term{{i: 1, j: 1, coef: 0.5}, {i: 1, j: 2, coef: -0.5}},
	}
}

func concat(groups ...[]Relation) []Relation {
	var out []Relation
	for _, g := range groups {
		out = append(out, g...)
	}

	return out
}

// relationTable holds the relations of each system (standard settings:
// hexagonal/tetragonal/rhombohedral c-axis along x3, monoclinic diad along x2).
var relationTable = map[System][]Relation{
	Cubic: concat(
		[]Relation{eq(11, 22), eq(11, 33), eq(44, 55), eq(44, 66), eq(12, 13), eq(12, 23)},
		zeros(14, 15, 16, 24, 25, 26, 34, 35, 36, 45, 46, 56),
	),
	Hexagonal: concat(
		[]Relation{eq(11, 22), eq(13, 23), eq(44, 55), halfDifference()},
		zeros(14, 15, 16, 24, 25, 26, 34, 35, 36, 45, 46, 56),
	),
	Tetragonal: concat(
		[]Relation{eq(11, 22), eq(13, 23), eq(44, 55), neg(26, 16)},
		zeros(14, 15, 24, 25, 34, 35, 36, 45, 46, 56),
	),
	Rhombohedral: concat(
		[]Relation{
			eq(11, 22), eq(13, 23), eq(44, 55), halfDifference(),
			neg(24, 14), neg(25, 15), neg(46, 15), eq(56, 14),
		},
		zeros(16, 26, 34, 35, 36, 45),
	),
	Orthorhombic: zeros(14, 15, 16, 24, 25, 26, 34, 35, 36, 45, 46, 56),
	Monoclinic:   zeros(14, 16, 24, 26, 34, 36, 45, 56),
	Triclinic:    nil,
}

// Relations returns the symmetry relations of system s. Triclinic has none.
func Relations(s System) ([]Relation, error) {
	rel, ok := relationTable[s]
	if !ok {
		return nil, fmt.Errorf("%s: %v: %w", opRelations, s, ErrUnknownSystem)
	}
	out := make([]Relation, len(rel))
	copy(out, rel)

	return out, nil
}

// ValidateSymmetry checks that c obeys every relation of system s. Violations
// are logged at warn level and reported together, wrapped in
// ErrSymmetryViolation.
func ValidateSymmetry(c *stiffness.Matrix, s System, opts ...Option) error {
	if c.Empty() {
		return fmt.Errorf("%s: %w", opValidateSymmetry, ErrNilStiffness)
	}
	rel, err := Relations(s)
	if err != nil {
		return fmt.Errorf("%s: %w", opValidateSymmetry, err)
	}
	o := gatherOptions(opts...)
	eps := o.tol * scale(c)

	var failed []string
	for _, r := range rel {
		if r.Holds(c, eps) {
			continue
		}
		failed = append(failed, r.Text)
		o.logger.Warn("crystal: symmetry relation violated",
			slog.String("system", s.String()),
			slog.String("relation", r.Text))
	}
	if len(failed) > 0 {
		return fmt.Errorf("%s: %v: %s: %w", opValidateSymmetry, s, strings.Join(failed, "; "), ErrSymmetryViolation)
	}

	return nil
}

// Detect returns the most symmetric system whose relations c satisfies,
// trying Systems() in order. A nil or empty matrix is reported as Triclinic.
func Detect(c *stiffness.Matrix, opts ...Option) System {
	if c.Empty() {
		return Triclinic
	}
	o := gatherOptions(opts...)
	eps := o.tol * scale(c)
	for _, s := range Systems() {
		if satisfies(c, relationTable[s], eps) {
			return s
		}
	}

	return Triclinic
}

func satisfies(c *stiffness.Matrix, rel []Relation, eps float64) bool {
	for _, r := range rel {
		if !r.Holds(c, eps) {
			return false
		}
	}

	return true
}

// scale is max|C_ij|.
func scale(c *stiffness.Matrix) float64 {
	var s float64
	for i := 1; i <= stiffness.Size; i++ {
		for j := 1; j <= stiffness.Size; j++ {
			s = math.Max(s, math.Abs(c.C(i, j)))
		}
	}

	return s
}
