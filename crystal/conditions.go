// SPDX-License-Identifier: MIT

package crystal

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/elastic/stability"
	"github.com/katalvlaran/elastic/stiffness"
)

const (
	opConditions = "crystal.Conditions"
	opCheck      = "crystal.Check"
)

// Criterion is one Born condition and whether c satisfies it.
type Criterion struct {
	Text  string
	Holds bool
}

// Result is the outcome of Check.
type Result struct {
	System   System
	Class    string // "I" or "II" for tetragonal and rhombohedral crystals, empty otherwise
	Criteria []Criterion
}

// Stable reports whether every criterion holds.
func (r Result) Stable() bool {
	if len(r.Criteria) == 0 {
		return false
	}
	for _, c := range r.Criteria {
		if !c.Holds {
			return false
		}
	}

	return true
}

// Failed returns the criteria that do not hold, in order.
func (r Result) Failed() []Criterion {
	var out []Criterion
	for _, c := range r.Criteria {
		if !c.Holds {
			out = append(out, c)
		}
	}

	return out
}

// Conditions evaluates the Born stability conditions of system s on c.
//
// Tetragonal crystals use class I conditions when C16 = 0 and class II
// otherwise; rhombohedral crystals switch on C15 the same way. Triclinic
// crystals yield the single criterion "C positive definite".
//
// Errors: ErrNilStiffness, ErrUnknownSystem, and for Triclinic any error of
// stability.IsStable.
func Conditions(c *stiffness.Matrix, s System, opts ...Option) ([]Criterion, error) {
	_, crit, err := conditions(c, s, gatherOptions(opts...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opConditions, err)
	}

	return crit, nil
}

// Check evaluates the conditions of s and logs each failing one at warn level.
func Check(c *stiffness.Matrix, s System, opts ...Option) (Result, error) {
	o := gatherOptions(opts...)
	class, crit, err := conditions(c, s, o)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", opCheck, err)
	}
	res := Result{System: s, Class: class, Criteria: crit}
	for _, f := range res.Failed() {
		o.logger.Warn("crystal: criterion not satisfied",
			slog.String("system", s.String()),
			slog.String("class", class),
			slog.String("criterion", f.Text))
	}

	return res, nil
}

func conditions(c *stiffness.Matrix, s System, o options) (string, []Criterion, error) {
	if c.Empty() {
		return "", nil, ErrNilStiffness
	}
	zero := func(ij int) bool { return math.Abs(c.C(ij/10, ij%10)) <= o.tol*scale(c) }

	switch s {
	case Cubic:
		return "", cubic(c), nil
	case Hexagonal:
		return "", hexagonal(c), nil
	case Tetragonal:
		if zero(16) {
			return "I", tetragonal(c, false), nil
		}

		return "II", tetragonal(c, true), nil
	case Rhombohedral:
		if zero(15) {
			return "I", rhombohedral(c, false), nil
		}

		return "II", rhombohedral(c, true), nil
	case Orthorhombic:
		return "", orthorhombic(c), nil
	case Monoclinic:
		return "", monoclinic(c), nil
	case Triclinic:
		ok, err := stability.IsStable(c.Dense(), o.stability...)
		if err != nil {
			return "", nil, err
		}

		return "", []Criterion{{Text: "C positive definite", Holds: ok}}, nil
	default:
		return "", nil, fmt.Errorf("%v: %w", s, ErrUnknownSystem)
	}
}

func cubic(c *stiffness.Matrix) []Criterion {
	c11, c12, c44 := c.C(1, 1), c.C(1, 2), c.C(4, 4)

	return []Criterion{
		{"C11 > |C12|", c11 > math.Abs(c12)},
		{"C11 + 2·C12 > 0", c11+2*c12 > 0},
		{"C44 > 0", c44 > 0},
	}
}

func hexagonal(c *stiffness.Matrix) []Criterion {
	c11, c12, c13, c33, c44 := c.C(1, 1), c.C(1, 2), c.C(1, 3), c.C(3, 3), c.C(4, 4)
	c66 := (c11 - c12) / 2

	return []Criterion{
		{"C11 > |C12|", c11 > math.Abs(c12)},
		{"2·C13² < C33·(C11 + C12)", 2*c13*c13 < c33*(c11+c12)},
		{"C44 > 0", c44 > 0},
		{"C66 > 0", c66 > 0},
	}
}

func tetragonal(c *stiffness.Matrix, classII bool) []Criterion {
	c11, c12, c13, c16 := c.C(1, 1), c.C(1, 2), c.C(1, 3), c.C(1, 6)
	c33, c44, c66 := c.C(3, 3), c.C(4, 4), c.C(6, 6)

	out := []Criterion{
		{"C11 > |C12|", c11 > math.Abs(c12)},
		{"2·C13² < C33·(C11 + C12)", 2*c13*c13 < c33*(c11+c12)},
		{"C44 > 0", c44 > 0},
	}
	if classII {
		return append(out, Criterion{"2·C16² < C66·(C11 − C12)", 2*c16*c16 < c66*(c11-c12)})
	}

	return append(out, Criterion{"C66 > 0", c66 > 0})
}

func rhombohedral(c *stiffness.Matrix, classII bool) []Criterion {
	c11, c12, c13, c14, c15 := c.C(1, 1), c.C(1, 2), c.C(1, 3), c.C(1, 4), c.C(1, 5)
	c33, c44 := c.C(3, 3), c.C(4, 4)

	out := []Criterion{
		{"C11 > |C12|", c11 > math.Abs(c12)},
		{"C44 > 0", c44 > 0},
		{"C13² < ½·C33·(C11 + C12)", c13*c13 < 0.5*c33*(c11+c12)},
	}
	if classII {
		return append(out, Criterion{"C14² + C15² < ½·C44·(C11 − C12)", c14*c14+c15*c15 < 0.5*c44*(c11-c12)})
	}

	return append(out, Criterion{"C14² < ½·C44·(C11 − C12)", c14*c14 < 0.5*c44*(c11-c12)})
}

func orthorhombic(c *stiffness.Matrix) []Criterion {
	d := c.Diagonal()
	c11, c22, c33, c44, c55, c66 := d[0], d[1], d[2], d[3], d[4], d[5]
	c12, c13, c23 := c.C(1, 2), c.C(1, 3), c.C(2, 3)

	return []Criterion{
		{"C11 > 0", c11 > 0},
		{"C11·C22 > C12²", c11*c22 > c12*c12},
		{
			"C11·C22·C33 + 2·C12·C13·C23 > C11·C23² + C22·C13² + C33·C12²",
			c11*c22*c33+2*c12*c13*c23 > c11*c23*c23+c22*c13*c13+c33*c12*c12,
		},
		{"C44 > 0", c44 > 0},
		{"C55 > 0", c55 > 0},
		{"C66 > 0", c66 > 0},
	}
}

// monoclinic uses the diad along x2 (non-zero C15, C25, C35, C46). The last
// criterion is det of the {1,2,3,5} block.
func monoclinic(c *stiffness.Matrix) []Criterion {
	d := c.Diagonal()
	c11, c22, c33, c44, c55, c66 := d[0], d[1], d[2], d[3], d[4], d[5]
	c12, c13, c15, c23 := c.C(1, 2), c.C(1, 3), c.C(1, 5), c.C(2, 3)
	c25, c35, c46 := c.C(2, 5), c.C(3, 5), c.C(4, 6)

	g := c11*c22*c33 - c11*c23*c23 - c22*c13*c13 - c33*c12*c12 + 2*c12*c13*c23
	last := 2*(c15*c25*(c33*c12-c13*c23)+c15*c35*(c22*c13-c12*c23)+c25*c35*(c11*c23-c12*c13)) -
		(c15*c15*(c22*c33-c23*c23) + c25*c25*(c11*c33-c13*c13) + c35*c35*(c11*c22-c12*c12)) +
		c55*g

	diagPositive := true
	for _, v := range d {
		diagPositive = diagPositive && v > 0
	}

	return []Criterion{
		{"Cii > 0", diagPositive},
		{"C11 + C22 + C33 + 2·(C12 + C13 + C23) > 0", c11+c22+c33+2*(c12+c13+c23) > 0},
		{"C33·C55 − C35² > 0", c33*c55-c35*c35 > 0},
		{"C44·C66 − C46² > 0", c44*c66-c46*c46 > 0},
		{"C22 + C33 − 2·C23 > 0", c22+c33-2*c23 > 0},
		{"C22·(C33·C55 − C35²) + 2·C23·C25·C35 − C23²·C55 − C25²·C33 > 0", c22*(c33*c55-c35*c35)+2*c23*c25*c35-c23*c23*c55-c25*c25*c33 > 0},
		{"det(C[1,2,3,5]) > 0", last > 0},
	}
}
