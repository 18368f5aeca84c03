// SPDX-License-Identifier: MIT

package crystal

import (
	"fmt"
	"strings"
)

// System is one of the seven crystal systems.
type System int

// Crystal systems, from most to least symmetric.
const (
	Cubic System = iota + 1
	Hexagonal
	Tetragonal
	Rhombohedral
	Orthorhombic
	Monoclinic
	Triclinic
)

var systemNames = map[System]string{
	Cubic:        "cubic",
	Hexagonal:    "hexagonal",
	Tetragonal:   "tetragonal",
	Rhombohedral: "rhombohedral",
	Orthorhombic: "orthorhombic",
	Monoclinic:   "monoclinic",
	Triclinic:    "triclinic",
}

// Systems lists the crystal systems from most to least symmetric.
func Systems() []System {
	return []System{Cubic, Hexagonal, Tetragonal, Rhombohedral, Orthorhombic, Monoclinic, Triclinic}
}

// String implements fmt.Stringer.
func (s System) String() string {
	if name, ok := systemNames[s]; ok {
		return name
	}

	return fmt.Sprintf("system(%d)", int(s))
}

// Valid reports whether s is one of the defined systems.
func (s System) Valid() bool {
	_, ok := systemNames[s]

	return ok
}

// ParseSystem maps a case-insensitive name ("cubic", "Hexagonal", ...) to a System.
func ParseSystem(name string) (System, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range Systems() {
		if systemNames[s] == name {
			return s, nil
		}
	}

	return 0, fmt.Errorf("%q: %w", name, ErrUnknownSystem)
}
