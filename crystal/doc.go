// SPDX-License-Identifier: MIT

// Package crystal expresses the Born stability criterion through the
// closed-form conditions of each crystal system, and recognises which
// system a stiffness matrix belongs to.
//
// For a matrix that obeys the symmetry relations of its system, the closed
// forms are necessary and sufficient: they agree with the positive
// definiteness test of package stability. Triclinic crystals have no closed
// form, so their single criterion delegates to stability.IsStable.
//
// Voigt indices are 1-based throughout (C11 is c.C(1, 1)).
package crystal
