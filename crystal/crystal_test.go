// SPDX-License-Identifier: MIT

package crystal_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/elastic/crystal"
	"github.com/katalvlaran/elastic/stability"
	"github.com/katalvlaran/elastic/stiffness"
)

// voigt builds a symmetric stiffness matrix from upper-triangle entries keyed
// by two-digit Voigt labels (11, 12, ..., 66).
func voigt(t *testing.T, upper map[int]float64) *stiffness.Matrix {
	t.Helper()
	rows := make([][]float64, stiffness.Size)
	for i := range rows {
		rows[i] = make([]float64, stiffness.Size)
	}
	for ij, v := range upper {
		i, j := ij/10-1, ij%10-1
		rows[i][j], rows[j][i] = v, v
	}
	c, err := stiffness.New(rows)
	require.NoError(t, err)

	return c
}

func hexagonalC(t *testing.T) *stiffness.Matrix {
	return voigt(t, map[int]float64{
		11: 297.85, 22: 297.85, 33: 286.9, 12: 126.9, 13: 104.5, 23: 104.5,
		44: 59.225, 55: 59.225, 66: 85.475,
	})
}

func cubicC(t *testing.T) *stiffness.Matrix {
	return voigt(t, map[int]float64{
		11: 165.7, 22: 165.7, 33: 165.7, 12: 63.9, 13: 63.9, 23: 63.9,
		44: 79.6, 55: 79.6, 66: 79.6,
	})
}

func tetragonalII(t *testing.T) *stiffness.Matrix {
	return voigt(t, map[int]float64{
		11: 200, 22: 200, 33: 180, 12: 100, 13: 80, 23: 80,
		44: 50, 55: 50, 66: 60, 16: 10, 26: -10,
	})
}

func rhombohedralII(t *testing.T) *stiffness.Matrix {
	return voigt(t, map[int]float64{
		11: 250, 22: 250, 33: 230, 12: 100, 13: 80, 23: 80,
		44: 60, 55: 60, 66: 75,
		14: 10, 24: -10, 56: 10, 15: 5, 25: -5, 46: -5,
	})
}

func orthorhombicC(t *testing.T) *stiffness.Matrix {
	return voigt(t, map[int]float64{
		11: 230, 22: 250, 33: 210, 12: 100, 13: 90, 23: 95,
		44: 70, 55: 60, 66: 80,
	})
}

func monoclinicEntries() map[int]float64 {
	return map[int]float64{
		11: 220, 22: 240, 33: 200, 12: 90, 13: 80, 23: 85,
		44: 70, 55: 60, 66: 75, 15: 12, 25: -8, 35: 6, 46: 9,
	}
}

func TestHexagonalStable(t *testing.T) {
	t.Parallel()
	res, err := crystal.Check(hexagonalC(t), crystal.Hexagonal)
	require.NoError(t, err)
	assert.True(t, res.Stable())
	assert.Empty(t, res.Failed())
	assert.Len(t, res.Criteria, 4)
	assert.Empty(t, res.Class)
}

func TestDetect(t *testing.T) {
	t.Parallel()
	triclinic := monoclinicEntries()
	triclinic[14] = 3

	cases := []struct {
		name string
		c    *stiffness.Matrix
		want crystal.System
	}{
		{"cubic", cubicC(t), crystal.Cubic},
		{"hexagonal", hexagonalC(t), crystal.Hexagonal},
		{"tetragonal", tetragonalII(t), crystal.Tetragonal},
		{"rhombohedral", rhombohedralII(t), crystal.Rhombohedral},
		{"orthorhombic", orthorhombicC(t), crystal.Orthorhombic},
		{"monoclinic", voigt(t, monoclinicEntries()), crystal.Monoclinic},
		{"triclinic", voigt(t, triclinic), crystal.Triclinic},
		{"nil", nil, crystal.Triclinic},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, crystal.Detect(tc.c))
		})
	}
}

// TestAgreesWithPositiveDefiniteness checks that, for matrices obeying the
// relations of their system, the closed forms match stability.IsStable.
func TestAgreesWithPositiveDefiniteness(t *testing.T) {
	t.Parallel()
	unstableCubic := voigt(t, map[int]float64{
		11: 100, 22: 100, 33: 100, 12: 120, 13: 120, 23: 120,
		44: 50, 55: 50, 66: 50,
	})
	softShear := voigt(t, map[int]float64{
		11: 230, 22: 250, 33: 210, 12: 100, 13: 90, 23: 95,
		44: 70, 55: -1, 66: 80,
	})

	cases := []struct {
		name   string
		c      *stiffness.Matrix
		stable bool
	}{
		{"cubic", cubicC(t), true},
		{"unstable cubic", unstableCubic, false},
		{"hexagonal", hexagonalC(t), true},
		{"tetragonal II", tetragonalII(t), true},
		{"rhombohedral II", rhombohedralII(t), true},
		{"orthorhombic", orthorhombicC(t), true},
		{"orthorhombic soft shear", softShear, false},
		{"monoclinic", voigt(t, monoclinicEntries()), true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			sys := crystal.Detect(tc.c)
			require.NoError(t, crystal.ValidateSymmetry(tc.c, sys))

			res, err := crystal.Check(tc.c, sys)
			require.NoError(t, err)
			pd, err := stability.IsStable(tc.c.Dense())
			require.NoError(t, err)

			assert.Equal(t, tc.stable, res.Stable(), sys.String())
			assert.Equal(t, pd, res.Stable(), sys.String())
		})
	}
}

func TestClassSelection(t *testing.T) {
	t.Parallel()

	res, err := crystal.Check(tetragonalII(t), crystal.Tetragonal)
	require.NoError(t, err)
	assert.Equal(t, "II", res.Class)
	assert.Equal(t, "2·C16² < C66·(C11 − C12)", res.Criteria[3].Text)

	res, err = crystal.Check(hexagonalC(t), crystal.Tetragonal)
	require.NoError(t, err)
	assert.Equal(t, "I", res.Class)
	assert.Equal(t, "C66 > 0", res.Criteria[3].Text)

	res, err = crystal.Check(rhombohedralII(t), crystal.Rhombohedral)
	require.NoError(t, err)
	assert.Equal(t, "II", res.Class)
	assert.Equal(t, "C14² + C15² < ½·C44·(C11 − C12)", res.Criteria[3].Text)
	assert.True(t, res.Stable())

	res, err = crystal.Check(hexagonalC(t), crystal.Rhombohedral)
	require.NoError(t, err)
	assert.Equal(t, "I", res.Class)
}

func TestTriclinicDelegates(t *testing.T) {
	t.Parallel()
	crit, err := crystal.Conditions(cubicC(t), crystal.Triclinic)
	require.NoError(t, err)
	require.Len(t, crit, 1)
	assert.Equal(t, crystal.Criterion{Text: "C positive definite", Holds: true}, crit[0])

	crit, err = crystal.Conditions(cubicC(t), crystal.Triclinic,
		crystal.WithStabilityOptions(stability.WithBackend(stability.Gonum())))
	require.NoError(t, err)
	assert.True(t, crit[0].Holds)
}

func TestValidateSymmetry(t *testing.T) {
	t.Parallel()
	require.NoError(t, crystal.ValidateSymmetry(cubicC(t), crystal.Orthorhombic))
	require.NoError(t, crystal.ValidateSymmetry(orthorhombicC(t), crystal.Triclinic))

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	err := crystal.ValidateSymmetry(orthorhombicC(t), crystal.Cubic, crystal.WithLogger(logger))
	require.ErrorIs(t, err, crystal.ErrSymmetryViolation)
	assert.Contains(t, err.Error(), "C11 = C22")
	assert.Contains(t, buf.String(), `"relation":"C11 = C22"`)

	// C66 = (C11 − C12)/2 only within a loose tolerance
	loose := voigt(t, map[int]float64{
		11: 297.85, 22: 297.85, 33: 286.9, 12: 126.9, 13: 104.5, 23: 104.5,
		44: 59.225, 55: 59.225, 66: 85.5,
	})
	require.ErrorIs(t, crystal.ValidateSymmetry(loose, crystal.Hexagonal), crystal.ErrSymmetryViolation)
	require.NoError(t, crystal.ValidateSymmetry(loose, crystal.Hexagonal, crystal.WithTolerance(1e-3)))
}

func TestErrors(t *testing.T) {
	t.Parallel()
	_, err := crystal.Check(nil, crystal.Cubic)
	require.ErrorIs(t, err, crystal.ErrNilStiffness)
	_, err = crystal.Conditions(cubicC(t), crystal.System(42))
	require.ErrorIs(t, err, crystal.ErrUnknownSystem)
	_, err = crystal.Relations(crystal.System(0))
	require.ErrorIs(t, err, crystal.ErrUnknownSystem)
	require.ErrorIs(t, crystal.ValidateSymmetry(nil, crystal.Cubic), crystal.ErrNilStiffness)
	_, err = crystal.Check(&stiffness.Matrix{}, crystal.Hexagonal)
	require.ErrorIs(t, err, crystal.ErrNilStiffness)
	assert.Equal(t, crystal.Triclinic, crystal.Detect(&stiffness.Matrix{}))
	assert.Panics(t, func() { crystal.WithTolerance(-1) })
}

func TestCheckLogsFailures(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	c := voigt(t, map[int]float64{
		11: 100, 22: 100, 33: 100, 12: 120, 13: 120, 23: 120,
		44: 50, 55: 50, 66: 50,
	})

	res, err := crystal.Check(c, crystal.Cubic, crystal.WithLogger(logger))
	require.NoError(t, err)
	require.Len(t, res.Failed(), 1)
	assert.Equal(t, "C11 > |C12|", res.Failed()[0].Text)
	assert.Contains(t, buf.String(), `criterion="C11 > |C12|"`)
	assert.Contains(t, buf.String(), "system=cubic")
}

func TestSystemNames(t *testing.T) {
	t.Parallel()
	for _, s := range crystal.Systems() {
		assert.True(t, s.Valid())
		got, err := crystal.ParseSystem(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	got, err := crystal.ParseSystem("  Hexagonal ")
	require.NoError(t, err)
	assert.Equal(t, crystal.Hexagonal, got)

	_, err = crystal.ParseSystem("quasicrystal")
	require.ErrorIs(t, err, crystal.ErrUnknownSystem)
	assert.Equal(t, "system(9)", crystal.System(9).String())
	assert.False(t, crystal.System(9).Valid())
}

func TestRelationsCopy(t *testing.T) {
	t.Parallel()
	rel, err := crystal.Relations(crystal.Cubic)
	require.NoError(t, err)
	require.NotEmpty(t, rel)
	rel[0].Text = "mutated"

	again, err := crystal.Relations(crystal.Cubic)
	require.NoError(t, err)
	assert.Equal(t, "C11 = C22", again[0].Text)

	none, err := crystal.Relations(crystal.Triclinic)
	require.NoError(t, err)
	assert.Empty(t, none)
}
