package piece

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/termtris/internal/core"
)

var orientations = []Orientation{North, East, South, West}

func TestDefinitionsOrder(t *testing.T) {
	defs := Definitions()
	require.Len(t, defs, 7)

	want := []Kind{KindI, KindL, KindJ, KindO, KindS, KindZ, KindT}
	for i, def := range defs {
		assert.Equal(t, want[i], def.Kind, "index %d", i)
	}
	assert.Equal(t, 7, Count())
}

func TestDefinitionsReturnsCopy(t *testing.T) {
	defs := Definitions()
	defs[0].Mask[0][0] = false
	defs[0].Color = core.ColorGray

	fresh := Lookup(KindI)
	assert.True(t, fresh.Mask[0][0], "catalog mask must not change through Definitions()")
	assert.Equal(t, core.ColorRed, fresh.Color)
}

func TestCatalogColors(t *testing.T) {
	expected := map[Kind]core.Color{
		KindI: core.ColorRed,
		KindL: core.ColorYellow,
		KindJ: core.ColorOrange,
		KindO: core.ColorCyan,
		KindS: core.ColorGreen,
		KindZ: core.ColorMagenta,
		KindT: core.ColorBlue,
	}
	for kind, color := range expected {
		assert.Equal(t, color, Lookup(kind).Color, "kind %s", kind)
	}
}

func TestLookupRejectsUnknownKind(t *testing.T) {
	assert.PanicsWithValue(t, "piece: unknown kind 7", func() { Lookup(KindCount) })
	assert.Panics(t, func() { Lookup(Kind(200)) })
	assert.NotPanics(t, func() { Lookup(KindT) })
}

func TestEveryRotationHoldsFourCells(t *testing.T) {
	for _, def := range Definitions() {
		assert.Equal(t, 4, def.Mask.Count(), "kind %s canonical", def.Kind)
		for _, o := range orientations {
			m, _, _ := Rotated(def, o)
			assert.Equal(t, 4, m.Count(), "kind %s %s", def.Kind, o)
		}
	}
}

func TestRotationClosure(t *testing.T) {
	for _, def := range Definitions() {
		for i, o := range orientations {
			m, w, h := Rotated(def, o)

			// Finish the cycle: o is i quarter turns, so 4-i more come back to north.
			for range 4 - i {
				m, w, h = RotateClockwise(m, w, h)
			}

			assert.Equal(t, def.Mask, m, "kind %s from %s", def.Kind, o)
			assert.Equal(t, def.Width, w, "kind %s from %s width", def.Kind, o)
			assert.Equal(t, def.Height, h, "kind %s from %s height", def.Kind, o)
		}
	}
}

func TestRotatedMatchesQuarterTurns(t *testing.T) {
	for _, def := range Definitions() {
		m, w, h := def.Mask, def.Width, def.Height
		for _, o := range orientations {
			got, gw, gh := Rotated(def, o)
			assert.Equal(t, m, got, "kind %s %s", def.Kind, o)
			assert.Equal(t, w, gw)
			assert.Equal(t, h, gh)
			m, w, h = RotateClockwise(m, w, h)
		}
	}
}

func TestRotatedDimensions(t *testing.T) {
	def := Lookup(KindI)

	tests := []struct {
		o    Orientation
		w, h int
	}{
		{North, 4, 1},
		{East, 1, 4},
		{South, 4, 1},
		{West, 1, 4},
	}

	for _, tc := range tests {
		t.Run(tc.o.String(), func(t *testing.T) {
			m, w, h := Rotated(def, tc.o)
			assert.Equal(t, tc.w, w)
			assert.Equal(t, tc.h, h)

			_, maxP, ok := m.Bounds()
			require.True(t, ok)
			assert.Equal(t, Point{X: tc.w, Y: tc.h}, maxP, "rotated mask should stay tight")
		})
	}
}

func TestRotatedShapes(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		o    Orientation
		want string
	}{
		{"J east", KindJ, East, "XX..\nX...\nX...\n...."},
		{"J south", KindJ, South, "XXX.\n..X.\n....\n...."},
		{"J west", KindJ, West, ".X..\n.X..\nXX..\n...."},
		{"T east", KindT, East, "X...\nXX..\nX...\n...."},
		{"S west", KindS, West, "X...\nXX..\n.X..\n...."},
		{"O south", KindO, South, "XX..\nXX..\n....\n...."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, _, _ := Rotated(Lookup(tc.kind), tc.o)
			assert.Equal(t, tc.want, m.String())
		})
	}
}

func TestOrientationCycle(t *testing.T) {
	assert.Equal(t, East, North.Next())
	assert.Equal(t, South, East.Next())
	assert.Equal(t, West, South.Next())
	assert.Equal(t, North, West.Next())

	assert.Equal(t, West, North.Prev())
	assert.Equal(t, North, East.Prev())

	for _, o := range orientations {
		assert.Equal(t, o, o.Next().Prev())
		assert.Equal(t, o, o.Next().Next().Next().Next())
	}
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("t")
	assert.True(t, ok)
	assert.Equal(t, KindT, k)

	_, ok = ParseKind("Q")
	assert.False(t, ok)
}

func TestValidateCatalog(t *testing.T) {
	require.NoError(t, Validate())
}

func TestValidateDefinitionErrors(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
		code string
	}{
		{
			name: "three cells",
			def: Definition{
				Kind:  KindL,
				Mask:  Mask{{true, true, true}},
				Width: 3, Height: 1,
			},
			code: CodeBadCellCount,
		},
		{
			name: "declared height too large",
			def: Definition{
				Kind:  KindI,
				Mask:  Mask{{true, true, true, true}},
				Width: 4, Height: 3,
			},
			code: CodeBadBounds,
		},
		{
			name: "box not at origin",
			def: Definition{
				Kind:  KindI,
				Mask:  Mask{{}, {true, true, true, true}},
				Width: 4, Height: 2,
			},
			code: CodeBadBounds,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDefinition(tc.def)
			require.Error(t, err)

			var ce *CatalogError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tc.code, ce.Code)
			assert.Equal(t, tc.def.Kind, ce.Kind)
		})
	}
}
