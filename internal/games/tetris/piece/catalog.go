package piece

import (
	"fmt"

	"github.com/vovakirdan/termtris/internal/core"
)

// catalog is indexed by Kind. Masks are tight: occupied cells span
// exactly [0, Width) x [0, Height).
var catalog = [KindCount]Definition{
	KindI: {
		Kind: KindI,
		Mask: Mask{
			{true, true, true, true},
		},
		Color:  core.ColorRed,
		Width:  4,
		Height: 1,
	},
	KindL: {
		Kind: KindL,
		Mask: Mask{
			{false, false, true},
			{true, true, true},
		},
		Color:  core.ColorYellow,
		Width:  3,
		Height: 2,
	},
	KindJ: {
		Kind: KindJ,
		Mask: Mask{
			{true, false, false},
			{true, true, true},
		},
		Color:  core.ColorOrange,
		Width:  3,
		Height: 2,
	},
	KindO: {
		Kind: KindO,
		Mask: Mask{
			{true, true},
			{true, true},
		},
		Color:  core.ColorCyan,
		Width:  2,
		Height: 2,
	},
	KindS: {
		Kind: KindS,
		Mask: Mask{
			{false, true, true},
			{true, true, false},
		},
		Color:  core.ColorGreen,
		Width:  3,
		Height: 2,
	},
	KindZ: {
		Kind: KindZ,
		Mask: Mask{
			{true, true, false},
			{false, true, true},
		},
		Color:  core.ColorMagenta,
		Width:  3,
		Height: 2,
	},
	KindT: {
		Kind: KindT,
		Mask: Mask{
			{false, true, false},
			{true, true, true},
		},
		Color:  core.ColorBlue,
		Width:  3,
		Height: 2,
	},
}

// Definitions returns the seven catalog entries in fixed order (I, L, J, O, S, Z, T).
// The order is the index space for random selection.
func Definitions() []Definition {
	defs := make([]Definition, len(catalog))
	copy(defs, catalog[:])
	return defs
}

// Count returns the number of catalog entries.
func Count() int {
	return len(catalog)
}

// Lookup returns the definition for a kind.
// k must be one of the seven catalog kinds; any other value panics.
func Lookup(k Kind) Definition {
	if k >= KindCount {
		panic(fmt.Sprintf("piece: unknown kind %d", k))
	}
	return catalog[k]
}
