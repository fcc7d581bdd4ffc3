// Package piece holds the tetromino catalog: seven immutable shape
// definitions and the pure rotation transform shared by all of them.
package piece

import (
	"strings"

	"github.com/vovakirdan/termtris/internal/core"
)

// Side is the edge length of every shape mask.
const Side = 4

// Kind identifies one of the seven standard tetrominoes.
type Kind uint8

const (
	KindI Kind = iota
	KindL
	KindJ
	KindO
	KindS
	KindZ
	KindT
	KindCount // Sentinel value for iteration
)

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindL:
		return "L"
	case KindJ:
		return "J"
	case KindO:
		return "O"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindT:
		return "T"
	default:
		return "?"
	}
}

// ParseKind converts a letter to a Kind.
func ParseKind(s string) (Kind, bool) {
	for k := KindI; k < KindCount; k++ {
		if strings.EqualFold(s, k.String()) {
			return k, true
		}
	}
	return KindI, false
}

// Orientation is one of the four cardinal rotation states.
type Orientation uint8

const (
	North Orientation = iota
	East
	South
	West
)

// Next returns the clockwise successor: N -> E -> S -> W -> N.
func (o Orientation) Next() Orientation {
	return (o + 1) % 4
}

// Prev returns the counter-clockwise successor: N -> W -> S -> E -> N.
func (o Orientation) Prev() Orientation {
	return (o + 3) % 4
}

// String returns the orientation name.
func (o Orientation) String() string {
	switch o {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Point is a cell position inside a mask.
type Point struct {
	X, Y int
}

// Mask is a Side x Side occupancy matrix indexed [y][x].
type Mask [Side][Side]bool

// Count returns the number of occupied cells.
func (m Mask) Count() int {
	n := 0
	for y := range Side {
		for x := range Side {
			if m[y][x] {
				n++
			}
		}
	}
	return n
}

// Cells returns the occupied cells in row-major order.
func (m Mask) Cells() []Point {
	cells := make([]Point, 0, 4)
	for y := range Side {
		for x := range Side {
			if m[y][x] {
				cells = append(cells, Point{X: x, Y: y})
			}
		}
	}
	return cells
}

// Bounds returns the occupied bounding box as min corner and exclusive max corner.
// An empty mask reports ok == false.
func (m Mask) Bounds() (minP, maxP Point, ok bool) {
	minP = Point{X: Side, Y: Side}
	for _, c := range m.Cells() {
		ok = true
		minP.X = min(minP.X, c.X)
		minP.Y = min(minP.Y, c.Y)
		maxP.X = max(maxP.X, c.X+1)
		maxP.Y = max(maxP.Y, c.Y+1)
	}
	if !ok {
		return Point{}, Point{}, false
	}
	return minP, maxP, true
}

// String renders the mask as four lines of 'X' and '.'.
func (m Mask) String() string {
	var sb strings.Builder
	for y := range Side {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range Side {
			if m[y][x] {
				sb.WriteByte('X')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// Definition is one catalog entry in its canonical (north) orientation.
type Definition struct {
	Kind   Kind
	Mask   Mask
	Color  core.Color
	Width  int
	Height int
}
