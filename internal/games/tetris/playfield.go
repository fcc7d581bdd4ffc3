package tetris

import (
	"strings"

	"github.com/vovakirdan/termtris/internal/core"
)

// Playfield is a fixed-size grid of settled cells, indexed by (x, y) with
// y growing downward. Empty cells hold core.ColorDefault.
type Playfield struct {
	width  int
	height int
	cells  []core.Color
}

// NewPlayfield creates an empty width x height playfield.
func NewPlayfield(width, height int) *Playfield {
	width = max(width, 1)
	height = max(height, 1)
	return &Playfield{
		width:  width,
		height: height,
		cells:  make([]core.Color, width*height),
	}
}

// Width returns the number of columns.
func (p *Playfield) Width() int { return p.width }

// Height returns the number of rows.
func (p *Playfield) Height() int { return p.height }

// InBounds reports whether (x, y) lies inside the playfield.
func (p *Playfield) InBounds(x, y int) bool {
	return x >= 0 && x < p.width && y >= 0 && y < p.height
}

// At returns the color at (x, y), or ColorDefault outside the playfield.
func (p *Playfield) At(x, y int) core.Color {
	if !p.InBounds(x, y) {
		return core.ColorDefault
	}
	return p.cells[y*p.width+x]
}

// Set writes a color at (x, y). Out-of-bounds writes are ignored.
func (p *Playfield) Set(x, y int, c core.Color) {
	if !p.InBounds(x, y) {
		return
	}
	p.cells[y*p.width+x] = c
}

// Filled reports whether (x, y) holds a settled cell.
func (p *Playfield) Filled(x, y int) bool {
	return !p.At(x, y).IsEmpty()
}

// FilledCount returns the number of non-empty cells.
func (p *Playfield) FilledCount() int {
	n := 0
	for _, c := range p.cells {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

// RowFull reports whether every cell of row y is occupied.
func (p *Playfield) RowFull(y int) bool {
	if y < 0 || y >= p.height {
		return false
	}
	for _, c := range p.row(y) {
		if c.IsEmpty() {
			return false
		}
	}
	return true
}

// ClearFullRows removes every full row, shifts the rows above down and
// fills the top with empty rows. It returns the number of rows removed.
func (p *Playfield) ClearFullRows() int {
	write := p.height - 1
	for read := p.height - 1; read >= 0; read-- {
		if p.RowFull(read) {
			continue
		}
		if write != read {
			copy(p.row(write), p.row(read))
		}
		write--
	}

	cleared := write + 1
	for y := 0; y <= write; y++ {
		clear(p.row(y))
	}
	return cleared
}

// Clone returns an independent copy.
func (p *Playfield) Clone() *Playfield {
	cells := make([]core.Color, len(p.cells))
	copy(cells, p.cells)
	return &Playfield{width: p.width, height: p.height, cells: cells}
}

// Equal reports whether two playfields have the same size and contents.
func (p *Playfield) Equal(other *Playfield) bool {
	if other == nil || p.width != other.width || p.height != other.height {
		return false
	}
	for i, c := range p.cells {
		if other.cells[i] != c {
			return false
		}
	}
	return true
}

// String renders the playfield one row per line using Color.Char.
func (p *Playfield) String() string {
	var sb strings.Builder
	sb.Grow((p.width + 1) * p.height)
	for y := range p.height {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range p.row(y) {
			sb.WriteRune(c.Char())
		}
	}
	return sb.String()
}

func (p *Playfield) row(y int) []core.Color {
	return p.cells[y*p.width : (y+1)*p.width]
}
