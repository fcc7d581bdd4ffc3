// Package tetris implements the falling-block game: the playfield, the
// active piece and its control operations, the locking and scoring rules,
// and the registry.Game adapter that the platform drives.
package tetris

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/termtris/internal/core"
	"github.com/vovakirdan/termtris/internal/games/tetris/piece"
)

// Defaults for a standard game.
const (
	DefaultWidth  = 10
	DefaultHeight = 20
	DefaultSpawnX = 5
	DefaultSpawnY = 3

	DefaultHardDropPoints = 2
)

// DefaultLineScores is the base award for clearing 0..4 rows at once.
var DefaultLineScores = [5]int{0, 40, 100, 300, 1200}

// Randomizer picks piece kinds. *rand.Rand satisfies it.
type Randomizer interface {
	Intn(n int) int
}

// Leveler computes the level reached from a start level after clearing lines.
type Leveler interface {
	Level(start, lines int) int
}

type fixedLevel struct{}

func (fixedLevel) Level(start, _ int) int { return start }

// ActivePiece is the piece under player control. (X, Y) is the top-left
// corner of its rotated mask in playfield coordinates.
type ActivePiece struct {
	Kind        piece.Kind
	Orientation piece.Orientation
	X, Y        int
}

// Shape returns the rotated mask and its bounding-box size.
func (p ActivePiece) Shape() (piece.Mask, int, int) {
	return piece.Rotated(piece.Lookup(p.Kind), p.Orientation)
}

// Color returns the catalog color of the piece.
func (p ActivePiece) Color() core.Color {
	return piece.Lookup(p.Kind).Color
}

// Cells returns the occupied cells in playfield coordinates.
func (p ActivePiece) Cells() []piece.Point {
	mask, _, _ := p.Shape()
	cells := mask.Cells()
	for i := range cells {
		cells[i].X += p.X
		cells[i].Y += p.Y
	}
	return cells
}

// Option configures a State.
type Option func(*State)

// WithFieldSize sets the playfield dimensions.
func WithFieldSize(width, height int) Option {
	return func(s *State) {
		s.field = NewPlayfield(width, height)
	}
}

// WithSpawn sets the top-left corner where new pieces appear.
func WithSpawn(x, y int) Option {
	return func(s *State) {
		s.spawnX, s.spawnY = x, y
	}
}

// WithLineScores overrides the base award table. Missing entries score zero.
func WithLineScores(scores ...int) Option {
	return func(s *State) {
		s.lineScores = [5]int{}
		copy(s.lineScores[:], scores)
	}
}

// WithHardDropPoints sets the points awarded per row of a hard drop.
func WithHardDropPoints(points int) Option {
	return func(s *State) {
		s.hardDropPoints = points
	}
}

// WithLeveler sets the level progression rule. The default keeps the start level.
func WithLeveler(l Leveler) Option {
	return func(s *State) {
		if l != nil {
			s.leveler = l
		}
	}
}

// State is the root aggregate of a game: the settled playfield, the active
// piece, the upcoming kind and the running totals.
type State struct {
	field   *Playfield
	current ActivePiece
	next    piece.Kind

	rng     Randomizer
	leveler Leveler

	spawnX, spawnY int
	lineScores     [5]int
	hardDropPoints int

	startLevel int
	level      int
	score      int
	lines      int
	over       bool
}

// NewState creates a game at the given level with an empty playfield and
// a random piece at the spawn point. A nil rng is replaced by a time-seeded one.
func NewState(level int, rng Randomizer, opts ...Option) *State {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	level = max(level, 0)

	s := &State{
		field:          NewPlayfield(DefaultWidth, DefaultHeight),
		rng:            rng,
		leveler:        fixedLevel{},
		spawnX:         DefaultSpawnX,
		spawnY:         DefaultSpawnY,
		lineScores:     DefaultLineScores,
		hardDropPoints: DefaultHardDropPoints,
		startLevel:     level,
		level:          level,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.next = s.draw()
	s.spawn()
	return s
}

// RotateClockwise turns the active piece one quarter clockwise.
func (s *State) RotateClockwise() error {
	p := s.current
	p.Orientation = p.Orientation.Next()
	return s.place(p)
}

// RotateCounterclockwise turns the active piece one quarter counter-clockwise.
func (s *State) RotateCounterclockwise() error {
	p := s.current
	p.Orientation = p.Orientation.Prev()
	return s.place(p)
}

// MoveLeft shifts the active piece one column left.
func (s *State) MoveLeft() error {
	p := s.current
	p.X--
	return s.place(p)
}

// MoveRight shifts the active piece one column right.
func (s *State) MoveRight() error {
	p := s.current
	p.X++
	return s.place(p)
}

// DropOneRow moves the active piece one row down. It never locks.
func (s *State) DropOneRow() error {
	p := s.current
	p.Y++
	return s.place(p)
}

// CurrentView returns a copy of the settled field with the active piece
// stamped in its color. Piece cells outside the field are skipped.
func (s *State) CurrentView() *Playfield {
	view := s.field.Clone()
	c := s.current.Color()
	for _, pt := range s.current.Cells() {
		view.Set(pt.X, pt.Y, c)
	}
	return view
}

// Field returns a copy of the settled playfield.
func (s *State) Field() *Playfield { return s.field.Clone() }

// Current returns the active piece.
func (s *State) Current() ActivePiece { return s.current }

// Next returns the kind that spawns after the current piece locks.
func (s *State) Next() piece.Kind { return s.next }

// Level returns the current level.
func (s *State) Level() int { return s.level }

// Score returns the points earned so far.
func (s *State) Score() int { return s.score }

// Lines returns the number of rows cleared so far.
func (s *State) Lines() int { return s.lines }

// GameOver reports whether a spawned piece could not be placed.
func (s *State) GameOver() bool { return s.over }

// place commits p as the active piece if it fits.
func (s *State) place(p ActivePiece) error {
	if s.over {
		return ErrGameOver
	}
	if err := s.fits(p); err != nil {
		return err
	}
	s.current = p
	return nil
}

// fits checks p against the playfield edges and the settled cells.
// Masks are tight, so the bounding box is the exact extent of the cells.
func (s *State) fits(p ActivePiece) error {
	_, w, h := p.Shape()
	if p.X < 0 || p.Y < 0 || p.X+w > s.field.Width() || p.Y+h > s.field.Height() {
		return ErrOutOfBounds
	}
	for _, pt := range p.Cells() {
		if s.field.Filled(pt.X, pt.Y) {
			return ErrBlocked
		}
	}
	return nil
}

func (s *State) draw() piece.Kind {
	return piece.Kind(s.rng.Intn(piece.Count()))
}
