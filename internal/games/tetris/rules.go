package tetris

import "github.com/vovakirdan/termtris/internal/games/tetris/piece"

// LockResult reports what a rule operation did.
type LockResult struct {
	Locked   bool // The active piece was written into the playfield
	Cleared  int  // Rows removed by the lock
	Points   int  // Score gained by the operation
	GameOver bool // The game is over after the operation
}

// Lock writes the active piece into the playfield, clears full rows,
// updates score and level, and spawns the next piece.
func (s *State) Lock() LockResult {
	if s.over {
		return LockResult{GameOver: true}
	}

	c := s.current.Color()
	for _, pt := range s.current.Cells() {
		s.field.Set(pt.X, pt.Y, c)
	}

	cleared := s.field.ClearFullRows()
	points := s.lineScores[min(cleared, len(s.lineScores)-1)] * (s.level + 1)
	s.score += points
	s.lines += cleared
	s.level = max(s.leveler.Level(s.startLevel, s.lines), s.level)

	s.spawn()

	return LockResult{
		Locked:   true,
		Cleared:  cleared,
		Points:   points,
		GameOver: s.over,
	}
}

// Advance is one gravity step: the piece drops a row, or locks when it
// cannot.
func (s *State) Advance() LockResult {
	if s.over {
		return LockResult{GameOver: true}
	}
	if err := s.DropOneRow(); err == nil {
		return LockResult{}
	}
	return s.Lock()
}

// HardDrop moves the piece straight down until it rests, then locks it.
// It returns the number of rows travelled.
func (s *State) HardDrop() (int, LockResult) {
	if s.over {
		return 0, LockResult{GameOver: true}
	}

	rows := 0
	for s.DropOneRow() == nil {
		rows++
	}
	bonus := rows * s.hardDropPoints
	s.score += bonus

	res := s.Lock()
	res.Points += bonus
	return rows, res
}

// GhostY returns the row the active piece would rest on after a hard drop.
func (s *State) GhostY() int {
	p := s.current
	for {
		below := p
		below.Y++
		if s.fits(below) != nil {
			return p.Y
		}
		p = below
	}
}

// spawn promotes the next kind to the active piece and draws a new next.
// The game ends when the spawned piece does not fit.
func (s *State) spawn() {
	s.current = ActivePiece{
		Kind:        s.next,
		Orientation: piece.North,
		X:           s.spawnX,
		Y:           s.spawnY,
	}
	s.next = s.draw()

	if s.fits(s.current) != nil {
		s.over = true
	}
}
