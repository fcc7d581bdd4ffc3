package tetris

import "errors"

// Control errors. A control operation that returns one of these left the
// state untouched.
var (
	// ErrOutOfBounds means the piece's box would leave the playfield.
	ErrOutOfBounds = errors.New("tetris: piece would leave the playfield")
	// ErrBlocked means the piece would overlap settled cells.
	ErrBlocked = errors.New("tetris: piece would overlap settled cells")
	// ErrGameOver means the game has ended and no further moves are accepted.
	ErrGameOver = errors.New("tetris: game over")
)
