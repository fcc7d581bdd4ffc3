package tetris

import "github.com/vovakirdan/termtris/internal/games/tetris/piece"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StateWin         GameStateType = "win"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick  uint64
	Play  uint64 // Ticks of actual play
	Mode  string // "marathon" or "sprint"
	Level int
	Lines int
	Score int
	Piece ActivePiece
	Next  piece.Kind
	Field string // Settled cells, one row per line
	State GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.state.GameOver():
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Tick:  g.tick,
		Play:  g.playTicks,
		Mode:  string(g.mode),
		Level: g.state.Level(),
		Lines: g.state.Lines(),
		Score: g.state.Score(),
		Piece: g.state.Current(),
		Next:  g.state.Next(),
		Field: g.state.field.String(),
		State: state,
	}
}
