package tetris

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/termtris/internal/config"
	"github.com/vovakirdan/termtris/internal/core"
	"github.com/vovakirdan/termtris/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeMarathon Mode = "marathon"
	ModeSprint   Mode = "sprint"
)

// Registered game IDs.
const (
	IDMarathon = "tetris"
	IDSprint   = "tetris_sprint"
)

// clearFlashTicks is how long the line-clear banner stays up, in ticks.
const clearFlashTicks = 45

// Game adapts State to the registry.Game contract: fixed ticks, abstract
// actions and a character screen.
type Game struct {
	mode Mode
	rng  *rand.Rand
	tick uint64

	cfg        config.TetrisConfig
	difficulty *config.DifficultyManager
	state      *State
	startLevel int // -1 means use the configured start level

	tickRate  int
	fallTicks int    // Ticks since the last gravity step
	playTicks uint64 // Ticks that reached the controls; stops on pause and at the end

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	paused     bool
	tooSmall   bool
	won        bool
	lastClear  int // Rows removed by the most recent lock
	clearFlash int // Ticks left on the line-clear banner
}

// Package-level variables for config
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied on Reset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// loadConfig reads the configured file and applies the difficulty preset.
func loadConfig() config.TetrisConfig {
	cfg, err := config.LoadTetris(configPath)
	if err != nil {
		cfg = config.DefaultTetrisConfig()
	}
	config.ApplyTetrisPreset(&cfg, difficultyPreset)
	return cfg
}

// EffectiveConfig returns the configuration new games will use.
func EffectiveConfig() config.TetrisConfig {
	return loadConfig()
}

// Difficulty returns the gravity and level rules new games will use.
func Difficulty() *config.DifficultyManager {
	return config.NewDifficultyManager(loadConfig().Difficulty)
}

// New creates a new marathon game.
func New() *Game {
	return &Game{mode: ModeMarathon, startLevel: -1}
}

// NewSprint creates a new sprint game.
func NewSprint() *Game {
	return &Game{mode: ModeSprint, startLevel: -1}
}

func init() {
	registry.Register(IDMarathon, func() registry.Game {
		return New()
	})
	registry.Register(IDSprint, func() registry.Game {
		return NewSprint()
	})
}

// SetStartLevel overrides the configured start level for this game.
// It takes effect on the next Reset. Negative restores the config value.
func (g *Game) SetStartLevel(level int) {
	g.startLevel = level
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeSprint {
		return IDSprint
	}
	return IDMarathon
}

// RanksByTime reports whether runs are ranked by time to the goal.
func (g *Game) RanksByTime() bool {
	return g.mode == ModeSprint
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeSprint {
		return "Tetris (Sprint 40)"
	}
	return "Tetris (Marathon)"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg := loadConfig()
	if g.startLevel >= 0 {
		cfg.Difficulty.StartLevel = g.startLevel
	}

	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tick = 0
	g.fallTicks = 0
	g.playTicks = 0
	g.tickRate = rc.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.paused = false
	g.won = false
	g.lastClear = 0
	g.clearFlash = 0

	g.state = NewState(cfg.Difficulty.StartLevel, g.rng,
		WithFieldSize(cfg.Playfield.Width, cfg.Playfield.Height),
		WithSpawn(cfg.Spawn.X, cfg.Spawn.Y),
		WithLineScores(cfg.Scoring.Lines...),
		WithHardDropPoints(cfg.Scoring.HardDropPerRow),
		WithLeveler(g.difficulty),
	)

	// Check screen size
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	w, h := layoutSize(g.cfg.Playfield.Width, g.cfg.Playfield.Height)
	g.tooSmall = g.screenW < w || g.screenH < h
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.clearFlash > 0 {
		g.clearFlash--
	}

	// Handle window size check
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if g.finished() {
		// Restart is handled by the platform
		return core.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}
	g.playTicks++

	// Rejected moves are no-ops.
	if in.Has(core.ActionRotateCW) {
		_ = g.state.RotateClockwise()
	}
	if in.Has(core.ActionRotateCCW) {
		_ = g.state.RotateCounterclockwise()
	}
	if in.Has(core.ActionLeft) {
		_ = g.state.MoveLeft()
	}
	if in.Has(core.ActionRight) {
		_ = g.state.MoveRight()
	}

	if in.Has(core.ActionHardDrop) {
		_, res := g.state.HardDrop()
		g.afterLock(res)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionSoftDrop) {
		if err := g.state.DropOneRow(); err != nil {
			g.afterLock(g.state.Lock())
		}
		g.fallTicks = 0
		return core.StepResult{State: g.State()}
	}

	// Gravity
	g.fallTicks++
	if g.fallTicks >= g.difficulty.TicksPerRow(g.state.Level(), g.tickRate) {
		g.fallTicks = 0
		if res := g.state.Advance(); res.Locked {
			g.afterLock(res)
		}
	}

	return core.StepResult{State: g.State()}
}

// afterLock updates the banner and the sprint goal after a piece settles.
func (g *Game) afterLock(res LockResult) {
	g.fallTicks = 0
	if res.Cleared > 0 {
		g.lastClear = res.Cleared
		g.clearFlash = clearFlashTicks
	}
	if g.mode == ModeSprint && g.state.Lines() >= g.cfg.Sprint.Lines {
		g.won = true
	}
}

func (g *Game) finished() bool {
	return g.won || g.state.GameOver()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.state.Score(),
		Lines:    g.state.Lines(),
		Level:    g.state.Level(),
		PlayTime: g.PlayTime(),
		GameOver: g.finished(),
		Won:      g.won,
		Paused:   g.paused || g.tooSmall,
	}
}

// PlayTime is the time spent playing, derived from ticks.
func (g *Game) PlayTime() time.Duration {
	return time.Duration(g.playTicks) * time.Second / time.Duration(max(g.tickRate, 1))
}

// Engine exposes the underlying state for inspection.
func (g *Game) Engine() *State {
	return g.state
}

// Resize adapts to a new screen size without restarting the game.
func (g *Game) Resize(screenW, screenH int) {
	g.screenW = screenW
	g.screenH = screenH
	g.checkScreenSize()
}
