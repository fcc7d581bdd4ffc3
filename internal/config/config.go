// Package config provides YAML-based game configuration loading and
// difficulty management for termtris.
package config

import (
	"errors"
	"fmt"
)

// Limits for playfield dimensions.
const (
	MinFieldSide = 4
	MaxFieldSide = 40

	// spawnBox is the edge of the largest rotated piece box (4x4 for I).
	spawnBox = 4
)

// TetrisConfig contains all configuration for the falling-block game.
type TetrisConfig struct {
	Playfield  PlayfieldConfig  `yaml:"playfield"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Sprint     SprintConfig     `yaml:"sprint"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PlayfieldConfig defines the well dimensions in cells.
type PlayfieldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SpawnConfig is the top-left corner where new pieces appear.
type SpawnConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// ScoringConfig defines points awarded per lock.
type ScoringConfig struct {
	// Lines[n] is the base award for clearing n rows at once, multiplied by level+1.
	Lines          []int `yaml:"lines"`
	HardDropPerRow int   `yaml:"hard_drop_per_row"`
}

// SprintConfig defines the sprint mode goal.
type SprintConfig struct {
	Lines int `yaml:"lines"`
}

// DifficultyConfig defines level progression and gravity speed.
type DifficultyConfig struct {
	Enabled     bool              `yaml:"enabled"`
	StartLevel  int               `yaml:"start_level"`
	Progression ProgressionConfig `yaml:"progression"`
	Gravity     GravityConfig     `yaml:"gravity"`
}

// ProgressionConfig defines how the level rises with cleared lines.
type ProgressionConfig struct {
	Type          string `yaml:"type"`            // "lines" or "none"
	LinesPerLevel int    `yaml:"lines_per_level"` // Rows to clear per level
	MaxLevel      int    `yaml:"max_level"`       // 0 = uncapped
}

// GravityConfig defines how long a piece hangs on each row.
type GravityConfig struct {
	Curve      string `yaml:"curve"`   // "marathon" or "linear"
	BaseMillis int    `yaml:"base_ms"` // Linear: interval at level 0
	StepMillis int    `yaml:"step_ms"` // Linear: reduction per level
	MinMillis  int    `yaml:"min_ms"`  // Floor for both curves
}

// Validate checks that the configuration can host a game.
func (c TetrisConfig) Validate() error {
	var errs []error

	w, h := c.Playfield.Width, c.Playfield.Height
	if w < MinFieldSide || w > MaxFieldSide || h < MinFieldSide || h > MaxFieldSide {
		errs = append(errs, fmt.Errorf("playfield %dx%d outside %d..%d", w, h, MinFieldSide, MaxFieldSide))
	}
	if c.Spawn.X < 0 || c.Spawn.Y < 0 || c.Spawn.X+spawnBox > w || c.Spawn.Y+spawnBox > h {
		errs = append(errs, fmt.Errorf("spawn %d,%d leaves no %dx%d box inside %dx%d playfield",
			c.Spawn.X, c.Spawn.Y, spawnBox, spawnBox, w, h))
	}
	if len(c.Scoring.Lines) != 5 {
		errs = append(errs, fmt.Errorf("scoring.lines has %d entries, want 5", len(c.Scoring.Lines)))
	}
	if c.Sprint.Lines <= 0 {
		errs = append(errs, errors.New("sprint.lines must be positive"))
	}
	if c.Difficulty.StartLevel < 0 {
		errs = append(errs, errors.New("difficulty.start_level must not be negative"))
	}
	switch c.Difficulty.Gravity.Curve {
	case "", GravityMarathon, GravityLinear:
	default:
		errs = append(errs, fmt.Errorf("unknown gravity curve %q", c.Difficulty.Gravity.Curve))
	}

	return errors.Join(errs...)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset validates a preset name. Empty is allowed and means "use config".
func ParseDifficultyPreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// StartLevelForPreset returns the start level for a difficulty preset.
func StartLevelForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyNormal:
		return 5
	case DifficultyHard:
		return 10
	default:
		return 0
	}
}

// ApplyTetrisPreset modifies the config based on a difficulty preset.
// Fixed keeps the configured start level and disables progression.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.StartLevel = StartLevelForPreset(preset)
	}
}
