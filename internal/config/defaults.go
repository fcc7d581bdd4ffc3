package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the hard-coded default configuration.
// The embedded defaults/tetris.yaml mirrors these values.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Playfield: PlayfieldConfig{
			Width:  10,
			Height: 20,
		},
		Spawn: SpawnConfig{
			X: 5,
			Y: 3,
		},
		Scoring: ScoringConfig{
			Lines:          []int{0, 40, 100, 300, 1200},
			HardDropPerRow: 2,
		},
		Sprint: SprintConfig{
			Lines: 40,
		},
		Difficulty: DifficultyConfig{
			Enabled:    true,
			StartLevel: 0,
			Progression: ProgressionConfig{
				Type:          ProgressionLines,
				LinesPerLevel: 10,
				MaxLevel:      29,
			},
			Gravity: GravityConfig{
				Curve:      GravityMarathon,
				BaseMillis: 1000,
				StepMillis: 50,
				MinMillis:  20,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}
