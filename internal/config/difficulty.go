package config

import (
	"math"
	"time"
)

// Progression types.
const (
	ProgressionLines = "lines"
	ProgressionNone  = "none"
)

// Gravity curves.
const (
	GravityMarathon = "marathon"
	GravityLinear   = "linear"
)

// marathonCap is the level after which the marathon curve stops getting faster.
const marathonCap = 19

// DifficultyManager maps cleared lines to levels and levels to gravity speed.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled returns whether level progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressionNone
}

// Level returns the level reached from start after clearing lines rows.
// It never drops below start.
func (d *DifficultyManager) Level(start, lines int) int {
	if !d.IsEnabled() {
		return start
	}

	per := d.cfg.Progression.LinesPerLevel
	if per <= 0 {
		per = 10
	}

	level := start + lines/per
	if maxLevel := d.cfg.Progression.MaxLevel; maxLevel > 0 && level > maxLevel {
		level = max(maxLevel, start)
	}
	return level
}

// Interval returns how long a piece stays on one row at the given level.
func (d *DifficultyManager) Interval(level int) time.Duration {
	level = max(level, 0)

	var ms float64
	switch d.cfg.Gravity.Curve {
	case GravityLinear:
		ms = float64(d.cfg.Gravity.BaseMillis - level*d.cfg.Gravity.StepMillis)
	default:
		// Guideline marathon curve, in seconds: (0.8 - (L-1)*0.007)^(L-1) with L = level+1.
		l := float64(min(level, marathonCap))
		ms = math.Pow(0.8-l*0.007, l) * 1000
	}

	if floor := float64(d.cfg.Gravity.MinMillis); ms < floor {
		ms = floor
	}
	if ms < 1 {
		ms = 1
	}
	return time.Duration(ms * float64(time.Millisecond))
}

// TicksPerRow converts the gravity interval into frames at tickRate frames per second.
func (d *DifficultyManager) TicksPerRow(level, tickRate int) int {
	if tickRate <= 0 {
		tickRate = 60
	}
	ticks := int(d.Interval(level) * time.Duration(tickRate) / time.Second)
	return max(ticks, 1)
}
