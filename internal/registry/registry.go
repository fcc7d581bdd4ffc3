// Package registry keeps the playable modes known to the front ends.
// Each mode registers a factory from its package init, so the CLI, the
// menu and the SSH server can list and start modes by ID alone.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/termtris/internal/core"
)

// Game is what a front end drives: fixed ticks in, a character screen out.
// Implementations hold no terminal or network state.
type Game interface {
	// ID is the stable key used on the command line and in the score table.
	ID() string

	// Title is the name shown in menus.
	Title() string

	// Reset starts a fresh run for the given screen and seed.
	// Front ends call it again to restart after the run ends.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick with the actions pressed since the last one.
	Step(in core.InputFrame) core.StepResult

	// Render draws into dst, which the caller has cleared.
	Render(dst *core.Screen)

	// State reports score and status without advancing.
	State() core.GameState
}

// Resizable is implemented by games that can follow a terminal resize
// without restarting.
type Resizable interface {
	Resize(screenW, screenH int)
}

// LevelSelectable is implemented by games that accept a start level.
type LevelSelectable interface {
	SetStartLevel(level int)
}

// TimeRanked is implemented by modes whose runs end at a goal and are
// ranked by how fast the goal was reached rather than by score.
type TimeRanked interface {
	RanksByTime() bool
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
	Timed bool // Ranked by completion time
}

// Factory returns a new, not yet Reset, game.
type Factory func() Game

type entry struct {
	factory Factory
	info    GameInfo
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register adds a mode. It panics on an empty or duplicate ID, both of
// which are programming errors caught at init.
func Register(id string, f Factory) {
	if id == "" {
		panic("registry: empty game id")
	}

	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if tr, ok := g.(TimeRanked); ok {
		info.Timed = tr.RanksByTime()
	}

	mu.Lock()
	defer mu.Unlock()
	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, info: info}
}

// List returns every registered mode ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	slices.SortFunc(out, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// Lookup returns the description of a registered mode.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create starts a new game of the given mode.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id names a registered mode.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
