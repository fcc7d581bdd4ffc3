package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/termtris/internal/core"
	"github.com/vovakirdan/termtris/internal/games/tetris"
	"github.com/vovakirdan/termtris/internal/storage"
)

// stubGame ends after overAt steps with a fixed score.
type stubGame struct {
	steps   int
	overAt  int
	won     bool
	resets  int
	resized [2]int
	last    core.InputFrame
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = 0
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.last = in.Clone()
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState {
	over := g.overAt > 0 && g.steps >= g.overAt
	return core.GameState{
		Score:    500,
		Lines:    7,
		Level:    1,
		PlayTime: time.Duration(g.steps) * time.Second,
		GameOver: over,
		Won:      over && g.won,
	}
}

func (g *stubGame) Resize(w, h int) {
	g.resized = [2]int{w, h}
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 60, ScreenH: 30, TickRate: 60, Seed: 1}
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T, want GameModel", next)
	}
	return gm, cmd
}

func TestGameModelReservesHelpLine(t *testing.T) {
	m := NewGameModel(&stubGame{}, nil, testConfig(), "", nil)

	if m.screen.Height() != 29 {
		t.Errorf("screen height = %d, want 29", m.screen.Height())
	}
	if m.config.ScreenH != 29 {
		t.Errorf("game config height = %d, want 29", m.config.ScreenH)
	}

	view := m.View()
	if !strings.Contains(view, "stub") {
		t.Error("view should contain the game render")
	}
	if !strings.Contains(view, "rotate") {
		t.Error("view should contain the key help")
	}
}

func TestGameModelBackAndQuit(t *testing.T) {
	m := NewGameModel(&stubGame{}, nil, testConfig(), "", nil)

	back, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !back.BackToMenu() || back.IsQuitting() {
		t.Error("esc should go back to the menu without quitting")
	}
	if cmd == nil {
		t.Error("esc should end the program")
	}

	quit, _ := update(t, m, runeKey('q'))
	if !quit.IsQuitting() {
		t.Error("q should quit")
	}
	if quit.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestGameModelForwardsInput(t *testing.T) {
	g := &stubGame{}
	m := NewGameModel(g, nil, testConfig(), "", nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, TickMsg{})

	if !g.last.Has(core.ActionLeft) {
		t.Error("step should see the left action")
	}

	update(t, m, TickMsg{})
	if g.last.Has(core.ActionLeft) {
		t.Error("input should be cleared after each tick")
	}
}

func TestGameModelSavesOnce(t *testing.T) {
	store := openTestStore(t)
	g := &stubGame{overAt: 2}
	m := NewGameModel(g, store, testConfig(), "alice", nil)

	for range 5 {
		m, _ = update(t, m, TickMsg{})
	}
	if m.SaveErr() != nil {
		t.Fatalf("save error: %v", m.SaveErr())
	}

	scores, err := store.AllScores("stub")
	if err != nil {
		t.Fatalf("AllScores: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d scores, want 1", len(scores))
	}
	s := scores[0]
	if s.Score != 500 || s.Lines != 7 || s.Level != 1 || s.Player != "alice" {
		t.Errorf("saved %+v", s)
	}
	if s.Duration != 2*time.Second || s.Completed {
		t.Errorf("saved duration/completed = %v/%v", s.Duration, s.Completed)
	}
	if !m.NewBest() || !strings.Contains(m.View(), "NEW BEST!") {
		t.Error("the first saved score should be a new best")
	}

	// The same score again is not a new best.
	again := NewGameModel(&stubGame{overAt: 1}, store, testConfig(), "bob", nil)
	again, _ = update(t, again, TickMsg{})
	if again.NewBest() {
		t.Error("a tie should not count as a new best")
	}
}

func TestGameModelSavesCompletedRun(t *testing.T) {
	store := openTestStore(t)
	g := &stubGame{overAt: 3, won: true}
	m := NewGameModel(g, store, testConfig(), "carol", nil)

	for range 4 {
		m, _ = update(t, m, TickMsg{})
	}

	times, err := store.FastestTimes("stub", 10)
	if err != nil {
		t.Fatalf("FastestTimes: %v", err)
	}
	if len(times) != 1 || times[0].Duration != 3*time.Second || !times[0].Completed {
		t.Errorf("times = %+v", times)
	}
}

func TestGameModelRestartAfterGameOver(t *testing.T) {
	g := &stubGame{overAt: 1}
	m := NewGameModel(g, nil, testConfig(), "", nil)

	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, runeKey('r'))
	update(t, m, TickMsg{})

	if g.resets != 1 {
		t.Errorf("resets = %d, want 1", g.resets)
	}
}

func TestGameModelResize(t *testing.T) {
	g := &stubGame{}
	m := NewGameModel(g, nil, testConfig(), "", nil)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if g.resized != [2]int{100, 39} {
		t.Errorf("resized = %v, want [100 39]", g.resized)
	}
	if g.resets != 0 {
		t.Error("a resizable game should not be reset")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestGameModelPlaysTetris(t *testing.T) {
	m := NewGameModel(tetris.New(), nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 3}, "", nil)
	m.Init()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, _ = update(t, m, TickMsg{})

	if m.gameState.Score == 0 {
		t.Error("a hard drop should score points")
	}
	if !strings.Contains(m.View(), "T E T R I S") {
		t.Error("view should show the tetris title")
	}
}

func TestLevelModel(t *testing.T) {
	m := NewLevelModel(60, 24, 3, nil)
	if m.Selected() != -1 {
		t.Error("nothing selected yet")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	lm := next.(LevelModel)

	if lm.Selected() != 4 {
		t.Errorf("Selected() = %d, want 4", lm.Selected())
	}
	if cmd == nil {
		t.Error("selecting should end the picker")
	}

	if !strings.Contains(m.View(), "Level 0  (1000 ms/row)") {
		t.Errorf("view should list level 0 speed:\n%s", m.View())
	}
}

func TestSessionFlow(t *testing.T) {
	s := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 1}, "bob", nil)

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	step(tea.KeyMsg{Type: tea.KeyEnter})
	if s.screen != screenLevel || s.pending == "" {
		t.Fatalf("screen = %v, pending = %q; want level picker", s.screen, s.pending)
	}

	step(tea.KeyMsg{Type: tea.KeyDown})
	step(tea.KeyMsg{Type: tea.KeyDown})
	step(tea.KeyMsg{Type: tea.KeyEnter})
	if s.screen != screenGame || s.game == nil {
		t.Fatalf("screen = %v, want game", s.screen)
	}
	g, ok := s.game.game.(*tetris.Game)
	if !ok {
		t.Fatalf("game is %T", s.game.game)
	}
	if g.Engine().Level() != 2 {
		t.Errorf("start level = %d, want 2", g.Engine().Level())
	}

	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", s.screen)
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if s.screen != screenScores {
		t.Fatalf("screen = %v, want scores", s.screen)
	}
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", s.screen)
	}

	next, cmd := s.Update(runeKey('q'))
	if !next.(SessionModel).quitting || cmd == nil {
		t.Error("q should end the session")
	}
}
