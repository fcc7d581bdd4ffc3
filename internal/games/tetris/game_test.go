package tetris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/termtris/internal/config"
	"github.com/vovakirdan/termtris/internal/core"
	"github.com/vovakirdan/termtris/internal/games/tetris/piece"
	"github.com/vovakirdan/termtris/internal/registry"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     12345,
	}
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestGamesRegistered(t *testing.T) {
	for _, id := range []string{IDMarathon, IDSprint} {
		g, err := registry.Create(id)
		require.NoError(t, err)
		assert.Equal(t, id, g.ID())
	}

	sprint, ok := registry.Lookup(IDSprint)
	require.True(t, ok)
	assert.True(t, sprint.Timed)
	marathon, ok := registry.Lookup(IDMarathon)
	require.True(t, ok)
	assert.False(t, marathon.Timed)
}

func TestGameReset(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	st := g.State()
	assert.Equal(t, 0, st.Score)
	assert.Equal(t, 0, st.Level)
	assert.False(t, st.GameOver)
	assert.False(t, st.Paused)

	snap := g.Snapshot()
	assert.Equal(t, StatePlaying, snap.State)
	assert.Equal(t, "marathon", snap.Mode)
	assert.Equal(t, piece.North, snap.Piece.Orientation)
}

func TestGameStartLevelAndPreset(t *testing.T) {
	g := New()
	g.SetStartLevel(7)
	g.Reset(testRuntime())
	assert.Equal(t, 7, g.State().Level)

	SetDifficultyPreset(config.DifficultyHard)
	t.Cleanup(func() { SetDifficultyPreset("") })

	h := New()
	h.Reset(testRuntime())
	assert.Equal(t, 10, h.State().Level)
}

func TestGameGravity(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	y := g.Engine().Current().Y

	// Level 0 hangs one second per row: 60 ticks at 60 ticks per second.
	for range 59 {
		g.Step(frame())
	}
	assert.Equal(t, y, g.Engine().Current().Y)

	g.Step(frame())
	assert.Equal(t, y+1, g.Engine().Current().Y)
}

func TestGamePause(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	y := g.Engine().Current().Y

	g.Step(frame(core.ActionPause))
	assert.True(t, g.State().Paused)
	assert.Equal(t, StatePaused, g.Snapshot().State)

	for range 120 {
		g.Step(frame(core.ActionSoftDrop))
	}
	assert.Equal(t, y, g.Engine().Current().Y, "paused game must not move")

	g.Step(frame(core.ActionPause))
	assert.False(t, g.State().Paused)
}

func TestGameMoves(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	x := g.Engine().Current().X

	g.Step(frame(core.ActionLeft))
	assert.Equal(t, x-1, g.Engine().Current().X)

	g.Step(frame(core.ActionRight))
	assert.Equal(t, x, g.Engine().Current().X)

	o := g.Engine().Current().Orientation
	g.Step(frame(core.ActionRotateCW))
	assert.Equal(t, o.Next(), g.Engine().Current().Orientation)
	g.Step(frame(core.ActionRotateCCW))
	assert.Equal(t, o, g.Engine().Current().Orientation)
}

func TestGameSoftDropLocks(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	g.state = NewState(0, only(piece.KindO))

	for range DefaultHeight {
		g.Step(frame(core.ActionSoftDrop))
	}
	assert.Equal(t, 4, g.Engine().Field().FilledCount())
}

func TestGameHardDrop(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	g.Step(frame(core.ActionHardDrop))
	assert.Equal(t, 4, g.Engine().Field().FilledCount())
	assert.Greater(t, g.State().Score, 0)
}

func TestSprintWins(t *testing.T) {
	g := NewSprint()
	g.Reset(testRuntime())
	g.cfg.Sprint.Lines = 1
	g.state = NewState(0, only(piece.KindI))
	fillRow(g.state.field, 19, 5, 6, 7, 8)

	g.Step(frame(core.ActionHardDrop))

	assert.Equal(t, 1, g.State().Lines)
	assert.True(t, g.State().GameOver)
	assert.Equal(t, StateWin, g.Snapshot().State)

	// Finished games ignore input until the platform restarts them.
	x := g.Engine().Current().X
	g.Step(frame(core.ActionLeft))
	assert.Equal(t, x, g.Engine().Current().X)
}

func TestGameOverSnapshot(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	g.state = NewState(0, only(piece.KindI))
	for y := 4; y < 20; y++ {
		fillRow(g.state.field, y, 9)
	}

	g.Step(frame(core.ActionHardDrop))
	assert.True(t, g.State().GameOver)
	assert.Equal(t, StateGameOver, g.Snapshot().State)
}

func TestGameDeterministic(t *testing.T) {
	script := []core.Action{
		core.ActionLeft, core.ActionRotateCW, core.ActionHardDrop,
		core.ActionRight, core.ActionRight, core.ActionHardDrop,
		core.ActionRotateCCW, core.ActionSoftDrop, core.ActionHardDrop,
	}

	run := func() Snapshot {
		g := New()
		g.Reset(testRuntime())
		for i := range 600 {
			if i%20 == 0 {
				g.Step(frame(script[(i/20)%len(script)]))
				continue
			}
			g.Step(frame())
		}
		return g.Snapshot()
	}

	assert.Equal(t, run(), run())
}

func TestGameTooSmall(t *testing.T) {
	g := New()
	rc := testRuntime()
	rc.ScreenW = 30
	g.Reset(rc)

	assert.True(t, g.State().Paused)
	assert.Equal(t, StatePausedSmall, g.Snapshot().State)

	screen := core.NewScreen(rc.ScreenW, rc.ScreenH)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Window too small")
}

func TestGameRender(t *testing.T) {
	g := New()
	rc := testRuntime()
	g.Reset(rc)

	screen := core.NewScreen(rc.ScreenW, rc.ScreenH)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"T E T R I S", "SCORE", "LINES", "LEVEL", "NEXT", "█", "░"} {
		assert.Contains(t, out, want)
	}

	g.Step(frame(core.ActionPause))
	g.Render(screen)
	assert.Contains(t, screen.String(), "PAUSED")
}

func TestElapsed(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	g.playTicks = 60*75 + 30

	assert.Equal(t, "1:15.5", g.elapsed())
	assert.Equal(t, "0:00.0", FormatDuration(0))
	assert.Equal(t, "10:00.0", FormatDuration(10*time.Minute))
}

func TestSprintClockSkipsPauses(t *testing.T) {
	g := NewSprint()
	g.Reset(testRuntime())

	for range 60 {
		g.Step(frame())
	}
	assert.Equal(t, time.Second, g.State().PlayTime)

	g.Step(frame(core.ActionPause))
	for range 600 {
		g.Step(frame())
	}
	assert.Equal(t, time.Second, g.State().PlayTime)
	assert.Equal(t, "0:01.0", g.elapsed())

	// The unpausing tick is played.
	g.Step(frame(core.ActionPause))
	assert.Equal(t, uint64(61), g.Snapshot().Play)
	assert.Equal(t, uint64(662), g.Snapshot().Tick)
}

func TestSprintClockStopsAtGoal(t *testing.T) {
	g := NewSprint()
	g.Reset(testRuntime())
	for range 30 {
		g.Step(frame())
	}

	g.cfg.Sprint.Lines = 1
	g.state = NewState(0, only(piece.KindI))
	fillRow(g.state.field, 19, 5, 6, 7, 8)
	g.Step(frame(core.ActionHardDrop))

	st := g.State()
	require.True(t, st.Won)
	assert.Equal(t, 31*time.Second/60, st.PlayTime)
	atGoal := g.elapsed()

	for range 600 {
		g.Step(frame())
	}
	assert.Equal(t, st.PlayTime, g.State().PlayTime)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Time "+atGoal)
}

func TestClockStopsWhenWindowTooSmall(t *testing.T) {
	g := New()
	g.Reset(testRuntime())
	g.Step(frame())

	g.Resize(30, 24)
	for range 120 {
		g.Step(frame())
	}
	assert.Equal(t, time.Second/60, g.State().PlayTime)
	assert.False(t, g.State().Won)
}
