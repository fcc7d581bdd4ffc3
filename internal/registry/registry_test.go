package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/termtris/internal/core"
)

type fakeGame struct {
	title string
	timed bool
}

func (g *fakeGame) ID() string                           { return "fake" }
func (g *fakeGame) Title() string                        { return g.title }
func (g *fakeGame) Reset(core.RuntimeConfig)             {}
func (g *fakeGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *fakeGame) Render(*core.Screen)                  {}
func (g *fakeGame) State() core.GameState                { return core.GameState{} }
func (g *fakeGame) RanksByTime() bool                    { return g.timed }

func TestRegisterAndList(t *testing.T) {
	Register("zz_fake_race", func() Game { return &fakeGame{title: "Race", timed: true} })
	Register("zz_fake_endless", func() Game { return &fakeGame{title: "Endless"} })

	info, ok := Lookup("zz_fake_race")
	require.True(t, ok)
	assert.Equal(t, GameInfo{ID: "zz_fake_race", Title: "Race", Timed: true}, info)

	info, ok = Lookup("zz_fake_endless")
	require.True(t, ok)
	assert.False(t, info.Timed)

	list := List()
	require.GreaterOrEqual(t, len(list), 2)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].ID, list[i].ID, "list is ordered by id")
	}

	g, err := Create("zz_fake_race")
	require.NoError(t, err)
	assert.Equal(t, "Race", g.Title())
	assert.True(t, Exists("zz_fake_race"))
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	Register("zz_fake_once", func() Game { return &fakeGame{} })
	assert.Panics(t, func() {
		Register("zz_fake_once", func() Game { return &fakeGame{} })
	})
	assert.Panics(t, func() {
		Register("", func() Game { return &fakeGame{} })
	})
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("zz_missing")
	assert.Error(t, err)
	assert.False(t, Exists("zz_missing"))

	_, ok := Lookup("zz_missing")
	assert.False(t, ok)
}
