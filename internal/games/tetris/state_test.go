package tetris

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/termtris/internal/core"
	"github.com/vovakirdan/termtris/internal/games/tetris/piece"
)

// seqRand replays a fixed sequence of picks.
type seqRand struct {
	seq []int
	i   int
}

func (r *seqRand) Intn(n int) int {
	v := r.seq[r.i%len(r.seq)] % n
	r.i++
	return v
}

func only(k piece.Kind) *seqRand {
	return &seqRand{seq: []int{int(k)}}
}

func allKinds() []piece.Kind {
	kinds := make([]piece.Kind, 0, piece.KindCount)
	for k := piece.KindI; k < piece.KindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func TestNewStateSpawn(t *testing.T) {
	s := NewState(0, &seqRand{seq: []int{int(piece.KindT), int(piece.KindI)}})

	cur := s.Current()
	assert.Equal(t, piece.KindT, cur.Kind)
	assert.Equal(t, piece.North, cur.Orientation)
	assert.Equal(t, DefaultSpawnX, cur.X)
	assert.Equal(t, DefaultSpawnY, cur.Y)
	assert.Equal(t, piece.KindI, s.Next())
	assert.Equal(t, 0, s.Level())
	assert.False(t, s.GameOver())

	view := s.CurrentView()
	require.Equal(t, 4, view.FilledCount())

	// .X. / XXX offset by (5, 3)
	for _, pt := range []piece.Point{{X: 6, Y: 3}, {X: 5, Y: 4}, {X: 6, Y: 4}, {X: 7, Y: 4}} {
		assert.Equal(t, core.ColorBlue, view.At(pt.X, pt.Y), "cell %v", pt)
	}
}

func TestNewStateEveryKind(t *testing.T) {
	for _, k := range allKinds() {
		t.Run(k.String(), func(t *testing.T) {
			s := NewState(0, only(k))
			view := s.CurrentView()
			assert.Equal(t, 4, view.FilledCount())

			def := piece.Lookup(k)
			for _, pt := range def.Mask.Cells() {
				assert.Equal(t, def.Color, view.At(pt.X+DefaultSpawnX, pt.Y+DefaultSpawnY))
			}
		})
	}
}

func TestMoveLeftToWall(t *testing.T) {
	for _, k := range allKinds() {
		t.Run(k.String(), func(t *testing.T) {
			s := NewState(0, only(k))

			for i := range 5 {
				require.NoError(t, s.MoveLeft(), "move %d", i+1)
			}
			assert.Equal(t, 0, s.Current().X)

			leftmost := s.Field().Width()
			view := s.CurrentView()
			for y := range view.Height() {
				for x := range view.Width() {
					if view.Filled(x, y) && x < leftmost {
						leftmost = x
					}
				}
			}
			assert.Equal(t, 0, leftmost)

			before := s.Current()
			assert.ErrorIs(t, s.MoveLeft(), ErrOutOfBounds)
			assert.Equal(t, before, s.Current(), "rejected move must not change the piece")
		})
	}
}

func TestMoveRightToWall(t *testing.T) {
	s := NewState(0, only(piece.KindI))

	// I is four wide: x=6 puts its last cell in column 9.
	require.NoError(t, s.MoveRight())
	assert.Equal(t, 6, s.Current().X)
	assert.ErrorIs(t, s.MoveRight(), ErrOutOfBounds)
	assert.Equal(t, 6, s.Current().X)
}

func TestMoveLeftThenRight(t *testing.T) {
	s := NewState(0, only(piece.KindS))
	x := s.Current().X

	require.NoError(t, s.MoveLeft())
	require.NoError(t, s.MoveRight())
	assert.Equal(t, x, s.Current().X)
}

func TestRotateFullCycle(t *testing.T) {
	for _, k := range allKinds() {
		t.Run(k.String(), func(t *testing.T) {
			s := NewState(0, only(k))
			start := s.Current()
			startMask, startW, startH := start.Shape()

			for range 4 {
				require.NoError(t, s.RotateClockwise())
			}

			cur := s.Current()
			assert.Equal(t, start, cur)
			m, w, h := cur.Shape()
			assert.Equal(t, startMask, m)
			assert.Equal(t, startW, w)
			assert.Equal(t, startH, h)
		})
	}
}

func TestRotateDirections(t *testing.T) {
	s := NewState(0, only(piece.KindT))

	require.NoError(t, s.RotateClockwise())
	assert.Equal(t, piece.East, s.Current().Orientation)

	require.NoError(t, s.RotateCounterclockwise())
	require.NoError(t, s.RotateCounterclockwise())
	assert.Equal(t, piece.West, s.Current().Orientation)
}

func TestRotateOutOfBounds(t *testing.T) {
	s := NewState(0, only(piece.KindI))

	for s.DropOneRow() == nil {
	}
	require.Equal(t, DefaultHeight-1, s.Current().Y)

	// Standing the I up would need four rows below y=19.
	assert.ErrorIs(t, s.RotateClockwise(), ErrOutOfBounds)
	assert.Equal(t, piece.North, s.Current().Orientation)
}

func TestMoveBlocked(t *testing.T) {
	s := NewState(0, only(piece.KindT))
	s.field.Set(4, 4, core.ColorGray)

	before := s.Current()
	assert.ErrorIs(t, s.MoveLeft(), ErrBlocked)
	assert.Equal(t, before, s.Current())
}

func TestDropOneRowNeverLocks(t *testing.T) {
	s := NewState(0, only(piece.KindO))

	var err error
	for err == nil {
		err = s.DropOneRow()
	}
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.Equal(t, DefaultHeight-2, s.Current().Y)
	assert.Equal(t, 0, s.Field().FilledCount())
}

func TestCurrentViewDoesNotMutate(t *testing.T) {
	s := NewState(0, only(piece.KindL))

	first := s.CurrentView()
	second := s.CurrentView()
	assert.True(t, first.Equal(second))
	assert.Equal(t, 0, s.Field().FilledCount())

	first.Set(0, 0, core.ColorRed)
	assert.Equal(t, 0, s.Field().FilledCount(), "view must be a copy")
}

func TestFieldReturnsCopy(t *testing.T) {
	s := NewState(0, only(piece.KindL))
	f := s.Field()
	f.Set(0, 0, core.ColorRed)
	assert.False(t, s.Field().Filled(0, 0))
}

func TestOptions(t *testing.T) {
	s := NewState(3, only(piece.KindO),
		WithFieldSize(6, 8),
		WithSpawn(1, 0),
		WithLineScores(0, 1, 2, 3, 4),
		WithHardDropPoints(0),
	)

	assert.Equal(t, 6, s.Field().Width())
	assert.Equal(t, 8, s.Field().Height())
	assert.Equal(t, 1, s.Current().X)
	assert.Equal(t, 0, s.Current().Y)
	assert.Equal(t, 3, s.Level())

	// Fill the bottom rows except where the O will land.
	for y := 6; y < 8; y++ {
		for x := range 6 {
			if x != 1 && x != 2 {
				s.field.Set(x, y, core.ColorGray)
			}
		}
	}

	rows, res := s.HardDrop()
	assert.Equal(t, 6, rows)
	assert.Equal(t, 2, res.Cleared)
	assert.Equal(t, 2*4, res.Points)
	assert.Equal(t, 8, s.Score())
}

func TestNegativeLevelClamped(t *testing.T) {
	s := NewState(-3, only(piece.KindO))
	assert.Equal(t, 0, s.Level())
}

func TestNilRandomizer(t *testing.T) {
	s := NewState(0, nil)
	assert.Equal(t, 4, s.CurrentView().FilledCount())
}

func TestDeterministicWithSeed(t *testing.T) {
	play := func() *State {
		s := NewState(0, rand.New(rand.NewSource(42)))
		for i := range 30 {
			switch i % 3 {
			case 0:
				_ = s.MoveLeft()
			case 1:
				_ = s.RotateClockwise()
			}
			s.HardDrop()
		}
		return s
	}

	a, b := play(), play()
	assert.Equal(t, a.Field().String(), b.Field().String())
	assert.Equal(t, a.Score(), b.Score())
	assert.Equal(t, a.Current(), b.Current())
	assert.Equal(t, a.Next(), b.Next())
}
