package game

import (
	"errors"
	"math"
	"testing"

	"github.com/qnkhuat/blockfall/pkg/event"
	"github.com/qnkhuat/blockfall/pkg/mino"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spawn struct {
	shape     mino.Shape
	rotations int
}

// sequence deals a fixed list of spawns, repeating the last one.
type sequence struct {
	spawns []spawn
	shapes int
	turns  int
}

func (s *sequence) Shape() mino.Shape {
	sp := s.spawns[min(s.shapes, len(s.spawns)-1)]
	s.shapes++
	return sp.shape
}

func (s *sequence) Rotations() int {
	sp := s.spawns[min(s.turns, len(s.spawns)-1)]
	s.turns++
	return sp.rotations
}

type recordingStore struct {
	saved []int
	err   error
}

func (r *recordingStore) Save(highScore int) error {
	r.saved = append(r.saved, highScore)
	return r.err
}

func newTestGame(t *testing.T, o Options, spawns ...spawn) *Game {
	t.Helper()

	if len(spawns) == 0 {
		spawns = []spawn{{mino.ShapeSquare, 0}}
	}
	o.Randomizer = &sequence{spawns: spawns}

	g, err := NewGame(o)
	require.NoError(t, err)

	return g
}

// fillRowExcept fills row y with garbage, leaving the listed columns empty.
func fillRowExcept(b *mino.Board, y int, holes ...int) {
	for x := 0; x < b.W; x++ {
		b.M[y][x] = mino.BlockGarbage
	}
	for _, x := range holes {
		b.M[y][x] = mino.BlockNone
	}
}

func TestNewGame(t *testing.T) {
	g := newTestGame(t, Options{})

	assert.Equal(t, DefaultWidth, g.Board.W)
	assert.Equal(t, DefaultHeight, g.Board.H)
	assert.Equal(t, DefaultTickInterval, g.TickInterval)
	assert.Equal(t, DefaultTickInterval, g.TicksRemaining)
	assert.Equal(t, StateRunning, g.State())
	assert.Equal(t, "SCORE:0  HIGHSCORE:0", g.ScoreText())
	assert.Equal(t, "", g.Banner())

	_, err := NewGame(Options{Width: -1})
	assert.Error(t, err)
	_, err = NewGame(Options{HighScore: -5})
	assert.Error(t, err)
	_, err = NewGame(Options{Matrix: []int{3}})
	assert.Error(t, err)
}

func TestSpawnPosition(t *testing.T) {
	g := newTestGame(t, Options{}, spawn{mino.ShapeSquare, 0})
	assert.Equal(t, mino.Point{X: 5, Y: 0}, g.P.Point, "square lifted twice")

	g = newTestGame(t, Options{}, spawn{mino.ShapeLine, 1})
	assert.Equal(t, mino.Point{X: 5, Y: 1}, g.P.Point, "vertical line lifted once")
	assert.True(t, g.P.Mino.Equal(mino.Mino{{X: 0, Y: -1}, {X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}}))

	g = newTestGame(t, Options{Width: 9}, spawn{mino.ShapeT, 0})
	assert.Equal(t, 5, g.P.X, "origin x is ceil(width/2)")

	g = newTestGame(t, Options{}, spawn{mino.ShapeSquare, 3})
	assert.True(t, g.P.Mino.Equal(mino.ShapeSquare.Offsets()), "square ignores spawn rotations")
}

func TestTryMoveWalls(t *testing.T) {
	g := newTestGame(t, Options{}, spawn{mino.ShapeT, 0})

	moves := 0
	for g.TryMove(-1, 0, 0) {
		moves++
	}
	assert.Equal(t, 4, moves)
	assert.Equal(t, 1, g.P.X)

	before := g.P
	assert.False(t, g.TryMove(-1, 0, 0))
	assert.Equal(t, before, g.P, "rejected move leaves the piece untouched")

	for g.TryMove(1, 0, 0) {
	}
	assert.Equal(t, 8, g.P.X)
}

func TestTryMoveBlocked(t *testing.T) {
	g := newTestGame(t, Options{}, spawn{mino.ShapeSquare, 0})
	require.True(t, g.Board.SetBlock(7, 0, mino.BlockGarbage))

	assert.False(t, g.TryMove(1, 0, 0))
	assert.True(t, g.TryMove(-1, 0, 0))
}

func TestRotationRejectedAtWall(t *testing.T) {
	g := newTestGame(t, Options{}, spawn{mino.ShapeLine, 1})

	for g.TryMove(-1, 0, 0) {
	}
	require.Equal(t, 0, g.P.X)

	before := g.P
	assert.False(t, g.TryMove(0, 0, mino.RotateCW))
	assert.Equal(t, before, g.P)
}

func TestHardDrop(t *testing.T) {
	g := newTestGame(t, Options{}, spawn{mino.ShapeSquare, 0})
	require.True(t, g.Board.SetBlock(5, 10, mino.BlockGarbage))

	ghost := g.Ghost()
	assert.Equal(t, mino.Point{X: 5, Y: 8}, ghost.Point)
	assert.Equal(t, mino.Point{X: 5, Y: 0}, g.P.Point, "ghost does not move the piece")

	g.ProcessAction(event.ActionHardDrop)

	for _, p := range []mino.Point{{X: 5, Y: 8}, {X: 6, Y: 8}, {X: 5, Y: 9}, {X: 6, Y: 9}} {
		assert.Equal(t, mino.BlockSquare, g.Board.Block(p.X, p.Y), "cell %s", p)
	}
	assert.Equal(t, mino.BlockNone, g.Board.Block(6, 10))
	assert.Equal(t, mino.Point{X: 5, Y: 0}, g.P.Point, "next piece spawned")
}

func TestHardDropToFloor(t *testing.T) {
	g := newTestGame(t, Options{}, spawn{mino.ShapeT, 0})

	g.HardDrop()
	assert.Equal(t, mino.BlockT, g.Board.Block(5, 19))
	assert.Equal(t, mino.BlockT, g.Board.Block(4, 18))
	assert.Equal(t, mino.BlockT, g.Board.Block(6, 18))
	assert.Equal(t, mino.BlockT, g.Board.Block(5, 18))
}

func TestSoftDropLocks(t *testing.T) {
	g := newTestGame(t, Options{}, spawn{mino.ShapeSquare, 0})

	for i := 0; i < 18; i++ {
		g.ProcessAction(event.ActionSoftDrop)
	}
	assert.Equal(t, 18, g.P.Y)
	assert.Equal(t, mino.BlockNone, g.Board.Block(5, 19))

	g.ProcessAction(event.ActionSoftDrop)
	assert.Equal(t, mino.BlockSquare, g.Board.Block(5, 19))
	assert.Equal(t, 0, g.P.Y)
}

func TestScoring(t *testing.T) {
	var locks []event.LockEvent
	store := &recordingStore{}
	g := newTestGame(t, Options{Store: store, Listener: func(e interface{}) {
		if l, ok := e.(event.LockEvent); ok {
			locks = append(locks, l)
		}
	}}, spawn{mino.ShapeLine, 0}, spawn{mino.ShapeLine, 1}, spawn{mino.ShapeSquare, 0})

	// Horizontal line fills the gap in the bottom row.
	fillRowExcept(g.Board, 19, 3, 4, 5, 6)
	require.True(t, g.TryMove(-1, 0, 0))
	g.HardDrop()

	assert.Equal(t, 10, g.Score)
	assert.Equal(t, 1, g.LinesCleared)
	assert.InDelta(t, DefaultTickInterval*SpeedFactor, g.TickInterval, 1e-9)
	assert.Equal(t, g.TickInterval, g.TicksRemaining)

	// Vertical line clears two rows at once.
	fillRowExcept(g.Board, 18, 0)
	fillRowExcept(g.Board, 19, 0)
	for g.TryMove(-1, 0, 0) {
	}
	g.HardDrop()

	assert.Equal(t, 30, g.Score)
	assert.Equal(t, 3, g.LinesCleared)
	assert.InDelta(t, DefaultTickInterval*math.Pow(SpeedFactor, 3), g.TickInterval, 1e-9)
	assert.Equal(t, mino.BlockLine, g.Board.Block(0, 19), "remaining line blocks settle")
	assert.Equal(t, mino.BlockLine, g.Board.Block(0, 18))
	assert.Equal(t, mino.BlockNone, g.Board.Block(0, 17))

	assert.Equal(t, "SCORE:30  HIGHSCORE:30", g.ScoreText())
	assert.Equal(t, []int{10, 30}, store.saved)
	require.Len(t, locks, 2)
	assert.Equal(t, event.LockEvent{Lines: 1, Score: 10, HighScore: 10}, locks[0])
	assert.Equal(t, event.LockEvent{Lines: 2, Score: 30, HighScore: 30}, locks[1])
}

func TestHighScoreKept(t *testing.T) {
	store := &recordingStore{err: errors.New("disk full")}
	g := newTestGame(t, Options{HighScore: 50, Store: store}, spawn{mino.ShapeLine, 0}, spawn{mino.ShapeSquare, 0})

	fillRowExcept(g.Board, 19, 3, 4, 5, 6)
	g.TryMove(-1, 0, 0)
	g.HardDrop()

	assert.Equal(t, 10, g.Score)
	assert.Equal(t, 50, g.HighScore)
	assert.Equal(t, []int{50}, store.saved, "store failures are not fatal")
	assert.False(t, g.Over)
}

func TestTick(t *testing.T) {
	g := newTestGame(t, Options{TickInterval: 3}, spawn{mino.ShapeSquare, 0})

	for i := 0; i < 3; i++ {
		g.Tick()
	}
	assert.Equal(t, 0, g.P.Y)
	assert.Equal(t, 0.0, g.TicksRemaining)

	g.Tick()
	assert.Equal(t, 1, g.P.Y)
	assert.Equal(t, 3.0, g.TicksRemaining)
}

func TestTickLocksAtFloor(t *testing.T) {
	g := newTestGame(t, Options{TickInterval: 1, Height: 6}, spawn{mino.ShapeSquare, 0})

	for g.P.Y < 4 {
		g.Tick()
	}
	for i := 0; i < 2; i++ {
		g.Tick()
	}

	assert.Equal(t, mino.BlockSquare, g.Board.Block(5, 5))
	assert.Equal(t, mino.BlockSquare, g.Board.Block(6, 4))
	assert.False(t, g.Over)
	assert.Equal(t, 0, g.P.Y, "next piece spawned at the top")
}

func TestTickLockOnShortBoardEndsGame(t *testing.T) {
	g := newTestGame(t, Options{TickInterval: 1, Height: 4}, spawn{mino.ShapeSquare, 0})

	for i := 0; i < 10 && !g.Over; i++ {
		g.Tick()
	}

	assert.Equal(t, mino.BlockSquare, g.Board.Block(5, 3))
	assert.True(t, g.Over, "spawn row is taken by the locked piece")
	assert.Equal(t, 2, g.P.Y)
}

func TestPause(t *testing.T) {
	var pauses []bool
	g := newTestGame(t, Options{TickInterval: 0.5, Listener: func(e interface{}) {
		if p, ok := e.(event.PauseEvent); ok {
			pauses = append(pauses, p.Paused)
		}
	}})

	g.ProcessAction(event.ActionTogglePause)
	assert.Equal(t, StatePaused, g.State())
	assert.Equal(t, "PAUSED", g.Banner())

	before := g.P
	for _, a := range []event.GameAction{event.ActionMoveLeft, event.ActionMoveRight, event.ActionSoftDrop, event.ActionRotateCW, event.ActionHardDrop} {
		g.ProcessAction(a)
	}
	for i := 0; i < 10; i++ {
		g.Tick()
	}
	assert.Equal(t, before, g.P, "paused game does not move")
	assert.Equal(t, 0.5, g.TicksRemaining)

	g.ProcessAction(event.ActionTogglePause)
	assert.Equal(t, StateRunning, g.State())
	g.ProcessAction(event.ActionMoveLeft)
	assert.Equal(t, before.X-1, g.P.X)

	assert.Equal(t, []bool{true, false}, pauses)
}

func TestSpawnCollisionIsGameOver(t *testing.T) {
	var matrix []int
	for y := 0; y < 4; y++ {
		for x := 0; x < DefaultWidth; x++ {
			matrix = append(matrix, x, y)
		}
	}

	var over []event.GameOverEvent
	g := newTestGame(t, Options{Matrix: matrix, Listener: func(e interface{}) {
		if o, ok := e.(event.GameOverEvent); ok {
			over = append(over, o)
		}
	}})

	assert.True(t, g.Over)
	assert.Equal(t, StateOver, g.State())
	assert.Equal(t, "GAME OVER!", g.Banner())
	assert.Len(t, over, 1)
}

func TestGameOverAfterLock(t *testing.T) {
	g := newTestGame(t, Options{}, spawn{mino.ShapeSquare, 0})
	for y := 2; y < g.Board.H; y++ {
		fillRowExcept(g.Board, y, 0)
	}

	g.ProcessAction(event.ActionHardDrop)
	require.True(t, g.Over)
	assert.Equal(t, mino.BlockSquare, g.Board.Block(5, 0))

	board := g.Board.Render()
	for _, a := range []event.GameAction{event.ActionMoveLeft, event.ActionSoftDrop, event.ActionHardDrop, event.ActionRotateCW} {
		g.ProcessAction(a)
	}
	g.Tick()
	assert.Equal(t, board, g.Board.Render(), "over is terminal")

	g.ProcessAction(event.ActionTogglePause)
	assert.True(t, g.Paused, "pause toggles even when over")
	assert.Equal(t, StateOver, g.State())
	assert.Equal(t, "PAUSED", g.Banner())
}

func TestDifficultyMonotonic(t *testing.T) {
	g := newTestGame(t, Options{}, spawn{mino.ShapeLine, 0})

	for n := 1; n <= 5; n++ {
		fillRowExcept(g.Board, 19, 4, 5, 6, 7)
		g.HardDrop()
		require.False(t, g.Over)

		assert.Equal(t, n, g.LinesCleared)
		assert.InDelta(t, DefaultTickInterval*math.Pow(SpeedFactor, float64(n)), g.TickInterval, 1e-9)
	}
}

func TestRandomPlayStaysInBounds(t *testing.T) {
	g, err := NewGame(Options{Randomizer: mino.NewUniform(7)})
	require.NoError(t, err)

	actions := []event.GameAction{
		event.ActionMoveLeft, event.ActionMoveRight, event.ActionSoftDrop,
		event.ActionRotateCW, event.ActionRotateCCW, event.ActionHardDrop,
	}
	r := mino.NewUniform(11)

	for i := 0; i < 5000 && !g.Over; i++ {
		g.ProcessAction(actions[int(r.Shape())%len(actions)])
		g.Tick()

		require.Len(t, g.Board.M, g.Board.H)
		for y := range g.Board.M {
			require.Len(t, g.Board.M[y], g.Board.W)
		}

		if g.Over {
			break
		}

		for _, p := range g.P.Blocks() {
			require.True(t, g.Board.InBounds(p.X, p.Y), "block %s out of bounds", p)
			require.Equal(t, mino.BlockNone, g.Board.Block(p.X, p.Y), "block %s overlaps", p)
		}
	}
}
