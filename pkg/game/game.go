package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/qnkhuat/blockfall/pkg/event"
	"github.com/qnkhuat/blockfall/pkg/mino"
	"github.com/rs/zerolog/log"
)

const (
	DefaultWidth        = 10
	DefaultHeight       = 20
	DefaultTickInterval = 120.0 // Frames per automatic drop

	SpeedFactor   = 0.99
	PointsPerLine = 10
	SpawnY        = 2
	spawnLift     = 2
)

type State int

const (
	StateRunning State = iota
	StatePaused
	StateOver
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateOver:
		return "Over"
	default:
		return "Unknown"
	}
}

// HighScoreStore receives the high score after every placement.
type HighScoreStore interface {
	Save(highScore int) error
}

type Options struct {
	Width        int
	Height       int
	TickInterval float64
	HighScore    int

	// Matrix pre-fills the board with garbage cells, as x,y pairs.
	Matrix []int

	Randomizer mino.Randomizer
	Store      HighScoreStore
	Listener   event.Listener
}

// Game is the simulation. It is not safe for concurrent use: ticks, actions
// and rendering must all run on one goroutine.
type Game struct {
	Board *mino.Board
	P     mino.Piece

	Score        int
	HighScore    int
	LinesCleared int

	TickInterval   float64
	TicksRemaining float64

	Over   bool
	Paused bool

	rand     mino.Randomizer
	store    HighScoreStore
	listener event.Listener
}

func NewGame(o Options) (*Game, error) {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.TickInterval == 0 {
		o.TickInterval = DefaultTickInterval
	}

	if o.Width < 0 || o.Height < 0 {
		return nil, fmt.Errorf("invalid board size %dx%d", o.Width, o.Height)
	} else if o.TickInterval < 0 {
		return nil, errors.New("tick interval must be positive")
	} else if o.HighScore < 0 {
		return nil, errors.New("high score must not be negative")
	}

	if o.Randomizer == nil {
		o.Randomizer = mino.NewUniform(time.Now().UnixNano())
	}

	g := &Game{
		Board:        mino.NewBoard(o.Width, o.Height),
		HighScore:    o.HighScore,
		TickInterval: o.TickInterval,
		rand:         o.Randomizer,
		store:        o.Store,
		listener:     o.Listener,
	}

	if len(o.Matrix) > 0 {
		if err := g.Board.Fill(o.Matrix); err != nil {
			return nil, fmt.Errorf("failed to pre-fill board: %w", err)
		}
	}

	g.spawn()
	g.TicksRemaining = g.TickInterval

	return g, nil
}

func (g *Game) State() State {
	switch {
	case g.Over:
		return StateOver
	case g.Paused:
		return StatePaused
	default:
		return StateRunning
	}
}

// ScoreText is the line shown in the score display.
func (g *Game) ScoreText() string {
	return fmt.Sprintf("SCORE:%d  HIGHSCORE:%d", g.Score, g.HighScore)
}

// Banner returns the overlay text for the current state, or an empty string
// while running. Paused takes precedence over Over.
func (g *Game) Banner() string {
	switch {
	case g.Paused:
		return "PAUSED"
	case g.Over:
		return "GAME OVER!"
	default:
		return ""
	}
}

// ProcessAction applies a discrete command. Everything except
// ActionTogglePause is ignored while paused or over.
func (g *Game) ProcessAction(a event.GameAction) {
	if a == event.ActionTogglePause {
		g.TogglePause()
		return
	} else if g.Over || g.Paused {
		return
	}

	switch a {
	case event.ActionMoveLeft:
		g.TryMove(-1, 0, 0)
	case event.ActionMoveRight:
		g.TryMove(1, 0, 0)
	case event.ActionSoftDrop:
		g.Advance()
	case event.ActionRotateCW:
		g.TryMove(0, 0, mino.RotateCW)
	case event.ActionRotateCCW:
		g.TryMove(0, 0, mino.RotateCCW)
	case event.ActionHardDrop:
		g.HardDrop()
	}
}

// TogglePause flips the paused flag. It also works once the game is over.
func (g *Game) TogglePause() {
	g.Paused = !g.Paused

	log.Info().Bool("paused", g.Paused).Bool("over", g.Over).Msg("toggled pause")
	g.emit(event.PauseEvent{Paused: g.Paused})
}

// Tick runs once per frame. When the countdown drops below zero the active
// piece advances one row.
func (g *Game) Tick() {
	if g.Over || g.Paused {
		return
	}

	g.TicksRemaining--
	if g.TicksRemaining < 0 {
		g.Advance()
		g.TicksRemaining = g.TickInterval
	}
}

// TryMove moves and rotates the active piece when the result fits on the
// board, and reports whether it did.
func (g *Game) TryMove(dx int, dy int, rotation int) bool {
	candidate := g.P.Moved(dx, dy, rotation)
	if g.Board.Collides(candidate) {
		return false
	}

	g.P = candidate
	return true
}

// Advance lowers the active piece one row when possible, otherwise the
// piece is locked.
func (g *Game) Advance() {
	if !g.TryMove(0, 1, 0) {
		g.lock()
	}
}

func (g *Game) HardDrop() {
	g.P = g.drop(g.P)
	g.lock()
}

// Ghost returns a copy of the active piece moved down as far as it can
// fall. The active piece is not modified.
func (g *Game) Ghost() mino.Piece {
	return g.drop(g.P)
}

func (g *Game) drop(p mino.Piece) mino.Piece {
	for {
		next := p.Moved(0, 1, 0)
		if g.Board.Collides(next) {
			return p
		}

		p = next
	}
}

func (g *Game) lock() {
	g.Board.Place(g.P)

	cleared := g.Board.ClearFilled()

	g.LinesCleared += cleared
	g.Score += cleared * PointsPerLine
	if g.Score > g.HighScore {
		g.HighScore = g.Score
	}
	for i := 0; i < cleared; i++ {
		g.TickInterval *= SpeedFactor
	}

	if g.store != nil {
		if err := g.store.Save(g.HighScore); err != nil {
			log.Warn().Err(err).Int("highscore", g.HighScore).Msg("failed to save high score")
		}
	}

	log.Debug().
		Str("piece", g.P.String()).
		Int("lines", cleared).
		Int("score", g.Score).
		Float64("tick", g.TickInterval).
		Msg("locked piece")

	g.emit(event.LockEvent{Lines: cleared, Score: g.Score, HighScore: g.HighScore})

	g.spawn()
	g.TicksRemaining = g.TickInterval
}

// spawn replaces the active piece with a fresh one at the top of the board.
// The game is over when the new piece collides where it lands.
func (g *Game) spawn() bool {
	p := mino.NewPiece(g.rand.Shape(), mino.Point{X: (g.Board.W + 1) / 2, Y: SpawnY})
	for i := g.rand.Rotations(); i > 0; i-- {
		p.Mino = p.RotatedOffsets(mino.RotateCW)
	}
	g.P = p

	for i := 0; i < spawnLift; i++ {
		g.TryMove(0, -1, 0)
	}

	if g.Board.Collides(g.P) {
		g.setGameOver()
		return false
	}

	return true
}

func (g *Game) setGameOver() {
	if g.Over {
		return
	}

	g.Over = true

	log.Info().Int("score", g.Score).Int("highscore", g.HighScore).Int("lines", g.LinesCleared).Msg("game over")
	g.emit(event.GameOverEvent{Score: g.Score, HighScore: g.HighScore})
}

func (g *Game) emit(e interface{}) {
	if g.listener == nil {
		return
	}

	g.listener(e)
}
