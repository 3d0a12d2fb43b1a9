package pkg

import (
	"time"

	"github.com/qnkhuat/blockfall/pkg/config"
	"github.com/qnkhuat/blockfall/pkg/event"
	"github.com/qnkhuat/blockfall/pkg/game"
	"github.com/qnkhuat/blockfall/pkg/mino"
	"github.com/qnkhuat/blockfall/pkg/store"
	"github.com/rs/zerolog/log"
)

// Session is one game together with the store its high score is kept in.
type Session struct {
	Game  *game.Game
	Store store.Store
}

// NewSession starts a game from c. An unusable high score store is logged
// and replaced by an in-memory one.
func NewSession(c *config.Config, listener event.Listener) (*Session, error) {
	path := c.StoreLocation()

	st, err := store.Open(c.Store, path)
	if err != nil {
		log.Warn().Err(err).Str("store", c.Store).Str("path", path).Msg("failed to open high score store")
		st = store.NewMemoryStore()
	}

	highScore, err := st.Load()
	if err != nil {
		log.Warn().Err(err).Str("store", c.Store).Str("path", path).Msg("failed to load high score")
		highScore = 0
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r, err := mino.NewRandomizer(c.Randomizer, seed)
	if err != nil {
		st.Close()
		return nil, err
	}

	g, err := game.NewGame(game.Options{
		Width:        c.Width,
		Height:       c.Height,
		TickInterval: c.Tick,
		HighScore:    highScore,
		Matrix:       c.Matrix,
		Randomizer:   r,
		Store:        st,
		Listener:     listener,
	})
	if err != nil {
		st.Close()
		return nil, err
	}

	log.Info().
		Int64("seed", seed).
		Str("randomizer", c.Randomizer).
		Int("highscore", highScore).
		Msgf("new %dx%d game", c.Width, c.Height)

	return &Session{Game: g, Store: st}, nil
}

func (s *Session) Close() error {
	return s.Store.Close()
}
