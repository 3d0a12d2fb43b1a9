package event

// LockEvent follows every placement of a piece onto the board.
type LockEvent struct {
	Lines     int
	Score     int
	HighScore int
}

type PauseEvent struct {
	Paused bool
}

type GameOverEvent struct {
	Score     int
	HighScore int
}

// Listener receives simulation events synchronously, on the same thread
// that mutated the game.
type Listener func(e interface{})
