// Package store keeps the high score between runs.
package store

import (
	"fmt"
)

const (
	KindFile   = "file"
	KindSQLite = "sqlite"
	KindMemory = "memory"
)

// Store persists a single high score. Load on a store that has never been
// saved returns 0 and no error.
type Store interface {
	Load() (int, error)
	Save(highScore int) error
	Close() error
}

func Open(kind string, path string) (Store, error) {
	switch kind {
	case KindFile:
		return NewFileStore(path), nil
	case KindSQLite:
		return OpenSQLite(path)
	case KindMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store %q", kind)
	}
}
