package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
)

const highScoreKey = "highscore"

// SQLiteStore keeps the high score in a key/value table.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(dsn string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dsn); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL);`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create kv: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load() (int, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key=?`, highScoreKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	} else if err != nil {
		return 0, fmt.Errorf("query %s: %w", highScoreKey, err)
	}

	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("malformed %s %q", highScoreKey, value)
	}

	return n, nil
}

func (s *SQLiteStore) Save(highScore int) error {
	_, err := s.db.Exec(
		`INSERT INTO kv(key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		highScoreKey, strconv.Itoa(highScore),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", highScoreKey, err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
