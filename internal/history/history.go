// Package history keeps a SQLite audit log of dispatch outcomes.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/harits/aksi/pkg/dispatcher"
)

const schema = `
CREATE TABLE IF NOT EXISTS dispatches (
	id         TEXT PRIMARY KEY,
	query      TEXT NOT NULL,
	success    INTEGER NOT NULL,
	narrative  TEXT NOT NULL,
	error      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_dispatches_created_at ON dispatches(created_at);
`

// Entry is one recorded dispatch.
type Entry struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Success   bool      `json:"success"`
	Narrative string    `json:"narrative"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists dispatch outcomes. It implements dispatcher.Recorder.
type Store struct {
	db *sql.DB
}

// Open opens (and migrates) the store at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate history db: %w", err)
	}

	log.Info().Str("path", path).Msg("History store opened")
	return &Store{db: db}, nil
}

// Record stores one outcome.
func (s *Store) Record(ctx context.Context, outcome dispatcher.Outcome) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO dispatches (id, query, success, narrative, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		outcome.ID, outcome.Query, outcome.Success, outcome.Narrative, outcome.Error, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record dispatch: %w", err)
	}
	return nil
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, success, narrative, error, created_at
		 FROM dispatches ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Query, &e.Success, &e.Narrative, &e.Error, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
