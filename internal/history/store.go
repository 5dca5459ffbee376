package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Run statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Entry records one completed run sweep.
type Entry struct {
	ID        int64
	StartedAt time.Time
	Duration  time.Duration
	Requested []string
	Satisfied []string
	Status    string
	Error     string
}

// DefaultPath returns the default history database path.
func DefaultPath() string {
	return filepath.Join(".rmake", "history.db")
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at  TEXT    NOT NULL,
	duration_ms INTEGER NOT NULL,
	requested   TEXT    NOT NULL,
	satisfied   TEXT    NOT NULL,
	status      TEXT    NOT NULL,
	error       TEXT    NOT NULL DEFAULT ''
);`

// Store is a sqlite-backed log of past runs.
type Store struct {
	db *sql.DB
}

// Open creates or opens the history database at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends a run entry.
func (s *Store) Record(e Entry) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (started_at, duration_ms, requested, satisfied, status, error)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.StartedAt.UTC().Format(time.RFC3339Nano),
		e.Duration.Milliseconds(),
		strings.Join(e.Requested, ","),
		strings.Join(e.Satisfied, ","),
		e.Status,
		e.Error,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, started_at, duration_ms, requested, satisfied, status, error
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			started    string
			durationMS int64
			requested  string
			satisfied  string
		)
		if err := rows.Scan(&e.ID, &started, &durationMS, &requested, &satisfied, &e.Status, &e.Error); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		e.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.Requested = splitNames(requested)
		e.Satisfied = splitNames(satisfied)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func splitNames(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
