package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/Tiliavir/trivial-progress-tracker/internal/model"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// SQLite stores the collection in an sqlite database, one row per entry,
// ordered by position.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the schema.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("storage: sqlite create dir: %w", err)
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: sqlite open: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("storage: sqlite pragma %q: %w", p, err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			position  INTEGER PRIMARY KEY,
			timestamp TEXT    NOT NULL,
			category  TEXT    NOT NULL,
			log       TEXT    NOT NULL,
			xp        INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_entries_timestamp ON entries(timestamp);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: sqlite migration: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Load returns all entries in position order.
func (s *SQLite) Load() ([]model.Entry, error) {
	rows, err := s.db.Query(`SELECT timestamp, category, log, xp FROM entries ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("storage: sqlite load: %w", err)
	}
	defer rows.Close()

	entries := []model.Entry{}
	for rows.Next() {
		var e model.Entry
		if err := rows.Scan(&e.Timestamp, &e.Category, &e.Log, &e.XP); err != nil {
			return nil, fmt.Errorf("storage: sqlite scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: sqlite load: %w", err)
	}
	return entries, nil
}

// Save replaces every row inside a single transaction.
func (s *SQLite) Save(entries []model.Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: sqlite begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("storage: sqlite clear: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO entries (position, timestamp, category, log, xp) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("storage: sqlite prepare: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.Exec(i, e.Timestamp, e.Category, e.Log, e.XP); err != nil {
			return fmt.Errorf("storage: sqlite insert %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: sqlite commit: %w", err)
	}
	return nil
}
