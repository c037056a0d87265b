// Package storage persists the classify run journal in SQLite.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Store is the SQLite-backed run journal. It is an audit trail of executed
// moves, not a rollback mechanism.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open creates (or opens) the journal database at dbPath.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("journal path must not be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	// SQLite does not benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping journal: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the journal schema if it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TIMESTAMP NOT NULL,
			spreadsheet_path TEXT NOT NULL,
			base_dir TEXT NOT NULL,
			moved INTEGER NOT NULL,
			no_match INTEGER NOT NULL,
			no_bucket INTEGER NOT NULL,
			skipped_rows INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS moves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			record_name TEXT NOT NULL,
			folder_name TEXT NOT NULL,
			bucket TEXT NOT NULL,
			score REAL NOT NULL,
			size REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_moves_run_id ON moves(run_id)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate journal: %w", err)
		}
	}
	return nil
}
