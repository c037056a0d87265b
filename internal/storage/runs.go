package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/hanj-cn/pigeonhole/internal/engine"
)

// Run is one journaled classify run.
type Run struct {
	StartedAt       time.Time
	SpreadsheetPath string
	BaseDir         string
	ID              int64
	Moved           int
	NoMatch         int
	NoBucket        int
	SkippedRows     int
}

// RecordRun writes a classify summary and its moves in one transaction and
// returns the new run id.
func (s *Store) RecordRun(ctx context.Context, spreadsheetPath, baseDir string, summary *engine.ClassifySummary) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin journal transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, spreadsheet_path, base_dir, moved, no_match, no_bucket, skipped_rows)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		summary.StartedAt, spreadsheetPath, baseDir,
		len(summary.Moves), summary.NoMatch, summary.NoBucket, summary.SkippedRows)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	for _, move := range summary.Moves {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO moves (run_id, record_name, folder_name, bucket, score, size)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			runID, move.RecordName, move.FolderName, move.Bucket, move.Score, move.Size); err != nil {
			return 0, fmt.Errorf("failed to insert move: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit journal transaction: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, spreadsheet_path, base_dir, moved, no_match, no_bucket, skipped_rows
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.SpreadsheetPath, &r.BaseDir,
			&r.Moved, &r.NoMatch, &r.NoBucket, &r.SkippedRows); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ListMoves returns the moves journaled for one run, in execution order.
func (s *Store) ListMoves(ctx context.Context, runID int64) ([]engine.Move, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT record_name, folder_name, bucket, score, size
		 FROM moves WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list moves: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var moves []engine.Move
	for rows.Next() {
		var m engine.Move
		if err := rows.Scan(&m.RecordName, &m.FolderName, &m.Bucket, &m.Score, &m.Size); err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, m)
	}
	return moves, rows.Err()
}
