package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hanj-cn/pigeonhole/internal/common"
	"github.com/hanj-cn/pigeonhole/internal/records"
)

// Move records one executed folder relocation.
type Move struct {
	RecordName string
	FolderName string
	Bucket     string
	Score      float64
	Size       float64
}

// ClassifySummary reports what a classify run did.
type ClassifySummary struct {
	StartedAt   time.Time
	Moves       []Move
	RecordCount int
	NoMatch     int
	NoBucket    int
	SkippedRows int
}

// Classify moves matched folders into their size-bucket directories.
//
// Records are processed in spreadsheet row order. For each record the base
// directory is re-enumerated and the match policy picks a folder; the bucket
// directory is created on demand and the folder renamed into it. Rows with an
// unparseable size are skipped silently. A failed move is fatal: earlier
// moves stay moved, later records are never processed, and there is no
// rollback. Callers wanting a preview must run Report first.
func Classify(ctx context.Context, req Request) (*ClassifySummary, error) {
	r := req.withDefaults()
	if err := r.validatePaths(); err != nil {
		return nil, err
	}

	all, err := records.Load(r.SpreadsheetPath)
	if err != nil {
		return nil, err
	}
	pool := records.WithSize(all)

	summary := &ClassifySummary{
		StartedAt:   time.Now(),
		RecordCount: len(pool),
		SkippedRows: len(all) - len(pool),
	}

	slog.Info("starting classify run",
		"spreadsheet", r.SpreadsheetPath,
		"base_dir", r.BaseDir,
		"records", len(pool),
		"skipped_rows", summary.SkippedRows,
		"policy", string(r.Policy))

	for i, rec := range pool {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		// The listing is taken fresh for every record: earlier moves have
		// changed the directory contents.
		folders, err := listFolders(r.BaseDir)
		if err != nil {
			return summary, err
		}

		result, ok := findFolder(rec, folders, r.Policy, *r.Threshold)
		if !ok {
			summary.NoMatch++
			r.progress(i+1, len(pool))
			continue
		}

		bucket, ok := r.Ranges.Bucket(*rec.Size)
		if !ok {
			summary.NoBucket++
			slog.Debug("size outside every range, folder left in place",
				"record", rec.Name, "size", *rec.Size)
			r.progress(i+1, len(pool))
			continue
		}

		if err := moveFolder(result.Folder.Path, filepath.Join(r.BaseDir, bucket)); err != nil {
			return summary, err
		}

		summary.Moves = append(summary.Moves, Move{
			RecordName: rec.Name,
			FolderName: result.Folder.Name,
			Bucket:     bucket,
			Score:      result.Score,
			Size:       *rec.Size,
		})
		slog.Debug("moved folder",
			"folder", result.Folder.Name, "bucket", bucket, "score", result.Score)
		r.progress(i+1, len(pool))
	}

	slog.Info("classify run complete",
		"moved", len(summary.Moves),
		"no_match", summary.NoMatch,
		"no_bucket", summary.NoBucket)
	return summary, nil
}

func (r *Request) progress(done, total int) {
	if r.Progress != nil {
		r.Progress(done, total)
	}
}

// moveFolder creates the bucket directory if absent and renames src into it.
// An existing entry at the destination is an error, not an overwrite.
func moveFolder(src, targetDir string) error {
	if err := os.MkdirAll(targetDir, 0o750); err != nil {
		return fmt.Errorf("%w: creating %s: %v", common.ErrMoveFailed, targetDir, err)
	}

	dest := filepath.Join(targetDir, filepath.Base(src))
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("%w: %s already exists", common.ErrMoveFailed, dest)
	}

	if err := os.Rename(src, dest); err != nil {
		return fmt.Errorf("%w: %s -> %s: %v", common.ErrMoveFailed, src, dest, err)
	}
	return nil
}
