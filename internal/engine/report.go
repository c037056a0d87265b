package engine

import (
	"context"
	"log/slog"

	"github.com/hanj-cn/pigeonhole/internal/model"
	"github.com/hanj-cn/pigeonhole/internal/records"
)

// Report previews classification without touching the filesystem.
//
// Top-level directories of the base dir are walked once. A directory whose
// name equals a configured range label is treated as a bucket: its immediate
// subdirectories are reported with the bucket label as their actual location.
// Every other directory is reported directly, located at the base directory's
// own name. Each folder is paired with its best-matching sized record and the
// bucket that record's size maps to, or the unclassified sentinel.
func Report(ctx context.Context, req Request) ([]model.ReportRow, error) {
	r := req.withDefaults()
	if err := r.validatePaths(); err != nil {
		return nil, err
	}

	all, err := records.Load(r.SpreadsheetPath)
	if err != nil {
		return nil, err
	}
	pool := records.WithSize(all)

	top, err := listFolders(r.BaseDir)
	if err != nil {
		return nil, err
	}

	var rows []model.ReportRow
	for _, entry := range top {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if r.Ranges.HasLabel(entry.Name) {
			// Bucket directory: report its contents, one level deep only.
			inside, err := listFolders(entry.Path)
			if err != nil {
				return nil, err
			}
			for _, folder := range inside {
				if row, ok := reportRow(folder.Name, entry.Name, pool, r.Ranges); ok {
					rows = append(rows, row)
				}
			}
			continue
		}

		if row, ok := reportRow(entry.Name, baseName(r.BaseDir), pool, r.Ranges); ok {
			rows = append(rows, row)
		}
	}

	slog.Info("report generated",
		"folders", len(rows),
		"records", len(pool),
		"base_dir", r.BaseDir)
	return rows, nil
}

func reportRow(folderName, actualLocation string, pool []model.Record, ranges model.RangeSet) (model.ReportRow, bool) {
	rec, score, ok := bestMatchRecord(folderName, pool)
	if !ok {
		return model.ReportRow{}, false
	}
	return model.ReportRow{
		FolderName:     folderName,
		MatchedProject: rec.Name,
		Score:          score,
		Size:           *rec.Size,
		TargetCategory: ranges.BucketOrUnclassified(*rec.Size),
		ActualLocation: actualLocation,
	}, true
}
