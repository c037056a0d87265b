// Package report serializes report rows to a BOM-prefixed CSV file.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hanj-cn/pigeonhole/internal/model"
)

// FilePrefix is the fixed leading portion of every report filename.
const FilePrefix = "classification-preview-"

// timeLayout renders the run time as zero-padded HH-MM-SS, no date.
const timeLayout = "15-04-05"

// header is the fixed column order of the report.
var header = []string{
	"folder_name",
	"matched_project",
	"score",
	"size",
	"target_category",
	"actual_location",
}

// Write serializes rows into dir and returns the full path of the file. The
// file starts with a UTF-8 BOM so spreadsheet applications detect the
// encoding, then a header row, then one row per folder in input order.
func Write(rows []model.ReportRow, dir string, now time.Time) (string, error) {
	path := filepath.Join(dir, FilePrefix+now.Format(timeLayout)+".csv")

	f, err := os.Create(path) // #nosec G304
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString("\uFEFF"); err != nil {
		return "", fmt.Errorf("failed to write BOM: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.FolderName,
			row.MatchedProject,
			strconv.FormatFloat(row.Score, 'f', 4, 64),
			strconv.FormatFloat(row.Size, 'f', -1, 64),
			row.TargetCategory,
			row.ActualLocation,
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush report: %w", err)
	}
	return path, nil
}

// DefaultDir picks where the report lands: the user's Desktop, the localized
// Desktop name as shipped on Chinese Windows installs, then the directory of
// the input spreadsheet. The desktop lookup is a convenience, not a contract.
func DefaultDir(spreadsheetPath string) string {
	if home, err := os.UserHomeDir(); err == nil {
		for _, name := range []string{"Desktop", "桌面"} {
			candidate := filepath.Join(home, name)
			if info, statErr := os.Stat(candidate); statErr == nil && info.IsDir() {
				return candidate
			}
		}
	}
	return filepath.Dir(spreadsheetPath)
}
