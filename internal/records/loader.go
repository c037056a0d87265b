// Package records loads (name, size) project records from tabular sources.
package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hanj-cn/pigeonhole/internal/common"
	"github.com/hanj-cn/pigeonhole/internal/model"
)

const bom = "\uFEFF"

// Load reads the first two columns of the spreadsheet at path into records.
// No header row is assumed and extra columns are ignored. A row whose size
// cell does not parse as a number is kept with a nil size; such records are
// excluded from matching by both engines. A source that cannot be opened or
// parsed at all returns common.ErrSpreadsheetRead.
func Load(path string) ([]model.Record, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readExcel(path)
	default:
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrSpreadsheetRead, path, err)
	}

	records := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		rec := model.Record{Name: strings.TrimPrefix(row[0], bom)}
		if len(row) > 1 {
			if size, parseErr := parseSize(row[1]); parseErr == nil {
				rec.Size = &size
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// WithSize filters records down to those usable for matching.
func WithSize(records []model.Record) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if r.HasSize() {
			out = append(out, r)
		}
	}
	return out
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

func parseSize(cell string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(cell), 64)
}
