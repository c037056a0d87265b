package sheets

import (
	"context"
	"log/slog"

	"github.com/hanj-cn/pigeonhole/internal/model"
)

// exportHeader mirrors the CSV report columns.
var exportHeader = []any{
	"folder_name",
	"matched_project",
	"score",
	"size",
	"target_category",
	"actual_location",
}

// Export appends the report rows, preceded by a header row, to the
// configured spreadsheet. The local CSV stays the primary output; this is an
// additional sink.
func Export(ctx context.Context, cfg Config, rows []model.ReportRow) error {
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return err
	}

	values := make([][]any, 0, len(rows)+1)
	values = append(values, exportHeader)
	for _, row := range rows {
		values = append(values, []any{
			row.FolderName,
			row.MatchedProject,
			row.Score,
			row.Size,
			row.TargetCategory,
			row.ActualLocation,
		})
	}

	if err := client.AppendRows(ctx, cfg.SpreadsheetID, cfg.sheetName(), values); err != nil {
		return err
	}

	slog.Info("exported report to Google Sheets",
		"spreadsheet_id", cfg.SpreadsheetID,
		"sheet", cfg.sheetName(),
		"rows", len(rows))
	return nil
}
