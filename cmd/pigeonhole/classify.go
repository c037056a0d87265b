package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hanj-cn/pigeonhole/internal/cli"
	"github.com/hanj-cn/pigeonhole/internal/config"
	"github.com/hanj-cn/pigeonhole/internal/engine"
	"github.com/hanj-cn/pigeonhole/internal/model"
	"github.com/hanj-cn/pigeonhole/internal/storage"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Move matched project folders into size buckets",
		Long: `Match each spreadsheet record against the folders under the base directory
and move every matched folder into its size-bucket directory.

Moves are executed in spreadsheet row order with no rollback: a failed move
halts the run and everything already moved stays moved. Use --dry-run (or the
report command) to preview first.

Examples:
  pigeonhole classify --spreadsheet projects.xlsx
  pigeonhole classify -s projects.csv --range 0:500:Small --range 500:inf:Big
  pigeonhole classify -s projects.csv --policy best --threshold 0.85
  pigeonhole classify --dry-run`,
		RunE: runClassify,
	}

	cmd.Flags().StringP("spreadsheet", "s", "", "Spreadsheet with project names and sizes (.xlsx or .csv)")
	cmd.Flags().StringP("base-dir", "d", "", "Directory holding the project folders (default: spreadsheet's directory)")
	cmd.Flags().StringArrayP("range", "r", nil, "Size range as MIN:MAX:LABEL; repeat per bucket, MAX may be 'inf'")
	cmd.Flags().String("policy", "first", "Match policy: first (first folder over the threshold) or best")
	cmd.Flags().Float64("threshold", engine.DefaultThreshold, "Minimum similarity a folder must exceed")
	cmd.Flags().Bool("dry-run", false, "Preview as a report instead of moving anything")

	_ = viper.BindPFlag("classify.policy", cmd.Flags().Lookup("policy"))
	_ = viper.BindPFlag("classify.threshold", cmd.Flags().Lookup("threshold"))

	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	saved := loadSettings()

	spreadsheetFlag, _ := cmd.Flags().GetString("spreadsheet")
	spreadsheet, err := resolveSpreadsheet(spreadsheetFlag, saved)
	if err != nil {
		return err
	}

	baseDirFlag, _ := cmd.Flags().GetString("base-dir")
	baseDir := resolveBaseDir(baseDirFlag, spreadsheet)

	rangeFlags, _ := cmd.Flags().GetStringArray("range")
	rangeSet, err := resolveRanges(rangeFlags, saved)
	if err != nil {
		fmt.Println(cli.FormatError("invalid range configuration"))
		return err
	}

	policy := model.MatchPolicy(viper.GetString("classify.policy"))
	if err := policy.Validate(); err != nil {
		return err
	}

	threshold := viper.GetFloat64("classify.threshold")
	req := engine.Request{
		SpreadsheetPath: spreadsheet,
		BaseDir:         baseDir,
		Ranges:          rangeSet,
		Policy:          policy,
		Threshold:       &threshold,
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		rows, err := engine.Report(ctx, req)
		if err != nil {
			return err
		}
		printReportRows(rows)
		fmt.Println(cli.FormatWarning("dry run: nothing was moved"))
		return nil
	}

	var bar *progressbar.ProgressBar
	req.Progress = func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("Classifying folders..."),
			)
		}
		_ = bar.Set(done)
	}

	summary, err := engine.Classify(ctx, req)
	if err != nil {
		return err
	}

	journalRun(ctx, spreadsheet, baseDir, summary)
	rememberSettings(spreadsheet, rangeSet)

	fmt.Println(cli.FormatSuccess(fmt.Sprintf(
		"classification complete: %d moved, %d without a match, %d outside every range, %d rows skipped",
		len(summary.Moves), summary.NoMatch, summary.NoBucket, summary.SkippedRows)))
	return nil
}

// journalRun records the summary in the sqlite journal. Journal problems are
// logged but never fail the run: the moves already happened.
func journalRun(ctx context.Context, spreadsheet, baseDir string, summary *engine.ClassifySummary) {
	dbPath := viper.GetString("journal.path")
	if dbPath == "" {
		dbPath = "~/.local/share/pigeonhole/journal.db"
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.Open(dbPath)
	if err != nil {
		slog.Warn("run not journaled", "error", err)
		return
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Warn("failed to close journal", "error", closeErr)
		}
	}()

	if err := store.Migrate(ctx); err != nil {
		slog.Warn("run not journaled", "error", err)
		return
	}

	runID, err := store.RecordRun(ctx, spreadsheet, baseDir, summary)
	if err != nil {
		slog.Warn("run not journaled", "error", err)
		return
	}
	slog.Debug("run journaled", "run_id", runID, "moves", len(summary.Moves))
}

// rememberSettings persists the spreadsheet path and ranges for the next
// invocation, mirroring the last-used settings of earlier releases.
func rememberSettings(spreadsheet string, rangeSet model.RangeSet) {
	path, err := config.DefaultPath()
	if err != nil {
		return
	}
	settings := config.Settings{
		ExcelPath: spreadsheet,
		Ranges:    rangeEntries(rangeSet),
	}
	if err := config.Save(path, settings); err != nil {
		slog.Warn("failed to save settings", "error", err)
	}
}
