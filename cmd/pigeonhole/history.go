package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hanj-cn/pigeonhole/internal/cli"
	"github.com/hanj-cn/pigeonhole/internal/config"
	"github.com/hanj-cn/pigeonhole/internal/storage"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List journaled classify runs",
		Long: `Show recent classify runs from the local journal: when they ran, which
spreadsheet and base directory they used and how many folders moved. The
journal is an audit trail only; it cannot undo a run.`,
		RunE: runHistory,
	}

	cmd.Flags().IntP("limit", "n", 10, "Number of runs to show")
	cmd.Flags().Int64("moves", 0, "Show the individual moves of the given run id")

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	dbPath := viper.GetString("journal.path")
	if dbPath == "" {
		dbPath = "~/.local/share/pigeonhole/journal.db"
	}

	store, err := storage.Open(config.ExpandPath(dbPath))
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		return err
	}

	if runID, _ := cmd.Flags().GetInt64("moves"); runID > 0 {
		moves, err := store.ListMoves(ctx, runID)
		if err != nil {
			return err
		}
		if len(moves) == 0 {
			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("no moves journaled for run %d", runID)))
			return nil
		}
		var b strings.Builder
		for _, m := range moves {
			b.WriteString(fmt.Sprintf("%-30s -> %-20s (record %q, score %.4f)\n",
				m.FolderName, m.Bucket, m.RecordName, m.Score))
		}
		fmt.Println(cli.RenderBox(fmt.Sprintf("Moves of run %d", runID), strings.TrimRight(b.String(), "\n")))
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println(cli.SubtleStyle.Render("no classify runs journaled yet"))
		return nil
	}

	var b strings.Builder
	for _, r := range runs {
		b.WriteString(fmt.Sprintf("#%-4d %s  moved=%d no_match=%d no_bucket=%d skipped=%d  %s\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"),
			r.Moved, r.NoMatch, r.NoBucket, r.SkippedRows, r.SpreadsheetPath))
	}
	fmt.Println(cli.RenderBox("Classify history", strings.TrimRight(b.String(), "\n")))
	return nil
}
