package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hanj-cn/pigeonhole/internal/cli"
	"github.com/hanj-cn/pigeonhole/internal/config"
	"github.com/hanj-cn/pigeonhole/internal/engine"
	"github.com/hanj-cn/pigeonhole/internal/model"
	"github.com/hanj-cn/pigeonhole/internal/report"
	"github.com/hanj-cn/pigeonhole/internal/sheets"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Preview classification as a read-only report",
		Long: `Scan the base directory (including one level inside existing bucket
directories), pair every folder with its best-matching spreadsheet record and
write a CSV describing where each folder is and where it should be. Nothing
is moved.

The CSV lands on the Desktop when one exists, otherwise next to the
spreadsheet. Use --out to pick a directory explicitly.

Examples:
  pigeonhole report --spreadsheet projects.xlsx
  pigeonhole report -s projects.csv --out /tmp/reports
  pigeonhole report -s projects.csv --export-sheet`,
		RunE: runReport,
	}

	cmd.Flags().StringP("spreadsheet", "s", "", "Spreadsheet with project names and sizes (.xlsx or .csv)")
	cmd.Flags().StringP("base-dir", "d", "", "Directory holding the project folders (default: spreadsheet's directory)")
	cmd.Flags().StringArrayP("range", "r", nil, "Size range as MIN:MAX:LABEL; repeat per bucket, MAX may be 'inf'")
	cmd.Flags().StringP("out", "o", "", "Directory to write the report CSV into")
	cmd.Flags().Bool("export-sheet", false, "Also append the rows to the configured Google Sheet")

	_ = viper.BindPFlag("report.out", cmd.Flags().Lookup("out"))

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
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

	rows, err := engine.Report(ctx, engine.Request{
		SpreadsheetPath: spreadsheet,
		BaseDir:         baseDir,
		Ranges:          rangeSet,
	})
	if err != nil {
		return err
	}

	outDir := viper.GetString("report.out")
	if outDir == "" {
		outDir = report.DefaultDir(spreadsheet)
	} else {
		outDir = config.ExpandPath(outDir)
	}

	path, err := report.Write(rows, outDir, time.Now())
	if err != nil {
		return err
	}

	if exportSheet, _ := cmd.Flags().GetBool("export-sheet"); exportSheet {
		cfg := sheetsConfig()
		if err := sheets.Export(ctx, cfg, rows); err != nil {
			return fmt.Errorf("report written to %s but sheet export failed: %w", path, err)
		}
	}

	printReportRows(rows)
	fmt.Println(cli.FormatSuccess("report written to " + path))
	return nil
}

// sheetsConfig assembles the exporter config from viper, which also picks up
// PIGEONHOLE_* environment variables.
func sheetsConfig() sheets.Config {
	return sheets.Config{
		CredentialsFile: config.ExpandPath(viper.GetString("sheets.credentials_file")),
		ClientID:        viper.GetString("sheets.client_id"),
		ClientSecret:    viper.GetString("sheets.client_secret"),
		RefreshToken:    viper.GetString("sheets.refresh_token"),
		SpreadsheetID:   viper.GetString("sheets.spreadsheet_id"),
		SheetName:       viper.GetString("sheets.sheet_name"),
	}
}

// printReportRows renders the rows as an aligned terminal table.
func printReportRows(rows []model.ReportRow) {
	if len(rows) == 0 {
		fmt.Println(cli.SubtleStyle.Render("no folders to report"))
		return
	}

	var b strings.Builder
	header := fmt.Sprintf("%-30s %-30s %6s %10s %-20s %s",
		"FOLDER", "MATCHED PROJECT", "SCORE", "SIZE", "TARGET", "LOCATION")
	b.WriteString(cli.TableHeaderStyle.Render(header))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%-30s %-30s %6.4f %10s %-20s %s\n",
			row.FolderName,
			row.MatchedProject,
			row.Score,
			strconv.FormatFloat(row.Size, 'f', -1, 64),
			row.TargetCategory,
			row.ActualLocation))
	}
	fmt.Println(cli.RenderBox("Classification preview", strings.TrimRight(b.String(), "\n")))
}
