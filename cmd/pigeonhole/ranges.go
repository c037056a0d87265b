package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hanj-cn/pigeonhole/internal/cli"
)

func rangesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ranges",
		Short: "Validate and display the effective size ranges",
		Long: `Show the range list a classify or report run would use: explicit --range
flags, otherwise the saved ranges from the last run, otherwise the shipped
defaults. Invalid flags are all reported together.`,
		RunE: runRanges,
	}

	cmd.Flags().StringArrayP("range", "r", nil, "Size range as MIN:MAX:LABEL; repeat per bucket, MAX may be 'inf'")

	return cmd
}

func runRanges(cmd *cobra.Command, _ []string) error {
	rangeFlags, _ := cmd.Flags().GetStringArray("range")
	rangeSet, err := resolveRanges(rangeFlags, loadSettings())
	if err != nil {
		fmt.Println(cli.FormatError("invalid range configuration"))
		return err
	}

	lines := make([]string, len(rangeSet))
	for i, r := range rangeSet {
		lines[i] = formatRange(r)
	}
	fmt.Println(cli.RenderBox("Size ranges", strings.Join(lines, "\n")))
	return nil
}
