package main

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/hanj-cn/pigeonhole/internal/cli"
	"github.com/hanj-cn/pigeonhole/internal/common"
	"github.com/hanj-cn/pigeonhole/internal/config"
	"github.com/hanj-cn/pigeonhole/internal/model"
	"github.com/hanj-cn/pigeonhole/internal/ranges"
)

// parseRangeFlag splits one --range value of the form MIN:MAX:LABEL. The
// label may itself contain colons.
func parseRangeFlag(value string) (ranges.Triple, error) {
	parts := strings.SplitN(value, ":", 3)
	if len(parts) != 3 {
		return ranges.Triple{}, fmt.Errorf("range flag must be MIN:MAX:LABEL, got %q", value)
	}
	return ranges.Triple{Min: parts[0], Max: parts[1], Label: parts[2]}, nil
}

// resolveRanges builds the effective range list: explicit --range flags win,
// then the saved settings from the last successful run, then the shipped
// defaults. Flag values are validated in full; every violation is reported
// at once and any violation aborts before the filesystem is touched.
func resolveRanges(flagValues []string, saved config.Settings) (model.RangeSet, error) {
	if len(flagValues) > 0 {
		triples := make([]ranges.Triple, 0, len(flagValues))
		var errs common.ValidationErrors
		for _, v := range flagValues {
			t, err := parseRangeFlag(v)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			triples = append(triples, t)
		}

		parsed, parseErrs := ranges.Parse(triples)
		errs = append(errs, parseErrs...)
		if len(errs) > 0 {
			return nil, fmt.Errorf("%w:\n%s", common.ErrInvalidRanges, errs.Error())
		}
		return parsed, nil
	}

	if len(saved.Ranges) > 0 {
		return savedRangeSet(saved), nil
	}

	return model.DefaultRanges(), nil
}

// savedRangeSet converts persisted range entries back into the domain type.
// Entries were validated before being saved; obviously broken ones are
// dropped rather than re-surfaced.
func savedRangeSet(saved config.Settings) model.RangeSet {
	rs := make(model.RangeSet, 0, len(saved.Ranges))
	for _, e := range saved.Ranges {
		if e.Label == "" || e.Min >= e.Max {
			continue
		}
		rs = append(rs, model.Range{Min: e.Min, Max: e.Max, Label: e.Label})
	}
	return rs
}

// rangeEntries converts a range set into its persisted form.
func rangeEntries(rs model.RangeSet) []config.RangeEntry {
	entries := make([]config.RangeEntry, len(rs))
	for i, r := range rs {
		entries[i] = config.RangeEntry{Min: r.Min, Max: r.Max, Label: r.Label}
	}
	return entries
}

// loadSettings reads the persisted last-used settings, tolerating a missing
// file. A corrupt file is reported but never fatal.
func loadSettings() config.Settings {
	path, err := config.DefaultPath()
	if err != nil {
		return config.Settings{}
	}
	settings, err := config.Load(path)
	if err != nil {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("ignoring unreadable settings file: %v", err)))
		return config.Settings{}
	}
	return settings
}

// resolveSpreadsheet picks the spreadsheet path: flag first, then the saved
// one from the last run.
func resolveSpreadsheet(flagValue string, saved config.Settings) (string, error) {
	path := flagValue
	if path == "" {
		path = saved.ExcelPath
	}
	if path == "" {
		return "", fmt.Errorf("no spreadsheet given: pass --spreadsheet or run classify once to remember one")
	}
	return config.ExpandPath(path), nil
}

// resolveBaseDir defaults the base directory to the spreadsheet's own
// directory, matching how operators lay out their tree.
func resolveBaseDir(flagValue, spreadsheetPath string) string {
	if flagValue != "" {
		return config.ExpandPath(flagValue)
	}
	return filepath.Dir(spreadsheetPath)
}

// formatRange renders one range for terminal display.
func formatRange(r model.Range) string {
	max := "inf"
	if !math.IsInf(r.Max, 1) {
		max = fmt.Sprintf("%.0f", r.Max)
	}
	return fmt.Sprintf("[%.0f, %s) -> %s", r.Min, max, r.Label)
}
