// Package engine implements the classify and report workflows that reconcile
// spreadsheet records against folders on disk.
package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hanj-cn/pigeonhole/internal/common"
	"github.com/hanj-cn/pigeonhole/internal/match"
	"github.com/hanj-cn/pigeonhole/internal/model"
)

// DefaultThreshold is the minimum similarity a folder must exceed for
// classify mode to accept it. The value is calibrated against match.Ratio.
const DefaultThreshold = 0.8

// Request carries everything a run needs. The engines read no ambient
// configuration; the CLI adapter builds a Request and passes it in.
type Request struct {
	// Progress, when non-nil, is called after each record is processed.
	Progress        func(done, total int)
	SpreadsheetPath string
	BaseDir         string
	Ranges          model.RangeSet
	Policy          model.MatchPolicy
	// Threshold overrides DefaultThreshold when non-nil. A pointer keeps an
	// explicit zero distinguishable from an unset field.
	Threshold *float64
}

func (r *Request) withDefaults() Request {
	req := *r
	if req.Threshold == nil {
		th := DefaultThreshold
		req.Threshold = &th
	}
	if req.Policy == "" {
		req.Policy = model.PolicyFirstOverThreshold
	}
	return req
}

// validatePaths is the shared pre-flight check: the spreadsheet must be an
// existing regular file and the base directory an existing directory.
// Nothing is touched when it fails.
func (r *Request) validatePaths() error {
	info, err := os.Stat(r.SpreadsheetPath)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", common.ErrSpreadsheetMissing, r.SpreadsheetPath)
	}

	info, err = os.Stat(r.BaseDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", common.ErrBaseDirMissing, r.BaseDir)
	}
	return nil
}

// listFolders enumerates the immediate subdirectories of dir. The listing is
// never cached: classify mode moves folders between scans.
func listFolders(dir string) ([]model.FolderEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	folders := make([]model.FolderEntry, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		folders = append(folders, model.FolderEntry{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
		})
	}
	return folders, nil
}

// baseName is the display name used as the "actual location" of folders
// sitting directly in the base directory.
func baseName(dir string) string {
	return filepath.Base(filepath.Clean(dir))
}

// findFolder applies the match policy to pick a folder for the record.
//
// PolicyFirstOverThreshold accepts the first folder in listing order whose
// score exceeds the threshold; later, higher-scoring folders are never
// considered. PolicyBestMatch keeps the global maximum (ties resolved by
// first-seen order) and then applies the threshold to the winner.
func findFolder(rec model.Record, folders []model.FolderEntry, policy model.MatchPolicy, threshold float64) (model.MatchResult, bool) {
	switch policy {
	case model.PolicyBestMatch:
		best, ok := bestMatchFolder(rec, folders)
		if !ok || best.Score <= threshold {
			return model.MatchResult{}, false
		}
		return best, true
	default:
		for _, folder := range folders {
			score := match.Ratio(rec.Name, folder.Name)
			if score > threshold {
				return model.MatchResult{Record: rec, Folder: folder, Score: score}, true
			}
		}
		return model.MatchResult{}, false
	}
}

func bestMatchFolder(rec model.Record, folders []model.FolderEntry) (model.MatchResult, bool) {
	var (
		best  model.MatchResult
		found bool
	)
	for _, folder := range folders {
		score := match.Ratio(rec.Name, folder.Name)
		if !found || score > best.Score {
			best = model.MatchResult{Record: rec, Folder: folder, Score: score}
			found = true
		}
	}
	return best, found
}

// bestMatchRecord finds the record closest to the folder name across the
// whole pool, ties resolved by first-seen record order. No minimum score is
// enforced; callers see the best available score even when it is poor. A
// folder sharing no characters with any record scores 0 everywhere and
// produces no match at all.
func bestMatchRecord(folderName string, pool []model.Record) (model.Record, float64, bool) {
	var (
		best      model.Record
		bestScore float64
		found     bool
	)
	for _, rec := range pool {
		score := match.Ratio(folderName, rec.Name)
		if score > bestScore {
			best = rec
			bestScore = score
			found = true
		}
	}
	return best, bestScore, found
}
