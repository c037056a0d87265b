package engine

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanj-cn/pigeonhole/internal/common"
	"github.com/hanj-cn/pigeonhole/internal/model"
)

func smallBigRanges() model.RangeSet {
	return model.RangeSet{
		{Label: "Small", Min: 0, Max: 500},
		{Label: "Big", Min: 500, Max: math.Inf(1)},
	}
}

func writeSpreadsheet(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "projects.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func mkdirs(t *testing.T, base string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.MkdirAll(filepath.Join(base, name), 0o750))
	}
}

func TestClassify_MovesMatchedFolderIntoBucket(t *testing.T) {
	base := t.TempDir()
	mkdirs(t, base, "Alpha Project")
	sheet := writeSpreadsheet(t, base, "Alpha_Project,300\n")

	summary, err := Classify(context.Background(), Request{
		SpreadsheetPath: sheet,
		BaseDir:         base,
		Ranges:          smallBigRanges(),
	})
	require.NoError(t, err)

	require.Len(t, summary.Moves, 1)
	assert.Equal(t, "Alpha Project", summary.Moves[0].FolderName)
	assert.Equal(t, "Small", summary.Moves[0].Bucket)
	assert.Greater(t, summary.Moves[0].Score, 0.8)

	assert.DirExists(t, filepath.Join(base, "Small", "Alpha Project"))
	assert.NoDirExists(t, filepath.Join(base, "Alpha Project"))
}

func TestClassify_NoFolderOverThreshold(t *testing.T) {
	base := t.TempDir()
	mkdirs(t, base, "Completely Different")
	sheet := writeSpreadsheet(t, base, "Alpha_Project,300\n")

	summary, err := Classify(context.Background(), Request{
		SpreadsheetPath: sheet,
		BaseDir:         base,
		Ranges:          smallBigRanges(),
	})
	require.NoError(t, err)

	assert.Empty(t, summary.Moves)
	assert.Equal(t, 1, summary.NoMatch)
	assert.NoDirExists(t, filepath.Join(base, "Small"), "no bucket dir without a match")
	assert.DirExists(t, filepath.Join(base, "Completely Different"))
}

func TestClassify_ExplicitZeroThreshold(t *testing.T) {
	base := t.TempDir()
	mkdirs(t, base, "Completely Different")
	sheet := writeSpreadsheet(t, base, "Alpha_Project,300\n")

	// Same fixture as above, but a zero threshold is asked for explicitly.
	// It must not be mistaken for unset and bumped to the default.
	zero := 0.0
	summary, err := Classify(context.Background(), Request{
		SpreadsheetPath: sheet,
		BaseDir:         base,
		Ranges:          smallBigRanges(),
		Threshold:       &zero,
	})
	require.NoError(t, err)

	require.Len(t, summary.Moves, 1)
	assert.Equal(t, "Completely Different", summary.Moves[0].FolderName)
	assert.DirExists(t, filepath.Join(base, "Small", "Completely Different"))
}

func TestClassify_SizeOutsideEveryRange(t *testing.T) {
	base := t.TempDir()
	mkdirs(t, base, "Alpha Project")
	sheet := writeSpreadsheet(t, base, "Alpha_Project,300\n")

	// Only covers [1000, inf); the record's 300 falls through.
	ranges := model.RangeSet{{Label: "Big", Min: 1000, Max: math.Inf(1)}}

	summary, err := Classify(context.Background(), Request{
		SpreadsheetPath: sheet,
		BaseDir:         base,
		Ranges:          ranges,
	})
	require.NoError(t, err)

	assert.Empty(t, summary.Moves)
	assert.Equal(t, 1, summary.NoBucket)
	assert.DirExists(t, filepath.Join(base, "Alpha Project"))
	assert.NoDirExists(t, filepath.Join(base, "Big"))
}

func TestClassify_UnparseableSizeRowSkippedSilently(t *testing.T) {
	base := t.TempDir()
	mkdirs(t, base, "Alpha Project")
	sheet := writeSpreadsheet(t, base, "Alpha_Project,pending\n")

	summary, err := Classify(context.Background(), Request{
		SpreadsheetPath: sheet,
		BaseDir:         base,
		Ranges:          smallBigRanges(),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.SkippedRows)
	assert.Equal(t, 0, summary.RecordCount)
	assert.DirExists(t, filepath.Join(base, "Alpha Project"))
}

func TestClassify_FirstOverThresholdNotBest(t *testing.T) {
	base := t.TempDir()
	// Both clear the threshold; listing order is lexicographic, so the
	// slightly worse "Alpha Projecct X" is seen first and wins.
	mkdirs(t, base, "Alpha Project X", "Alpha_Project")
	sheet := writeSpreadsheet(t, base, "Alpha_Project,300\n")

	summary, err := Classify(context.Background(), Request{
		SpreadsheetPath: sheet,
		BaseDir:         base,
		Ranges:          smallBigRanges(),
		Policy:          model.PolicyFirstOverThreshold,
	})
	require.NoError(t, err)

	require.Len(t, summary.Moves, 1)
	assert.Equal(t, "Alpha Project X", summary.Moves[0].FolderName)
	assert.DirExists(t, filepath.Join(base, "Alpha_Project"), "exact match left behind")
}

func TestClassify_BestMatchPolicyPicksHighestScore(t *testing.T) {
	base := t.TempDir()
	mkdirs(t, base, "Alpha Project X", "Alpha_Project")
	sheet := writeSpreadsheet(t, base, "Alpha_Project,300\n")

	summary, err := Classify(context.Background(), Request{
		SpreadsheetPath: sheet,
		BaseDir:         base,
		Ranges:          smallBigRanges(),
		Policy:          model.PolicyBestMatch,
	})
	require.NoError(t, err)

	require.Len(t, summary.Moves, 1)
	assert.Equal(t, "Alpha_Project", summary.Moves[0].FolderName)
}

func TestClassify_PreflightSpreadsheetMissing(t *testing.T) {
	base := t.TempDir()

	_, err := Classify(context.Background(), Request{
		SpreadsheetPath: filepath.Join(base, "nope.csv"),
		BaseDir:         base,
		Ranges:          smallBigRanges(),
	})
	require.ErrorIs(t, err, common.ErrSpreadsheetMissing)
}

func TestClassify_PreflightBaseDirMissing(t *testing.T) {
	base := t.TempDir()
	sheet := writeSpreadsheet(t, base, "Alpha,1\n")

	_, err := Classify(context.Background(), Request{
		SpreadsheetPath: sheet,
		BaseDir:         filepath.Join(base, "missing"),
		Ranges:          smallBigRanges(),
	})
	require.ErrorIs(t, err, common.ErrBaseDirMissing)
}

func TestClassify_MoveConflictIsFatalWithoutRollback(t *testing.T) {
	base := t.TempDir()
	mkdirs(t, base, "Alpha Project", "Beta Project")
	// A folder named "Beta Project" already sits inside the bucket, so the
	// second record's move must fail after the first record has moved.
	mkdirs(t, base, filepath.Join("Small", "Beta Project"))
	sheet := writeSpreadsheet(t, base, "Alpha_Project,300\nBeta_Project,400\n")

	summary, err := Classify(context.Background(), Request{
		SpreadsheetPath: sheet,
		BaseDir:         base,
		Ranges:          smallBigRanges(),
	})
	require.ErrorIs(t, err, common.ErrMoveFailed)

	// The first move is not rolled back.
	require.Len(t, summary.Moves, 1)
	assert.Equal(t, "Alpha Project", summary.Moves[0].FolderName)
	assert.DirExists(t, filepath.Join(base, "Small", "Alpha Project"))
	assert.DirExists(t, filepath.Join(base, "Beta Project"), "failed record's folder stays put")
}

func TestClassify_ProgressCallback(t *testing.T) {
	base := t.TempDir()
	mkdirs(t, base, "Alpha Project")
	sheet := writeSpreadsheet(t, base, "Alpha_Project,300\nNo Match Here,200\n")

	var calls [][2]int
	_, err := Classify(context.Background(), Request{
		SpreadsheetPath: sheet,
		BaseDir:         base,
		Ranges:          smallBigRanges(),
		Progress: func(done, total int) {
			calls = append(calls, [2]int{done, total})
		},
	})
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{1, 2}, {2, 2}}, calls)
}
