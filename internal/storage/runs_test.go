package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanj-cn/pigeonhole/internal/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestRecordRun_RoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	summary := &engine.ClassifySummary{
		StartedAt:   time.Date(2025, 3, 8, 9, 0, 0, 0, time.UTC),
		RecordCount: 3,
		NoMatch:     1,
		SkippedRows: 2,
		Moves: []engine.Move{
			{RecordName: "Alpha_Project", FolderName: "Alpha Project", Bucket: "Small", Score: 0.92, Size: 300},
			{RecordName: "Beta_Project", FolderName: "Beta Project", Bucket: "Big", Score: 0.91, Size: 900},
		},
	}

	runID, err := store.RecordRun(ctx, "/tmp/projects.csv", "/tmp/base", summary)
	require.NoError(t, err)
	require.Positive(t, runID)

	runs, err := store.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
	assert.Equal(t, "/tmp/projects.csv", runs[0].SpreadsheetPath)
	assert.Equal(t, 2, runs[0].Moved)
	assert.Equal(t, 1, runs[0].NoMatch)
	assert.Equal(t, 2, runs[0].SkippedRows)

	moves, err := store.ListMoves(ctx, runID)
	require.NoError(t, err)
	require.Len(t, moves, 2)
	assert.Equal(t, "Alpha Project", moves[0].FolderName)
	assert.Equal(t, "Big", moves[1].Bucket)
}

func TestListRuns_NewestFirstWithLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.RecordRun(ctx, "/tmp/projects.csv", "/tmp/base", &engine.ClassifySummary{
			StartedAt: time.Now(),
		})
		require.NoError(t, err)
	}

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Greater(t, runs[0].ID, runs[1].ID)
}

func TestMigrate_Idempotent(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Migrate(context.Background()))
}
