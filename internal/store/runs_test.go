package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", FileName))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRunsRoundTrip(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	first := RunSummary{
		StartedAt: base,
		Keyword:   "data analyst",
		Location:  "Sydney",
		Country:   "Australia",
		Skills:    []string{"python", "sql"},
		Postings:  12,
		Matched:   3,
		State:     "ok",
		Warnings:  []string{"no Monster domain found for Australia"},
	}
	id1, err := db.RecordRun(ctx, first)
	require.NoError(t, err)

	id2, err := db.RecordRun(ctx, RunSummary{StartedAt: base.Add(time.Hour), Keyword: "go", Country: "Japan", State: "no_results"})
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	runs, err := db.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, id2, runs[0].ID)
	assert.Equal(t, []string{}, runs[0].Skills)
	assert.Equal(t, []string{}, runs[0].Warnings)

	got := runs[1]
	assert.True(t, base.Equal(got.StartedAt), "started_at %v", got.StartedAt)
	first.ID = id1
	first.StartedAt, got.StartedAt = time.Time{}, time.Time{}
	assert.Equal(t, first, got)
}

func TestListRunsLimit(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := db.RecordRun(ctx, RunSummary{Keyword: "k", Country: "India", State: "ok"})
		require.NoError(t, err)
	}
	runs, err := db.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	db, err := Open(context.Background(), path)
	require.NoError(t, err)
	_, err = db.RecordRun(context.Background(), RunSummary{Keyword: "k", Country: "Canada", State: "ok"})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(context.Background(), path)
	require.NoError(t, err)
	defer db.Close()
	runs, err := db.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
