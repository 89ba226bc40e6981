package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coalops/workorder-extractor/internal/common"
)

func openMemStore(t *testing.T) *RunStore {
	t.Helper()
	store, err := Open(common.DatabaseConfig{DSN: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Init(context.Background()))
	return store
}

func TestRecordAndListRuns(t *testing.T) {
	store := openMemStore(t)
	ctx := context.Background()

	started := time.Now().UTC().Truncate(time.Second)
	run := Run{
		ID:           uuid.New(),
		SourcePath:   "docs/wo.pdf",
		Pages:        45,
		HeaderFields: 10,
		Services:     3,
		LLMUsed:      true,
		OutputPath:   "output/wo_extracted.xlsx",
		StartedAt:    started,
		FinishedAt:   started.Add(30 * time.Second),
	}
	require.NoError(t, store.Record(ctx, run))

	later := run
	later.ID = uuid.New()
	later.StartedAt = started.Add(time.Minute)
	later.FinishedAt = started.Add(2 * time.Minute)
	later.LLMUsed = false
	require.NoError(t, store.Record(ctx, later))

	runs, err := store.ListRuns(ctx, "docs/wo.pdf")
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, later.ID, runs[0].ID)
	assert.Equal(t, run.ID, runs[1].ID)
	assert.Equal(t, 45, runs[1].Pages)
	assert.Equal(t, 3, runs[1].Services)
	assert.True(t, runs[1].LLMUsed)
	assert.False(t, runs[0].LLMUsed)
	assert.WithinDuration(t, run.StartedAt, runs[1].StartedAt, time.Second)
}

func TestRecordAssignsID(t *testing.T) {
	store := openMemStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, store.Record(ctx, Run{
		SourcePath: "docs/other.pdf",
		StartedAt:  now,
		FinishedAt: now,
	}))

	runs, err := store.ListRuns(ctx, "docs/other.pdf")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.NotEqual(t, uuid.Nil, runs[0].ID)
}

func TestListRunsEmpty(t *testing.T) {
	store := openMemStore(t)
	runs, err := store.ListRuns(context.Background(), "docs/unknown.pdf")
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestInitIdempotent(t *testing.T) {
	store := openMemStore(t)
	require.NoError(t, store.Init(context.Background()))
}
