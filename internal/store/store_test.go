package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.EventRepo().AppendLLMRequest(context.Background(), LLMEventData{Purpose: "doubt"}))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	events, err := s2.EventRepo().QueryLLMEvents(context.Background(), QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestAppendAndGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := &eventRepo{db: s.DB(), now: func() time.Time { return fixed }}

	err := repo.AppendLLMRequest(ctx, LLMEventData{
		RequestID:    "req-1",
		Provider:     "gemini",
		Model:        "gemini-3-flash-preview",
		Purpose:      "resources",
		InputTokens:  120,
		OutputTokens: 480,
		LatencyMs:    950,
		Success:      true,
		SourceCount:  3,
		RequestBody:  "[user]\nFind resources",
		ResponseBody: "### Courses",
	})
	require.NoError(t, err)

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)

	got, err := repo.GetLLMEvent(ctx, events[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, fixed, got.Timestamp)
	assert.Equal(t, "req-1", got.RequestID)
	assert.Equal(t, "resources", got.Purpose)
	assert.Equal(t, 3, got.SourceCount)
	assert.True(t, got.Success)
	assert.Equal(t, "### Courses", got.ResponseBody)
}

func TestGetLLMEventMissing(t *testing.T) {
	s := openTestStore(t)
	got, err := s.EventRepo().GetLLMEvent(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestQueryLLMEventsFilters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo()

	for _, purpose := range []string{"study-plan", "doubt", "doubt", "resources"} {
		require.NoError(t, repo.AppendLLMRequest(ctx, LLMEventData{Purpose: purpose}))
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Greater(t, all[0].ID, all[3].ID, "expected newest first")

	doubts, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "doubt"})
	require.NoError(t, err)
	assert.Len(t, doubts, 2)

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "resources", limited[0].Purpose)

	after, err := repo.QueryLLMEvents(ctx, QueryOpts{After: all[1].ID})
	require.NoError(t, err)
	assert.Len(t, after, 1)
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo()

	events := []LLMEventData{
		{Purpose: "doubt", Model: "flash", InputTokens: 10, OutputTokens: 20, LatencyMs: 100},
		{Purpose: "doubt", Model: "flash", InputTokens: 30, OutputTokens: 40, LatencyMs: 300},
		{Purpose: "study-plan", Model: "pro", InputTokens: 5, OutputTokens: 50, LatencyMs: 1000},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, PurposeUsage{
		Purpose: "doubt", Calls: 2, InputTokens: 40, OutputTokens: 60, AvgLatencyMs: 200,
	}, byPurpose[0])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, ModelUsage{Model: "pro", Calls: 1, InputTokens: 5, OutputTokens: 50}, byModel[1])
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("EDUVANTAGE_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "eduvantage", "eduvantage.db"), p)

	override := filepath.Join(dir, "custom", "my.db")
	t.Setenv("EDUVANTAGE_DB", override)
	p, err = DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, override, p)
}
