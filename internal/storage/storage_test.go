package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSaveAndLoadIntents(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	require.NoError(t, db.SaveIntent(ctx, "我想吃饭", `{"intent":"find_dining"}`))
	require.NoError(t, db.SaveIntent(ctx, "找车位", `{"intent":"find_parking"}`))

	intents, err := db.LoadIntents(ctx)
	require.NoError(t, err)
	assert.Len(t, intents, 2)
	assert.Equal(t, `{"intent":"find_dining"}`, intents["我想吃饭"])
}

func TestSaveIntentUpserts(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	require.NoError(t, db.SaveIntent(ctx, "phrase", "v1"))
	require.NoError(t, db.SaveIntent(ctx, "phrase", "v2"))

	count, err := db.CountIntents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	intents, err := db.LoadIntents(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v2", intents["phrase"], "last write should win")
}

func TestLogAndQueryResolutions(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()

	entries := []Resolution{
		{SessionID: "sess-1", Query: "总馆", Outcome: "resolved", Method: "exact", Place: "Main Library", CreatedAt: time.Unix(1000, 0)},
		{SessionID: "sess-1", Query: "我想吃饭", Outcome: "candidates", Method: "keyword", CreatedAt: time.Unix(2000, 0)},
		{SessionID: "sess-2", Query: "xyz", Outcome: "unresolved", CreatedAt: time.Unix(3000, 0)},
	}
	for _, r := range entries {
		require.NoError(t, db.LogResolution(ctx, r))
	}

	got, err := db.RecentResolutions(ctx, "sess-1", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "我想吃饭", got[0].Query, "newest entry should come first")
	assert.Equal(t, "Main Library", got[1].Place)
}

func TestLogResolutionRejectsBadOutcome(t *testing.T) {
	db := newDB(t)

	err := db.LogResolution(context.Background(), Resolution{
		SessionID: "sess-1",
		Query:     "q",
		Outcome:   "maybe",
	})
	assert.Error(t, err, "CHECK constraint should reject an unknown outcome")
}
