package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harits/aksi/pkg/dispatcher"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_RecordAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	outcomes := []dispatcher.Outcome{
		{ID: "a", Query: "What's the weather in Paris?", Success: true, Narrative: "sunny"},
		{ID: "b", Query: "gibberish", Success: false, Narrative: "", Error: "unrecognized request"},
		{ID: "c", Query: "Read sample.txt", Success: true, Narrative: "contents"},
	}
	for _, outcome := range outcomes {
		require.NoError(t, store.Record(ctx, outcome))
	}

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first.
	assert.Equal(t, "c", entries[0].ID)
	assert.Equal(t, "a", entries[2].ID)

	assert.Equal(t, "gibberish", entries[1].Query)
	assert.False(t, entries[1].Success)
	assert.Equal(t, "unrecognized request", entries[1].Error)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestStore_RecentLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, store.Record(ctx, dispatcher.Outcome{ID: id, Query: "q", Success: true}))
	}

	entries, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestStore_DuplicateIDRejected(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, dispatcher.Outcome{ID: "dup", Query: "q", Success: true}))
	assert.Error(t, store.Record(ctx, dispatcher.Outcome{ID: "dup", Query: "q", Success: true}))
}

func TestStore_EmptyRecent(t *testing.T) {
	store := openTestStore(t)

	entries, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
