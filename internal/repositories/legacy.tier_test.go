package repositories

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLegacyStore(t *testing.T) *LegacyStore {
	t.Helper()
	return NewLegacyStore(filepath.Join(t.TempDir(), "polls.json"))
}

func legacyPoll(id, title string) *models.Poll {
	return &models.Poll{
		PollID:        id,
		Title:         title,
		SubTitle:      "यादी",
		PartyName:     "पक्ष",
		MainSymbolUrl: "/uploads/symbol.png",
	}
}

func TestLegacyStore_MissingFileReadsEmpty(t *testing.T) {
	store := newTestLegacyStore(t)
	ctx := context.Background()

	polls, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, polls)

	_, found, err := store.Get(ctx, "NOPE")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLegacyStore_SetGetDelete(t *testing.T) {
	store := newTestLegacyStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "AAA111", legacyPoll("AAA111", "पहिला")))
	require.NoError(t, store.Set(ctx, "BBB222", legacyPoll("BBB222", "दुसरा")))

	poll, found, err := store.Get(ctx, "AAA111")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "पहिला", poll.Title)

	// Replacing one record keeps the rest of the array intact.
	require.NoError(t, store.Set(ctx, "AAA111", legacyPoll("AAA111", "सुधारित")))

	polls, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, polls, 2)

	require.NoError(t, store.Delete(ctx, "AAA111"))

	_, found, err = store.Get(ctx, "AAA111")
	require.NoError(t, err)
	assert.False(t, found)

	polls, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, polls, 1)
	assert.Equal(t, "BBB222", polls[0].PollID)
}

func TestLegacyStore_DeleteAbsentIsNoOp(t *testing.T) {
	store := newTestLegacyStore(t)

	assert.NoError(t, store.Delete(context.Background(), "NOPE"))
	assert.NoFileExists(t, store.path)
}

func TestLegacyStore_FileIsOneJSONArray(t *testing.T) {
	store := newTestLegacyStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "AAA111", legacyPoll("AAA111", "पहिला")))

	data, err := os.ReadFile(store.path)
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, "AAA111", raw[0]["id"])
}

func TestLegacyStore_EmptyFileReadsEmpty(t *testing.T) {
	store := newTestLegacyStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.path), 0o755))
	require.NoError(t, os.WriteFile(store.path, []byte("  \n"), 0o644))

	polls, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, polls)
}
