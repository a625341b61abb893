package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"server/config"
	"server/internal/database"
	"server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDurableStore(t *testing.T) *DurableStore {
	t.Helper()

	db, err := database.New(config.Config{
		DatabaseDbPath: filepath.Join(t.TempDir(), "polls.db"),
	})
	require.NoError(t, err)
	require.NoError(t, db.SQL.AutoMigrate(&models.Poll{}))
	t.Cleanup(func() { _ = db.Close() })

	return NewDurableStore(db)
}

func durablePoll(id, title string) *models.Poll {
	return &models.Poll{
		PollID:        id,
		Title:         title,
		SubTitle:      "यादी",
		PartyName:     "पक्ष",
		MainSymbolUrl: "/uploads/symbol.png",
		Candidates: models.CandidateList{
			{Seat: "अ", Name: "उमेदवार", SerialNumber: "1", SymbolUrl: "/uploads/symbol.png"},
		},
	}
}

func TestDurableStore_InsertAndGet(t *testing.T) {
	store := newTestDurableStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "AAA111", durablePoll("AAA111", "पहिला")))

	poll, found, err := store.Get(ctx, "AAA111")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "पहिला", poll.Title)
	assert.False(t, poll.CreatedAt.IsZero(), "insert must stamp a creation time")
	assert.NotZero(t, poll.DocID)
	require.Len(t, poll.Candidates, 1)
	assert.Equal(t, "उमेदवार", poll.Candidates[0].Name)
}

func TestDurableStore_GetAbsent(t *testing.T) {
	store := newTestDurableStore(t)

	_, found, err := store.Get(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDurableStore_SetUpsertsByExternalID(t *testing.T) {
	store := newTestDurableStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "AAA111", durablePoll("AAA111", "पहिला")))

	original, _, err := store.Get(ctx, "AAA111")
	require.NoError(t, err)

	// A record promoted from a lower tier has no internal identity and no
	// creation time; the upsert must preserve both from the existing row.
	promoted := durablePoll("AAA111", "सुधारित")
	require.NoError(t, store.Set(ctx, "AAA111", promoted))

	updated, found, err := store.Get(ctx, "AAA111")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "सुधारित", updated.Title)
	assert.Equal(t, original.DocID, updated.DocID)
	assert.WithinDuration(t, original.CreatedAt, updated.CreatedAt, time.Second)

	polls, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, polls, 1, "upsert must not create a second document")
}

func TestDurableStore_SetRetriesAsUpdateOnInsertConflict(t *testing.T) {
	store := newTestDurableStore(t)
	ctx := context.Background()

	sqlDB, err := store.db.SQL.DB()
	require.NoError(t, err)

	// Slip a competing promotion in after the lookup misses but before the
	// insert runs, the way two concurrent updates of the same lower-tier
	// record interleave.
	conflicted := false
	err = store.db.SQL.Callback().Create().Before("gorm:create").
		Register("competing_promotion", func(tx *gorm.DB) {
			if conflicted {
				return
			}
			conflicted = true
			_, err := sqlDB.Exec(
				`INSERT INTO polls (poll_id, title, sub_title, party_name, main_symbol_url, candidates, created_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				"AAA111", "आधी आलेला", "यादी", "पक्ष", "/uploads/symbol.png", "[]", "2026-01-01 00:00:00",
			)
			require.NoError(t, err)
		})
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "AAA111", durablePoll("AAA111", "नंतर आलेला")))
	require.True(t, conflicted, "the competing insert must have fired")

	// The loser's write survives as an update of the winner's document.
	updated, found, err := store.Get(ctx, "AAA111")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "नंतर आलेला", updated.Title)
	assert.NotZero(t, updated.DocID)
	assert.Equal(t, 2026, updated.CreatedAt.Year(), "the winner's creation time survives")

	polls, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, polls, 1, "the conflict must not leave two documents")
}

func TestDurableStore_ListSortedByCreationDescending(t *testing.T) {
	store := newTestDurableStore(t)
	ctx := context.Background()

	older := durablePoll("OLD001", "जुना")
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := durablePoll("NEW001", "नवा")
	newer.CreatedAt = time.Now()

	require.NoError(t, store.Set(ctx, "OLD001", older))
	require.NoError(t, store.Set(ctx, "NEW001", newer))

	polls, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, polls, 2)
	assert.Equal(t, "NEW001", polls[0].PollID)
	assert.Equal(t, "OLD001", polls[1].PollID)
}

func TestDurableStore_Delete(t *testing.T) {
	store := newTestDurableStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "AAA111", durablePoll("AAA111", "पहिला")))
	require.NoError(t, store.Delete(ctx, "AAA111"))

	_, found, err := store.Get(ctx, "AAA111")
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting an absent id is not an error.
	assert.NoError(t, store.Delete(ctx, "AAA111"))
}
