package database

import (
	"context"
	"path/filepath"
	"testing"

	"server/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CreatesDatabaseFile(t *testing.T) {
	db, err := New(config.Config{
		DatabaseDbPath: filepath.Join(t.TempDir(), "data", "polls.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NotNil(t, db.SQL)
	assert.NotNil(t, db.SQLWithContext(context.Background()))

	sqlDB, err := db.SQL.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
}

func TestClose(t *testing.T) {
	db, err := New(config.Config{
		DatabaseDbPath: filepath.Join(t.TempDir(), "polls.db"),
	})
	require.NoError(t, err)

	require.NoError(t, db.Close())
	// Closing an already closed handle stays error free.
	assert.NoError(t, db.Close())

	var empty DB
	assert.NoError(t, empty.Close())
}

func TestNew_EmptyPathFails(t *testing.T) {
	_, err := New(config.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database path is empty")
}

func TestNewCacheClient_EmptyAddressFails(t *testing.T) {
	_, err := NewCacheClient(config.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache address is empty")
}
