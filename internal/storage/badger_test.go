package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary BadgerDB instance and a cleanup func.
func setupTestDB(t *testing.T) (*BadgerRepository, func()) {
	t.Helper()

	testLogger := logrus.New()
	testLogger.SetOutput(os.Stderr)
	testLogger.SetLevel(logrus.ErrorLevel)

	repo, err := NewBadgerRepository(t.TempDir(), testLogger)
	require.NoError(t, err, "Failed to create test BadgerDB repository")

	cleanup := func() {
		assert.NoError(t, repo.Close(), "Failed to close test BadgerDB repository")
	}
	return repo, cleanup
}

func TestBadgerRepository_SaveLoadDelete(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, err := repo.Load(ctx, "default", "nsn_bookmarks")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Save(ctx, "default", "nsn_bookmarks", []byte(`[]`), 0))
	require.NoError(t, repo.Save(ctx, "default", "nsn_bookmarks", []byte(`[{"id":"se"}]`), 0))

	val, err := repo.Load(ctx, "default", "nsn_bookmarks")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"se"}]`, string(val), "save overwrites")

	require.NoError(t, repo.Delete(ctx, "default", "nsn_bookmarks"))
	_, err = repo.Load(ctx, "default", "nsn_bookmarks")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, repo.Delete(ctx, "default", "nsn_bookmarks"), "deleting twice is fine")
}

func TestBadgerRepository_NamespacesAreIsolated(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "chat:1", "nsn_recent", []byte("a"), 0))
	require.NoError(t, repo.Save(ctx, "chat:1", "nsn_bookmarks", []byte("b"), 0))
	require.NoError(t, repo.Save(ctx, "chat:12", "nsn_recent", []byte("c"), 0))

	keys, err := repo.Keys(ctx, "chat:1")
	require.NoError(t, err)
	assert.Equal(t, []string{"nsn_bookmarks", "nsn_recent"}, keys)

	val, err := repo.Load(ctx, "chat:12", "nsn_recent")
	require.NoError(t, err)
	assert.Equal(t, "c", string(val))

	keys, err = repo.Keys(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestBadgerRepository_TTLExpires(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	// Badger TTLs have one-second resolution.
	require.NoError(t, repo.Save(ctx, "default", "nsn_name", []byte(`"Ada"`), time.Second))
	_, err := repo.Load(ctx, "default", "nsn_name")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := repo.Load(ctx, "default", "nsn_name")
		return err == ErrNotFound
	}, 5*time.Second, 100*time.Millisecond)
}

func TestBadgerRepository_CancelledContext(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, repo.Save(ctx, "default", "k", []byte("v"), 0), context.Canceled)
	_, err := repo.Load(ctx, "default", "k")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInMemoryRepository(t *testing.T) {
	repo, err := NewInMemoryRepository(logrus.New())
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, "default", "k", []byte("v"), 0))
	val, err := repo.Load(ctx, "default", "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(val))
}
