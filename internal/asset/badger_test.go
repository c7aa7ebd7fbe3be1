package asset

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBadgerStore(t *testing.T) *BadgerStore {
	t.Helper()
	store, err := NewBadgerStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testAsset(id string, status Status, createdAt time.Time) *Asset {
	return &Asset{
		ID:          id,
		BlobKey:     BlobKey(id),
		ContentType: "image/png",
		SizeBytes:   42,
		CreatedAt:   createdAt,
		Status:      status,
	}
}

func TestBadgerInsertAndGet(t *testing.T) {
	store := newTestBadgerStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	a := testAsset("a1", StatusCommitted, now)
	require.NoError(t, store.Insert(ctx, a))

	got, err := store.GetCommitted(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, a.BlobKey, got.BlobKey)
	assert.Equal(t, a.ContentType, got.ContentType)
	assert.Equal(t, a.SizeBytes, got.SizeBytes)
	assert.Equal(t, StatusCommitted, got.Status)
	assert.True(t, a.CreatedAt.Equal(got.CreatedAt))
}

func TestBadgerDuplicateInsert(t *testing.T) {
	store := newTestBadgerStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, testAsset("dup", StatusCommitted, time.Now())))
	err := store.Insert(ctx, testAsset("dup", StatusCommitted, time.Now()))
	assert.Error(t, err)
}

func TestBadgerVisibility(t *testing.T) {
	store := newTestBadgerStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, testAsset("failed", StatusFailed, time.Now())))
	require.NoError(t, store.Insert(ctx, testAsset("pending", StatusPending, time.Now())))

	_, err := store.GetCommitted(ctx, "failed")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.GetCommitted(ctx, "pending")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.GetCommitted(ctx, "absent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBadgerListCommittedNewestFirst(t *testing.T) {
	store := newTestBadgerStore(t)
	ctx := context.Background()
	base := time.Now().UTC()

	require.NoError(t, store.Insert(ctx, testAsset("old", StatusCommitted, base.Add(-2*time.Hour))))
	require.NoError(t, store.Insert(ctx, testAsset("mid", StatusCommitted, base.Add(-time.Hour))))
	require.NoError(t, store.Insert(ctx, testAsset("new", StatusCommitted, base)))
	require.NoError(t, store.Insert(ctx, testAsset("tomb", StatusFailed, base)))

	all, err := store.ListCommitted(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "new", all[0].ID)
	assert.Equal(t, "mid", all[1].ID)
	assert.Equal(t, "old", all[2].ID)

	page, err := store.ListCommitted(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "mid", page[0].ID)

	empty, err := store.ListCommitted(ctx, 10, 99)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestBadgerListFailedAndPurge(t *testing.T) {
	store := newTestBadgerStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, testAsset("ok", StatusCommitted, time.Now())))
	require.NoError(t, store.Insert(ctx, testAsset("t1", StatusFailed, time.Now())))
	require.NoError(t, store.Insert(ctx, testAsset("t2", StatusFailed, time.Now())))

	failed, err := store.ListFailed(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, failed, 2)

	limited, err := store.ListFailed(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	require.NoError(t, store.Purge(ctx, "t1"))
	require.NoError(t, store.Purge(ctx, "t2"))
	failed, err = store.ListFailed(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, failed)

	// Purging must not touch committed records.
	_, err = store.GetCommitted(ctx, "ok")
	assert.NoError(t, err)
}
