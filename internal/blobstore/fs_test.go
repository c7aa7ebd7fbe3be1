package blobstore

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFSStore(t *testing.T) *FSStore {
	t.Helper()
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestFSStoreRoundTrip(t *testing.T) {
	store := newTestFSStore(t)
	ctx := context.Background()
	payload := []byte("payload bytes")

	require.NoError(t, store.Put(ctx, "images/abc", bytes.NewReader(payload), int64(len(payload)), "image/png"))

	rc, size, err := store.Get(ctx, "images/abc")
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, int64(len(payload)), size)

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestFSStoreGetMissing(t *testing.T) {
	store := newTestFSStore(t)
	_, _, err := store.Get(context.Background(), "images/nope")
	assert.Error(t, err)
}

func TestFSStoreDelete(t *testing.T) {
	store := newTestFSStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "images/x", bytes.NewReader([]byte("x")), 1, "image/png"))
	require.NoError(t, store.Delete(ctx, "images/x"))
	_, _, err := store.Get(ctx, "images/x")
	assert.Error(t, err)

	// Deleting a missing blob is not an error.
	assert.NoError(t, store.Delete(ctx, "images/x"))
}

func TestFSStoreRejectsBadKeys(t *testing.T) {
	store := newTestFSStore(t)
	ctx := context.Background()

	for _, key := range []string{"", "/abs/path", "../escape", "..", "tmp"} {
		err := store.Put(ctx, key, bytes.NewReader([]byte("x")), 1, "image/png")
		assert.Error(t, err, "key %q", key)
	}
}
