// Package blobstore defines the interface for opaque byte storage.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider, the
// filesystem implementation is meant for local development.
package blobstore

import (
	"context"
	"io"
)

// BlobStore is the interface for writing and reading blob payloads by key.
type BlobStore interface {
	// Put streams data to the store under the given key. size must be the
	// exact byte count of the payload.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Get returns a reader for the blob stored under key, together with its size.
	Get(ctx context.Context, key string) (io.ReadCloser, int64, error)
	// Delete removes the blob identified by key. Deleting a missing blob is not an error.
	Delete(ctx context.Context, key string) error
}
