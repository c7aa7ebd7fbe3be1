// Package asset manages ingested image assets and their persistence.
package asset

import "time"

// Status is the lifecycle state of a stored asset. Only COMMITTED assets are
// ever visible to readers; FAILED is a tombstone left behind when compensation
// could not remove an orphaned blob.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCommitted Status = "COMMITTED"
	StatusFailed    Status = "FAILED"
)

// Asset is the metadata record for one ingested payload. The blob store owns
// the bytes; this record is the source of truth for visibility.
type Asset struct {
	ID          string    `json:"id"`
	BlobKey     string    `json:"-"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	CreatedAt   time.Time `json:"createdAt"`
	Status      Status    `json:"-"`
}

// BlobKey derives the deterministic blob-store key for an asset id.
func BlobKey(id string) string {
	return "images/" + id
}
