package asset

import "context"

// MetadataStore is the persistence abstraction for asset records.
// Implementations: Postgres (production) and Badger (embedded, single node).
type MetadataStore interface {
	// Insert writes a new record. Ids are never reused, so a duplicate id is an error.
	Insert(ctx context.Context, a *Asset) error
	// GetCommitted returns the record for id, or ErrNotFound when the record
	// is absent or in any status other than COMMITTED.
	GetCommitted(ctx context.Context, id string) (*Asset, error)
	// ListCommitted returns committed records, newest first.
	ListCommitted(ctx context.Context, limit, offset int) ([]*Asset, error)
	// ListFailed returns up to limit FAILED tombstones for the janitor.
	ListFailed(ctx context.Context, limit int) ([]*Asset, error)
	// Purge removes a record outright. Used only on tombstones.
	Purge(ctx context.Context, id string) error
}
