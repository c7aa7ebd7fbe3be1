package asset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const badgerKeyPrefix = "asset/"

// BadgerStore implements MetadataStore on an embedded badger database.
// Suits single-node deployments where running Postgres is overkill.
type BadgerStore struct {
	db *badger.DB
}

// badgerRecord is the persisted form of an Asset. A separate type because the
// API-facing Asset struct hides BlobKey and Status from its JSON encoding.
type badgerRecord struct {
	ID          string    `json:"id"`
	BlobKey     string    `json:"blob_key"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
	Status      Status    `json:"status"`
}

func (r *badgerRecord) asset() *Asset {
	return &Asset{
		ID:          r.ID,
		BlobKey:     r.BlobKey,
		ContentType: r.ContentType,
		SizeBytes:   r.SizeBytes,
		CreatedAt:   r.CreatedAt,
		Status:      r.Status,
	}
}

// NewBadgerStore opens (or creates) a badger database at path.
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}
	return &BadgerStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func badgerKey(id string) []byte {
	return []byte(badgerKeyPrefix + id)
}

// Insert writes a new asset record, refusing to overwrite an existing id.
func (s *BadgerStore) Insert(ctx context.Context, a *Asset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		key := badgerKey(a.ID)
		if _, err := txn.Get(key); err == nil {
			return fmt.Errorf("asset id %q already exists", a.ID)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check asset id: %w", err)
		}
		rec := badgerRecord{
			ID:          a.ID,
			BlobKey:     a.BlobKey,
			ContentType: a.ContentType,
			SizeBytes:   a.SizeBytes,
			CreatedAt:   a.CreatedAt,
			Status:      a.Status,
		}
		val, err := json.Marshal(&rec)
		if err != nil {
			return fmt.Errorf("marshal asset: %w", err)
		}
		return txn.Set(key, val)
	})
}

// GetCommitted fetches an asset by id, visible only when COMMITTED.
func (s *BadgerStore) GetCommitted(ctx context.Context, id string) (*Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if a.Status != StatusCommitted {
		return nil, ErrNotFound
	}
	return a, nil
}

// ListCommitted returns committed assets, newest first.
func (s *BadgerStore) ListCommitted(ctx context.Context, limit, offset int) ([]*Asset, error) {
	all, err := s.scan(ctx, StatusCommitted, 0)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// ListFailed returns up to limit FAILED tombstones.
func (s *BadgerStore) ListFailed(ctx context.Context, limit int) ([]*Asset, error) {
	return s.scan(ctx, StatusFailed, limit)
}

// Purge deletes a record outright.
func (s *BadgerStore) Purge(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(badgerKey(id))
	})
}

func (s *BadgerStore) get(id string) (*Asset, error) {
	rec := &badgerRecord{}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get asset: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return rec.asset(), nil
}

// scan walks all records and keeps those in the wanted status. The record
// count for a single-node deployment stays small enough for a full scan.
func (s *BadgerStore) scan(ctx context.Context, want Status, limit int) ([]*Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []*Asset
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(badgerKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			if limit > 0 && len(out) >= limit {
				break
			}
			rec := &badgerRecord{}
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, rec)
			})
			if err != nil {
				return fmt.Errorf("decode asset: %w", err)
			}
			if rec.Status == want {
				out = append(out, rec.asset())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
