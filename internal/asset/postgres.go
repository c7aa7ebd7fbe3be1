package asset

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements MetadataStore on a pgx connection pool.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a PostgresStore with the given connection pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Insert writes a new asset record.
func (s *PostgresStore) Insert(ctx context.Context, a *Asset) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO assets (id, blob_key, content_type, size_bytes, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.BlobKey, a.ContentType, a.SizeBytes, string(a.Status), a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("asset id %q already exists: %w", a.ID, err)
		}
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

// GetCommitted fetches an asset by id, visible only when COMMITTED.
func (s *PostgresStore) GetCommitted(ctx context.Context, id string) (*Asset, error) {
	a := &Asset{}
	var status string
	err := s.db.QueryRow(ctx,
		`SELECT id, blob_key, content_type, size_bytes, status, created_at
		 FROM assets WHERE id = $1 AND status = $2`,
		id, string(StatusCommitted),
	).Scan(&a.ID, &a.BlobKey, &a.ContentType, &a.SizeBytes, &status, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get asset by id: %w", err)
	}
	a.Status = Status(status)
	return a, nil
}

// ListCommitted returns committed assets, newest first.
func (s *PostgresStore) ListCommitted(ctx context.Context, limit, offset int) ([]*Asset, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, blob_key, content_type, size_bytes, status, created_at
		 FROM assets WHERE status = $1
		 ORDER BY created_at DESC, id
		 LIMIT $2 OFFSET $3`,
		string(StatusCommitted), limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()
	return scanAssets(rows)
}

// ListFailed returns up to limit FAILED tombstones.
func (s *PostgresStore) ListFailed(ctx context.Context, limit int) ([]*Asset, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, blob_key, content_type, size_bytes, status, created_at
		 FROM assets WHERE status = $1
		 ORDER BY created_at
		 LIMIT $2`,
		string(StatusFailed), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list failed assets: %w", err)
	}
	defer rows.Close()
	return scanAssets(rows)
}

// Purge deletes a record outright.
func (s *PostgresStore) Purge(ctx context.Context, id string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id); err != nil {
		return fmt.Errorf("purge asset: %w", err)
	}
	return nil
}

func scanAssets(rows pgx.Rows) ([]*Asset, error) {
	var out []*Asset
	for rows.Next() {
		a := &Asset{}
		var status string
		if err := rows.Scan(&a.ID, &a.BlobKey, &a.ContentType, &a.SizeBytes, &status, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		a.Status = Status(status)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assets: %w", err)
	}
	return out, nil
}

// isUniqueViolation checks whether an error is a PostgreSQL unique_violation (code 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
