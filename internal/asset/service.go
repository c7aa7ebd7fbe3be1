package asset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/imagedrop/service/internal/blobstore"
	"github.com/imagedrop/service/internal/metrics"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Service contains the ingestion business logic. It is stateless and safe for
// concurrent use; every call works on a freshly generated key.
type Service struct {
	blobs   blobstore.BlobStore
	meta    MetadataStore
	maxSize int64
	allowed map[string]struct{}
	log     *zap.Logger
}

// NewService creates a Service. allowedTypes entries are normalized media
// types such as "image/png".
func NewService(blobs blobstore.BlobStore, meta MetadataStore, maxSize int64, allowedTypes []string, log *zap.Logger) *Service {
	allowed := make(map[string]struct{}, len(allowedTypes))
	for _, t := range allowedTypes {
		if mt, _, err := mime.ParseMediaType(t); err == nil {
			allowed[mt] = struct{}{}
		}
	}
	return &Service{
		blobs:   blobs,
		meta:    meta,
		maxSize: maxSize,
		allowed: allowed,
		log:     log,
	}
}

// Ingest validates the payload and commits it: blob write first, then the
// COMMITTED metadata record. The blob write must durably succeed before the
// metadata record exists, so a reader can never observe metadata whose bytes
// are missing. On a metadata failure the already-written blob is deleted
// best-effort; if even that fails, a FAILED tombstone is left for the janitor.
func (s *Service) Ingest(ctx context.Context, payload []byte, contentType string) (*Asset, error) {
	start := time.Now()

	if len(payload) == 0 {
		metrics.IngestRejected.WithLabelValues("empty").Inc()
		return nil, ErrEmptyPayload
	}
	if int64(len(payload)) > s.maxSize {
		metrics.IngestRejected.WithLabelValues("too_large").Inc()
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrPayloadTooLarge, len(payload), s.maxSize)
	}
	mediaType, err := s.normalizeContentType(contentType)
	if err != nil {
		metrics.IngestRejected.WithLabelValues("media_type").Inc()
		return nil, err
	}

	a := &Asset{
		ID:          uuid.NewString(),
		ContentType: mediaType,
		SizeBytes:   int64(len(payload)),
		CreatedAt:   time.Now().UTC(),
		Status:      StatusCommitted,
	}
	a.BlobKey = BlobKey(a.ID)

	if err := s.blobs.Put(ctx, a.BlobKey, bytes.NewReader(payload), a.SizeBytes, a.ContentType); err != nil {
		metrics.StorageFailures.WithLabelValues("blob_write").Inc()
		s.log.Error("blob write failed", zap.String("id", a.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrBlobWrite, err)
	}

	if err := s.meta.Insert(ctx, a); err != nil {
		metrics.StorageFailures.WithLabelValues("metadata_write").Inc()
		s.log.Error("metadata write failed", zap.String("id", a.ID), zap.Error(err))
		s.compensate(ctx, a)
		return nil, fmt.Errorf("%w: %v", ErrMetadataWrite, err)
	}

	metrics.IngestCommitted.Inc()
	metrics.IngestDuration.Observe(time.Since(start).Seconds())
	s.log.Info("asset committed",
		zap.String("id", a.ID),
		zap.String("contentType", a.ContentType),
		zap.Int64("sizeBytes", a.SizeBytes))
	return a, nil
}

// compensate removes the orphaned blob after a failed metadata write. If the
// delete fails too, a FAILED tombstone is written (best-effort) so the
// janitor can retry the delete later. The tombstone is never visible to
// readers; GetCommitted filters on status.
func (s *Service) compensate(ctx context.Context, a *Asset) {
	err := s.blobs.Delete(ctx, a.BlobKey)
	if err == nil {
		return
	}
	metrics.StorageFailures.WithLabelValues("compensate_delete").Inc()
	s.log.Warn("compensation delete failed, leaving tombstone",
		zap.String("id", a.ID), zap.Error(err))
	tomb := *a
	tomb.Status = StatusFailed
	if err := s.meta.Insert(ctx, &tomb); err != nil {
		s.log.Warn("tombstone write failed", zap.String("id", a.ID), zap.Error(err))
	}
}

// Get returns the metadata of a committed asset.
func (s *Service) Get(ctx context.Context, id string) (*Asset, error) {
	return s.meta.GetCommitted(ctx, id)
}

// Content returns a committed asset together with a reader over its bytes.
// The caller must close the reader.
func (s *Service) Content(ctx context.Context, id string) (*Asset, io.ReadCloser, error) {
	a, err := s.meta.GetCommitted(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.blobs.Get(ctx, a.BlobKey)
	if err != nil {
		metrics.StorageFailures.WithLabelValues("blob_read").Inc()
		s.log.Error("blob read failed for committed asset", zap.String("id", id), zap.Error(err))
		return nil, nil, fmt.Errorf("%w: %v", ErrBlobRead, err)
	}
	return a, rc, nil
}

// List returns committed assets, newest first. limit is clamped to sane bounds.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Asset, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.meta.ListCommitted(ctx, limit, offset)
}

func (s *Service) normalizeContentType(contentType string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, contentType)
	}
	if _, ok := s.allowed[mediaType]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, mediaType)
	}
	return mediaType, nil
}
