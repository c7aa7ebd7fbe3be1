// Package janitor sweeps FAILED tombstones left behind when a compensation
// delete could not remove an orphaned blob. It retries the delete and purges
// the tombstone once the blob is gone, so failed ingests never accumulate
// storage.
package janitor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/imagedrop/service/internal/asset"
	"github.com/imagedrop/service/internal/blobstore"
	"github.com/imagedrop/service/internal/metrics"
)

// Janitor periodically reconciles tombstoned assets against the blob store.
type Janitor struct {
	meta     asset.MetadataStore
	blobs    blobstore.BlobStore
	interval time.Duration
	batch    int
	log      *zap.Logger
}

// New creates a Janitor sweeping every interval, at most batch records per run.
func New(meta asset.MetadataStore, blobs blobstore.BlobStore, interval time.Duration, batch int, log *zap.Logger) *Janitor {
	return &Janitor{meta: meta, blobs: blobs, interval: interval, batch: batch, log: log}
}

// Run sweeps on a ticker until ctx is cancelled.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.log.Info("janitor stopped")
			return
		case <-ticker.C:
			purged, err := j.Sweep(ctx)
			if err != nil {
				j.log.Warn("janitor sweep failed", zap.Error(err))
				continue
			}
			if purged > 0 {
				j.log.Info("janitor sweep done", zap.Int("purged", purged))
			}
		}
	}
}

// Sweep runs one reconciliation pass and returns how many tombstones it purged.
// A delete failure leaves the tombstone in place for the next run.
func (j *Janitor) Sweep(ctx context.Context) (int, error) {
	failed, err := j.meta.ListFailed(ctx, j.batch)
	if err != nil {
		return 0, err
	}

	purged := 0
	for _, a := range failed {
		if err := j.blobs.Delete(ctx, a.BlobKey); err != nil {
			j.log.Warn("janitor blob delete failed",
				zap.String("id", a.ID), zap.Error(err))
			continue
		}
		if err := j.meta.Purge(ctx, a.ID); err != nil {
			j.log.Warn("janitor purge failed",
				zap.String("id", a.ID), zap.Error(err))
			continue
		}
		metrics.JanitorPurged.Inc()
		purged++
	}
	return purged, nil
}
