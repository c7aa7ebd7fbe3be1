package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, int64(10<<20), cfg.MaxPayloadBytes)
	assert.Equal(t, []string{"image/png", "image/jpeg", "image/gif", "image/webp"}, cfg.AllowedContentTypes)
	assert.Equal(t, "minio", cfg.BlobBackend)
	assert.Equal(t, "postgres", cfg.MetaBackend)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("MAX_PAYLOAD_BYTES", "1048576")
	t.Setenv("ALLOWED_CONTENT_TYPES", " Image/PNG , image/jpeg ,")
	t.Setenv("BLOB_BACKEND", "fs")
	t.Setenv("META_BACKEND", "badger")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("JANITOR_BATCH", "7")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, int64(1048576), cfg.MaxPayloadBytes)
	assert.Equal(t, []string{"image/png", "image/jpeg"}, cfg.AllowedContentTypes)
	assert.Equal(t, "fs", cfg.BlobBackend)
	assert.Equal(t, "badger", cfg.MetaBackend)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 7, cfg.JanitorBatch)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("MAX_PAYLOAD_BYTES", "not-a-number")
	t.Setenv("REQUEST_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, int64(10<<20), cfg.MaxPayloadBytes)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}
