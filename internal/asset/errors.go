package asset

import "errors"

// ErrNotFound is returned when no committed asset exists for an id.
var ErrNotFound = errors.New("asset not found")

// Validation errors. These are terminal for the request; nothing is written.
var (
	ErrEmptyPayload    = errors.New("payload is empty")
	ErrPayloadTooLarge = errors.New("payload exceeds maximum size")
	ErrUnsupportedType = errors.New("unsupported content type")
)

// Storage errors. The caller may retry the whole ingest call; each attempt
// uses a fresh id so naive retries are safe.
var (
	ErrBlobWrite     = errors.New("blob write failed")
	ErrBlobRead      = errors.New("blob read failed")
	ErrMetadataWrite = errors.New("metadata write failed")
)
