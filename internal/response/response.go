// Package response provides shared JSON response helpers for HTTP handlers.
// Every error response carries a machine-readable code alongside the message;
// internal storage details are never exposed to callers.
package response

import (
	"encoding/json"
	"net/http"
)

// Error codes returned in error bodies.
const (
	CodeUnauthorized         = "unauthorized"
	CodePayloadInvalid       = "payload_invalid"
	CodeUnsupportedMediaType = "unsupported_media_type"
	CodeStorageFailure       = "storage_failure"
	CodeNotFound             = "not_found"
	CodeInternal             = "internal_error"
)

// ErrorBody is the standard error response body.
type ErrorBody struct {
	Code    string `json:"code" example:"payload_invalid"`
	Message string `json:"message" example:"payload is empty"`
}

// JSON writes a JSON-encoded payload with the given HTTP status code.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Error writes an error response with the given status, code, and message.
func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, ErrorBody{Code: code, Message: message})
}

// Unauthorized writes a 401 response.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, CodeUnauthorized, message)
}

// PayloadInvalid writes a 400 response for empty or oversized payloads.
func PayloadInvalid(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, CodePayloadInvalid, message)
}

// UnsupportedMediaType writes a 415 response.
func UnsupportedMediaType(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnsupportedMediaType, CodeUnsupportedMediaType, message)
}

// StorageFailure writes a 502 response. The message stays generic so backing
// store details never leak.
func StorageFailure(w http.ResponseWriter) {
	Error(w, http.StatusBadGateway, CodeStorageFailure, "storage failure, retry the request")
}

// NotFound writes a 404 response.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, CodeNotFound, message)
}

// InternalError writes a 500 response with a generic message.
func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, CodeInternal, "internal server error")
}
