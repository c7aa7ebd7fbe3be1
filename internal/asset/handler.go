package asset

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/imagedrop/service/internal/auth"
	"github.com/imagedrop/service/internal/response"
)

// Handler holds HTTP handlers for the image endpoints.
type Handler struct {
	svc     *Service
	tokens  *auth.TokenIssuer
	apiKey  string
	maxSize int64
	timeout time.Duration
}

// NewHandler creates a new asset Handler.
func NewHandler(svc *Service, tokens *auth.TokenIssuer, apiKey string, maxSize int64, timeout time.Duration) *Handler {
	return &Handler{svc: svc, tokens: tokens, apiKey: apiKey, maxSize: maxSize, timeout: timeout}
}

type uploadResponse struct {
	ID string `json:"id" example:"e7eedc79-0707-4fe4-8734-526b7ef13a7b"`
}

type assetBody struct {
	ID          string    `json:"id" example:"e7eedc79-0707-4fe4-8734-526b7ef13a7b"`
	ContentType string    `json:"contentType" example:"image/png"`
	SizeBytes   int64     `json:"sizeBytes" example:"81292"`
	CreatedAt   time.Time `json:"createdAt"`
	ContentURL  string    `json:"contentUrl,omitempty"`
}

type listResponse struct {
	Assets []assetBody `json:"assets"`
}

// Upload godoc
//
//	@Summary		Ingest an image
//	@Description	Accepts a raw binary payload and durably commits it to the blob and metadata stores.
//	@Tags			images
//	@Accept			octet-stream
//	@Produce		json
//	@Param			Authorization	header		string	true	"shared API secret"
//	@Success		201	{object}	uploadResponse
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		401	{object}	response.ErrorBody
//	@Failure		415	{object}	response.ErrorBody
//	@Failure		502	{object}	response.ErrorBody
//	@Router			/images [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	// One extra byte past the limit distinguishes "exactly max" from "too big";
	// the service rejects the oversized read.
	payload, err := io.ReadAll(io.LimitReader(r.Body, h.maxSize+1))
	if err != nil {
		response.PayloadInvalid(w, "failed to read request body")
		return
	}

	// The commit must run to completion (or fail on its own terms) even if the
	// caller disconnects mid-flight; only the server-side timeout cancels it.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), h.timeout)
	defer cancel()

	a, err := h.svc.Ingest(ctx, payload, r.Header.Get("Content-Type"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	// Best-effort: don't report success to a caller that already went away.
	if r.Context().Err() != nil {
		return
	}
	response.JSON(w, http.StatusCreated, uploadResponse{ID: a.ID})
}

// Get godoc
//
//	@Summary		Get asset metadata
//	@Description	Returns metadata of a committed asset, including a tokenized content URL.
//	@Tags			images
//	@Produce		json
//	@Param			Authorization	header		string	true	"shared API secret"
//	@Param			id	path		string	true	"asset id"
//	@Success		200	{object}	assetBody
//	@Failure		401	{object}	response.ErrorBody
//	@Failure		404	{object}	response.ErrorBody
//	@Router			/images/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, h.assetBody(a))
}

// Content godoc
//
//	@Summary		Download asset content
//	@Description	Streams the stored bytes. Authenticate with the shared secret header or a signed token query parameter.
//	@Tags			images
//	@Produce		octet-stream
//	@Param			id		path	string	true	"asset id"
//	@Param			token	query	string	false	"signed content token"
//	@Success		200
//	@Failure		401	{object}	response.ErrorBody
//	@Failure		404	{object}	response.ErrorBody
//	@Failure		502	{object}	response.ErrorBody
//	@Router			/images/{id}/content [get]
func (h *Handler) Content(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.contentAuthorized(r, id) {
		response.Unauthorized(w, "valid API key or content token required")
		return
	}

	a, rc, err := h.svc.Content(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(a.SizeBytes, 10))
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, rc)
}

// List godoc
//
//	@Summary		List committed assets
//	@Description	Returns committed assets, newest first.
//	@Tags			images
//	@Produce		json
//	@Param			Authorization	header	string	true	"shared API secret"
//	@Param			limit	query	int	false	"page size (max 200)"
//	@Param			offset	query	int	false	"page offset"
//	@Success		200	{object}	listResponse
//	@Failure		401	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/images [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	assets, err := h.svc.List(r.Context(), limit, offset)
	if err != nil {
		response.InternalError(w)
		return
	}

	out := listResponse{Assets: make([]assetBody, 0, len(assets))}
	for _, a := range assets {
		out.Assets = append(out.Assets, h.assetBody(a))
	}
	response.JSON(w, http.StatusOK, out)
}

// contentAuthorized accepts either the shared secret in the Authorization
// header or a content token bound to this asset id.
func (h *Handler) contentAuthorized(r *http.Request, id string) bool {
	if tok := r.URL.Query().Get("token"); tok != "" {
		sub, err := h.tokens.VerifyContentToken(tok)
		return err == nil && sub == id
	}
	if header := r.Header.Get("Authorization"); header != "" {
		presented := header
		if len(header) > 7 && header[:7] == "Bearer " {
			presented = header[7:]
		}
		return auth.SecretsMatch(presented, h.apiKey)
	}
	return false
}

func (h *Handler) assetBody(a *Asset) assetBody {
	body := assetBody{
		ID:          a.ID,
		ContentType: a.ContentType,
		SizeBytes:   a.SizeBytes,
		CreatedAt:   a.CreatedAt,
	}
	if tok, err := h.tokens.ContentToken(a.ID); err == nil {
		body.ContentURL = "/images/" + a.ID + "/content?token=" + tok
	}
	return body
}

// writeError maps service errors to HTTP responses. Each error kind has a
// distinct status and machine-readable code.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(w, "asset not found")
	case errors.Is(err, ErrEmptyPayload), errors.Is(err, ErrPayloadTooLarge):
		response.PayloadInvalid(w, err.Error())
	case errors.Is(err, ErrUnsupportedType):
		response.UnsupportedMediaType(w, err.Error())
	case errors.Is(err, ErrBlobWrite), errors.Is(err, ErrMetadataWrite), errors.Is(err, ErrBlobRead):
		response.StorageFailure(w)
	default:
		response.InternalError(w)
	}
}
