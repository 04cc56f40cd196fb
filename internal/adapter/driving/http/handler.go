package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ericfisherdev/quickdynalist/internal/application"
	"github.com/ericfisherdev/quickdynalist/internal/domain/model"
)

// maxBodyBytes bounds request bodies; items are short text.
const maxBodyBytes = 64 << 10

// Gate is the non-interactive part of the auth gate.
type Gate interface {
	Validate(ctx context.Context, token string) error
	MarkRejected()
	IsAuthenticated() bool
	State() model.AuthState
}

// Submitter sends one item.
type Submitter interface {
	Submit(ctx context.Context, sub model.Submission) error
}

// Locations lists, refreshes and resolves destinations.
type Locations interface {
	List(ctx context.Context) ([]model.Location, error)
	Refresh(ctx context.Context) ([]model.Location, error)
	Resolve(ctx context.Context, name string) (model.Location, error)
}

// Handler is the HTTP driving adapter that serves the local JSON API. It
// never prompts: a missing or rejected token is reported as 401 and a new
// one is supplied through POST /api/v1/auth/token.
type Handler struct {
	gate      Gate
	submitter Submitter
	locations Locations
	renderer  *itemRenderer
	logger    *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(gate Gate, submitter Submitter, locations Locations, logger *slog.Logger) *Handler {
	return &Handler{
		gate:      gate,
		submitter: submitter,
		locations: locations,
		renderer:  newItemRenderer(),
		logger:    logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with request ID, logging, origin and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("GET /api/v1/auth", h.GetAuth)
	mux.HandleFunc("POST /api/v1/auth/token", h.SetToken)
	mux.HandleFunc("POST /api/v1/items", h.AddItem)
	mux.HandleFunc("GET /api/v1/locations", h.ListLocations)
	mux.HandleFunc("POST /api/v1/locations/refresh", h.RefreshLocations)
	mux.HandleFunc("POST /api/v1/preview", h.Preview)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = originMiddleware(wrapped)
	wrapped = loggingMiddleware(logger, wrapped)
	wrapped = requestIDMiddleware(wrapped)

	return wrapped
}

// Health reports that the server is up.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// GetAuth reports the auth gate state.
func (h *Handler) GetAuth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.authResponse())
}

// SetToken validates a token against Dynalist and stores it on success.
func (h *Handler) SetToken(w http.ResponseWriter, r *http.Request) {
	var req SetTokenRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := h.gate.Validate(r.Context(), req.Token)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, h.authResponse())
	case errors.Is(err, application.ErrInvalidToken):
		writeJSON(w, http.StatusUnprocessableEntity, h.authResponse())
	default:
		h.logger.Error("failed to store token", "request_id", RequestID(r.Context()), "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// AddItem submits one item to the inbox or a named location.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	dest, err := h.locations.Resolve(r.Context(), req.Location)
	if err != nil {
		h.writeServiceError(w, r, "failed to resolve location", err)
		return
	}

	sub := model.Submission{
		ID:          uuid.NewString(),
		Contents:    req.Content,
		Note:        req.Note,
		Destination: dest,
	}
	if err := h.submitter.Submit(r.Context(), sub); err != nil {
		h.writeServiceError(w, r, "failed to add item", err)
		return
	}

	writeJSON(w, http.StatusCreated, AddItemResponse{ID: sub.ID, Location: dest.Name})
}

// ListLocations returns the stored destinations, inbox first.
func (h *Handler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.locations.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "failed to list locations", err)
		return
	}
	writeJSON(w, http.StatusOK, toLocationResponses(locations))
}

// RefreshLocations rediscovers destinations from the user's documents.
func (h *Handler) RefreshLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.locations.Refresh(r.Context())
	if err != nil {
		if errors.Is(err, model.ErrRejected) || errors.Is(err, model.ErrMalformedResponse) {
			h.gate.MarkRejected()
		}
		h.writeServiceError(w, r, "failed to refresh locations", err)
		return
	}
	writeJSON(w, http.StatusOK, toLocationResponses(locations))
}

// Preview is a dry run of AddItem: it takes the same body, checks the
// contents and destination, and returns the item as Dynalist would render
// it. Nothing is sent to Dynalist.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		h.writeServiceError(w, r, "failed to preview item", application.ErrEmptyContents)
		return
	}

	dest, err := h.locations.Resolve(r.Context(), req.Location)
	if err != nil {
		h.writeServiceError(w, r, "failed to resolve location", err)
		return
	}

	writeJSON(w, http.StatusOK, PreviewResponse{
		Location:    dest.Name,
		ContentHTML: h.renderer.content(req.Content),
		NoteHTML:    h.renderer.note(req.Note),
	})
}

func (h *Handler) authResponse() AuthResponse {
	return AuthResponse{
		State:         string(h.gate.State()),
		Authenticated: h.gate.IsAuthenticated(),
	}
}

// writeServiceError maps application and Dynalist errors to status codes.
// Any rejection from Dynalist is reported as 401 since it may mean the
// stored token is no longer valid.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	status, message := http.StatusInternalServerError, "internal server error"

	var apiErr *model.APIError
	switch {
	case errors.Is(err, application.ErrEmptyContents):
		status, message = http.StatusBadRequest, "content is required"
	case errors.Is(err, application.ErrLocationNotFound):
		status, message = http.StatusNotFound, "location not found"
	case errors.Is(err, application.ErrNotAuthenticated):
		status, message = http.StatusUnauthorized, "no token stored"
	case errors.Is(err, application.ErrSubmissionInFlight):
		status, message = http.StatusConflict, "a submission is already in flight"
	case errors.As(err, &apiErr):
		status, message = http.StatusUnauthorized, "rejected by dynalist: "+string(apiErr.Code)
	case errors.Is(err, model.ErrMalformedResponse):
		status, message = http.StatusUnauthorized, "unexpected response from dynalist"
	case errors.Is(err, model.ErrTransport):
		status, message = http.StatusBadGateway, "dynalist unreachable"
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, "request_id", RequestID(r.Context()), "error", err)
	} else {
		h.logger.Warn(msg, "request_id", RequestID(r.Context()), "status", status, "error", err)
	}
	writeError(w, status, message)
}

// decodeBody decodes a bounded JSON body into v. It writes a 415 unless the
// body is declared as application/json and a 400 when it does not parse.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if !isJSONRequest(r) {
		writeError(w, http.StatusUnsupportedMediaType, "content type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
