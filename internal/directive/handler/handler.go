// Package handler exposes the directive ingestion and lookup endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"adwatch/internal/directive"
	"adwatch/pkg/platform/httputil"
	"adwatch/pkg/requestcontext"
)

// Service defines the interface for directive operations.
type Service interface {
	Ingest(ctx context.Context, directiveID, text string) (*directive.IngestOutcome, error)
	Get(ctx context.Context, directiveID string) (*directive.StoredDirective, error)
	List(ctx context.Context) ([]*directive.StoredDirective, error)
}

// Handler wires directive endpoints to the directive service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a directive handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts directive endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/directives", h.HandleIngest)
	r.Get("/directives", h.HandleList)
	r.Get("/directives/{directiveID}", h.HandleGet)
}

// HandleIngest handles POST /v1/directives requests.
func (h *Handler) HandleIngest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[IngestRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	outcome, err := h.service.Ingest(ctx, req.DirectiveID, req.Text)
	if err != nil {
		h.logger.ErrorContext(ctx, "directive ingest failed",
			"request_id", requestID,
			"directive_id", req.DirectiveID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "directive ingest handled",
		"request_id", requestID,
		"directive_id", req.DirectiveID,
		"extractor", outcome.ExtractorID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, FromIngestOutcome(outcome))
}

// HandleGet handles GET /v1/directives/{directiveID} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	directiveID := chi.URLParam(r, "directiveID")

	stored, err := h.service.Get(ctx, directiveID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromStoredDirective(stored))
}

// HandleList handles GET /v1/directives requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stored, err := h.service.List(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	out := make([]*DirectiveResponse, len(stored))
	for i, sd := range stored {
		out[i] = FromStoredDirective(sd)
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{Directives: out})
}
