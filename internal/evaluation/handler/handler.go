// Package handler exposes the applicability evaluation endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"adwatch/internal/applicability"
	"adwatch/internal/evaluation"
	"adwatch/pkg/platform/httputil"
	"adwatch/pkg/requestcontext"
)

// Service defines the interface for evaluation operations.
type Service interface {
	Evaluate(ctx context.Context, directiveID string, configuration *applicability.AircraftConfiguration) (*evaluation.Record, error)
	EvaluateFleet(ctx context.Context, directiveID string, configurations []*applicability.AircraftConfiguration) ([]*evaluation.Record, error)
	ListByDirective(ctx context.Context, directiveID string) ([]*evaluation.Record, error)
}

// Handler wires evaluation endpoints to the evaluation service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an evaluation handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts evaluation endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/evaluations", h.HandleEvaluate)
	r.Post("/evaluations/fleet", h.HandleEvaluateFleet)
	r.Get("/directives/{directiveID}/evaluations", h.HandleList)
}

// HandleEvaluate handles POST /v1/evaluations requests.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	configuration, err := req.Configuration.ToConfiguration()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.service.Evaluate(ctx, req.DirectiveID, configuration)
	if err != nil {
		h.logger.ErrorContext(ctx, "evaluation failed",
			"request_id", requestID,
			"directive_id", req.DirectiveID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, FromRecord(record))
}

// HandleEvaluateFleet handles POST /v1/evaluations/fleet requests.
func (h *Handler) HandleEvaluateFleet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[EvaluateFleetRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	configurations := make([]*applicability.AircraftConfiguration, len(req.Configurations))
	for i, c := range req.Configurations {
		configuration, err := c.ToConfiguration()
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		configurations[i] = configuration
	}

	records, err := h.service.EvaluateFleet(ctx, req.DirectiveID, configurations)
	if err != nil {
		h.logger.ErrorContext(ctx, "fleet evaluation failed",
			"request_id", requestID,
			"directive_id", req.DirectiveID,
			"fleet_size", len(configurations),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	affected := 0
	for _, rec := range records {
		if rec.Affected {
			affected++
		}
	}

	h.logger.InfoContext(ctx, "fleet evaluation handled",
		"request_id", requestID,
		"directive_id", req.DirectiveID,
		"fleet_size", len(records),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, FleetResponse{
		DirectiveID: req.DirectiveID,
		FleetSize:   len(records),
		Affected:    affected,
		Results:     FromRecords(records),
	})
}

// HandleList handles GET /v1/directives/{directiveID}/evaluations requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	directiveID := chi.URLParam(r, "directiveID")

	records, err := h.service.ListByDirective(ctx, directiveID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{Evaluations: FromRecords(records)})
}
