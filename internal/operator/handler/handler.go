// Package handler exposes the operator token endpoint.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"adwatch/internal/operator"
	"adwatch/pkg/platform/httputil"
	"adwatch/pkg/requestcontext"
)

// Service defines the interface for operator authentication.
type Service interface {
	Authenticate(ctx context.Context, clientID, clientSecret string) (*operator.IssuedToken, error)
}

// Handler wires the token endpoint to the operator service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an operator handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the token endpoint on the router. This route is public:
// it is where callers obtain the bearer token the rest of the API requires.
func (h *Handler) Register(r chi.Router) {
	r.Post("/token", h.HandleToken)
}

// HandleToken handles POST /v1/token requests.
func (h *Handler) HandleToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[TokenRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	issued, err := h.service.Authenticate(ctx, req.ClientID, req.ClientSecret)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "access token issued",
		"client_id", req.ClientID,
		"request_id", requestID,
	)
	httputil.WriteJSON(w, http.StatusOK, FromIssuedToken(issued))
}
