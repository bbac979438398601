package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	id "adwatch/pkg/domain"
	"adwatch/pkg/requestcontext"
)

// TokenValidator validates bearer tokens issued by the token endpoint.
type TokenValidator interface {
	ValidateToken(tokenString string) (*TokenClaims, error)
}

// TokenClaims carries the identity asserted by a validated token.
type TokenClaims struct {
	OperatorID string
}

// RequireAuth rejects requests without a valid bearer token and stores the
// authenticated operator ID in the request context.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			if token, ok := strings.CutPrefix(authHeader, bearerPrefix); ok {
				ctx := r.Context()
				requestID := requestcontext.RequestID(ctx)

				claims, err := validator.ValidateToken(token)
				if err != nil {
					logger.WarnContext(ctx, "unauthorized access - invalid token",
						"error", err,
						"request_id", requestID,
					)
					writeUnauthorized(w, "Invalid or expired token")
					return
				}

				operatorID, err := id.ParseOperatorID(claims.OperatorID)
				if err != nil {
					logger.WarnContext(ctx, "unauthorized access - malformed operator claim",
						"error", err,
						"request_id", requestID,
					)
					writeUnauthorized(w, "Invalid or expired token")
					return
				}

				ctx = requestcontext.WithOperatorID(ctx, operatorID)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			// No Authorization header or invalid format
			ctx := r.Context()
			logger.WarnContext(ctx, "unauthorized access - missing token",
				"request_id", requestcontext.RequestID(ctx),
			)
			writeUnauthorized(w, "Missing or invalid Authorization header")
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
