package operator

import (
	"context"
	"log/slog"
	"time"

	"adwatch/internal/audit"
	"adwatch/internal/operator/secrets"
	"adwatch/internal/operator/token"
	dErrors "adwatch/pkg/domain-errors"
	"adwatch/pkg/requestcontext"
)

// Service authenticates operators and issues access tokens.
type Service struct {
	store    Store
	tokens   *token.Service
	tokenTTL time.Duration
	audit    *audit.Service
	logger   *slog.Logger
}

// NewService wires the operator service.
func NewService(store Store, tokens *token.Service, tokenTTL time.Duration, auditSvc *audit.Service, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		audit:    auditSvc,
		logger:   logger,
	}
}

// IssuedToken is the result of a successful credential exchange.
type IssuedToken struct {
	AccessToken string
	ExpiresIn   time.Duration
}

// Authenticate exchanges client credentials for an access token. Failures
// are reported uniformly as unauthorized so callers cannot probe which
// client IDs exist.
func (s *Service) Authenticate(ctx context.Context, clientID, clientSecret string) (*IssuedToken, error) {
	op, err := s.store.FindByClientID(ctx, clientID)
	if err != nil {
		return nil, s.authFailed(ctx, clientID, "unknown client")
	}
	if !op.IsActive() {
		return nil, s.authFailed(ctx, clientID, "operator inactive")
	}
	if err := secrets.Verify(clientSecret, op.SecretHash); err != nil {
		return nil, s.authFailed(ctx, clientID, "secret mismatch")
	}

	accessToken, err := s.tokens.GenerateAccessToken(op.ID, op.ClientID, s.tokenTTL)
	if err != nil {
		s.logger.ErrorContext(ctx, "token generation failed",
			"error", err,
			"client_id", clientID,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not issue token")
	}

	_ = s.audit.Record(ctx, audit.Event{
		Action:     audit.EventTokenIssued,
		OperatorID: op.ID.String(),
		Detail:     op.ClientID,
	})

	return &IssuedToken{AccessToken: accessToken, ExpiresIn: s.tokenTTL}, nil
}

// authFailed records the failure for security monitoring and returns the
// uniform unauthorized error.
func (s *Service) authFailed(ctx context.Context, clientID, reason string) error {
	s.logger.WarnContext(ctx, "operator authentication failed",
		"client_id", clientID,
		"reason", reason,
		"request_id", requestcontext.RequestID(ctx),
	)
	_ = s.audit.Record(ctx, audit.Event{
		Action: audit.EventAuthFailed,
		Detail: reason,
	})
	return dErrors.New(dErrors.CodeUnauthorized, "invalid client credentials")
}
