package audit

import (
	"context"
	"log/slog"

	"adwatch/pkg/requestcontext"
)

// Service enriches audit events with request context, appends them to the
// store, and publishes them to the configured sink.
//
// Failure semantics by category: a failed store append fails closed for
// compliance events (the calling operation must not proceed unrecorded) and
// is logged and dropped otherwise. Publish failures never fail the caller;
// the store remains the system of record.
type Service struct {
	store     Store
	publisher Publisher
	logger    *slog.Logger
}

// NewService wires the audit service. publisher may be nil (no external sink).
func NewService(store Store, publisher Publisher, logger *slog.Logger) *Service {
	return &Service{store: store, publisher: publisher, logger: logger}
}

// Record finalizes and persists one audit event. The category is derived
// from the action; timestamp and correlation fields are taken from the
// request context when not already set.
func (s *Service) Record(ctx context.Context, event Event) error {
	event.Category = event.Action.Category()
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.ClientIP == "" {
		event.ClientIP = requestcontext.ClientIP(ctx)
	}
	if event.UserAgent == "" {
		event.UserAgent = requestcontext.UserAgent(ctx)
	}
	if event.OperatorID == "" {
		if operatorID := requestcontext.OperatorID(ctx); !operatorID.IsNil() {
			event.OperatorID = operatorID.String()
		}
	}

	if err := s.store.Append(ctx, event); err != nil {
		if event.Category == CategoryCompliance {
			return err
		}
		s.logger.WarnContext(ctx, "audit store append failed",
			"error", err,
			"action", event.Action.String(),
			"request_id", event.RequestID,
		)
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "audit publish failed",
				"error", err,
				"action", event.Action.String(),
				"request_id", event.RequestID,
			)
		}
	}
	return nil
}

// ListByDirective returns the audit trail for one directive.
func (s *Service) ListByDirective(ctx context.Context, directiveID string) ([]Event, error) {
	return s.store.ListByDirective(ctx, directiveID)
}
