package directive

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"adwatch/internal/applicability"
	"adwatch/internal/audit"
	"adwatch/internal/directive/metrics"
	"adwatch/internal/extraction"
	dErrors "adwatch/pkg/domain-errors"
	"adwatch/pkg/requestcontext"
)

// Extractor is the extraction pipeline port used during ingest.
type Extractor interface {
	Extract(ctx context.Context, text, directiveID string) (*extraction.Result, error)
}

// IngestOutcome describes a completed ingest: the stored directive plus how
// its rules were extracted.
type IngestOutcome struct {
	Stored            *StoredDirective
	DetectedAuthority string
	ExtractorID       string
	FromCache         bool
	FallbackUsed      bool
}

// Service runs directive ingestion and lookups.
type Service struct {
	extractor Extractor
	store     Store
	audit     *audit.Service
	metrics   *metrics.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer
}

// NewService wires the directive service.
func NewService(extractor Extractor, store Store, auditSvc *audit.Service, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		extractor: extractor,
		store:     store,
		audit:     auditSvc,
		metrics:   m,
		logger:    logger,
		tracer:    otel.Tracer("adwatch/internal/directive"),
	}
}

// Ingest extracts applicability rules from the raw directive text and
// persists the result. Re-ingesting an existing directive ID replaces its
// rules.
func (s *Service) Ingest(ctx context.Context, directiveID, text string) (*IngestOutcome, error) {
	ctx, span := s.tracer.Start(ctx, "directive.ingest",
		trace.WithAttributes(attribute.String("directive.id", directiveID)))
	defer span.End()
	start := time.Now()

	result, err := s.extractor.Extract(ctx, text, directiveID)
	if err != nil {
		s.metrics.IncrementIngest("none", "error")
		span.RecordError(err)
		_ = s.audit.Record(ctx, audit.Event{
			Action:      audit.EventExtractionFailed,
			DirectiveID: directiveID,
			Detail:      string(extraction.CategoryOf(err)),
		})
		return nil, ingestError(err)
	}

	if result.FallbackUsed {
		_ = s.audit.Record(ctx, audit.Event{
			Action:      audit.EventExtractionFallbackUsed,
			DirectiveID: directiveID,
			Detail:      result.ExtractorID,
		})
	}

	stored, err := s.store.Save(ctx, result.Directive, requestcontext.Now(ctx))
	if err != nil {
		s.metrics.IncrementIngest(result.ExtractorID, "error")
		span.RecordError(err)
		s.logger.ErrorContext(ctx, "directive save failed",
			"error", err,
			"directive_id", directiveID,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, err
	}

	if err := s.audit.Record(ctx, audit.Event{
		Action:      audit.EventDirectiveIngested,
		DirectiveID: directiveID,
		Detail:      fmt.Sprintf("extractor=%s rules=%d", result.ExtractorID, len(result.Directive.Rules)),
	}); err != nil {
		// Compliance event could not be recorded; the ingest must not
		// proceed unaudited.
		return nil, err
	}

	s.metrics.IncrementIngest(result.ExtractorID, "ok")
	s.metrics.ObserveIngestDuration(time.Since(start))
	s.logger.InfoContext(ctx, "directive ingested",
		"directive_id", directiveID,
		"authority", result.Directive.IssuingAuthority.String(),
		"extractor", result.ExtractorID,
		"rules", len(result.Directive.Rules),
		"fallback_used", result.FallbackUsed,
		"request_id", requestcontext.RequestID(ctx),
	)

	return &IngestOutcome{
		Stored:            stored,
		DetectedAuthority: result.DetectedAuthority.String(),
		ExtractorID:       result.ExtractorID,
		FromCache:         result.FromCache,
		FallbackUsed:      result.FallbackUsed,
	}, nil
}

// ingestError translates extraction failures into coded errors. Document
// problems are the caller's to fix; provider trouble is not.
func ingestError(err error) error {
	switch extraction.CategoryOf(err) {
	case extraction.ErrorNoApplicability, extraction.ErrorPatternMiss, extraction.ErrorBadPayload:
		return dErrors.Wrap(err, dErrors.CodeValidation, "directive document could not be parsed")
	case extraction.ErrorTimeout:
		return dErrors.Wrap(err, dErrors.CodeTimeout, "extraction timed out")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "extraction failed")
	}
}

// Get returns one stored directive.
func (s *Service) Get(ctx context.Context, directiveID string) (*StoredDirective, error) {
	return s.store.FindByID(ctx, directiveID)
}

// List returns all stored directives.
func (s *Service) List(ctx context.Context) ([]*StoredDirective, error) {
	return s.store.List(ctx)
}

// Directive returns the applicability view of a stored directive, for the
// evaluation service.
func (s *Service) Directive(ctx context.Context, directiveID string) (*applicability.AirworthinessDirective, error) {
	stored, err := s.store.FindByID(ctx, directiveID)
	if err != nil {
		return nil, err
	}
	return stored.Directive, nil
}
