package extraction

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"adwatch/internal/applicability"
	"adwatch/internal/extraction/cache"
	"adwatch/internal/extraction/metrics"
)

// Result is an extraction outcome plus how it was produced, for audit and
// metrics.
type Result struct {
	Directive         *applicability.AirworthinessDirective
	DetectedAuthority DetectedAuthority
	ExtractorID       string
	FromCache         bool
	FallbackUsed      bool
}

// Service orchestrates the pipeline: authority detection, cache lookup,
// pattern extraction, language-model fallback, cache store.
type Service struct {
	registry *Registry
	cache    *cache.Cache
	metrics  *metrics.Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewService wires the extraction pipeline. cache may be nil (no caching);
// metrics may be nil (no instrumentation).
func NewService(registry *Registry, c *cache.Cache, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		registry: registry,
		cache:    c,
		metrics:  m,
		logger:   logger,
		tracer:   otel.Tracer("adwatch/internal/extraction"),
	}
}

// Extract turns raw directive text into a validated directive.
//
// The primary extractor is chosen by detected authority. When none is
// registered, or the primary fails, the fallback extractor runs instead.
// Cached results short-circuit the whole pipeline.
func (s *Service) Extract(ctx context.Context, text, directiveID string) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "extraction.extract",
		trace.WithAttributes(attribute.String("directive.id", directiveID)))
	defer span.End()

	authority := DetectAuthority(text)
	span.SetAttributes(attribute.String("directive.detected_authority", authority.String()))

	if cached, err := s.cache.Get(ctx, text); err != nil {
		s.logger.WarnContext(ctx, "extraction cache lookup failed",
			"error", err,
			"directive_id", directiveID,
		)
	} else if cached != nil {
		s.metrics.IncrementCacheLookup("hit")
		span.SetAttributes(attribute.Bool("extraction.cache_hit", true))
		return &Result{
			Directive:         cached,
			DetectedAuthority: authority,
			ExtractorID:       "cache",
			FromCache:         true,
		}, nil
	}
	s.metrics.IncrementCacheLookup("miss")

	result, err := s.extract(ctx, authority, text, directiveID)
	if err != nil {
		category := string(CategoryOf(err))
		s.metrics.IncrementFailure(category)
		span.RecordError(err)
		s.logger.ErrorContext(ctx, "extraction failed",
			"error", err,
			"directive_id", directiveID,
			"detected_authority", authority.String(),
			"category", category,
		)
		return nil, err
	}
	result.Directive = reconcileAuthority(result.Directive, authority)

	if err := s.cache.Put(ctx, text, result.Directive); err != nil {
		s.logger.WarnContext(ctx, "extraction cache store failed",
			"error", err,
			"directive_id", directiveID,
		)
	}

	span.SetAttributes(
		attribute.String("extraction.extractor", result.ExtractorID),
		attribute.Bool("extraction.fallback_used", result.FallbackUsed),
		attribute.Int("directive.rule_count", len(result.Directive.Rules)),
	)
	return result, nil
}

func (s *Service) extract(ctx context.Context, authority DetectedAuthority, text, directiveID string) (*Result, error) {
	primary, hasPrimary := s.registry.ForAuthority(authority)
	fallback, hasFallback := s.registry.Fallback()

	if !hasPrimary {
		if !hasFallback {
			return nil, NewExtractionError(ErrorInternal, "registry", "no extractor for detected authority", ErrNoExtractor)
		}
		s.metrics.IncrementFallback("no_extractor")
		s.logger.InfoContext(ctx, "no pattern extractor for authority, using fallback",
			"directive_id", directiveID,
			"detected_authority", authority.String(),
		)
		directive, err := s.attempt(ctx, fallback, text, directiveID)
		if err != nil {
			return nil, err
		}
		return &Result{
			Directive:         directive,
			DetectedAuthority: authority,
			ExtractorID:       fallback.ID(),
			FallbackUsed:      true,
		}, nil
	}

	directive, primaryErr := s.attempt(ctx, primary, text, directiveID)
	if primaryErr == nil {
		return &Result{
			Directive:         directive,
			DetectedAuthority: authority,
			ExtractorID:       primary.ID(),
		}, nil
	}

	if !hasFallback {
		return nil, primaryErr
	}

	s.metrics.IncrementFallback("pattern_failure")
	s.logger.WarnContext(ctx, "pattern extraction failed, using fallback",
		"error", primaryErr,
		"directive_id", directiveID,
		"extractor", primary.ID(),
		"category", string(CategoryOf(primaryErr)),
	)

	directive, fallbackErr := s.attempt(ctx, fallback, text, directiveID)
	if fallbackErr != nil {
		return nil, fallbackErr
	}
	return &Result{
		Directive:         directive,
		DetectedAuthority: authority,
		ExtractorID:       fallback.ID(),
		FallbackUsed:      true,
	}, nil
}

// reconcileAuthority fills in the issuing authority when the extractor could
// not determine one but document detection did. Fallback output carries
// AuthorityUnknown whenever the model omits a parsable authority.
func reconcileAuthority(directive *applicability.AirworthinessDirective, detected DetectedAuthority) *applicability.AirworthinessDirective {
	core := detected.Core()
	if directive.IssuingAuthority != applicability.AuthorityUnknown || core == applicability.AuthorityUnknown {
		return directive
	}
	rebuilt, err := applicability.NewAirworthinessDirective(
		directive.DirectiveID, core, directive.EffectiveDate, directive.Manufacturer,
		directive.Rules, directive.RawApplicabilityText)
	if err != nil {
		return directive
	}
	return rebuilt
}

// attempt runs one extractor with timing and attempt metrics.
func (s *Service) attempt(ctx context.Context, e Extractor, text, directiveID string) (*applicability.AirworthinessDirective, error) {
	start := time.Now()
	directive, err := e.Extract(ctx, text, directiveID)
	s.metrics.ObserveDuration(e.ID(), time.Since(start))

	if err != nil {
		s.metrics.IncrementAttempt(e.ID(), "error")
		return nil, err
	}
	s.metrics.IncrementAttempt(e.ID(), "ok")
	return directive, nil
}
