package evaluation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"adwatch/internal/applicability"
	"adwatch/internal/audit"
	"adwatch/internal/evaluation/metrics"
	"adwatch/pkg/requestcontext"
)

// Fleets at or above this size are evaluated across a worker group; smaller
// batches run inline, where goroutine handoff costs more than it saves.
const fleetParallelThreshold = 32

const fleetWorkers = 8

// DirectiveSource resolves stored directives for evaluation.
type DirectiveSource interface {
	Directive(ctx context.Context, directiveID string) (*applicability.AirworthinessDirective, error)
}

// Service evaluates aircraft configurations against stored directives and
// persists each determination.
type Service struct {
	directives DirectiveSource
	store      Store
	audit      *audit.Service
	metrics    *metrics.Metrics
	logger     *slog.Logger
	tracer     trace.Tracer
}

// NewService wires the evaluation service.
func NewService(directives DirectiveSource, store Store, auditSvc *audit.Service, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		directives: directives,
		store:      store,
		audit:      auditSvc,
		metrics:    m,
		logger:     logger,
		tracer:     otel.Tracer("adwatch/internal/evaluation"),
	}
}

// Evaluate runs one configuration against one directive and persists the
// determination.
func (s *Service) Evaluate(ctx context.Context, directiveID string, configuration *applicability.AircraftConfiguration) (*Record, error) {
	ctx, span := s.tracer.Start(ctx, "evaluation.evaluate",
		trace.WithAttributes(attribute.String("directive.id", directiveID)))
	defer span.End()

	directive, err := s.directives.Directive(ctx, directiveID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	result := applicability.Evaluate(directive, configuration)
	record := NewRecord(result, configuration, requestcontext.OperatorID(ctx), requestcontext.Now(ctx))

	if err := s.store.SaveAll(ctx, []*Record{record}); err != nil {
		span.RecordError(err)
		s.logger.ErrorContext(ctx, "evaluation save failed",
			"error", err,
			"directive_id", directiveID,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, err
	}

	if err := s.audit.Record(ctx, audit.Event{
		Action:      audit.EventDirectiveEvaluated,
		DirectiveID: directiveID,
		Detail:      fmt.Sprintf("configuration=%s reason=%s", record.ConfigurationRef, record.ReasonCode),
	}); err != nil {
		return nil, err
	}

	s.metrics.IncrementEvaluation(string(record.ReasonCode))
	s.logger.InfoContext(ctx, "directive evaluated",
		"directive_id", directiveID,
		"configuration", record.ConfigurationRef,
		"affected", record.Affected,
		"reason_code", record.ReasonCode,
		"request_id", requestcontext.RequestID(ctx),
	)

	return record, nil
}

// EvaluateFleet runs every configuration against one directive and persists
// all determinations in a single batch. Results keep the input order.
func (s *Service) EvaluateFleet(ctx context.Context, directiveID string, configurations []*applicability.AircraftConfiguration) ([]*Record, error) {
	ctx, span := s.tracer.Start(ctx, "evaluation.evaluate_fleet",
		trace.WithAttributes(
			attribute.String("directive.id", directiveID),
			attribute.Int("fleet.size", len(configurations)),
		))
	defer span.End()
	start := time.Now()

	directive, err := s.directives.Directive(ctx, directiveID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	operatorID := requestcontext.OperatorID(ctx)
	evaluatedAt := requestcontext.Now(ctx)

	results := evaluateAll(ctx, directive, configurations)

	records := make([]*Record, len(results))
	for i, result := range results {
		records[i] = NewRecord(result, configurations[i], operatorID, evaluatedAt)
	}

	if err := s.store.SaveAll(ctx, records); err != nil {
		span.RecordError(err)
		s.logger.ErrorContext(ctx, "fleet evaluation save failed",
			"error", err,
			"directive_id", directiveID,
			"fleet_size", len(records),
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, err
	}

	affected := 0
	for _, r := range records {
		s.metrics.IncrementEvaluation(string(r.ReasonCode))
		if r.Affected {
			affected++
		}
	}

	if err := s.audit.Record(ctx, audit.Event{
		Action:      audit.EventFleetEvaluated,
		DirectiveID: directiveID,
		Detail:      fmt.Sprintf("fleet_size=%d affected=%d", len(records), affected),
	}); err != nil {
		return nil, err
	}

	s.metrics.ObserveFleet(len(records), time.Since(start))
	s.logger.InfoContext(ctx, "fleet evaluated",
		"directive_id", directiveID,
		"fleet_size", len(records),
		"affected", affected,
		"request_id", requestcontext.RequestID(ctx),
	)

	return records, nil
}

// ListByDirective returns persisted determinations for one directive.
func (s *Service) ListByDirective(ctx context.Context, directiveID string) ([]*Record, error) {
	return s.store.ListByDirective(ctx, directiveID)
}

// evaluateAll produces one result per configuration in input order. Each
// evaluation is independent, so large fleets are partitioned across a
// bounded worker group and merged by index.
func evaluateAll(ctx context.Context, directive *applicability.AirworthinessDirective, configurations []*applicability.AircraftConfiguration) []applicability.EvaluationResult {
	if len(configurations) < fleetParallelThreshold {
		return applicability.EvaluateMany(directive, configurations)
	}

	results := make([]applicability.EvaluationResult, len(configurations))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(fleetWorkers)

	chunk := (len(configurations) + fleetWorkers - 1) / fleetWorkers
	for lo := 0; lo < len(configurations); lo += chunk {
		hi := min(lo+chunk, len(configurations))
		g.Go(func() error {
			copy(results[lo:hi], applicability.EvaluateMany(directive, configurations[lo:hi]))
			return nil
		})
	}

	// Workers never return errors; Wait is only a join point.
	_ = g.Wait()
	return results
}
