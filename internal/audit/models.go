// Package audit records who did what to which directive. Events are appended
// to a local store for querying and, when brokers are configured, published to
// Kafka for downstream compliance and monitoring pipelines.
package audit

import "time"

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance: a
	// directive entering the system or an applicability determination being
	// made. These require durable storage and long retention.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to security monitoring,
	// e.g. failed operator authentication.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers events useful for debugging and operational
	// visibility. These can be sampled with shorter retention.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category    EventCategory `json:"category"`
	Timestamp   time.Time     `json:"timestamp"`
	Action      AuditEvent    `json:"action"`
	OperatorID  string        `json:"operator_id,omitempty"`
	DirectiveID string        `json:"directive_id,omitempty"`
	// Detail carries action-specific context: the extractor that produced a
	// directive, the reason an authentication failed, a fleet size.
	Detail string `json:"detail,omitempty"`
	// Correlation fields populated from the request context.
	RequestID string `json:"request_id,omitempty"`
	ClientIP  string `json:"client_ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

// AuditEvent names an auditable action.
type AuditEvent string

const (
	// Directive events
	EventDirectiveIngested AuditEvent = "directive_ingested"

	// Evaluation events
	EventDirectiveEvaluated AuditEvent = "directive_evaluated"
	EventFleetEvaluated     AuditEvent = "fleet_evaluated"

	// Extraction events
	EventExtractionFallbackUsed AuditEvent = "extraction_fallback_used"
	EventExtractionFailed       AuditEvent = "extraction_failed"

	// Operator auth events
	EventTokenIssued AuditEvent = "token_issued"
	EventAuthFailed  AuditEvent = "auth_failed"
)

// eventCategories maps each audit event to its category.
var eventCategories = map[AuditEvent]EventCategory{
	// Compliance events - directive lifecycle and determinations
	EventDirectiveIngested:  CategoryCompliance,
	EventDirectiveEvaluated: CategoryCompliance,
	EventFleetEvaluated:     CategoryCompliance,

	// Security events
	EventAuthFailed: CategorySecurity,

	// Operations events - routine activity, can be sampled
	EventExtractionFallbackUsed: CategoryOperations,
	EventExtractionFailed:       CategoryOperations,
	EventTokenIssued:            CategoryOperations,
}

// Category returns the category for an audit event. Unmapped events default
// to operations so a forgotten mapping never silently gains compliance
// guarantees it was not designed for.
func (e AuditEvent) Category() EventCategory {
	if c, ok := eventCategories[e]; ok {
		return c
	}
	return CategoryOperations
}

// String returns the string representation of the event name.
func (e AuditEvent) String() string {
	return string(e)
}
