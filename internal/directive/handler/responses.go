package handler

import (
	"time"

	"adwatch/internal/applicability"
	"adwatch/internal/directive"
)

// DirectiveResponse is the HTTP representation of a stored directive. The
// applicability types carry their own JSON shape (including the tagged
// serial-constraint form), so rules are embedded directly.
type DirectiveResponse struct {
	DirectiveID          string                            `json:"directive_id"`
	IssuingAuthority     string                            `json:"issuing_authority"`
	EffectiveDate        string                            `json:"effective_date,omitempty"`
	Manufacturer         string                            `json:"manufacturer,omitempty"`
	Rules                []applicability.ApplicabilityRule `json:"rules"`
	RawApplicabilityText string                            `json:"raw_applicability_text,omitempty"`
	IngestedAt           time.Time                         `json:"ingested_at"`
	UpdatedAt            time.Time                         `json:"updated_at"`
}

// IngestResponse is the HTTP response for POST /v1/directives.
type IngestResponse struct {
	Directive         *DirectiveResponse `json:"directive"`
	DetectedAuthority string             `json:"detected_authority"`
	Extractor         string             `json:"extractor"`
	FromCache         bool               `json:"from_cache"`
	FallbackUsed      bool               `json:"fallback_used"`
}

// ListResponse is the HTTP response for GET /v1/directives.
type ListResponse struct {
	Directives []*DirectiveResponse `json:"directives"`
}

// FromStoredDirective converts a stored directive to its HTTP response.
func FromStoredDirective(stored *directive.StoredDirective) *DirectiveResponse {
	d := stored.Directive
	return &DirectiveResponse{
		DirectiveID:          d.DirectiveID,
		IssuingAuthority:     d.IssuingAuthority.String(),
		EffectiveDate:        d.EffectiveDate,
		Manufacturer:         d.Manufacturer,
		Rules:                d.Rules,
		RawApplicabilityText: d.RawApplicabilityText,
		IngestedAt:           stored.IngestedAt,
		UpdatedAt:            stored.UpdatedAt,
	}
}

// FromIngestOutcome converts an ingest outcome to its HTTP response.
func FromIngestOutcome(outcome *directive.IngestOutcome) *IngestResponse {
	return &IngestResponse{
		Directive:         FromStoredDirective(outcome.Stored),
		DetectedAuthority: outcome.DetectedAuthority,
		Extractor:         outcome.ExtractorID,
		FromCache:         outcome.FromCache,
		FallbackUsed:      outcome.FallbackUsed,
	}
}
