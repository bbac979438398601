package handler

import (
	"time"

	"adwatch/internal/evaluation"
)

// EvaluationResponse is the HTTP representation of one determination.
type EvaluationResponse struct {
	ID               string    `json:"id"`
	DirectiveID      string    `json:"directive_id"`
	OperatorID       string    `json:"operator_id"`
	ConfigurationRef string    `json:"configuration_ref"`
	ModelDesignation string    `json:"model_designation"`
	SerialNumber     int       `json:"serial_number"`
	Affected         bool      `json:"affected"`
	MatchedRuleIndex *int      `json:"matched_rule_index"`
	ReasonCode       string    `json:"reason_code"`
	Explanation      string    `json:"explanation"`
	EvaluatedAt      time.Time `json:"evaluated_at"`
}

// FleetResponse is the HTTP response for POST /v1/evaluations/fleet.
type FleetResponse struct {
	DirectiveID string                `json:"directive_id"`
	FleetSize   int                   `json:"fleet_size"`
	Affected    int                   `json:"affected"`
	Results     []*EvaluationResponse `json:"results"`
}

// ListResponse is the HTTP response for GET /v1/directives/{directiveID}/evaluations.
type ListResponse struct {
	Evaluations []*EvaluationResponse `json:"evaluations"`
}

// FromRecord converts a persisted determination to its HTTP response.
func FromRecord(record *evaluation.Record) *EvaluationResponse {
	return &EvaluationResponse{
		ID:               record.ID.String(),
		DirectiveID:      record.DirectiveID,
		OperatorID:       record.OperatorID.String(),
		ConfigurationRef: record.ConfigurationRef,
		ModelDesignation: record.ModelDesignation,
		SerialNumber:     record.SerialNumber,
		Affected:         record.Affected,
		MatchedRuleIndex: record.MatchedRuleIndex,
		ReasonCode:       string(record.ReasonCode),
		Explanation:      record.Explanation,
		EvaluatedAt:      record.EvaluatedAt,
	}
}

// FromRecords converts records preserving order.
func FromRecords(records []*evaluation.Record) []*EvaluationResponse {
	out := make([]*EvaluationResponse, len(records))
	for i, r := range records {
		out[i] = FromRecord(r)
	}
	return out
}
