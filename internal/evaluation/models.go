// Package evaluation runs aircraft configurations against stored directives
// and persists the resulting applicability determinations.
package evaluation

import (
	"time"

	"adwatch/internal/applicability"
	id "adwatch/pkg/domain"
)

// Record is a persisted applicability determination: one evaluation result
// plus who asked, which aircraft, and when.
type Record struct {
	ID               id.EvaluationID
	DirectiveID      string
	OperatorID       id.OperatorID
	ConfigurationRef string
	ModelDesignation string
	SerialNumber     int
	Affected         bool
	MatchedRuleIndex *int
	ReasonCode       applicability.ReasonCode
	Explanation      string
	EvaluatedAt      time.Time
}

// NewRecord builds a record from a core evaluation result.
func NewRecord(result applicability.EvaluationResult, configuration *applicability.AircraftConfiguration, operatorID id.OperatorID, evaluatedAt time.Time) *Record {
	return &Record{
		ID:               id.NewEvaluationID(),
		DirectiveID:      result.DirectiveID,
		OperatorID:       operatorID,
		ConfigurationRef: result.ConfigurationRef,
		ModelDesignation: configuration.ModelDesignation,
		SerialNumber:     configuration.SerialNumber,
		Affected:         result.Affected,
		MatchedRuleIndex: result.MatchedRuleIndex,
		ReasonCode:       result.ReasonCode,
		Explanation:      result.Explanation,
		EvaluatedAt:      evaluatedAt,
	}
}
