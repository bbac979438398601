package handler

import (
	"strings"

	"adwatch/internal/applicability"
	dErrors "adwatch/pkg/domain-errors"
)

// maxFleetSize bounds a single fleet evaluation request.
const maxFleetSize = 1000

// ModificationRequest is the wire form of one embodied modification.
type ModificationRequest struct {
	Identifier string `json:"identifier"`
	Revision   string `json:"revision,omitempty"`
	Phase      string `json:"phase,omitempty"`
}

// ConfigurationRequest is the wire form of one aircraft configuration.
type ConfigurationRequest struct {
	Model         string                `json:"model"`
	SerialNumber  int                   `json:"serial_number"`
	Modifications []ModificationRequest `json:"modifications,omitempty"`
}

// ToConfiguration builds the domain configuration, surfacing constructor
// violations as validation errors.
func (r *ConfigurationRequest) ToConfiguration() (*applicability.AircraftConfiguration, error) {
	modifications := make([]applicability.ModificationReference, 0, len(r.Modifications))
	for _, m := range r.Modifications {
		phase := applicability.PhaseUnspecified
		if m.Phase != "" {
			parsed, err := applicability.ParseModificationPhase(m.Phase)
			if err != nil {
				return nil, err
			}
			phase = parsed
		}
		ref, err := applicability.NewModificationReference(m.Identifier, m.Revision, phase)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid modification reference")
		}
		modifications = append(modifications, ref)
	}

	configuration, err := applicability.NewAircraftConfiguration(r.Model, r.SerialNumber, modifications)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "invalid aircraft configuration")
	}
	return configuration, nil
}

// EvaluateRequest is the HTTP request body for POST /v1/evaluations.
type EvaluateRequest struct {
	DirectiveID   string                `json:"directive_id"`
	Configuration *ConfigurationRequest `json:"configuration"`
}

// Validate validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *EvaluateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.DirectiveID = strings.TrimSpace(r.DirectiveID)
	if r.DirectiveID == "" {
		return dErrors.New(dErrors.CodeValidation, "directive_id is required")
	}
	if r.Configuration == nil {
		return dErrors.New(dErrors.CodeValidation, "configuration is required")
	}
	return nil
}

// EvaluateFleetRequest is the HTTP request body for POST /v1/evaluations/fleet.
type EvaluateFleetRequest struct {
	DirectiveID    string                  `json:"directive_id"`
	Configurations []*ConfigurationRequest `json:"configurations"`
}

// Validate validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *EvaluateFleetRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.DirectiveID = strings.TrimSpace(r.DirectiveID)
	if r.DirectiveID == "" {
		return dErrors.New(dErrors.CodeValidation, "directive_id is required")
	}
	if len(r.Configurations) == 0 {
		return dErrors.New(dErrors.CodeValidation, "configurations is required")
	}
	if len(r.Configurations) > maxFleetSize {
		return dErrors.New(dErrors.CodeValidation, "configurations exceeds the maximum fleet size")
	}
	for _, c := range r.Configurations {
		if c == nil {
			return dErrors.New(dErrors.CodeValidation, "configurations must not contain null entries")
		}
	}
	return nil
}
