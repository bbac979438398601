// Package applicability holds the airworthiness-directive data model and the
// pure evaluation engine that decides whether an aircraft configuration is
// subject to a directive.
//
// The package is a library-level contract: values are validated at
// construction and immutable afterwards, and evaluation is a pure function of
// a directive and a configuration. Parsing directive documents, detecting
// authorities, persistence, and presentation all live in other packages.
package applicability

import (
	"fmt"
	"strings"

	dErrors "adwatch/pkg/domain-errors"
)

// ModificationPhase states when a modification was embodied on an aircraft.
// Invariant: the value must be one of the supported phases.
type ModificationPhase string

// Supported modification phases. Directives frequently omit the phase, so
// UNSPECIFIED is a first-class member rather than an error state.
const (
	PhaseProduction  ModificationPhase = "production"
	PhaseService     ModificationPhase = "service"
	PhaseUnspecified ModificationPhase = "unspecified"
)

// validModificationPhases is the single source of truth for valid phases.
var validModificationPhases = map[ModificationPhase]bool{
	PhaseProduction:  true,
	PhaseService:     true,
	PhaseUnspecified: true,
}

// ParseModificationPhase constructs a ModificationPhase from external input.
// An empty value parses to PhaseUnspecified: source documents and request
// payloads legitimately omit the phase.
//
// Errors: returns CodeInvalidInput when the value is non-empty and
// unsupported.
func ParseModificationPhase(s string) (ModificationPhase, error) {
	if strings.TrimSpace(s) == "" {
		return PhaseUnspecified, nil
	}
	p := ModificationPhase(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid modification phase")
	}
	return p, nil
}

// IsValid checks if the phase is one of the supported enum values.
func (p ModificationPhase) IsValid() bool {
	return validModificationPhases[p]
}

// String returns the string representation of the phase.
func (p ModificationPhase) String() string {
	return string(p)
}

// ModificationReference identifies an engineering change (a modification
// number or service-bulletin code) that may have been applied to an aircraft.
//
// Invariants:
//   - Identifier is non-empty
//   - Phase is a valid ModificationPhase
//
// Revision is informational and optional; an empty Revision means the source
// did not state one.
type ModificationReference struct {
	Identifier string            `json:"identifier"`
	Revision   string            `json:"revision,omitempty"`
	Phase      ModificationPhase `json:"phase"`
}

// NewModificationReference validates and constructs a ModificationReference.
// A zero phase is normalized to PhaseUnspecified.
func NewModificationReference(identifier, revision string, phase ModificationPhase) (ModificationReference, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return ModificationReference{}, dErrors.New(dErrors.CodeInvariantViolation, "modification identifier cannot be empty")
	}
	if phase == "" {
		phase = PhaseUnspecified
	}
	if !phase.IsValid() {
		return ModificationReference{}, dErrors.New(dErrors.CodeInvariantViolation, "invalid modification phase")
	}
	return ModificationReference{
		Identifier: identifier,
		Revision:   strings.TrimSpace(revision),
		Phase:      phase,
	}, nil
}

// Matches reports whether two references identify the same modification for
// exclusion/requirement purposes:
//   - identifiers must be equal case-insensitively;
//   - phases must be equal, unless either side is UNSPECIFIED;
//   - revisions must be equal only when both sides state one.
//
// An unspecified phase or revision never disqualifies a match.
func (m ModificationReference) Matches(other ModificationReference) bool {
	if !strings.EqualFold(m.Identifier, other.Identifier) {
		return false
	}
	if m.Phase != other.Phase && m.Phase != PhaseUnspecified && other.Phase != PhaseUnspecified {
		return false
	}
	if m.Revision != "" && other.Revision != "" && m.Revision != other.Revision {
		return false
	}
	return true
}

// AircraftConfiguration describes one physical aircraft under evaluation.
//
// Invariants:
//   - ModelDesignation is non-empty (normalized to upper case)
//   - SerialNumber is positive
//
// Immutable once constructed; a single value may be evaluated concurrently
// against any number of directives.
type AircraftConfiguration struct {
	ModelDesignation string                  `json:"model_designation"`
	SerialNumber     int                     `json:"serial_number"`
	Modifications    []ModificationReference `json:"modifications,omitempty"`
}

// NewAircraftConfiguration validates and constructs an AircraftConfiguration.
// The model designation is trimmed and upper-cased so matching is exact over
// a canonical form. The modifications slice is copied.
func NewAircraftConfiguration(modelDesignation string, serialNumber int, modifications []ModificationReference) (*AircraftConfiguration, error) {
	modelDesignation = strings.ToUpper(strings.TrimSpace(modelDesignation))
	if modelDesignation == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "model designation cannot be empty")
	}
	if serialNumber <= 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "serial number must be positive")
	}
	for _, m := range modifications {
		if strings.TrimSpace(m.Identifier) == "" {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "modification identifier cannot be empty")
		}
		if !m.Phase.IsValid() {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid modification phase")
		}
	}

	mods := make([]ModificationReference, len(modifications))
	copy(mods, modifications)

	return &AircraftConfiguration{
		ModelDesignation: modelDesignation,
		SerialNumber:     serialNumber,
		Modifications:    mods,
	}, nil
}

// Ref identifies the configuration in results and logs, e.g. "A320-214 MSN 5234".
func (c *AircraftConfiguration) Ref() string {
	return fmt.Sprintf("%s MSN %d", c.ModelDesignation, c.SerialNumber)
}

// HasAnyOf reports whether any configuration modification matches any entry
// in refs. An empty refs slice never matches.
func (c *AircraftConfiguration) HasAnyOf(refs []ModificationReference) bool {
	for _, ref := range refs {
		for _, m := range c.Modifications {
			if m.Matches(ref) {
				return true
			}
		}
	}
	return false
}

// HasAllOf reports whether every entry in refs has a matching configuration
// modification. An empty refs slice is trivially satisfied.
func (c *AircraftConfiguration) HasAllOf(refs []ModificationReference) bool {
	for _, ref := range refs {
		found := false
		for _, m := range c.Modifications {
			if m.Matches(ref) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
