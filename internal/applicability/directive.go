package applicability

import (
	"strings"

	dErrors "adwatch/pkg/domain-errors"
)

// Authority identifies the regulatory body that issued a directive.
// Invariant: the value must be one of the supported authorities.
type Authority string

// Supported issuing authorities. Directives from other regulators (TCCA,
// UK CAA, ...) carry AuthorityUnknown; the detected authority name is kept
// in extraction metadata, not here.
const (
	AuthorityFAA     Authority = "FAA"
	AuthorityEASA    Authority = "EASA"
	AuthorityUnknown Authority = "UNKNOWN"
)

// validAuthorities is the single source of truth for valid authorities.
var validAuthorities = map[Authority]bool{
	AuthorityFAA:     true,
	AuthorityEASA:    true,
	AuthorityUnknown: true,
}

// ParseAuthority constructs an Authority from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseAuthority(s string) (Authority, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "authority cannot be empty")
	}
	a := Authority(strings.ToUpper(strings.TrimSpace(s)))
	if !a.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid authority")
	}
	return a, nil
}

// IsValid checks if the authority is one of the supported enum values.
func (a Authority) IsValid() bool {
	return validAuthorities[a]
}

// String returns the string representation of the authority.
func (a Authority) String() string {
	return string(a)
}

// ApplicabilityRule is one alternative set of conditions under which a
// directive applies. A directive carries several rules when different model
// families have different constraints.
//
// Invariants:
//   - ModelPatterns is non-empty, each pattern non-empty (normalized upper case)
//   - SerialConstraint was built by one of the Serial* constructors
//
// ExcludedIfModifications entries are independent alternatives: matching any
// one of them disqualifies the aircraft. RequiredModifications entries are a
// conjunction: every one must be present.
type ApplicabilityRule struct {
	ModelPatterns           []string                `json:"model_patterns"`
	SerialConstraint        SerialNumberConstraint  `json:"serial_constraint"`
	ExcludedIfModifications []ModificationReference `json:"excluded_if_modifications,omitempty"`
	RequiredModifications   []ModificationReference `json:"required_modifications,omitempty"`
}

// NewApplicabilityRule validates and constructs an ApplicabilityRule.
// Pattern strings are trimmed and upper-cased; all slices are copied.
func NewApplicabilityRule(
	modelPatterns []string,
	serialConstraint SerialNumberConstraint,
	excludedIfModifications []ModificationReference,
	requiredModifications []ModificationReference,
) (ApplicabilityRule, error) {
	if len(modelPatterns) == 0 {
		return ApplicabilityRule{}, dErrors.New(dErrors.CodeInvariantViolation, "model patterns cannot be empty")
	}
	patterns := make([]string, len(modelPatterns))
	for i, p := range modelPatterns {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p == "" {
			return ApplicabilityRule{}, dErrors.New(dErrors.CodeInvariantViolation, "model pattern cannot be empty")
		}
		patterns[i] = p
	}
	if serialConstraint.Kind() == "" {
		return ApplicabilityRule{}, dErrors.New(dErrors.CodeInvariantViolation, "serial constraint is required")
	}
	for _, m := range excludedIfModifications {
		if strings.TrimSpace(m.Identifier) == "" {
			return ApplicabilityRule{}, dErrors.New(dErrors.CodeInvariantViolation, "excluded modification identifier cannot be empty")
		}
	}
	for _, m := range requiredModifications {
		if strings.TrimSpace(m.Identifier) == "" {
			return ApplicabilityRule{}, dErrors.New(dErrors.CodeInvariantViolation, "required modification identifier cannot be empty")
		}
	}

	excluded := make([]ModificationReference, len(excludedIfModifications))
	copy(excluded, excludedIfModifications)
	required := make([]ModificationReference, len(requiredModifications))
	copy(required, requiredModifications)

	return ApplicabilityRule{
		ModelPatterns:           patterns,
		SerialConstraint:        serialConstraint,
		ExcludedIfModifications: excluded,
		RequiredModifications:   required,
	}, nil
}

// MatchesModel reports whether any of the rule's model patterns matches the
// aircraft's model designation.
func (r *ApplicabilityRule) MatchesModel(modelDesignation string) bool {
	for _, pattern := range r.ModelPatterns {
		if matchesDesignation(pattern, modelDesignation) {
			return true
		}
	}
	return false
}

// matchesDesignation implements hierarchical variant compatibility between a
// rule pattern and a model designation:
//   - exact equality always matches;
//   - a generic designation matches any of its dash-delimited variants, in
//     either direction ("A320" vs "A320-214");
//   - two different variants of the same family never match each other
//     ("A320-214" vs "A320-232"), and a bare prefix without the dash
//     boundary never matches ("A32" vs "A320-214").
func matchesDesignation(pattern, modelDesignation string) bool {
	if pattern == modelDesignation {
		return true
	}
	if strings.HasPrefix(modelDesignation, pattern+"-") {
		return true
	}
	if strings.HasPrefix(pattern, modelDesignation+"-") {
		return true
	}
	return false
}

// AirworthinessDirective is a regulatory mandate with structured
// applicability conditions. It is constructed once by the extraction
// pipeline (or rehydrated from storage) and treated as immutable input by
// the evaluator.
//
// Invariants:
//   - DirectiveID is non-empty
//   - IssuingAuthority is a valid Authority
//   - Rules is non-empty
//
// EffectiveDate and Manufacturer are source-document metadata and may be
// empty; RawApplicabilityText is retained for auditability.
type AirworthinessDirective struct {
	DirectiveID          string              `json:"directive_id"`
	IssuingAuthority     Authority           `json:"issuing_authority"`
	EffectiveDate        string              `json:"effective_date,omitempty"`
	Manufacturer         string              `json:"manufacturer,omitempty"`
	Rules                []ApplicabilityRule `json:"rules"`
	RawApplicabilityText string              `json:"raw_applicability_text,omitempty"`
}

// NewAirworthinessDirective validates and constructs an AirworthinessDirective.
// The rules slice is copied.
func NewAirworthinessDirective(
	directiveID string,
	issuingAuthority Authority,
	effectiveDate string,
	manufacturer string,
	rules []ApplicabilityRule,
	rawApplicabilityText string,
) (*AirworthinessDirective, error) {
	directiveID = strings.TrimSpace(directiveID)
	if directiveID == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "directive id cannot be empty")
	}
	if !issuingAuthority.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid issuing authority")
	}
	if len(rules) == 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "directive must have at least one applicability rule")
	}
	for _, r := range rules {
		if len(r.ModelPatterns) == 0 {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "model patterns cannot be empty")
		}
		if r.SerialConstraint.Kind() == "" {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "serial constraint is required")
		}
	}

	copied := make([]ApplicabilityRule, len(rules))
	copy(copied, rules)

	return &AirworthinessDirective{
		DirectiveID:          directiveID,
		IssuingAuthority:     issuingAuthority,
		EffectiveDate:        strings.TrimSpace(effectiveDate),
		Manufacturer:         strings.TrimSpace(manufacturer),
		Rules:                copied,
		RawApplicabilityText: rawApplicabilityText,
	}, nil
}
