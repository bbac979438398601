package applicability

// RuleOutcome classifies how a single applicability rule relates to one
// aircraft configuration.
type RuleOutcome string

// Rule outcomes, in evaluation order.
const (
	OutcomeModelMismatch   RuleOutcome = "model_mismatch"
	OutcomeSerialMismatch  RuleOutcome = "serial_mismatch"
	OutcomeExcluded        RuleOutcome = "excluded"
	OutcomeMissingRequired RuleOutcome = "missing_required"
	OutcomeApplies         RuleOutcome = "applies"
)

// ReasonCode states why a directive does or does not apply to an aircraft.
type ReasonCode string

// Reason codes, from most to least informative.
const (
	ReasonAffectedByRule              ReasonCode = "affected_by_rule"
	ReasonExcludedByModification      ReasonCode = "excluded_by_modification"
	ReasonMissingRequiredModification ReasonCode = "missing_required_modification"
	ReasonSerialNotApplicable         ReasonCode = "serial_not_applicable"
	ReasonModelNotApplicable          ReasonCode = "model_not_applicable"
)

// EvaluationResult is the outcome of evaluating one directive against one
// aircraft configuration. Created fresh per evaluation; never mutated after
// return.
//
// MatchedRuleIndex is the index into the directive's rules that produced the
// affected determination, or the most relevant non-matching rule when
// affected is false. It is nil only when no rule covered the aircraft's
// model at all.
type EvaluationResult struct {
	DirectiveID      string
	ConfigurationRef string
	Affected         bool
	MatchedRuleIndex *int
	ReasonCode       ReasonCode
	Explanation      string
}

// Evaluate decides whether one aircraft configuration is subject to a
// directive.
//
// This is pure domain logic - no I/O, no side effects, no shared state -
// so concurrent calls need no synchronization and identical inputs always
// produce identical results. Nil arguments are programmer errors and panic.
//
// Every rule is classified, then the most informative outcome wins:
// APPLIES > EXCLUDED > MISSING_REQUIRED > SERIAL_MISMATCH > MODEL_MISMATCH,
// reporting the first rule at that level. Exclusion outranks the other
// negatives because it means the aircraft was nearly affected.
func Evaluate(directive *AirworthinessDirective, configuration *AircraftConfiguration) EvaluationResult {
	if directive == nil {
		panic("applicability: Evaluate called with nil directive")
	}
	if configuration == nil {
		panic("applicability: Evaluate called with nil configuration")
	}

	firstExcluded := -1
	firstMissingRequired := -1
	firstSerialMismatch := -1

	for i := range directive.Rules {
		switch evaluateRule(&directive.Rules[i], configuration) {
		case OutcomeApplies:
			// APPLIES has top precedence and the first index wins,
			// so later rules cannot change the result.
			return newResult(directive, configuration, true, i, ReasonAffectedByRule)
		case OutcomeExcluded:
			if firstExcluded < 0 {
				firstExcluded = i
			}
		case OutcomeMissingRequired:
			if firstMissingRequired < 0 {
				firstMissingRequired = i
			}
		case OutcomeSerialMismatch:
			if firstSerialMismatch < 0 {
				firstSerialMismatch = i
			}
		}
	}

	switch {
	case firstExcluded >= 0:
		return newResult(directive, configuration, false, firstExcluded, ReasonExcludedByModification)
	case firstMissingRequired >= 0:
		return newResult(directive, configuration, false, firstMissingRequired, ReasonMissingRequiredModification)
	case firstSerialMismatch >= 0:
		return newResult(directive, configuration, false, firstSerialMismatch, ReasonSerialNotApplicable)
	default:
		return newResult(directive, configuration, false, -1, ReasonModelNotApplicable)
	}
}

// EvaluateMany evaluates each configuration against the directive, returning
// one result per configuration in input order. Calls are independent;
// callers may partition the input across goroutines and merge by index.
func EvaluateMany(directive *AirworthinessDirective, configurations []*AircraftConfiguration) []EvaluationResult {
	if directive == nil {
		panic("applicability: EvaluateMany called with nil directive")
	}

	results := make([]EvaluationResult, len(configurations))
	for i, configuration := range configurations {
		results[i] = Evaluate(directive, configuration)
	}
	return results
}

// evaluateRule applies one rule's conditions cheapest-first:
//  1. model pattern match
//  2. serial constraint
//  3. exclusions (any single match disqualifies)
//  4. required modifications (all must be present)
func evaluateRule(rule *ApplicabilityRule, configuration *AircraftConfiguration) RuleOutcome {
	if !rule.MatchesModel(configuration.ModelDesignation) {
		return OutcomeModelMismatch
	}
	if !rule.SerialConstraint.Satisfies(configuration.SerialNumber) {
		return OutcomeSerialMismatch
	}
	if configuration.HasAnyOf(rule.ExcludedIfModifications) {
		return OutcomeExcluded
	}
	if len(rule.RequiredModifications) > 0 && !configuration.HasAllOf(rule.RequiredModifications) {
		return OutcomeMissingRequired
	}
	return OutcomeApplies
}

func newResult(directive *AirworthinessDirective, configuration *AircraftConfiguration, affected bool, ruleIndex int, reason ReasonCode) EvaluationResult {
	result := EvaluationResult{
		DirectiveID:      directive.DirectiveID,
		ConfigurationRef: configuration.Ref(),
		Affected:         affected,
		ReasonCode:       reason,
		Explanation:      explain(directive, ruleIndex, reason),
	}
	if ruleIndex >= 0 {
		idx := ruleIndex
		result.MatchedRuleIndex = &idx
	}
	return result
}
