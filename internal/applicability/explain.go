package applicability

import (
	"fmt"
	"strings"
)

// explain renders the human-readable sentence for an evaluation result.
//
// The text is a deterministic function of the directive value, the reported
// rule index, and the reason code: it names the rule's own patterns,
// constraints, and modification entries, never the aircraft's data, so the
// same (directive, index, reason) triple always yields the same sentence.
func explain(directive *AirworthinessDirective, ruleIndex int, reason ReasonCode) string {
	if reason == ReasonModelNotApplicable {
		return fmt.Sprintf("Directive %s does not apply: no rule covers the aircraft's model designation.", directive.DirectiveID)
	}

	rule := &directive.Rules[ruleIndex]
	models := strings.Join(rule.ModelPatterns, ", ")
	// Rules are numbered from 1 in explanations.
	ruleNo := ruleIndex + 1

	switch reason {
	case ReasonAffectedByRule:
		return fmt.Sprintf("Directive %s applies: rule %d covers model(s) %s, %s.",
			directive.DirectiveID, ruleNo, models, rule.SerialConstraint)
	case ReasonExcludedByModification:
		return fmt.Sprintf("Directive %s does not apply: rule %d (model(s) %s) excludes aircraft with any of: %s.",
			directive.DirectiveID, ruleNo, models, describeModifications(rule.ExcludedIfModifications))
	case ReasonMissingRequiredModification:
		return fmt.Sprintf("Directive %s does not apply: rule %d (model(s) %s) requires all of: %s.",
			directive.DirectiveID, ruleNo, models, describeModifications(rule.RequiredModifications))
	case ReasonSerialNotApplicable:
		return fmt.Sprintf("Directive %s does not apply: rule %d covers model(s) %s only for %s.",
			directive.DirectiveID, ruleNo, models, rule.SerialConstraint)
	default:
		return fmt.Sprintf("Directive %s: no determination.", directive.DirectiveID)
	}
}

// describeModifications renders rule modification entries in rule order,
// e.g. "24591 (production); A320-57-1089 Rev 04 (service)".
func describeModifications(refs []ModificationReference) string {
	parts := make([]string, len(refs))
	for i, ref := range refs {
		parts[i] = describeModification(ref)
	}
	return strings.Join(parts, "; ")
}

func describeModification(ref ModificationReference) string {
	var b strings.Builder
	b.WriteString(ref.Identifier)
	if ref.Revision != "" {
		b.WriteString(" Rev ")
		b.WriteString(ref.Revision)
	}
	if ref.Phase != PhaseUnspecified {
		b.WriteString(" (")
		b.WriteString(ref.Phase.String())
		b.WriteString(")")
	}
	return b.String()
}
