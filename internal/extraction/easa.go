package extraction

import (
	"context"
	"regexp"
	"strings"

	"adwatch/internal/applicability"
)

// EASA directives enumerate model variants per airframe family and carry the
// exclusion language the evaluator's excluded_if_modifications encodes:
//
//	Airbus A320-211, A320-212, ..., all manufacturer serial numbers (MSN),
//	except those on which Airbus modification (mod) 24591 has been embodied
//	in production and except those on which Airbus Service Bulletin (SB)
//	A320-57-1089 at Revision 04 has been embodied in service;
var (
	easaSectionStart = regexp.MustCompile(`(?i)##\s*Applicability:?\s*\n+`)

	// Standalone "and" lines separate airframe families.
	easaFamilySplit = regexp.MustCompile(`\n+and\s*\n+`)

	easaModels = regexp.MustCompile(`(?i)Airbus\s+(.*?),?\s+all\s+(?:manufacturer serial numbers|MSN)`)

	easaModification    = regexp.MustCompile(`(?i)(?:modification|mod)\s+(?:\(mod\)\s+)?(\d+)\s+has been embodied in (production|service)`)
	easaServiceBulletin = regexp.MustCompile(`(?i)Service Bulletin\s+\(SB\)\s+([\w-]+)(?:\s+at\s+Revision\s+(\d+))?\s+has been embodied in (production|service)`)

	easaEffectiveDate = regexp.MustCompile(`(?is)Effective Date:?\s*\n+.*?(\d{2} [A-Za-z]+ \d{4})`)
	easaIssued        = regexp.MustCompile(`(?i)Issued:?\s*\n+(\d{2} [A-Za-z]+ \d{4})`)
)

// EASAExtractor parses EASA airworthiness directives, including the
// production/service modification exclusions FAA documents rarely carry.
type EASAExtractor struct{}

// NewEASAExtractor constructs the EASA pattern extractor.
func NewEASAExtractor() *EASAExtractor {
	return &EASAExtractor{}
}

func (e *EASAExtractor) ID() string                   { return "easa-pattern" }
func (e *EASAExtractor) Authority() DetectedAuthority { return DetectedEASA }

func (e *EASAExtractor) Extract(_ context.Context, text, directiveID string) (*applicability.AirworthinessDirective, error) {
	section := e.applicabilitySection(text)
	if section == "" {
		return nil, NewExtractionError(ErrorNoApplicability, e.ID(), "no applicability section found", nil)
	}

	rules, err := e.parseRules(section)
	if err != nil {
		return nil, NewExtractionError(ErrorBadPayload, e.ID(), "rule construction failed", err)
	}
	if len(rules) == 0 {
		return nil, NewExtractionError(ErrorPatternMiss, e.ID(), "applicability section matched no airframe families", nil)
	}

	directive, err := applicability.NewAirworthinessDirective(
		directiveID,
		applicability.AuthorityEASA,
		e.effectiveDate(text),
		e.manufacturer(text),
		rules,
		section,
	)
	if err != nil {
		return nil, NewExtractionError(ErrorBadPayload, e.ID(), "directive construction failed", err)
	}
	return directive, nil
}

func (e *EASAExtractor) applicabilitySection(text string) string {
	loc := easaSectionStart.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	return trimToSectionEnd(text[loc[1]:], headingSectionEnd)
}

func (e *EASAExtractor) parseRules(section string) ([]applicability.ApplicabilityRule, error) {
	var rules []applicability.ApplicabilityRule
	for _, family := range easaFamilySplit.Split(section, -1) {
		family = strings.TrimSpace(family)
		if family == "" {
			continue
		}

		models := e.parseFamilyModels(family)
		if len(models) == 0 {
			continue
		}

		exclusions, err := e.parseExclusions(family)
		if err != nil {
			return nil, err
		}

		rule, err := applicability.NewApplicabilityRule(models, applicability.SerialAll(), exclusions, nil)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// parseFamilyModels pulls the variant list preceding the serial-number
// clause: "Airbus A320-211, A320-212 and A320-214, all MSN" yields three
// designations.
func (e *EASAExtractor) parseFamilyModels(family string) []string {
	match := easaModels.FindStringSubmatch(family)
	if match == nil {
		return nil
	}
	return parseModelList(match[1])
}

func (e *EASAExtractor) parseExclusions(family string) ([]applicability.ModificationReference, error) {
	var exclusions []applicability.ModificationReference

	for _, m := range easaModification.FindAllStringSubmatch(family, -1) {
		phase, err := applicability.ParseModificationPhase(m[2])
		if err != nil {
			return nil, err
		}
		ref, err := applicability.NewModificationReference(m[1], "", phase)
		if err != nil {
			return nil, err
		}
		exclusions = append(exclusions, ref)
	}

	for _, m := range easaServiceBulletin.FindAllStringSubmatch(family, -1) {
		phase, err := applicability.ParseModificationPhase(m[3])
		if err != nil {
			return nil, err
		}
		ref, err := applicability.NewModificationReference(m[1], m[2], phase)
		if err != nil {
			return nil, err
		}
		exclusions = append(exclusions, ref)
	}

	return exclusions, nil
}

func (e *EASAExtractor) effectiveDate(text string) string {
	if m := easaEffectiveDate.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := easaIssued.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return "Unknown"
}

func (e *EASAExtractor) manufacturer(text string) string {
	upper := strings.ToUpper(text)
	switch {
	case strings.Contains(upper, "AIRBUS"):
		return "Airbus"
	case strings.Contains(upper, "BOEING"):
		return "Boeing"
	default:
		return "Unknown"
	}
}
