package extraction

import (
	"context"
	"regexp"
	"strings"

	"adwatch/internal/applicability"
)

// FAA directives use lettered paragraphs; applicability is conventionally
// paragraph (c) with numbered model groups:
//
//	(1) Model MD-11 and MD-11F airplanes.
//	(2) Model MD-10-10F and MD-10-30F airplanes.
//	(3) Model DC-10-10, DC-10-10F, ... (KC-10A and KDC-10), ... airplanes.
var (
	faaSectionStart    = regexp.MustCompile(`(?i)\(c\)\s*Applicability\s*\n+`)
	faaSectionFallback = regexp.MustCompile(`(?i)##?\s*Applicability:?\s*\n+`)
	faaSectionEnd      = regexp.MustCompile(`\n+##|\n+\([a-z]\)`)

	faaModelParagraph = regexp.MustCompile(`(?i)\((\d+)\)\s*Model\s+(.*?)\s+airplanes?\.?`)

	faaEffectiveOn   = regexp.MustCompile(`(?i)effective on\s+([A-Za-z]+ \d+, \d{4})`)
	faaEffectiveDate = regexp.MustCompile(`(?i)Effective Date:?\s*\n+([A-Za-z]+ \d+, \d{4})`)

	parenthetical = regexp.MustCompile(`\(([^)]+)\)`)
)

// FAAExtractor parses FAA airworthiness directives. FAA applicability is
// usually a plain model enumeration covering all serial numbers; exclusions
// are rare and left to the fallback extractor when present.
type FAAExtractor struct{}

// NewFAAExtractor constructs the FAA pattern extractor.
func NewFAAExtractor() *FAAExtractor {
	return &FAAExtractor{}
}

func (e *FAAExtractor) ID() string                   { return "faa-pattern" }
func (e *FAAExtractor) Authority() DetectedAuthority { return DetectedFAA }

func (e *FAAExtractor) Extract(_ context.Context, text, directiveID string) (*applicability.AirworthinessDirective, error) {
	section := e.applicabilitySection(text)
	if section == "" {
		return nil, NewExtractionError(ErrorNoApplicability, e.ID(), "no applicability section found", nil)
	}

	rules, err := e.parseRules(section)
	if err != nil {
		return nil, NewExtractionError(ErrorBadPayload, e.ID(), "rule construction failed", err)
	}
	if len(rules) == 0 {
		return nil, NewExtractionError(ErrorPatternMiss, e.ID(), "applicability section matched no model paragraphs", nil)
	}

	directive, err := applicability.NewAirworthinessDirective(
		directiveID,
		applicability.AuthorityFAA,
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

// applicabilitySection isolates the applicability text. The section runs from
// its heading to the next lettered paragraph or markdown heading.
func (e *FAAExtractor) applicabilitySection(text string) string {
	if loc := faaSectionStart.FindStringIndex(text); loc != nil {
		return trimToSectionEnd(text[loc[1]:], faaSectionEnd)
	}
	if loc := faaSectionFallback.FindStringIndex(text); loc != nil {
		return trimToSectionEnd(text[loc[1]:], headingSectionEnd)
	}
	return ""
}

var headingSectionEnd = regexp.MustCompile(`\n+##`)

func trimToSectionEnd(rest string, end *regexp.Regexp) string {
	if loc := end.FindStringIndex(rest); loc != nil {
		rest = rest[:loc[0]]
	}
	return strings.TrimSpace(rest)
}

func (e *FAAExtractor) parseRules(section string) ([]applicability.ApplicabilityRule, error) {
	var rules []applicability.ApplicabilityRule
	for _, match := range faaModelParagraph.FindAllStringSubmatch(section, -1) {
		models := parseModelList(match[2])
		if len(models) == 0 {
			continue
		}
		rule, err := applicability.NewApplicabilityRule(models, applicability.SerialAll(), nil, nil)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (e *FAAExtractor) effectiveDate(text string) string {
	if m := faaEffectiveOn.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := faaEffectiveDate.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return "Unknown"
}

func (e *FAAExtractor) manufacturer(text string) string {
	switch {
	case strings.Contains(text, "Boeing"):
		return "Boeing"
	case strings.Contains(text, "Airbus"):
		return "Airbus"
	default:
		return "Unknown"
	}
}

// parseModelList splits a prose model enumeration into designations.
// Parentheticals become additional list entries so "DC-10-30F (KC-10A and
// KDC-10)" yields the military variants separately, and a trailing
// "airplanes"/"aeroplanes" noun is stripped from entries that carry one.
func parseModelList(modelsText string) []string {
	modelsText = parenthetical.ReplaceAllString(modelsText, ", $1")
	modelsText = strings.ReplaceAll(modelsText, " and ", ", ")

	var models []string
	for _, part := range strings.Split(modelsText, ",") {
		m := trimAircraftNoun(strings.TrimSpace(part))
		if m != "" {
			models = append(models, m)
		}
	}
	return models
}

var aircraftNouns = []string{"airplanes", "airplane", "aeroplanes", "aeroplane"}

func trimAircraftNoun(entry string) string {
	lower := strings.ToLower(entry)
	for _, noun := range aircraftNouns {
		if lower == noun {
			return ""
		}
		if strings.HasSuffix(lower, " "+noun) {
			return strings.TrimSpace(entry[:len(entry)-len(noun)-1])
		}
	}
	return entry
}
