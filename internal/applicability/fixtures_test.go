package applicability

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Test fixtures mirror two published directives and a small mixed fleet used
// throughout the evaluator tests.

func mustModRef(t *testing.T, identifier, revision string, phase ModificationPhase) ModificationReference {
	t.Helper()
	ref, err := NewModificationReference(identifier, revision, phase)
	require.NoError(t, err)
	return ref
}

func mustRule(t *testing.T, patterns []string, serial SerialNumberConstraint, excluded, required []ModificationReference) ApplicabilityRule {
	t.Helper()
	rule, err := NewApplicabilityRule(patterns, serial, excluded, required)
	require.NoError(t, err)
	return rule
}

func mustDirective(t *testing.T, id string, authority Authority, rules []ApplicabilityRule) *AirworthinessDirective {
	t.Helper()
	d, err := NewAirworthinessDirective(id, authority, "", "", rules, "")
	require.NoError(t, err)
	return d
}

func mustConfiguration(t *testing.T, model string, serial int, mods ...ModificationReference) *AircraftConfiguration {
	t.Helper()
	cfg, err := NewAircraftConfiguration(model, serial, mods)
	require.NoError(t, err)
	return cfg
}

// faaDirective covers the MD-11, MD-10, and DC-10 families for all serial
// numbers, with no modification conditions.
func faaDirective(t *testing.T) *AirworthinessDirective {
	t.Helper()
	return mustDirective(t, "FAA-2025-23-53", AuthorityFAA, []ApplicabilityRule{
		mustRule(t, []string{"MD-11", "MD-11F"}, SerialAll(), nil, nil),
		mustRule(t, []string{"MD-10-10F", "MD-10-30F"}, SerialAll(), nil, nil),
		mustRule(t, []string{"DC-10-10", "DC-10-10F", "DC-10-30", "DC-10-30F", "DC-10-40F", "KC-10A", "KDC-10"}, SerialAll(), nil, nil),
	})
}

// easaDirective covers the A320 and A321 families with per-family
// modification exclusions.
func easaDirective(t *testing.T) *AirworthinessDirective {
	t.Helper()
	return mustDirective(t, "EASA-2025-0254", AuthorityEASA, []ApplicabilityRule{
		mustRule(t, []string{"A319", "A320"}, SerialAll(),
			[]ModificationReference{
				mustModRef(t, "24591", "", PhaseProduction),
				mustModRef(t, "A320-57-1089", "04", PhaseService),
			}, nil),
		mustRule(t, []string{"A321"}, SerialAll(),
			[]ModificationReference{
				mustModRef(t, "24977", "", PhaseProduction),
			}, nil),
	})
}

// testFleet is a mixed fleet of ten configurations.
func testFleet(t *testing.T) []*AircraftConfiguration {
	t.Helper()
	return []*AircraftConfiguration{
		mustConfiguration(t, "MD-11", 48123),
		mustConfiguration(t, "DC-10-30F", 47890),
		mustConfiguration(t, "737-800", 30123),
		mustConfiguration(t, "A320-214", 5234),
		mustConfiguration(t, "A320-232", 6789, mustModRef(t, "24591", "", PhaseProduction)),
		mustConfiguration(t, "A320-214", 7456, mustModRef(t, "A320-57-1089", "04", PhaseUnspecified)),
		mustConfiguration(t, "A321-111", 8123),
		mustConfiguration(t, "A321-112", 364, mustModRef(t, "24977", "", PhaseProduction)),
		mustConfiguration(t, "A319-100", 9234),
		mustConfiguration(t, "MD-10-10F", 46234),
	}
}
