package extraction

import (
	"strings"

	"adwatch/internal/applicability"
)

// DetectedAuthority names the regulatory body recognized in a document.
// It is wider than the core Authority enum: the evaluation engine only
// distinguishes FAA and EASA, but detection reports what it actually saw
// so audit records and extractor routing stay precise.
type DetectedAuthority string

const (
	DetectedFAA       DetectedAuthority = "FAA"
	DetectedEASA      DetectedAuthority = "EASA"
	DetectedTCCA      DetectedAuthority = "TCCA"
	DetectedCAAUK     DetectedAuthority = "CAA_UK"
	DetectedANAC      DetectedAuthority = "ANAC"
	DetectedCASA      DetectedAuthority = "CASA"
	DetectedCAAC      DetectedAuthority = "CAAC"
	DetectedCAAS      DetectedAuthority = "CAAS"
	DetectedJCAB      DetectedAuthority = "JCAB"
	DetectedDGCAIndia DetectedAuthority = "DGCA_INDIA"
	DetectedUnknown   DetectedAuthority = "Unknown"
)

func (d DetectedAuthority) String() string {
	return string(d)
}

// Core maps the detected authority onto the directive enum. Authorities the
// engine has no dedicated handling for collapse to AuthorityUnknown.
func (d DetectedAuthority) Core() applicability.Authority {
	switch d {
	case DetectedFAA:
		return applicability.AuthorityFAA
	case DetectedEASA:
		return applicability.AuthorityEASA
	default:
		return applicability.AuthorityUnknown
	}
}

// DetectAuthority scans directive text for issuing-authority markers.
// Checks run in precedence order; the first hit wins.
func DetectAuthority(text string) DetectedAuthority {
	upper := strings.ToUpper(text)

	contains := func(substrs ...string) bool {
		for _, s := range substrs {
			if strings.Contains(upper, s) {
				return true
			}
		}
		return false
	}

	switch {
	case contains("FEDERAL AVIATION ADMINISTRATION", "FAA"):
		return DetectedFAA
	case contains("EUROPEAN UNION AVIATION SAFETY AGENCY", "EASA"):
		return DetectedEASA
	case contains("TRANSPORT CANADA", "TCCA"):
		return DetectedTCCA
	case contains("CIVIL AVIATION AUTHORITY") && contains("UK", "UNITED KINGDOM"):
		return DetectedCAAUK
	case contains("ANAC"):
		return DetectedANAC
	case contains("CIVIL AVIATION SAFETY AUTHORITY", "CASA"):
		return DetectedCASA
	case contains("CIVIL AVIATION ADMINISTRATION OF CHINA", "CAAC"):
		return DetectedCAAC
	case contains("CIVIL AVIATION AUTHORITY OF SINGAPORE", "CAAS"):
		return DetectedCAAS
	case contains("JAPAN CIVIL AVIATION BUREAU", "JCAB"):
		return DetectedJCAB
	case contains("DIRECTORATE GENERAL OF CIVIL AVIATION") && contains("INDIA"):
		return DetectedDGCAIndia
	default:
		return DetectedUnknown
	}
}
