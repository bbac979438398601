package domain

import (
	dErrors "adwatch/pkg/domain-errors"
)

// APIVersion represents a valid API version string.
// This is a domain primitive that enforces validity at parse time.
type APIVersion string

// Supported API versions.
const (
	APIVersionV1 APIVersion = "v1"
)

var supportedVersions = map[APIVersion]bool{
	APIVersionV1: true,
}

// ParseAPIVersion validates and returns an APIVersion.
// Returns an error if the version is unknown.
func ParseAPIVersion(s string) (APIVersion, error) {
	v := APIVersion(s)
	if !supportedVersions[v] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown API version: "+s)
	}
	return v, nil
}

// String returns the string representation of the API version.
func (v APIVersion) String() string {
	return string(v)
}

// IsNil returns true if the API version is empty.
func (v APIVersion) IsNil() bool {
	return v == ""
}

// SupportedVersions returns all currently supported API versions.
func SupportedVersions() []APIVersion {
	return []APIVersion{APIVersionV1}
}
