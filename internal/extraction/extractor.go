// Package extraction turns raw airworthiness-directive text into validated
// directive values. Authority-specific pattern extractors handle the document
// formats they know; a language-model fallback covers everything else.
package extraction

import (
	"context"
	"fmt"

	"adwatch/internal/applicability"
)

// Extractor parses one authority's document format into a directive.
type Extractor interface {
	// ID returns a unique identifier for this extractor instance.
	ID() string

	// Authority returns the issuing authority this extractor understands.
	// The fallback extractor returns DetectedUnknown.
	Authority() DetectedAuthority

	// Extract parses the document text into a validated directive.
	Extract(ctx context.Context, text, directiveID string) (*applicability.AirworthinessDirective, error)
}

// Registry routes documents to extractors by detected authority.
type Registry struct {
	byAuthority map[DetectedAuthority]Extractor
	fallback    Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		byAuthority: make(map[DetectedAuthority]Extractor),
	}
}

// Register adds an authority-specific extractor.
func (r *Registry) Register(e Extractor) error {
	authority := e.Authority()
	if _, exists := r.byAuthority[authority]; exists {
		return fmt.Errorf("extractor for authority %s already registered", authority)
	}
	r.byAuthority[authority] = e
	return nil
}

// SetFallback installs the extractor used when no authority-specific one
// exists or when pattern extraction fails.
func (r *Registry) SetFallback(e Extractor) {
	r.fallback = e
}

// ForAuthority returns the extractor registered for the given authority.
func (r *Registry) ForAuthority(authority DetectedAuthority) (Extractor, bool) {
	e, ok := r.byAuthority[authority]
	return e, ok
}

// Fallback returns the fallback extractor, if any.
func (r *Registry) Fallback() (Extractor, bool) {
	return r.fallback, r.fallback != nil
}

// All returns every registered extractor, fallback last.
func (r *Registry) All() []Extractor {
	result := make([]Extractor, 0, len(r.byAuthority)+1)
	for _, e := range r.byAuthority {
		result = append(result, e)
	}
	if r.fallback != nil {
		result = append(result, r.fallback)
	}
	return result
}
