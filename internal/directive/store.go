// Package directive ingests airworthiness directives through the extraction
// pipeline and persists them for evaluation.
package directive

import (
	"context"
	"sort"
	"sync"
	"time"

	"adwatch/internal/applicability"
	dErrors "adwatch/pkg/domain-errors"
)

// StoredDirective is a persisted directive with its ingest timestamps.
// Re-ingesting the same directive ID replaces the rules and bumps UpdatedAt;
// IngestedAt keeps the first ingest time.
type StoredDirective struct {
	Directive  *applicability.AirworthinessDirective
	IngestedAt time.Time
	UpdatedAt  time.Time
}

// Store persists directives keyed by directive ID.
type Store interface {
	Save(ctx context.Context, directive *applicability.AirworthinessDirective, now time.Time) (*StoredDirective, error)
	FindByID(ctx context.Context, directiveID string) (*StoredDirective, error)
	List(ctx context.Context) ([]*StoredDirective, error)
}

// InMemoryStore keeps directives in memory.
type InMemoryStore struct {
	mu         sync.RWMutex
	directives map[string]*StoredDirective
}

// NewInMemoryStore creates an empty in-memory directive store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{directives: make(map[string]*StoredDirective)}
}

// Save upserts a directive.
func (s *InMemoryStore) Save(_ context.Context, directive *applicability.AirworthinessDirective, now time.Time) (*StoredDirective, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := &StoredDirective{
		Directive:  directive,
		IngestedAt: now,
		UpdatedAt:  now,
	}
	if existing, ok := s.directives[directive.DirectiveID]; ok {
		stored.IngestedAt = existing.IngestedAt
	}
	s.directives[directive.DirectiveID] = stored

	copied := *stored
	return &copied, nil
}

// FindByID returns the directive with the given ID.
func (s *InMemoryStore) FindByID(_ context.Context, directiveID string) (*StoredDirective, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.directives[directiveID]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "directive not found")
	}
	copied := *stored
	return &copied, nil
}

// List returns all stored directives ordered by directive ID.
func (s *InMemoryStore) List(_ context.Context) ([]*StoredDirective, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*StoredDirective, 0, len(s.directives))
	for _, stored := range s.directives {
		copied := *stored
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Directive.DirectiveID < out[j].Directive.DirectiveID
	})
	return out, nil
}
