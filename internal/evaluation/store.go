package evaluation

import (
	"context"
	"sync"
)

// Store persists evaluation records.
type Store interface {
	SaveAll(ctx context.Context, records []*Record) error
	ListByDirective(ctx context.Context, directiveID string) ([]*Record, error)
}

// InMemoryStore keeps evaluation records in memory.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []*Record
}

// NewInMemoryStore creates an empty in-memory evaluation store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// SaveAll appends records in order.
func (s *InMemoryStore) SaveAll(_ context.Context, records []*Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		copied := *r
		s.records = append(s.records, &copied)
	}
	return nil
}

// ListByDirective returns records for one directive in insertion order.
func (s *InMemoryStore) ListByDirective(_ context.Context, directiveID string) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Record
	for _, r := range s.records {
		if r.DirectiveID == directiveID {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}
