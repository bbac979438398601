package audit

import (
	"context"
	"sync"
)

// Store persists audit events. Append-only; events are never updated or
// deleted by the application.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByDirective(ctx context.Context, directiveID string) ([]Event, error)
}

// InMemoryStore keeps events in memory. Suitable for development and tests;
// production deployments should consume the Kafka stream instead.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

// NewInMemoryStore creates an empty in-memory audit store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Append adds an event to the store.
func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByDirective returns events for one directive in append order.
func (s *InMemoryStore) ListByDirective(_ context.Context, directiveID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Event
	for _, e := range s.events {
		if e.DirectiveID == directiveID {
			out = append(out, e)
		}
	}
	return out, nil
}

// All returns a copy of every stored event. Test helper.
func (s *InMemoryStore) All() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
