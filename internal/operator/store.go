package operator

import (
	"context"
	"strings"
	"sync"
	"time"

	"adwatch/internal/operator/secrets"
	"adwatch/internal/platform/config"
	id "adwatch/pkg/domain"
	dErrors "adwatch/pkg/domain-errors"
)

// Store persists operator accounts.
type Store interface {
	Create(ctx context.Context, op *Operator) error
	FindByClientID(ctx context.Context, clientID string) (*Operator, error)
	FindByID(ctx context.Context, operatorID id.OperatorID) (*Operator, error)
}

// InMemoryStore keeps operator accounts in memory, keyed by client ID.
type InMemoryStore struct {
	mu         sync.RWMutex
	byClientID map[string]*Operator
}

// NewInMemoryStore creates an empty in-memory operator store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byClientID: make(map[string]*Operator)}
}

// Create adds an operator. Fails with CodeConflict when the client ID is
// already registered.
func (s *InMemoryStore) Create(_ context.Context, op *Operator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byClientID[op.ClientID]; exists {
		return dErrors.New(dErrors.CodeConflict, "client_id already registered")
	}
	copied := *op
	s.byClientID[op.ClientID] = &copied
	return nil
}

// FindByClientID looks up an operator by its public client ID.
func (s *InMemoryStore) FindByClientID(_ context.Context, clientID string) (*Operator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	op, ok := s.byClientID[clientID]
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "operator not found")
	}
	copied := *op
	return &copied, nil
}

// FindByID looks up an operator by its internal identifier.
func (s *InMemoryStore) FindByID(_ context.Context, operatorID id.OperatorID) (*Operator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, op := range s.byClientID {
		if op.ID == operatorID {
			copied := *op
			return &copied, nil
		}
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "operator not found")
}

// Seed creates the operator account configured via environment, for
// environments without a provisioning flow. An empty seed client ID is a
// no-op. The configured plaintext secret is hashed before storage.
func Seed(ctx context.Context, store Store, cfg config.Auth) (*Operator, error) {
	if strings.TrimSpace(cfg.SeedClientID) == "" {
		return nil, nil
	}

	hash, err := secrets.Hash(cfg.SeedClientSecret)
	if err != nil {
		return nil, err
	}

	op, err := NewOperator(id.NewOperatorID(), cfg.SeedOperatorName, cfg.SeedClientID, hash, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := store.Create(ctx, op); err != nil {
		return nil, err
	}
	return op, nil
}
