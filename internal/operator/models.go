// Package operator manages the API accounts (airlines, MROs) that call this
// service, their client credentials, and access-token issuance.
package operator

import (
	"time"

	id "adwatch/pkg/domain"
	dErrors "adwatch/pkg/domain-errors"
)

// Status is the lifecycle state of an operator account.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// IsValid checks if the status is one of the supported enum values.
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// Operator is the aggregate root for an API account.
//
// Invariants:
//   - Name is non-empty and at most 128 characters
//   - ClientID is non-empty (the public identifier used at the token endpoint)
//   - SecretHash is non-empty (bcrypt hash of the client secret)
//   - Status transitions: active <-> inactive only
type Operator struct {
	ID         id.OperatorID `json:"id"`
	Name       string        `json:"name"`
	ClientID   string        `json:"client_id"`
	SecretHash string        `json:"-"` // Never serialize - contains bcrypt hash
	Status     Status        `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// NewOperator validates and constructs an active operator account.
func NewOperator(operatorID id.OperatorID, name, clientID, secretHash string, now time.Time) (*Operator, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "operator name cannot be empty")
	}
	if len(name) > 128 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "operator name must be 128 characters or less")
	}
	if clientID == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "client_id cannot be empty")
	}
	if secretHash == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "secret hash cannot be empty")
	}
	return &Operator{
		ID:         operatorID,
		Name:       name,
		ClientID:   clientID,
		SecretHash: secretHash,
		Status:     StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (o *Operator) IsActive() bool {
	return o.Status == StatusActive
}

// Deactivate transitions the operator to inactive status.
func (o *Operator) Deactivate(now time.Time) error {
	if o.Status == StatusInactive {
		return dErrors.New(dErrors.CodeInvariantViolation, "operator is already inactive")
	}
	o.Status = StatusInactive
	o.UpdatedAt = now
	return nil
}

// Reactivate transitions the operator back to active status.
func (o *Operator) Reactivate(now time.Time) error {
	if o.Status == StatusActive {
		return dErrors.New(dErrors.CodeInvariantViolation, "operator is already active")
	}
	o.Status = StatusActive
	o.UpdatedAt = now
	return nil
}
