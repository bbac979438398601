// Package domain holds shared domain primitives: typed identifiers and
// the API version primitive used across feature packages.
package domain

import (
	"github.com/google/uuid"

	dErrors "adwatch/pkg/domain-errors"
)

// OperatorID identifies an operator account (the authenticated API caller).
type OperatorID uuid.UUID

// EvaluationID identifies a persisted evaluation record.
type EvaluationID uuid.UUID

// NewOperatorID returns a new random OperatorID.
func NewOperatorID() OperatorID {
	return OperatorID(uuid.New())
}

// NewEvaluationID returns a new random EvaluationID.
func NewEvaluationID() EvaluationID {
	return EvaluationID(uuid.New())
}

// parseUUID enforces the shared parsing invariant:
// IDs must be valid, non-empty, non-nil UUIDs.
func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "id must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be the nil UUID")
	}
	return u, nil
}

// ParseOperatorID parses and validates an operator identifier.
func ParseOperatorID(s string) (OperatorID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return OperatorID(uuid.Nil), err
	}
	return OperatorID(u), nil
}

// ParseEvaluationID parses and validates an evaluation identifier.
func ParseEvaluationID(s string) (EvaluationID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return EvaluationID(uuid.Nil), err
	}
	return EvaluationID(u), nil
}

func (id OperatorID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether the ID is the zero UUID.
func (id OperatorID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id EvaluationID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether the ID is the zero UUID.
func (id EvaluationID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}
