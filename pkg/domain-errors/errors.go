// Package domainerrors provides coded errors shared across services, stores,
// and transports. Codes classify failures for logging and HTTP mapping without
// leaking implementation detail across layers.
//
// Usage: construct with New at the failure site, or Wrap to attach a code to an
// underlying error. Check with HasCode (or its alias Is) at boundaries.
package domainerrors

import "errors"

// Code classifies a domain error.
type Code string

const (
	// CodeInvariantViolation marks construction-time validation failures in
	// domain models. These indicate invalid data reaching a constructor.
	CodeInvariantViolation Code = "invariant_violation"

	// CodeValidation marks request-level validation failures (missing or
	// malformed fields in an otherwise well-formed request).
	CodeValidation Code = "validation_failed"

	// CodeInvalidInput marks rejected values at trust boundaries (parsers,
	// enum allowlists).
	CodeInvalidInput Code = "invalid_input"

	// CodeBadRequest marks requests that could not be decoded at all.
	CodeBadRequest Code = "bad_request"

	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeTimeout      Code = "timeout"

	// CodeInternal marks unexpected failures. Details are logged but never
	// surfaced to callers.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error. The zero value is not usable; construct via
// New or Wrap.
type Error struct {
	code    Code
	message string
	cause   error
}

// New creates a coded error with a descriptive message.
func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Wrap attaches a code and message to an underlying error, preserving the
// original for errors.Is/As chains.
func Wrap(err error, code Code, message string) *Error {
	return &Error{code: code, message: message, cause: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

// Unwrap exposes the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Code returns the error's classification code.
func (e *Error) Code() Code {
	return e.code
}

// Message returns the human-readable message without the wrapped cause.
func (e *Error) Message() string {
	return e.message
}

// HasCode reports whether any error in err's chain carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.code == code
	}
	return false
}

// Is is an alias for HasCode kept for call-site readability:
// dErrors.Is(err, dErrors.CodeNotFound).
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf extracts the code from an error chain, defaulting to CodeInternal
// for uncoded errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}
	return CodeInternal
}
