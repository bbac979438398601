package extraction

import (
	"errors"
	"fmt"
)

// ErrorCategory is the normalized failure taxonomy for extractors.
type ErrorCategory string

const (
	// ErrorNoApplicability indicates the document has no recognizable
	// applicability section.
	ErrorNoApplicability ErrorCategory = "no_applicability"

	// ErrorPatternMiss indicates the section was found but yielded no rules.
	ErrorPatternMiss ErrorCategory = "pattern_miss"

	// ErrorBadPayload indicates the extractor produced data the directive
	// constructors rejected.
	ErrorBadPayload ErrorCategory = "bad_payload"

	// ErrorProviderOutage indicates an upstream model provider is unavailable.
	ErrorProviderOutage ErrorCategory = "provider_outage"

	// ErrorTimeout indicates the extractor took too long.
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorRateLimited indicates too many requests to the provider.
	ErrorRateLimited ErrorCategory = "rate_limited"

	// ErrorInternal indicates an unexpected internal error.
	ErrorInternal ErrorCategory = "internal"
)

// ExtractionError wraps extractor failures with normalized categorization.
type ExtractionError struct {
	Category    ErrorCategory
	ExtractorID string
	Message     string
	Underlying  error
	Retryable   bool
}

func (e *ExtractionError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("extractor %s [%s]: %s: %v", e.ExtractorID, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("extractor %s [%s]: %s", e.ExtractorID, e.Category, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Underlying
}

// NewExtractionError creates a categorized extraction error. Transport
// categories are marked retryable; parse misses are not, since the same
// text will miss the same patterns again.
func NewExtractionError(category ErrorCategory, extractorID, message string, underlying error) *ExtractionError {
	retryable := category == ErrorTimeout ||
		category == ErrorProviderOutage ||
		category == ErrorRateLimited

	return &ExtractionError{
		Category:    category,
		ExtractorID: extractorID,
		Message:     message,
		Underlying:  underlying,
		Retryable:   retryable,
	}
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var ee *ExtractionError
	if errors.As(err, &ee) {
		return ee.Retryable
	}
	return false
}

// CategoryOf extracts the error category from an error.
func CategoryOf(err error) ErrorCategory {
	var ee *ExtractionError
	if errors.As(err, &ee) {
		return ee.Category
	}
	return ErrorInternal
}

// Sentinel errors for registry-level failures.
var (
	ErrNoExtractor       = errors.New("no extractor registered for authority")
	ErrAllExtractorsFail = errors.New("all extractors failed")
)
