package extraction

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorsSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsSuite))
}

func (s *ErrorsSuite) TestRetryability() {
	tests := []struct {
		category  ErrorCategory
		retryable bool
	}{
		{ErrorNoApplicability, false},
		{ErrorPatternMiss, false},
		{ErrorBadPayload, false},
		{ErrorProviderOutage, true},
		{ErrorTimeout, true},
		{ErrorRateLimited, true},
		{ErrorInternal, false},
	}

	for _, tt := range tests {
		s.Run(string(tt.category), func() {
			err := NewExtractionError(tt.category, "test-extractor", "boom", nil)
			s.Equal(tt.retryable, err.Retryable)
			s.Equal(tt.retryable, IsRetryable(err))
		})
	}
}

func (s *ErrorsSuite) TestCategoryOf() {
	s.Run("categorized error", func() {
		err := NewExtractionError(ErrorPatternMiss, "faa-pattern", "no paragraphs", nil)
		s.Equal(ErrorPatternMiss, CategoryOf(err))
	})

	s.Run("wrapped categorized error", func() {
		err := fmt.Errorf("ingest: %w", NewExtractionError(ErrorRateLimited, "llm-fallback", "429", nil))
		s.Equal(ErrorRateLimited, CategoryOf(err))
		s.True(IsRetryable(err))
	})

	s.Run("plain error defaults to internal", func() {
		s.Equal(ErrorInternal, CategoryOf(errors.New("boom")))
		s.False(IsRetryable(errors.New("boom")))
	})
}

func (s *ErrorsSuite) TestUnwrap() {
	underlying := errors.New("connection refused")
	err := NewExtractionError(ErrorProviderOutage, "llm-fallback", "request failed", underlying)

	s.Require().ErrorIs(err, underlying)
	s.Contains(err.Error(), "llm-fallback")
	s.Contains(err.Error(), "provider_outage")
	s.Contains(err.Error(), "connection refused")
}
