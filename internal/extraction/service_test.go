package extraction

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"adwatch/internal/applicability"
)

// Text bodies only need to steer authority detection here; the stub
// extractors ignore them.
const (
	faaMarker     = "Federal Aviation Administration"
	unknownMarker = "Ministry of Transport Notice"
)

type ServiceSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) newService(registry *Registry) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(registry, nil, nil, logger)
}

func (s *ServiceSuite) TestExtract_PrimarySucceeds() {
	primary := &stubExtractor{
		id:        "faa-pattern",
		authority: DetectedFAA,
		directive: stubDirective(s.T(), "FAA-2025-23-53"),
	}
	fallback := &stubExtractor{id: "llm-fallback", authority: DetectedUnknown}

	registry := NewRegistry()
	s.Require().NoError(registry.Register(primary))
	registry.SetFallback(fallback)

	result, err := s.newService(registry).Extract(s.ctx, faaMarker, "FAA-2025-23-53")
	s.Require().NoError(err)

	s.Equal("faa-pattern", result.ExtractorID)
	s.Equal(DetectedFAA, result.DetectedAuthority)
	s.False(result.FallbackUsed)
	s.False(result.FromCache)
	s.Equal("FAA-2025-23-53", result.Directive.DirectiveID)
	s.Equal(1, primary.calls)
	s.Zero(fallback.calls, "fallback must not run when the primary succeeds")
}

func (s *ServiceSuite) TestExtract_FallbackOnPatternFailure() {
	primary := &stubExtractor{
		id:        "faa-pattern",
		authority: DetectedFAA,
		err:       NewExtractionError(ErrorPatternMiss, "faa-pattern", "no paragraphs", nil),
	}
	fallback := &stubExtractor{
		id:        "llm-fallback",
		authority: DetectedUnknown,
		directive: stubDirective(s.T(), "FAA-2025-23-53"),
	}

	registry := NewRegistry()
	s.Require().NoError(registry.Register(primary))
	registry.SetFallback(fallback)

	result, err := s.newService(registry).Extract(s.ctx, faaMarker, "FAA-2025-23-53")
	s.Require().NoError(err)

	s.Equal("llm-fallback", result.ExtractorID)
	s.True(result.FallbackUsed)
	s.Equal(DetectedFAA, result.DetectedAuthority, "detection is independent of which extractor produced the result")
	s.Equal(1, primary.calls)
	s.Equal(1, fallback.calls)
}

func (s *ServiceSuite) TestExtract_FallbackForUnknownAuthority() {
	fallback := &stubExtractor{
		id:        "llm-fallback",
		authority: DetectedUnknown,
		directive: stubDirective(s.T(), "MOT-2025-01"),
	}

	registry := NewRegistry()
	registry.SetFallback(fallback)

	result, err := s.newService(registry).Extract(s.ctx, unknownMarker, "MOT-2025-01")
	s.Require().NoError(err)

	s.True(result.FallbackUsed)
	s.Equal(DetectedUnknown, result.DetectedAuthority)
	s.Equal(applicability.AuthorityEASA, result.Directive.IssuingAuthority,
		"an authority the fallback did determine must not be overwritten")
	s.Equal(1, fallback.calls)
}

// The fallback records AuthorityUnknown when the model omits a parsable
// authority; detection fills it in for authorities the engine knows.
func (s *ServiceSuite) TestExtract_FallbackAuthorityReconciled() {
	rule, err := applicability.NewApplicabilityRule([]string{"MD-11"}, applicability.SerialAll(), nil, nil)
	s.Require().NoError(err)
	unattributed, err := applicability.NewAirworthinessDirective(
		"FAA-2025-23-53", applicability.AuthorityUnknown, "", "",
		[]applicability.ApplicabilityRule{rule}, "Extracted by LLM fallback")
	s.Require().NoError(err)

	primary := &stubExtractor{
		id:        "faa-pattern",
		authority: DetectedFAA,
		err:       NewExtractionError(ErrorPatternMiss, "faa-pattern", "no paragraphs", nil),
	}
	fallback := &stubExtractor{id: "llm-fallback", authority: DetectedUnknown, directive: unattributed}

	registry := NewRegistry()
	s.Require().NoError(registry.Register(primary))
	registry.SetFallback(fallback)

	result, err := s.newService(registry).Extract(s.ctx, faaMarker, "FAA-2025-23-53")
	s.Require().NoError(err)

	s.True(result.FallbackUsed)
	s.Equal(applicability.AuthorityFAA, result.Directive.IssuingAuthority)
	s.Equal("FAA-2025-23-53", result.Directive.DirectiveID)
}

func (s *ServiceSuite) TestExtract_NoExtractorAvailable() {
	result, err := s.newService(NewRegistry()).Extract(s.ctx, unknownMarker, "MOT-2025-01")
	s.Require().Error(err)
	s.Nil(result)
	s.Require().ErrorIs(err, ErrNoExtractor)
	s.Equal(ErrorInternal, CategoryOf(err))
}

func (s *ServiceSuite) TestExtract_PrimaryFailsWithoutFallback() {
	primary := &stubExtractor{
		id:        "easa-pattern",
		authority: DetectedEASA,
		err:       NewExtractionError(ErrorNoApplicability, "easa-pattern", "no section", nil),
	}

	registry := NewRegistry()
	s.Require().NoError(registry.Register(primary))

	_, err := s.newService(registry).Extract(s.ctx, "EASA AD No.: 2025-0254", "EASA-2025-0254")
	s.Require().Error(err)
	s.Equal(ErrorNoApplicability, CategoryOf(err))
}

// When both extractors fail the fallback's error wins: it ran last and its
// category (usually a provider problem) decides retryability.
func (s *ServiceSuite) TestExtract_BothExtractorsFail() {
	primary := &stubExtractor{
		id:        "faa-pattern",
		authority: DetectedFAA,
		err:       NewExtractionError(ErrorPatternMiss, "faa-pattern", "no paragraphs", nil),
	}
	fallback := &stubExtractor{
		id:        "llm-fallback",
		authority: DetectedUnknown,
		err:       NewExtractionError(ErrorProviderOutage, "llm-fallback", "connection refused", nil),
	}

	registry := NewRegistry()
	s.Require().NoError(registry.Register(primary))
	registry.SetFallback(fallback)

	_, err := s.newService(registry).Extract(s.ctx, faaMarker, "FAA-2025-23-53")
	s.Require().Error(err)
	s.Equal(ErrorProviderOutage, CategoryOf(err))
	s.True(IsRetryable(err))
	s.Equal(1, primary.calls)
	s.Equal(1, fallback.calls)
}
