package applicability

import (
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "adwatch/pkg/domain-errors"
)

type ModificationSuite struct {
	suite.Suite
}

func TestModificationSuite(t *testing.T) {
	suite.Run(t, new(ModificationSuite))
}

func (s *ModificationSuite) TestParseModificationPhase() {
	tests := []struct {
		name    string
		input   string
		want    ModificationPhase
		wantErr bool
	}{
		{"production", "production", PhaseProduction, false},
		{"service", "service", PhaseService, false},
		{"unspecified", "unspecified", PhaseUnspecified, false},
		{"empty means unspecified", "", PhaseUnspecified, false},
		{"whitespace means unspecified", "   ", PhaseUnspecified, false},
		{"mixed case normalized", "Production", PhaseProduction, false},
		{"unknown phase rejected", "retrofit", "", true},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			got, err := ParseModificationPhase(tt.input)
			if tt.wantErr {
				s.Require().Error(err)
				s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
				return
			}
			s.Require().NoError(err)
			s.Equal(tt.want, got)
		})
	}
}

func (s *ModificationSuite) TestNewModificationReference() {
	s.Run("empty identifier rejected", func() {
		_, err := NewModificationReference("", "", PhaseProduction)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("whitespace identifier rejected", func() {
		_, err := NewModificationReference("   ", "", PhaseProduction)
		s.Require().Error(err)
	})

	s.Run("zero phase normalized to unspecified", func() {
		ref, err := NewModificationReference("24591", "", "")
		s.Require().NoError(err)
		s.Equal(PhaseUnspecified, ref.Phase)
	})

	s.Run("invalid phase rejected", func() {
		_, err := NewModificationReference("24591", "", ModificationPhase("retrofit"))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("identifier and revision trimmed", func() {
		ref, err := NewModificationReference(" A320-57-1089 ", " 04 ", PhaseService)
		s.Require().NoError(err)
		s.Equal("A320-57-1089", ref.Identifier)
		s.Equal("04", ref.Revision)
	})
}

func (s *ModificationSuite) TestMatches() {
	tests := []struct {
		name string
		a    ModificationReference
		b    ModificationReference
		want bool
	}{
		{
			name: "same identifier and phase",
			a:    ModificationReference{Identifier: "24591", Phase: PhaseProduction},
			b:    ModificationReference{Identifier: "24591", Phase: PhaseProduction},
			want: true,
		},
		{
			name: "identifier case-insensitive",
			a:    ModificationReference{Identifier: "a320-57-1089", Phase: PhaseService},
			b:    ModificationReference{Identifier: "A320-57-1089", Phase: PhaseService},
			want: true,
		},
		{
			name: "different identifiers",
			a:    ModificationReference{Identifier: "24591", Phase: PhaseProduction},
			b:    ModificationReference{Identifier: "24977", Phase: PhaseProduction},
			want: false,
		},
		{
			name: "unspecified phase matches production",
			a:    ModificationReference{Identifier: "24591", Phase: PhaseUnspecified},
			b:    ModificationReference{Identifier: "24591", Phase: PhaseProduction},
			want: true,
		},
		{
			name: "production matches unspecified phase",
			a:    ModificationReference{Identifier: "24591", Phase: PhaseProduction},
			b:    ModificationReference{Identifier: "24591", Phase: PhaseUnspecified},
			want: true,
		},
		{
			name: "production does not match service",
			a:    ModificationReference{Identifier: "24591", Phase: PhaseProduction},
			b:    ModificationReference{Identifier: "24591", Phase: PhaseService},
			want: false,
		},
		{
			name: "revision ignored when one side omits it",
			a:    ModificationReference{Identifier: "A320-57-1089", Revision: "04", Phase: PhaseService},
			b:    ModificationReference{Identifier: "A320-57-1089", Phase: PhaseService},
			want: true,
		},
		{
			name: "both revisions present and equal",
			a:    ModificationReference{Identifier: "A320-57-1089", Revision: "04", Phase: PhaseService},
			b:    ModificationReference{Identifier: "A320-57-1089", Revision: "04", Phase: PhaseService},
			want: true,
		},
		{
			name: "both revisions present and different",
			a:    ModificationReference{Identifier: "A320-57-1089", Revision: "04", Phase: PhaseService},
			b:    ModificationReference{Identifier: "A320-57-1089", Revision: "05", Phase: PhaseService},
			want: false,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.want, tt.a.Matches(tt.b))
			// Equivalence is symmetric.
			s.Equal(tt.want, tt.b.Matches(tt.a))
		})
	}
}

type ConfigurationSuite struct {
	suite.Suite
}

func TestConfigurationSuite(t *testing.T) {
	suite.Run(t, new(ConfigurationSuite))
}

func (s *ConfigurationSuite) TestNewAircraftConfiguration() {
	s.Run("empty model rejected", func() {
		_, err := NewAircraftConfiguration("", 100, nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("zero serial rejected", func() {
		_, err := NewAircraftConfiguration("A320", 0, nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("negative serial rejected", func() {
		_, err := NewAircraftConfiguration("A320", -5, nil)
		s.Require().Error(err)
	})

	s.Run("invalid modification rejected", func() {
		_, err := NewAircraftConfiguration("A320", 100, []ModificationReference{{Identifier: ""}})
		s.Require().Error(err)
	})

	s.Run("model normalized to upper case", func() {
		cfg, err := NewAircraftConfiguration("  a320-214 ", 5234, nil)
		s.Require().NoError(err)
		s.Equal("A320-214", cfg.ModelDesignation)
	})

	s.Run("modifications slice copied", func() {
		mods := []ModificationReference{{Identifier: "24591", Phase: PhaseProduction}}
		cfg, err := NewAircraftConfiguration("A320", 100, mods)
		s.Require().NoError(err)

		mods[0].Identifier = "tampered"
		s.Equal("24591", cfg.Modifications[0].Identifier)
	})
}

func (s *ConfigurationSuite) TestRef() {
	cfg := mustConfiguration(s.T(), "A320-214", 5234)
	s.Equal("A320-214 MSN 5234", cfg.Ref())
}

func (s *ConfigurationSuite) TestHasAnyOf() {
	cfg := mustConfiguration(s.T(), "A320-214", 4500,
		mustModRef(s.T(), "24591", "", PhaseUnspecified),
	)

	s.Run("empty refs never match", func() {
		s.False(cfg.HasAnyOf(nil))
	})

	s.Run("single equivalent entry matches", func() {
		s.True(cfg.HasAnyOf([]ModificationReference{
			{Identifier: "24591", Phase: PhaseProduction},
		}))
	})

	s.Run("matches when only one of several entries is present", func() {
		s.True(cfg.HasAnyOf([]ModificationReference{
			{Identifier: "99999", Phase: PhaseProduction},
			{Identifier: "24591", Phase: PhaseProduction},
		}))
	})

	s.Run("no equivalent entry", func() {
		s.False(cfg.HasAnyOf([]ModificationReference{
			{Identifier: "24977", Phase: PhaseProduction},
		}))
	})
}

func (s *ConfigurationSuite) TestHasAllOf() {
	cfg := mustConfiguration(s.T(), "A320-214", 4500,
		mustModRef(s.T(), "24591", "", PhaseProduction),
		mustModRef(s.T(), "A320-57-1089", "04", PhaseService),
	)

	s.Run("empty refs trivially satisfied", func() {
		s.True(cfg.HasAllOf(nil))
	})

	s.Run("all entries present", func() {
		s.True(cfg.HasAllOf([]ModificationReference{
			{Identifier: "24591", Phase: PhaseUnspecified},
			{Identifier: "A320-57-1089", Phase: PhaseService},
		}))
	})

	s.Run("one entry missing", func() {
		s.False(cfg.HasAllOf([]ModificationReference{
			{Identifier: "24591", Phase: PhaseUnspecified},
			{Identifier: "24977", Phase: PhaseProduction},
		}))
	})
}
