package applicability

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "adwatch/pkg/domain-errors"
)

type SerialConstraintSuite struct {
	suite.Suite
}

func TestSerialConstraintSuite(t *testing.T) {
	suite.Run(t, new(SerialConstraintSuite))
}

func intPtr(v int) *int {
	return &v
}

func (s *SerialConstraintSuite) TestSerialAll() {
	c := SerialAll()
	s.Equal(SerialKindAll, c.Kind())
	s.True(c.Satisfies(1))
	s.True(c.Satisfies(48400))
}

func (s *SerialConstraintSuite) TestSerialRange() {
	s.Run("min greater than max rejected", func() {
		_, err := SerialRange(intPtr(200), intPtr(100))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("equal bounds allowed", func() {
		c, err := SerialRange(intPtr(100), intPtr(100))
		s.Require().NoError(err)
		s.True(c.Satisfies(100))
		s.False(c.Satisfies(99))
		s.False(c.Satisfies(101))
	})

	s.Run("bounds are inclusive", func() {
		c, err := SerialRange(intPtr(100), intPtr(200))
		s.Require().NoError(err)
		s.True(c.Satisfies(100))
		s.True(c.Satisfies(150))
		s.True(c.Satisfies(200))
		s.False(c.Satisfies(99))
		s.False(c.Satisfies(201))
	})

	s.Run("absent min is unbounded below", func() {
		c, err := SerialRange(nil, intPtr(200))
		s.Require().NoError(err)
		s.True(c.Satisfies(1))
		s.True(c.Satisfies(200))
		s.False(c.Satisfies(201))
	})

	s.Run("absent max is unbounded above", func() {
		c, err := SerialRange(intPtr(100), nil)
		s.Require().NoError(err)
		s.False(c.Satisfies(99))
		s.True(c.Satisfies(100))
		s.True(c.Satisfies(1_000_000))
	})

	s.Run("both bounds absent matches everything", func() {
		c, err := SerialRange(nil, nil)
		s.Require().NoError(err)
		s.True(c.Satisfies(1))
		s.True(c.Satisfies(999_999))
	})

	s.Run("bounds copied from caller", func() {
		min := 100
		c, err := SerialRange(&min, nil)
		s.Require().NoError(err)

		min = 500
		s.True(c.Satisfies(100))
	})
}

func (s *SerialConstraintSuite) TestSerialList() {
	s.Run("empty list rejected", func() {
		_, err := SerialList(nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("membership", func() {
		c, err := SerialList([]int{48400, 48401, 48522})
		s.Require().NoError(err)
		s.True(c.Satisfies(48400))
		s.True(c.Satisfies(48522))
		s.False(c.Satisfies(48402))
	})

	s.Run("values deduplicated and sorted", func() {
		c, err := SerialList([]int{300, 100, 300, 200})
		s.Require().NoError(err)
		s.Equal([]int{100, 200, 300}, c.Values())
	})

	s.Run("values accessor returns a copy", func() {
		c, err := SerialList([]int{100, 200})
		s.Require().NoError(err)

		got := c.Values()
		got[0] = 999
		s.Equal([]int{100, 200}, c.Values())
	})
}

func (s *SerialConstraintSuite) TestZeroValueSatisfiesNothing() {
	var c SerialNumberConstraint
	s.False(c.Satisfies(1))
	s.Equal(SerialConstraintKind(""), c.Kind())
}

func (s *SerialConstraintSuite) TestString() {
	tests := []struct {
		name string
		c    SerialNumberConstraint
		want string
	}{
		{"all", SerialAll(), "all serial numbers"},
		{"range both bounds", mustRange(s.T(), intPtr(100), intPtr(200)), "serial numbers 100 through 200"},
		{"range min only", mustRange(s.T(), intPtr(100), nil), "serial numbers 100 and above"},
		{"range max only", mustRange(s.T(), nil, intPtr(200)), "serial numbers 200 and below"},
		{"list", mustList(s.T(), []int{48400, 48522}), "serial numbers 48400, 48522"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.want, tt.c.String())
		})
	}
}

func (s *SerialConstraintSuite) TestJSONRoundTrip() {
	constraints := map[string]SerialNumberConstraint{
		"all":   SerialAll(),
		"range": mustRange(s.T(), intPtr(100), nil),
		"list":  mustList(s.T(), []int{48522, 48400}),
	}

	for name, c := range constraints {
		s.Run(name, func() {
			data, err := json.Marshal(c)
			s.Require().NoError(err)

			var decoded SerialNumberConstraint
			s.Require().NoError(json.Unmarshal(data, &decoded))
			s.Equal(c.Kind(), decoded.Kind())
			s.Equal(c.Values(), decoded.Values())

			wantMin, wantMax := c.Bounds()
			gotMin, gotMax := decoded.Bounds()
			s.Equal(wantMin, gotMin)
			s.Equal(wantMax, gotMax)
		})
	}
}

func (s *SerialConstraintSuite) TestUnmarshalRejectsInvalid() {
	s.Run("unknown type", func() {
		var c SerialNumberConstraint
		err := json.Unmarshal([]byte(`{"type":"between"}`), &c)
		s.Require().Error(err)
		s.Equal(dErrors.CodeInvalidInput, dErrors.CodeOf(err))
	})

	s.Run("inverted range", func() {
		var c SerialNumberConstraint
		err := json.Unmarshal([]byte(`{"type":"range","min":200,"max":100}`), &c)
		s.Require().Error(err)
		s.Equal(dErrors.CodeInvariantViolation, dErrors.CodeOf(err))
	})

	s.Run("empty list", func() {
		var c SerialNumberConstraint
		err := json.Unmarshal([]byte(`{"type":"list"}`), &c)
		s.Require().Error(err)
		s.Equal(dErrors.CodeInvariantViolation, dErrors.CodeOf(err))
	})
}

func mustRange(t *testing.T, min, max *int) SerialNumberConstraint {
	t.Helper()
	c, err := SerialRange(min, max)
	if err != nil {
		t.Fatalf("SerialRange: %v", err)
	}
	return c
}

func mustList(t *testing.T, values []int) SerialNumberConstraint {
	t.Helper()
	c, err := SerialList(values)
	if err != nil {
		t.Fatalf("SerialList: %v", err)
	}
	return c
}
