package applicability

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	dErrors "adwatch/pkg/domain-errors"
)

// SerialConstraintKind discriminates the serial-number constraint variants.
type SerialConstraintKind string

// Supported serial constraint kinds.
const (
	SerialKindAll   SerialConstraintKind = "all"
	SerialKindRange SerialConstraintKind = "range"
	SerialKindList  SerialConstraintKind = "list"
)

// SerialNumberConstraint restricts which manufacturer serial numbers a rule
// covers. It is a tagged variant - exactly one of ALL, RANGE, or LIST is
// active - so a mixed or ambiguous constraint is unrepresentable.
//
// Invariants:
//   - RANGE: when both bounds are present, min <= max
//   - LIST: at least one value
//
// Construct via SerialAll, SerialRange, or SerialList; the zero value is not
// a valid constraint and is rejected by NewApplicabilityRule.
type SerialNumberConstraint struct {
	kind   SerialConstraintKind
	min    *int
	max    *int
	values []int
}

// SerialAll matches every serial number.
func SerialAll() SerialNumberConstraint {
	return SerialNumberConstraint{kind: SerialKindAll}
}

// SerialRange matches serial numbers within the given bounds. A nil bound is
// unbounded on that side.
func SerialRange(min, max *int) (SerialNumberConstraint, error) {
	if min != nil && max != nil && *min > *max {
		return SerialNumberConstraint{}, dErrors.New(dErrors.CodeInvariantViolation, "serial range min cannot exceed max")
	}
	c := SerialNumberConstraint{kind: SerialKindRange}
	if min != nil {
		v := *min
		c.min = &v
	}
	if max != nil {
		v := *max
		c.max = &v
	}
	return c, nil
}

// SerialList matches exactly the listed serial numbers. Values are stored
// sorted and de-duplicated.
func SerialList(values []int) (SerialNumberConstraint, error) {
	if len(values) == 0 {
		return SerialNumberConstraint{}, dErrors.New(dErrors.CodeInvariantViolation, "serial list cannot be empty")
	}
	sorted := make([]int, len(values))
	copy(sorted, values)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	return SerialNumberConstraint{kind: SerialKindList, values: sorted}, nil
}

// Satisfies reports whether the serial number is covered by the constraint.
func (c SerialNumberConstraint) Satisfies(serialNumber int) bool {
	switch c.kind {
	case SerialKindAll:
		return true
	case SerialKindRange:
		if c.min != nil && serialNumber < *c.min {
			return false
		}
		if c.max != nil && serialNumber > *c.max {
			return false
		}
		return true
	case SerialKindList:
		_, found := slices.BinarySearch(c.values, serialNumber)
		return found
	default:
		return false
	}
}

// Kind returns the active variant.
func (c SerialNumberConstraint) Kind() SerialConstraintKind {
	return c.kind
}

// Bounds returns copies of the range bounds; both are nil unless the
// constraint is a RANGE.
func (c SerialNumberConstraint) Bounds() (min, max *int) {
	if c.min != nil {
		v := *c.min
		min = &v
	}
	if c.max != nil {
		v := *c.max
		max = &v
	}
	return min, max
}

// Values returns a copy of the listed serial numbers; nil unless the
// constraint is a LIST.
func (c SerialNumberConstraint) Values() []int {
	if c.values == nil {
		return nil
	}
	out := make([]int, len(c.values))
	copy(out, c.values)
	return out
}

// serialConstraintJSON is the wire form of the tagged variant.
type serialConstraintJSON struct {
	Type   SerialConstraintKind `json:"type"`
	Min    *int                 `json:"min,omitempty"`
	Max    *int                 `json:"max,omitempty"`
	Values []int                `json:"values,omitempty"`
}

// MarshalJSON renders the constraint as {"type": ..., "min"/"max"/"values"}.
func (c SerialNumberConstraint) MarshalJSON() ([]byte, error) {
	return json.Marshal(serialConstraintJSON{
		Type:   c.kind,
		Min:    c.min,
		Max:    c.max,
		Values: c.values,
	})
}

// UnmarshalJSON rehydrates a constraint through the variant constructors, so
// stored and cached rules re-enter the invariant checks.
func (c *SerialNumberConstraint) UnmarshalJSON(data []byte) error {
	var wire serialConstraintJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch wire.Type {
	case SerialKindAll:
		*c = SerialAll()
		return nil
	case SerialKindRange:
		parsed, err := SerialRange(wire.Min, wire.Max)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case SerialKindList:
		parsed, err := SerialList(wire.Values)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	default:
		return dErrors.New(dErrors.CodeInvalidInput, "unknown serial constraint type")
	}
}

// String renders the constraint for explanations and logs.
func (c SerialNumberConstraint) String() string {
	switch c.kind {
	case SerialKindAll:
		return "all serial numbers"
	case SerialKindRange:
		switch {
		case c.min != nil && c.max != nil:
			return fmt.Sprintf("serial numbers %d through %d", *c.min, *c.max)
		case c.min != nil:
			return fmt.Sprintf("serial numbers %d and above", *c.min)
		case c.max != nil:
			return fmt.Sprintf("serial numbers %d and below", *c.max)
		default:
			return "all serial numbers"
		}
	case SerialKindList:
		parts := make([]string, len(c.values))
		for i, v := range c.values {
			parts[i] = strconv.Itoa(v)
		}
		return "serial numbers " + strings.Join(parts, ", ")
	default:
		return "no serial numbers"
	}
}
