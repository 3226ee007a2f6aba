package align

import (
	"fmt"
	"math"

	"github.com/ironsheep/sheet-scanner/internal/geometry"
)

// DefaultThreshold is the tolerance in pixels used by the scanner for both
// column and row grouping.
const DefaultThreshold = 10

// ResetMode decides when a Set replaces its anchor with an incoming value.
type ResetMode int

const (
	// ResetNone never replaces the anchor once it is set.
	ResetNone ResetMode = iota
	// ResetAnchorDecreases replaces the anchor with any value smaller than
	// anchor - threshold.
	ResetAnchorDecreases
	// ResetAnchorIncreases replaces the anchor with any value larger than
	// anchor + threshold.
	ResetAnchorIncreases
)

var resetModeNames = map[ResetMode]string{
	ResetNone:            "none",
	ResetAnchorDecreases: "anchor-decreases",
	ResetAnchorIncreases: "anchor-increases",
}

// ShouldReset reports whether value replaces anchor under this mode.
func (m ResetMode) ShouldReset(anchor, value float64, threshold int) bool {
	switch m {
	case ResetAnchorDecreases:
		return anchor > value+float64(threshold)
	case ResetAnchorIncreases:
		return anchor < value-float64(threshold)
	default:
		return false
	}
}

func (m ResetMode) String() string {
	if name, ok := resetModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("ResetMode(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m ResetMode) MarshalText() ([]byte, error) {
	name, ok := resetModeNames[m]
	if !ok {
		return nil, fmt.Errorf("unknown reset mode %d", int(m))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ResetMode) UnmarshalText(text []byte) error {
	for mode, name := range resetModeNames {
		if name == string(text) {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("unknown reset mode %q", string(text))
}

// Set groups points whose coordinate on one axis lies within a tolerance of
// a shared anchor.
//
// The zero value is not usable; create sets with NewSet. A Set is owned by
// a single scan and is not safe for concurrent use.
type Set struct {
	axis      geometry.Axis
	mode      ResetMode
	threshold int

	anchor    float64
	hasAnchor bool
	points    []geometry.IntPoint
}

// NewSet creates an empty set keyed on axis.
func NewSet(axis geometry.Axis, mode ResetMode, threshold int) *Set {
	return &Set{
		axis:      axis,
		mode:      mode,
		threshold: threshold,
	}
}

// Init sets the anchor from p and clears all accepted points. p itself is
// not accepted.
func (s *Set) Init(p geometry.Point) {
	s.anchor = s.axis.Value(p)
	s.hasAnchor = true
	s.points = nil
}

// Add offers p to the set and reports whether it was accepted.
//
// Without an anchor, or when the reset mode fires, the anchor moves to p's
// value and previously accepted points are discarded before p is tested.
func (s *Set) Add(p geometry.Point) bool {
	value := s.axis.Value(p)

	if !s.hasAnchor || s.mode.ShouldReset(s.anchor, value, s.threshold) {
		s.anchor = value
		s.hasAnchor = true
		s.points = nil
	}

	if math.Abs(value-s.anchor) > float64(s.threshold) {
		return false
	}

	s.points = append(s.points, p.Round())
	return true
}

// Anchor returns the current anchor and whether one has been set.
func (s *Set) Anchor() (float64, bool) {
	return s.anchor, s.hasAnchor
}

// Points returns a copy of the accepted points in insertion order.
func (s *Set) Points() []geometry.IntPoint {
	out := make([]geometry.IntPoint, len(s.points))
	copy(out, s.points)
	return out
}

// Len returns the number of accepted points.
func (s *Set) Len() int {
	return len(s.points)
}

// Threshold returns the tolerance in pixels.
func (s *Set) Threshold() int {
	return s.threshold
}

// Mode returns the reset mode.
func (s *Set) Mode() ResetMode {
	return s.mode
}
