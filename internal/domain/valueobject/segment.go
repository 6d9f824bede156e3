package valueobject

import "fmt"

// Segment represents the evaluation track of a session.
type Segment string

// Segment constants.
const (
	SegmentCP Segment = "CP" // Consumer Preference
	SegmentFF Segment = "FF" // Fine Fragrance
)

// NewSegment creates a Segment with validation.
func NewSegment(value string) (Segment, error) {
	switch Segment(value) {
	case SegmentCP, SegmentFF:
		return Segment(value), nil
	default:
		return "", fmt.Errorf("invalid segment: %q", value)
	}
}

// String returns the string representation of the segment.
func (s Segment) String() string {
	return string(s)
}

// IsValidSegment reports whether the value is a recognized segment code.
func IsValidSegment(value string) bool {
	_, err := NewSegment(value)
	return err == nil
}
