package valueobject

import (
	"fmt"
	"regexp"
)

// GRNumber identifies a fragrance molecule submission. It is the only
// reliable join key across the ADAMO and MAP Tool schemas and must be
// globally unique within each schema.
type GRNumber string

const maxGRNumberLength = 14

// grNumberPattern matches GR-YY-NNNN-B, GR-YY-NNNNN-B and SL-NNNNNN-B
// (e.g. "GR-87-0857-0", "GR-86-6561-0", "SL-014202-1").
var grNumberPattern = regexp.MustCompile(`^GR-\d{2}-\d{4,5}-\d$|^SL-\d{6}-\d$`)

// NewGRNumber creates a GRNumber with format validation.
func NewGRNumber(value string) (GRNumber, error) {
	if value == "" {
		return "", fmt.Errorf("GR number is required")
	}
	if len(value) > maxGRNumberLength {
		return "", fmt.Errorf("GR number %q exceeds %d characters", value, maxGRNumberLength)
	}
	if !grNumberPattern.MatchString(value) {
		return "", fmt.Errorf("GR number %q must be in format GR-YY-NNNN-B or SL-NNNNNN-B", value)
	}
	return GRNumber(value), nil
}

// String returns the string representation of the GR number.
func (g GRNumber) String() string {
	return string(g)
}

// IsValidGRNumber reports whether the value is a well-formed GR number.
func IsValidGRNumber(value string) bool {
	_, err := NewGRNumber(value)
	return err == nil
}
