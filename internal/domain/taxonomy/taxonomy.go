// Package taxonomy loads the canonical odor-family seed list used by the
// family migration step when the ADAMO taxonomy table is sparse.
package taxonomy

import (
	"fmt"
	"os"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/valueobject"

	"gopkg.in/yaml.v3"
)

// Family is one seeded odor family.
type Family struct {
	Code  string `yaml:"code"`
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

type seedFile struct {
	Families []Family `yaml:"families"`
}

// LoadFamilies reads and validates the family seed file. Every entry needs
// a code and a name; codes must be unique.
func LoadFamilies(path string) ([]Family, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
	}
	return ParseFamilies(data)
}

// ParseFamilies parses the YAML seed document.
func ParseFamilies(data []byte) ([]Family, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy file: %w", err)
	}

	seen := make(map[string]bool, len(file.Families))
	for i, family := range file.Families {
		if family.Code == "" {
			return nil, fmt.Errorf("taxonomy entry %d: code is required", i)
		}
		if family.Name == "" {
			return nil, fmt.Errorf("taxonomy entry %d (%s): name is required", i, family.Code)
		}
		if seen[family.Code] {
			return nil, fmt.Errorf("duplicate family code %q", family.Code)
		}
		seen[family.Code] = true
	}

	return file.Families, nil
}

// DefaultFamilies returns the twelve fixed families with empty display
// metadata, used when no seed file is configured.
func DefaultFamilies() []Family {
	families := make([]Family, 0, len(valueobject.AllFamilyCodes))
	for _, code := range valueobject.AllFamilyCodes {
		families = append(families, Family{Code: code.String(), Name: code.String()})
	}
	return families
}
