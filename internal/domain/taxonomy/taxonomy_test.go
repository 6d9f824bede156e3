package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFamilies(t *testing.T) {
	data := []byte(`
families:
  - code: FLORAL_FAMILY
    name: Floral
    color: "#E8A0BF"
  - code: WOODY_FAMILY
    name: Woody
    color: "#8B5A2B"
`)

	families, err := ParseFamilies(data)
	require.NoError(t, err)
	require.Len(t, families, 2)
	assert.Equal(t, "FLORAL_FAMILY", families[0].Code)
	assert.Equal(t, "Floral", families[0].Name)
	assert.Equal(t, "#E8A0BF", families[0].Color)
}

func TestParseFamiliesRejectsDuplicates(t *testing.T) {
	data := []byte(`
families:
  - code: FLORAL_FAMILY
    name: Floral
  - code: FLORAL_FAMILY
    name: Floral again
`)

	_, err := ParseFamilies(data)
	assert.Error(t, err)
}

func TestParseFamiliesRequiresCodeAndName(t *testing.T) {
	_, err := ParseFamilies([]byte("families:\n  - name: Nameless\n"))
	assert.Error(t, err)

	_, err = ParseFamilies([]byte("families:\n  - code: CODE_ONLY\n"))
	assert.Error(t, err)
}

func TestDefaultFamilies(t *testing.T) {
	families := DefaultFamilies()
	assert.Len(t, families, 12)
}
