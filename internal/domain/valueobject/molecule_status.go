package valueobject

import "fmt"

// MoleculeStatus represents the MAP Tool molecule lifecycle status. The
// integer values match the map_adm column encoding.
type MoleculeStatus int

// Molecule status constants.
const (
	MoleculeStatusNone         MoleculeStatus = 0
	MoleculeStatusMap1         MoleculeStatus = 1
	MoleculeStatusMap0Weak     MoleculeStatus = 2
	MoleculeStatusMap0Odorless MoleculeStatus = 3
	MoleculeStatusIgnore       MoleculeStatus = 4
)

var moleculeStatusNames = map[MoleculeStatus]string{
	MoleculeStatusNone:         "None",
	MoleculeStatusMap1:         "Map1",
	MoleculeStatusMap0Weak:     "Map0Weak",
	MoleculeStatusMap0Odorless: "Map0Odorless",
	MoleculeStatusIgnore:       "Ignore",
}

// NewMoleculeStatus creates a MoleculeStatus from its integer encoding.
func NewMoleculeStatus(value int) (MoleculeStatus, error) {
	s := MoleculeStatus(value)
	if _, ok := moleculeStatusNames[s]; !ok {
		return 0, fmt.Errorf("invalid molecule status: %d", value)
	}
	return s, nil
}

// String returns the status name.
func (s MoleculeStatus) String() string {
	if name, ok := moleculeStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("MoleculeStatus(%d)", int(s))
}

// Int returns the integer encoding used by the map_adm schema.
func (s MoleculeStatus) Int() int {
	return int(s)
}
