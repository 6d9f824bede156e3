package valueobject

// FamilyCode identifies an odor family. Family and descriptor
// correspondence across the two schemas is by code, never by numeric id:
// ids are schema-local and must never cross the boundary.
type FamilyCode string

// The twelve fixed family codes carried by ODOR_CHARACTERIZATION.
const (
	FamilyAmbergris      FamilyCode = "AMBERGRIS_FAMILY"
	FamilyAromaticHerbal FamilyCode = "AROMATIC_HERBAL_FAMILY"
	FamilyCitrus         FamilyCode = "CITRUS_FAMILY"
	FamilyFloral         FamilyCode = "FLORAL_FAMILY"
	FamilyFruity         FamilyCode = "FRUITY_FAMILY"
	FamilyGreen          FamilyCode = "GREEN_FAMILY"
	FamilyMarine         FamilyCode = "MARINE_FAMILY"
	FamilyMuskyAnimalic  FamilyCode = "MUSKY_ANIMALIC_FAMILY"
	FamilyOffOdors       FamilyCode = "OFF_ODORS_FAMILY"
	FamilySpicy          FamilyCode = "SPICY_FAMILY"
	FamilySweetGourmand  FamilyCode = "SWEET_GOURMAND_FAMILY"
	FamilyWoody          FamilyCode = "WOODY_FAMILY"
)

// AllFamilyCodes lists the twelve fixed families in stable order.
var AllFamilyCodes = []FamilyCode{
	FamilyAmbergris, FamilyAromaticHerbal, FamilyCitrus, FamilyFloral,
	FamilyFruity, FamilyGreen, FamilyMarine, FamilyMuskyAnimalic,
	FamilyOffOdors, FamilySpicy, FamilySweetGourmand, FamilyWoody,
}

// String returns the string representation of the family code.
func (f FamilyCode) String() string {
	return string(f)
}
