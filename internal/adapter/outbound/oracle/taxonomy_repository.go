package oracle

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/entity"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/valueobject"
)

// OdorTaxonomyRepository implements outbound.AdamoOdorTaxonomyRepository on
// GIV_MAP.MAP_ODOR_FAMILY and GIV_MAP.MAP_ODOR_DESCRIPTOR.
type OdorTaxonomyRepository struct {
	db *sql.DB
}

// NewOdorTaxonomyRepository creates an OdorTaxonomyRepository.
func NewOdorTaxonomyRepository(db *sql.DB) *OdorTaxonomyRepository {
	return &OdorTaxonomyRepository{db: db}
}

func (r *OdorTaxonomyRepository) FindFamilies(ctx context.Context, limit int) ([]entity.AdamoOdorFamily, error) {
	query := `SELECT ID, CODE, NAME, COLOR FROM GIV_MAP.MAP_ODOR_FAMILY ORDER BY ID`
	var args []any
	if limit > 0 {
		args = append(args, limit)
		query += " FETCH FIRST :1 ROWS ONLY"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query odor families failed: %w", err)
	}
	defer rows.Close()

	var families []entity.AdamoOdorFamily
	for rows.Next() {
		var f entity.AdamoOdorFamily
		if err := rows.Scan(&f.ID, &f.Code, &f.Name, &f.Color); err != nil {
			return nil, fmt.Errorf("scan odor family failed: %w", err)
		}
		families = append(families, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate odor families failed: %w", err)
	}

	return families, nil
}

// FindDescriptors joins each descriptor to its family so FamilyCode is
// populated; the ADAMO-local FAMILY_ID never crosses the schema boundary.
func (r *OdorTaxonomyRepository) FindDescriptors(ctx context.Context, limit int) ([]entity.AdamoOdorDescriptor, error) {
	query := `
		SELECT d.ID, d.CODE, d.NAME, d.PROFILE_NAME, d.FAMILY_ID, f.CODE
		FROM GIV_MAP.MAP_ODOR_DESCRIPTOR d
		JOIN GIV_MAP.MAP_ODOR_FAMILY f ON f.ID = d.FAMILY_ID
		ORDER BY d.ID`
	var args []any
	if limit > 0 {
		args = append(args, limit)
		query += " FETCH FIRST :1 ROWS ONLY"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query odor descriptors failed: %w", err)
	}
	defer rows.Close()

	var descriptors []entity.AdamoOdorDescriptor
	for rows.Next() {
		var d entity.AdamoOdorDescriptor
		err := rows.Scan(&d.ID, &d.Code, &d.Name, &d.ProfileName, &d.FamilyID, &d.FamilyCode)
		if err != nil {
			return nil, fmt.Errorf("scan odor descriptor failed: %w", err)
		}
		descriptors = append(descriptors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate odor descriptors failed: %w", err)
	}

	return descriptors, nil
}

// IgnoredMoleculeRepository implements outbound.IgnoredMoleculeRepository
// on GIV_MAP.SUBMITTING_IGNORED_MOLECULES.
type IgnoredMoleculeRepository struct {
	db *sql.DB
}

// NewIgnoredMoleculeRepository creates an IgnoredMoleculeRepository.
func NewIgnoredMoleculeRepository(db *sql.DB) *IgnoredMoleculeRepository {
	return &IgnoredMoleculeRepository{db: db}
}

func (r *IgnoredMoleculeRepository) FindAll(ctx context.Context, limit int) ([]entity.IgnoredMolecule, error) {
	query := `SELECT GR_NUMBER, ENTRY_PERSON, ENTRY_DATE FROM GIV_MAP.SUBMITTING_IGNORED_MOLECULES ORDER BY ENTRY_DATE`
	var args []any
	if limit > 0 {
		args = append(args, limit)
		query += " FETCH FIRST :1 ROWS ONLY"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ignored molecules failed: %w", err)
	}
	defer rows.Close()

	var entries []entity.IgnoredMolecule
	for rows.Next() {
		var e entity.IgnoredMolecule
		var grNumber string
		if err := rows.Scan(&grNumber, &e.EntryPerson, &e.EntryDate); err != nil {
			return nil, fmt.Errorf("scan ignored molecule failed: %w", err)
		}
		e.GrNumber = valueobject.GRNumber(grNumber)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ignored molecules failed: %w", err)
	}

	return entries, nil
}
