package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/entity"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/valueobject"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/port/outbound"
)

const moleculeColumns = `"Id", "GrNumber", "RegNumber", "Structure", "Assessed",
	"ChemistName", "ChemicalName", "MolecularFormula", "ProjectName",
	"Status", "Quantity", "CreatedBy", "CreatedAt", "UpdatedBy", "UpdatedAt",
	"IsArchived", "IsManuallyArchived"`

// MoleculeRepository implements outbound.MoleculeRepository on the MAP Tool
// schema. Table and column identifiers are quoted: the schema was created
// by an ORM with case-sensitive names.
type MoleculeRepository struct {
	pool *pgxpool.Pool
}

// NewMoleculeRepository creates a MoleculeRepository.
func NewMoleculeRepository(pool *pgxpool.Pool) *MoleculeRepository {
	return &MoleculeRepository{pool: pool}
}

func (r *MoleculeRepository) FindByID(ctx context.Context, id int64) (*entity.Molecule, error) {
	query := fmt.Sprintf(`SELECT %s FROM map_adm."Molecule" WHERE "Id" = $1`, moleculeColumns)
	return r.findOne(ctx, query, id)
}

func (r *MoleculeRepository) FindByGRNumber(ctx context.Context, grNumber valueobject.GRNumber) (*entity.Molecule, error) {
	query := fmt.Sprintf(`SELECT %s FROM map_adm."Molecule" WHERE "GrNumber" = $1`, moleculeColumns)
	return r.findOne(ctx, query, grNumber.String())
}

func (r *MoleculeRepository) findOne(ctx context.Context, query string, arg any) (*entity.Molecule, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	molecule, err := scanMolecule(row)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, nil
		}
		return nil, WrapError(err, "find molecule")
	}
	return molecule, nil
}

// FindAll returns non-archived molecules matching the filters, oldest
// first so repeated bounded batches walk the table deterministically.
func (r *MoleculeRepository) FindAll(ctx context.Context, filters outbound.MoleculeFilters) ([]entity.Molecule, error) {
	conditions := []string{`"IsArchived" = false`}
	var args []any

	if len(filters.GRNumbers) > 0 {
		args = append(args, filters.GRNumbers)
		conditions = append(conditions, fmt.Sprintf(`"GrNumber" = ANY($%d)`, len(args)))
	}
	if filters.Status != nil {
		args = append(args, filters.Status.Int())
		conditions = append(conditions, fmt.Sprintf(`"Status" = $%d`, len(args)))
	}
	if filters.CreatedAfter != nil {
		args = append(args, *filters.CreatedAfter)
		conditions = append(conditions, fmt.Sprintf(`"CreatedAt" >= $%d`, len(args)))
	}
	if filters.ModifiedAfter != nil {
		args = append(args, *filters.ModifiedAfter)
		conditions = append(conditions, fmt.Sprintf(`"UpdatedAt" >= $%d`, len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM map_adm."Molecule" WHERE %s ORDER BY "Id"`,
		moleculeColumns, strings.Join(conditions, " AND "))
	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, WrapError(err, "query molecules")
	}
	defer rows.Close()

	var molecules []entity.Molecule
	for rows.Next() {
		molecule, err := scanMolecule(rows)
		if err != nil {
			return nil, WrapError(err, "scan molecule")
		}
		molecules = append(molecules, *molecule)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapError(err, "iterate molecules")
	}

	return molecules, nil
}

func (r *MoleculeRepository) Exists(ctx context.Context, grNumber valueobject.GRNumber) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM map_adm."Molecule" WHERE "GrNumber" = $1)`,
		grNumber.String(),
	).Scan(&exists)
	if err != nil {
		return false, WrapError(err, "check molecule exists")
	}
	return exists, nil
}

func (r *MoleculeRepository) Insert(ctx context.Context, molecule *entity.Molecule) error {
	query := `
		INSERT INTO map_adm."Molecule" (
			"GrNumber", "RegNumber", "Structure", "Assessed",
			"ChemistName", "ChemicalName", "MolecularFormula", "ProjectName",
			"Status", "Quantity", "CreatedBy", "CreatedAt", "UpdatedBy", "UpdatedAt",
			"IsArchived", "IsManuallyArchived"
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		) RETURNING "Id"`

	err := r.pool.QueryRow(ctx, query,
		molecule.GrNumber.String(),
		molecule.RegNumber,
		molecule.Structure,
		molecule.Assessed,
		molecule.ChemistName,
		molecule.ChemicalName,
		molecule.MolecularFormula,
		molecule.ProjectName,
		molecule.Status.Int(),
		molecule.Quantity,
		molecule.CreatedBy,
		molecule.CreatedAt,
		molecule.UpdatedBy,
		molecule.UpdatedAt,
		molecule.IsArchived,
		molecule.IsManuallyArchived,
	).Scan(&molecule.ID)
	if err != nil {
		return WrapError(err, "insert molecule")
	}
	return nil
}

func (r *MoleculeRepository) UpdateStatus(ctx context.Context, id int64, status valueobject.MoleculeStatus, updatedBy string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE map_adm."Molecule" SET "Status" = $2, "UpdatedBy" = $3, "UpdatedAt" = NOW() WHERE "Id" = $1`,
		id, status.Int(), updatedBy,
	)
	if err != nil {
		return WrapError(err, "update molecule status")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update molecule status failed: %w", ErrNotFound)
	}
	return nil
}

func scanMolecule(row pgx.Row) (*entity.Molecule, error) {
	var m entity.Molecule
	var grNumber string
	var status int

	err := row.Scan(
		&m.ID, &grNumber, &m.RegNumber, &m.Structure, &m.Assessed,
		&m.ChemistName, &m.ChemicalName, &m.MolecularFormula, &m.ProjectName,
		&status, &m.Quantity, &m.CreatedBy, &m.CreatedAt, &m.UpdatedBy, &m.UpdatedAt,
		&m.IsArchived, &m.IsManuallyArchived,
	)
	if err != nil {
		return nil, err
	}

	m.GrNumber = valueobject.GRNumber(grNumber)
	m.Status = valueobject.MoleculeStatus(status)
	return &m, nil
}
