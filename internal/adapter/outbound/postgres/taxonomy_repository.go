package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/entity"
)

// OdorTaxonomyRepository implements outbound.MapToolOdorTaxonomyRepository
// on the MAP Tool schema. The code column is the cross-schema identity;
// ids stay local.
type OdorTaxonomyRepository struct {
	pool *pgxpool.Pool
}

// NewOdorTaxonomyRepository creates an OdorTaxonomyRepository.
func NewOdorTaxonomyRepository(pool *pgxpool.Pool) *OdorTaxonomyRepository {
	return &OdorTaxonomyRepository{pool: pool}
}

func (r *OdorTaxonomyRepository) FindFamilyByCode(ctx context.Context, code string) (*entity.MapToolOdorFamily, error) {
	query := `
		SELECT "Id", "Code", "Name", "Color", "CreatedBy", "CreatedAt",
		       "IsArchived", "IsManuallyArchived"
		FROM map_adm."OdorFamily" WHERE "Code" = $1`

	row := r.pool.QueryRow(ctx, query, code)

	var f entity.MapToolOdorFamily
	err := row.Scan(
		&f.ID, &f.Code, &f.Name, &f.Color, &f.CreatedBy, &f.CreatedAt,
		&f.IsArchived, &f.IsManuallyArchived,
	)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, nil
		}
		return nil, WrapError(err, "find odor family")
	}
	return &f, nil
}

func (r *OdorTaxonomyRepository) FamilyExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM map_adm."OdorFamily" WHERE "Code" = $1)`,
		code,
	).Scan(&exists)
	if err != nil {
		return false, WrapError(err, "check odor family exists")
	}
	return exists, nil
}

func (r *OdorTaxonomyRepository) InsertFamily(ctx context.Context, family *entity.MapToolOdorFamily) error {
	query := `
		INSERT INTO map_adm."OdorFamily" (
			"Code", "Name", "Color", "CreatedBy", "CreatedAt",
			"IsArchived", "IsManuallyArchived"
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING "Id"`

	err := r.pool.QueryRow(ctx, query,
		family.Code, family.Name, family.Color, family.CreatedBy, family.CreatedAt,
		family.IsArchived, family.IsManuallyArchived,
	).Scan(&family.ID)
	if err != nil {
		return WrapError(err, "insert odor family")
	}
	return nil
}

func (r *OdorTaxonomyRepository) DescriptorExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM map_adm."OdorDescriptor" WHERE "Code" = $1)`,
		code,
	).Scan(&exists)
	if err != nil {
		return false, WrapError(err, "check odor descriptor exists")
	}
	return exists, nil
}

func (r *OdorTaxonomyRepository) InsertDescriptor(ctx context.Context, descriptor *entity.MapToolOdorDescriptor) error {
	query := `
		INSERT INTO map_adm."OdorDescriptor" (
			"Code", "Name", "ProfileName", "OdorFamilyId", "CreatedBy", "CreatedAt",
			"IsArchived", "IsManuallyArchived"
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING "Id"`

	err := r.pool.QueryRow(ctx, query,
		descriptor.Code, descriptor.Name, descriptor.ProfileName, descriptor.OdorFamilyID,
		descriptor.CreatedBy, descriptor.CreatedAt,
		descriptor.IsArchived, descriptor.IsManuallyArchived,
	).Scan(&descriptor.ID)
	if err != nil {
		return WrapError(err, "insert odor descriptor")
	}
	return nil
}
