package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/entity"
)

// AssessmentRepository implements outbound.AssessmentRepository on the MAP
// Tool schema.
type AssessmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssessmentRepository creates an AssessmentRepository.
func NewAssessmentRepository(pool *pgxpool.Pool) *AssessmentRepository {
	return &AssessmentRepository{pool: pool}
}

func (r *AssessmentRepository) FindByID(ctx context.Context, id int64) (*entity.Assessment, error) {
	query := `
		SELECT "Id", "SessionName", "DateTime", "Stage", "Status", "Region", "Segment",
		       "IsClosed", "CreatedBy", "CreatedAt", "UpdatedBy", "UpdatedAt",
		       "IsArchived", "IsManuallyArchived"
		FROM map_adm."Assessment" WHERE "Id" = $1`

	row := r.pool.QueryRow(ctx, query, id)

	var a entity.Assessment
	err := row.Scan(
		&a.ID, &a.SessionName, &a.DateTime, &a.Stage, &a.Status, &a.Region, &a.Segment,
		&a.IsClosed, &a.CreatedBy, &a.CreatedAt, &a.UpdatedBy, &a.UpdatedAt,
		&a.IsArchived, &a.IsManuallyArchived,
	)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, nil
		}
		return nil, WrapError(err, "find assessment")
	}
	return &a, nil
}

func (r *AssessmentRepository) ExistsBySessionName(ctx context.Context, sessionName string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM map_adm."Assessment" WHERE "SessionName" = $1)`,
		sessionName,
	).Scan(&exists)
	if err != nil {
		return false, WrapError(err, "check assessment exists")
	}
	return exists, nil
}

func (r *AssessmentRepository) Insert(ctx context.Context, assessment *entity.Assessment) error {
	query := `
		INSERT INTO map_adm."Assessment" (
			"SessionName", "DateTime", "Stage", "Status", "Region", "Segment",
			"IsClosed", "CreatedBy", "CreatedAt", "UpdatedBy", "UpdatedAt",
			"IsArchived", "IsManuallyArchived"
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		) RETURNING "Id"`

	err := r.pool.QueryRow(ctx, query,
		assessment.SessionName,
		assessment.DateTime,
		assessment.Stage,
		assessment.Status,
		assessment.Region,
		assessment.Segment,
		assessment.IsClosed,
		assessment.CreatedBy,
		assessment.CreatedAt,
		assessment.UpdatedBy,
		assessment.UpdatedAt,
		assessment.IsArchived,
		assessment.IsManuallyArchived,
	).Scan(&assessment.ID)
	if err != nil {
		return WrapError(err, "insert assessment")
	}
	return nil
}
