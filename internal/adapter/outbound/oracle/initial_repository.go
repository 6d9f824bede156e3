package oracle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	go_ora "github.com/sijms/go-ora/v2"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/entity"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/valueobject"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/port/outbound"
)

const initialColumns = `MAP_INITIAL_ID, GR_NUMBER, EVALUATION_DATE, CHEMIST, ASSESSOR,
	DILUTION, EVALUATION_SITE, ODOR0H, ODOR4H, ODOR24H, COMMENTS,
	REG_NUMBER, BATCH, CREATED_BY, CREATION_DATE, LAST_MODIFIED_BY, LAST_MODIFIED_DATE`

// InitialRepository implements outbound.MapInitialRepository on
// GIV_MAP.MAP_INITIAL.
type InitialRepository struct {
	db *sql.DB
}

// NewInitialRepository creates an InitialRepository.
func NewInitialRepository(db *sql.DB) *InitialRepository {
	return &InitialRepository{db: db}
}

func (r *InitialRepository) FindByID(ctx context.Context, id int64) (*entity.MapInitial, error) {
	query := fmt.Sprintf(`SELECT %s FROM GIV_MAP.MAP_INITIAL WHERE MAP_INITIAL_ID = :1`, initialColumns)
	return r.findOne(ctx, query, id)
}

func (r *InitialRepository) FindByGRNumber(ctx context.Context, grNumber valueobject.GRNumber) (*entity.MapInitial, error) {
	query := fmt.Sprintf(`SELECT %s FROM GIV_MAP.MAP_INITIAL WHERE GR_NUMBER = :1`, initialColumns)
	return r.findOne(ctx, query, grNumber.String())
}

func (r *InitialRepository) findOne(ctx context.Context, query string, arg any) (*entity.MapInitial, error) {
	initial, err := scanInitial(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find map initial failed: %w", err)
	}
	return initial, nil
}

// FindAll returns initial records matching the filters, oldest first.
func (r *InitialRepository) FindAll(ctx context.Context, filters outbound.InitialFilters) ([]entity.MapInitial, error) {
	conditions := []string{"1 = 1"}
	var args []any

	if filters.EvaluatedAfter != nil {
		args = append(args, *filters.EvaluatedAfter)
		conditions = append(conditions, fmt.Sprintf("EVALUATION_DATE >= :%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM GIV_MAP.MAP_INITIAL WHERE %s ORDER BY MAP_INITIAL_ID`,
		initialColumns, strings.Join(conditions, " AND "))
	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += fmt.Sprintf(" FETCH FIRST :%d ROWS ONLY", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query map initials failed: %w", err)
	}
	defer rows.Close()

	var initials []entity.MapInitial
	for rows.Next() {
		initial, err := scanInitial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan map initial failed: %w", err)
		}
		initials = append(initials, *initial)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate map initials failed: %w", err)
	}

	return initials, nil
}

func (r *InitialRepository) Exists(ctx context.Context, grNumber valueobject.GRNumber) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM GIV_MAP.MAP_INITIAL WHERE GR_NUMBER = :1`,
		grNumber.String(),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check map initial exists failed: %w", err)
	}
	return count > 0, nil
}

// Insert creates a MAP_INITIAL row. MAP_INITIAL_ID, REG_NUMBER and BATCH
// are generated by the database; the assigned id is written back into the
// record.
func (r *InitialRepository) Insert(ctx context.Context, initial *entity.MapInitial) error {
	query := `
		INSERT INTO GIV_MAP.MAP_INITIAL (
			GR_NUMBER, EVALUATION_DATE, CHEMIST, ASSESSOR, DILUTION,
			EVALUATION_SITE, ODOR0H, ODOR4H, ODOR24H, COMMENTS,
			CREATED_BY, CREATION_DATE, LAST_MODIFIED_BY, LAST_MODIFIED_DATE
		) VALUES (
			:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12, :13, :14
		) RETURNING MAP_INITIAL_ID INTO :15`

	_, err := r.db.ExecContext(ctx, query,
		initial.GrNumber.String(),
		initial.EvaluationDate,
		initial.Chemist,
		initial.Assessor,
		initial.Dilution,
		initial.EvaluationSite,
		initial.Odor0H,
		initial.Odor4H,
		initial.Odor24H,
		initial.Comments,
		initial.CreatedBy,
		initial.CreationDate,
		initial.LastModifiedBy,
		initial.LastModifiedDate,
		go_ora.Out{Dest: &initial.MapInitialID},
	)
	if err != nil {
		return fmt.Errorf("insert map initial failed: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInitial(row rowScanner) (*entity.MapInitial, error) {
	var i entity.MapInitial
	var grNumber string

	err := row.Scan(
		&i.MapInitialID, &grNumber, &i.EvaluationDate, &i.Chemist, &i.Assessor,
		&i.Dilution, &i.EvaluationSite, &i.Odor0H, &i.Odor4H, &i.Odor24H, &i.Comments,
		&i.RegNumber, &i.Batch, &i.CreatedBy, &i.CreationDate, &i.LastModifiedBy, &i.LastModifiedDate,
	)
	if err != nil {
		return nil, err
	}

	i.GrNumber = valueobject.GRNumber(grNumber)
	return &i, nil
}
