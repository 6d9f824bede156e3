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

const sessionColumns = `SESSION_ID, STAGE, EVALUATION_DATE, REGION, SEGMENT, PARTICIPANTS,
	SHOW_IN_TASK_LIST, SUB_STAGE, CATEGORY,
	CREATED_BY, CREATION_DATE, LAST_MODIFIED_BY, LAST_MODIFIED_DATE`

const resultColumns = `RESULT_ID, SESSION_ID, GR_NUMBER, ODOR, BENCHMARK_COMMENTS, RESULT,
	DILUTION, SPONSOR, REG_NUMBER, BATCH,
	CREATED_BY, CREATION_DATE, LAST_MODIFIED_BY, LAST_MODIFIED_DATE`

// SessionRepository implements outbound.MapSessionRepository on
// GIV_MAP.MAP_SESSION.
type SessionRepository struct {
	q querier
}

// NewSessionRepository creates a SessionRepository.
func NewSessionRepository(q querier) *SessionRepository {
	return &SessionRepository{q: q}
}

func (r *SessionRepository) FindByID(ctx context.Context, sessionID int64) (*entity.MapSession, error) {
	query := fmt.Sprintf(`SELECT %s FROM GIV_MAP.MAP_SESSION WHERE SESSION_ID = :1`, sessionColumns)

	session, err := scanSession(r.q.QueryRowContext(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find map session failed: %w", err)
	}
	return session, nil
}

// FindWithResults loads matching sessions newest first. When
// IncludeResults is set, each session's results are loaded in a second
// query per session; batch limits keep this bounded.
func (r *SessionRepository) FindWithResults(ctx context.Context, filters outbound.SessionFilters) ([]entity.MapSession, error) {
	conditions := []string{"1 = 1"}
	var args []any

	if len(filters.SessionIDs) > 0 {
		placeholders := make([]string, 0, len(filters.SessionIDs))
		for _, id := range filters.SessionIDs {
			args = append(args, id)
			placeholders = append(placeholders, fmt.Sprintf(":%d", len(args)))
		}
		conditions = append(conditions, fmt.Sprintf("SESSION_ID IN (%s)", strings.Join(placeholders, ", ")))
	}
	if filters.Stage != "" {
		args = append(args, filters.Stage)
		conditions = append(conditions, fmt.Sprintf("STAGE = :%d", len(args)))
	}
	if filters.Region != "" {
		args = append(args, filters.Region)
		conditions = append(conditions, fmt.Sprintf("REGION = :%d", len(args)))
	}
	if filters.Segment != "" {
		args = append(args, filters.Segment)
		conditions = append(conditions, fmt.Sprintf("SEGMENT = :%d", len(args)))
	}
	if filters.EvaluatedAfter != nil {
		args = append(args, *filters.EvaluatedAfter)
		conditions = append(conditions, fmt.Sprintf("EVALUATION_DATE >= :%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM GIV_MAP.MAP_SESSION WHERE %s ORDER BY EVALUATION_DATE DESC NULLS LAST, SESSION_ID DESC`,
		sessionColumns, strings.Join(conditions, " AND "))
	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += fmt.Sprintf(" FETCH FIRST :%d ROWS ONLY", len(args))
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query map sessions failed: %w", err)
	}
	defer rows.Close()

	var sessions []entity.MapSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan map session failed: %w", err)
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate map sessions failed: %w", err)
	}

	if filters.IncludeResults {
		results := NewResultRepository(r.q)
		for i := range sessions {
			sessionResults, err := results.FindBySessionID(ctx, sessions[i].SessionID)
			if err != nil {
				return nil, err
			}
			sessions[i].Results = sessionResults
		}
	}

	return sessions, nil
}

// Insert creates a MAP_SESSION row. SESSION_ID is generated by the
// database and written back into the record.
func (r *SessionRepository) Insert(ctx context.Context, session *entity.MapSession) error {
	query := `
		INSERT INTO GIV_MAP.MAP_SESSION (
			STAGE, EVALUATION_DATE, REGION, SEGMENT, PARTICIPANTS,
			SHOW_IN_TASK_LIST, SUB_STAGE, CATEGORY,
			CREATED_BY, CREATION_DATE, LAST_MODIFIED_BY, LAST_MODIFIED_DATE
		) VALUES (
			:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12
		) RETURNING SESSION_ID INTO :13`

	_, err := r.q.ExecContext(ctx, query,
		session.Stage,
		session.EvaluationDate,
		session.Region,
		session.Segment,
		session.Participants,
		session.ShowInTaskList,
		session.SubStage,
		session.Category,
		session.CreatedBy,
		session.CreationDate,
		session.LastModifiedBy,
		session.LastModifiedDate,
		go_ora.Out{Dest: &session.SessionID},
	)
	if err != nil {
		return fmt.Errorf("insert map session failed: %w", err)
	}
	return nil
}

// ResultRepository implements outbound.MapResultRepository on
// GIV_MAP.MAP_RESULT.
type ResultRepository struct {
	q querier
}

// NewResultRepository creates a ResultRepository.
func NewResultRepository(q querier) *ResultRepository {
	return &ResultRepository{q: q}
}

func (r *ResultRepository) FindBySessionID(ctx context.Context, sessionID int64) ([]entity.MapResult, error) {
	query := fmt.Sprintf(`SELECT %s FROM GIV_MAP.MAP_RESULT WHERE SESSION_ID = :1 ORDER BY RESULT_ID`, resultColumns)

	rows, err := r.q.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query map results failed: %w", err)
	}
	defer rows.Close()

	var results []entity.MapResult
	for rows.Next() {
		var res entity.MapResult
		var grNumber string
		err := rows.Scan(
			&res.ResultID, &res.SessionID, &grNumber, &res.Odor, &res.BenchmarkComments, &res.Result,
			&res.Dilution, &res.Sponsor, &res.RegNumber, &res.Batch,
			&res.CreatedBy, &res.CreationDate, &res.LastModifiedBy, &res.LastModifiedDate,
		)
		if err != nil {
			return nil, fmt.Errorf("scan map result failed: %w", err)
		}
		res.GrNumber = valueobject.GRNumber(grNumber)
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate map results failed: %w", err)
	}

	return results, nil
}

// Insert creates a MAP_RESULT row. RESULT_ID, REG_NUMBER and BATCH are
// generated by the database.
func (r *ResultRepository) Insert(ctx context.Context, result *entity.MapResult) error {
	query := `
		INSERT INTO GIV_MAP.MAP_RESULT (
			SESSION_ID, GR_NUMBER, ODOR, BENCHMARK_COMMENTS, RESULT,
			DILUTION, SPONSOR, CREATED_BY, CREATION_DATE, LAST_MODIFIED_BY, LAST_MODIFIED_DATE
		) VALUES (
			:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11
		) RETURNING RESULT_ID INTO :12`

	_, err := r.q.ExecContext(ctx, query,
		result.SessionID,
		result.GrNumber.String(),
		result.Odor,
		result.BenchmarkComments,
		result.Result,
		result.Dilution,
		result.Sponsor,
		result.CreatedBy,
		result.CreationDate,
		result.LastModifiedBy,
		result.LastModifiedDate,
		go_ora.Out{Dest: &result.ResultID},
	)
	if err != nil {
		return fmt.Errorf("insert map result failed: %w", err)
	}
	return nil
}

func scanSession(row rowScanner) (*entity.MapSession, error) {
	var s entity.MapSession

	err := row.Scan(
		&s.SessionID, &s.Stage, &s.EvaluationDate, &s.Region, &s.Segment, &s.Participants,
		&s.ShowInTaskList, &s.SubStage, &s.Category,
		&s.CreatedBy, &s.CreationDate, &s.LastModifiedBy, &s.LastModifiedDate,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UnitOfWork implements outbound.AdamoUnitOfWork: repositories handed to
// fn share one transaction, committed only when fn returns nil.
type UnitOfWork struct {
	db *sql.DB
}

// NewUnitOfWork creates a UnitOfWork.
func NewUnitOfWork(db *sql.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) WithinTransaction(ctx context.Context, fn func(outbound.MapSessionRepository, outbound.MapResultRepository) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction failed: %w", err)
	}

	if err := fn(NewSessionRepository(tx), NewResultRepository(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}
	return nil
}
