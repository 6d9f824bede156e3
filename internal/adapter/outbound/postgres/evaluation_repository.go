package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/entity"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/valueobject"
)

// MoleculeEvaluationRepository implements
// outbound.MoleculeEvaluationRepository on the MAP Tool schema.
type MoleculeEvaluationRepository struct {
	pool *pgxpool.Pool
}

// NewMoleculeEvaluationRepository creates a MoleculeEvaluationRepository.
func NewMoleculeEvaluationRepository(pool *pgxpool.Pool) *MoleculeEvaluationRepository {
	return &MoleculeEvaluationRepository{pool: pool}
}

// FindFirstByMoleculeID returns the molecule's oldest evaluation with the
// parent molecule joined, or (nil, nil) when the molecule was never
// evaluated.
func (r *MoleculeEvaluationRepository) FindFirstByMoleculeID(ctx context.Context, moleculeID int64) (*entity.MoleculeEvaluation, error) {
	query := `
		SELECT me."Id", me."Map1_1EvaluationId", me."MoleculeId", me."SortOrder",
		       me."GrDilutionSolventId", me."BenchmarkDilutionSolventId",
		       me."Odor0h", me."Odor4h", me."Odor24h",
		       me."Benchmark", me."Comment", me."FFNextSteps", me."CPNextSteps",
		       me."ResultCP", me."ResultFF", me."CreatedAt", me."UpdatedAt",
		       m."Id", m."GrNumber", m."ChemistName", m."Status"
		FROM map_adm."Map1_1MoleculeEvaluation" me
		JOIN map_adm."Molecule" m ON m."Id" = me."MoleculeId"
		WHERE me."MoleculeId" = $1
		ORDER BY me."Id"
		LIMIT 1`

	row := r.pool.QueryRow(ctx, query, moleculeID)

	var e entity.MoleculeEvaluation
	var m entity.Molecule
	var grNumber string
	var status int

	err := row.Scan(
		&e.ID, &e.EvaluationID, &e.MoleculeID, &e.SortOrder,
		&e.GrDilutionSolventID, &e.BenchmarkDilutionSolventID,
		&e.Odor0H, &e.Odor4H, &e.Odor24H,
		&e.Benchmark, &e.Comment, &e.FFNextSteps, &e.CPNextSteps,
		&e.ResultCP, &e.ResultFF, &e.CreatedAt, &e.UpdatedAt,
		&m.ID, &grNumber, &m.ChemistName, &status,
	)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, nil
		}
		return nil, WrapError(err, "find molecule evaluation")
	}

	m.GrNumber = valueobject.GRNumber(grNumber)
	m.Status = valueobject.MoleculeStatus(status)
	e.Molecule = &m
	return &e, nil
}
