package outbound

import (
	"context"
	"time"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/entity"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/valueobject"
)

// MAP Tool (PostgreSQL) outbound ports. Same contract as the ADAMO side:
// (nil, nil) for a miss, no automatic retries.

// MoleculeRepository persists map_adm."Molecule" rows.
type MoleculeRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Molecule, error)
	FindByGRNumber(ctx context.Context, grNumber valueobject.GRNumber) (*entity.Molecule, error)
	// FindAll excludes archived molecules.
	FindAll(ctx context.Context, filters MoleculeFilters) ([]entity.Molecule, error)
	Exists(ctx context.Context, grNumber valueobject.GRNumber) (bool, error)
	Insert(ctx context.Context, molecule *entity.Molecule) error
	UpdateStatus(ctx context.Context, id int64, status valueobject.MoleculeStatus, updatedBy string) error
}

// MoleculeFilters bounds molecule queries. Archived molecules are always
// excluded.
type MoleculeFilters struct {
	GRNumbers     []string
	Status        *valueobject.MoleculeStatus
	CreatedAfter  *time.Time
	ModifiedAfter *time.Time
	Limit         int
}

// AssessmentRepository persists map_adm."Assessment" rows.
type AssessmentRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Assessment, error)
	// ExistsBySessionName checks the de-facto natural key bridged
	// assessments are skip-detected by.
	ExistsBySessionName(ctx context.Context, sessionName string) (bool, error)
	Insert(ctx context.Context, assessment *entity.Assessment) error
}

// MoleculeEvaluationRepository reads map_adm."Map1_1MoleculeEvaluation"
// rows.
type MoleculeEvaluationRepository interface {
	// FindFirstByMoleculeID returns the molecule's first evaluation with
	// the parent molecule joined, or (nil, nil).
	FindFirstByMoleculeID(ctx context.Context, moleculeID int64) (*entity.MoleculeEvaluation, error)
}

// MapToolOdorTaxonomyRepository persists the MAP Tool odor taxonomy.
// Cross-schema identity is the code field; ids stay schema-local.
type MapToolOdorTaxonomyRepository interface {
	FindFamilyByCode(ctx context.Context, code string) (*entity.MapToolOdorFamily, error)
	FamilyExists(ctx context.Context, code string) (bool, error)
	InsertFamily(ctx context.Context, family *entity.MapToolOdorFamily) error
	DescriptorExists(ctx context.Context, code string) (bool, error)
	InsertDescriptor(ctx context.Context, descriptor *entity.MapToolOdorDescriptor) error
}

// MapToolPorts bundles every MAP Tool-side port; it is what a repository
// resolution step yields for the PostgreSQL database.
type MapToolPorts struct {
	Molecules   MoleculeRepository
	Assessments AssessmentRepository
	Evaluations MoleculeEvaluationRepository
	Taxonomy    MapToolOdorTaxonomyRepository
}
