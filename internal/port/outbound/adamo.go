package outbound

import (
	"context"
	"time"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/entity"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/valueobject"
)

// ADAMO (Oracle) outbound ports. All operations may block on I/O; a miss
// is reported as (nil, nil), never as an error. Inserts never auto-retry:
// retry policy belongs to the caller.

// MapInitialRepository persists GIV_MAP.MAP_INITIAL rows.
type MapInitialRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.MapInitial, error)
	FindByGRNumber(ctx context.Context, grNumber valueobject.GRNumber) (*entity.MapInitial, error)
	FindAll(ctx context.Context, filters InitialFilters) ([]entity.MapInitial, error)
	Exists(ctx context.Context, grNumber valueobject.GRNumber) (bool, error)
	Insert(ctx context.Context, initial *entity.MapInitial) error
}

// InitialFilters bounds MAP_INITIAL queries.
type InitialFilters struct {
	EvaluatedAfter *time.Time
	Limit          int
}

// MapSessionRepository persists GIV_MAP.MAP_SESSION rows and their result
// aggregates.
type MapSessionRepository interface {
	FindByID(ctx context.Context, sessionID int64) (*entity.MapSession, error)
	// FindWithResults loads matching sessions with their child results
	// populated, ordered by evaluation date descending.
	FindWithResults(ctx context.Context, filters SessionFilters) ([]entity.MapSession, error)
	Insert(ctx context.Context, session *entity.MapSession) error
}

// SessionFilters bounds MAP_SESSION queries.
type SessionFilters struct {
	SessionIDs     []int64
	Stage          string
	Region         string
	Segment        string
	EvaluatedAfter *time.Time
	IncludeResults bool
	Limit          int
}

// MapResultRepository persists GIV_MAP.MAP_RESULT rows.
type MapResultRepository interface {
	FindBySessionID(ctx context.Context, sessionID int64) ([]entity.MapResult, error)
	Insert(ctx context.Context, result *entity.MapResult) error
}

// OdorCharacterizationRepository reads GIV_MAP.ODOR_CHARACTERIZATION rows.
type OdorCharacterizationRepository interface {
	FindByGRNumber(ctx context.Context, grNumber valueobject.GRNumber) (*entity.OdorCharacterization, error)
	FindAll(ctx context.Context, limit int) ([]entity.OdorCharacterization, error)
}

// AdamoOdorTaxonomyRepository reads the ADAMO odor family/descriptor
// taxonomy.
type AdamoOdorTaxonomyRepository interface {
	FindFamilies(ctx context.Context, limit int) ([]entity.AdamoOdorFamily, error)
	FindDescriptors(ctx context.Context, limit int) ([]entity.AdamoOdorDescriptor, error)
}

// IgnoredMoleculeRepository reads GIV_MAP.SUBMITTING_IGNORED_MOLECULES
// rows.
type IgnoredMoleculeRepository interface {
	FindAll(ctx context.Context, limit int) ([]entity.IgnoredMolecule, error)
}

// AdamoUnitOfWork runs fn with transactional repositories; any failure
// inside fn rolls the whole group back. The session+results creation path
// is the one place atomicity is required: results without their session
// are meaningless.
type AdamoUnitOfWork interface {
	WithinTransaction(ctx context.Context, fn func(sessions MapSessionRepository, results MapResultRepository) error) error
}

// AdamoPorts bundles every ADAMO-side port; it is what a repository
// resolution step yields for the Oracle database.
type AdamoPorts struct {
	Initials          MapInitialRepository
	Sessions          MapSessionRepository
	Results           MapResultRepository
	Characterizations OdorCharacterizationRepository
	Taxonomy          AdamoOdorTaxonomyRepository
	Ignored           IgnoredMoleculeRepository
	UnitOfWork        AdamoUnitOfWork
}
