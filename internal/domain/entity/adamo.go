package entity

import (
	"time"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/valueobject"
)

// ADAMO row images (Oracle, schema GIV_MAP). These are plain record
// shapes: schema translation works on whole rows, so unlike long-lived
// aggregates they carry no behavior. RegNumber and Batch are derived from
// GrNumber by the source database and are never set by application code.

// MapInitial is a GIV_MAP.MAP_INITIAL row: the first evaluation record for
// a submitted molecule.
type MapInitial struct {
	MapInitialID     int64
	GrNumber         valueobject.GRNumber
	EvaluationDate   *time.Time
	Chemist          *string
	Assessor         *string
	Dilution         *string
	EvaluationSite   *string
	Odor0H           *string
	Odor4H           *string
	Odor24H          *string
	Comments         *string
	RegNumber        *string
	Batch            *int
	CreatedBy        *string
	CreationDate     *time.Time
	LastModifiedBy   *string
	LastModifiedDate *time.Time
}

// MapSession is a GIV_MAP.MAP_SESSION row. A session owns its results;
// Results is populated only by FindSessionsWithResults.
type MapSession struct {
	SessionID        int64
	Stage            *string
	EvaluationDate   *time.Time
	Region           *string
	Segment          *string
	Participants     *string
	ShowInTaskList   string // Y/N, default N
	SubStage         *int
	Category         *string
	CreatedBy        *string
	CreationDate     *time.Time
	LastModifiedBy   *string
	LastModifiedDate *time.Time

	Results []MapResult
}

// MapResult is a GIV_MAP.MAP_RESULT row. A result cannot exist without its
// parent session (restrict-on-delete foreign key).
type MapResult struct {
	ResultID          int64
	SessionID         int64
	GrNumber          valueobject.GRNumber
	Odor              *string
	BenchmarkComments *string
	Result            *int // 1-5 score
	Dilution          *string
	Sponsor           *string
	RegNumber         *string
	Batch             *int
	CreatedBy         *string
	CreationDate      *time.Time
	LastModifiedBy    *string
	LastModifiedDate  *time.Time
}

// OdorCharacterization is a GIV_MAP.ODOR_CHARACTERIZATION row, keyed by
// unique GR number. The twelve fixed family scores are first-class fields;
// the 100+ individual descriptor scores of the full schema live in
// Descriptors keyed by descriptor code, so remaining columns can be added
// without reshaping the type.
type OdorCharacterization struct {
	OdorCharacterizationID int64
	GrNumber               valueobject.GRNumber
	OdorSummary            *string
	RegNumber              *string
	Batch                  *int
	Intensity              *int
	Tenacity               *int
	OverallLiking          *int
	FamilyProfile          *string
	OdorProfile            *string

	AmbergrisFamily      *int
	AromaticHerbalFamily *int
	CitrusFamily         *int
	FloralFamily         *int
	FruityFamily         *int
	GreenFamily          *int
	MarineFamily         *int
	MuskyAnimalicFamily  *int
	OffOdorsFamily       *int
	SpicyFamily          *int
	SweetGourmandFamily  *int
	WoodyFamily          *int

	// Descriptor code -> score, for the per-descriptor columns (Apple,
	// Rose, Cedarwood, ...). Only non-null scores are present.
	Descriptors map[string]int

	CreatedBy        *string
	CreationDate     *time.Time
	LastModifiedBy   *string
	LastModifiedDate *time.Time
}

// AdamoOdorFamily is a GIV_MAP.MAP_ODOR_FAMILY row.
type AdamoOdorFamily struct {
	ID    int64
	Code  string
	Name  string
	Color string
}

// AdamoOdorDescriptor is a GIV_MAP.MAP_ODOR_DESCRIPTOR row. FamilyID is
// ADAMO-local and must never cross the schema boundary; the shared Code is
// the cross-schema identity.
type AdamoOdorDescriptor struct {
	ID          int64
	Code        string
	Name        string
	ProfileName *string
	FamilyID    *int64
	FamilyCode  string
}

// IgnoredMolecule is a GIV_MAP.SUBMITTING_IGNORED_MOLECULES row. MAP Tool
// has no equivalent entity; the closest destination state is
// Molecule.Status = Ignore.
type IgnoredMolecule struct {
	GrNumber    valueobject.GRNumber
	EntryPerson string
	EntryDate   time.Time
}

// SessionLink is a GIV_MAP.MAP1_SESSION_LINK row pairing a CP session with
// its FF counterpart. No MAP Tool equivalent.
type SessionLink struct {
	CPSessionID int64
	FFSessionID int64
}
