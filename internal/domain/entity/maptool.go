package entity

import (
	"time"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/valueobject"
)

// MAP Tool row images (PostgreSQL, schema map_adm).

// Molecule is a map_adm."Molecule" row.
type Molecule struct {
	ID               int64
	GrNumber         valueobject.GRNumber
	RegNumber        *string
	Structure        *string
	Assessed         bool
	ChemistName      *string
	ChemicalName     *string
	MolecularFormula *string
	ProjectName      *string
	Status           valueobject.MoleculeStatus
	Quantity         float64
	CreatedBy        *string
	CreatedAt        *time.Time
	UpdatedBy        *string
	UpdatedAt        *time.Time

	IsArchived         bool
	IsManuallyArchived bool
}

// Assessment is a map_adm."Assessment" row. SessionName is free text, used
// as the de-facto natural key for skip-detection of records bridged from
// ADAMO sessions.
type Assessment struct {
	ID          int64
	SessionName string
	DateTime    time.Time
	Stage       string
	Status      int
	Region      string
	Segment     string
	IsClosed    bool
	CreatedBy   *string
	CreatedAt   *time.Time
	UpdatedBy   *string
	UpdatedAt   *time.Time

	IsArchived         bool
	IsManuallyArchived bool

	Evaluations []Evaluation
}

// Evaluation is a map_adm."Map1_1Evaluation" row grouping participants and
// a date under an assessment.
type Evaluation struct {
	ID               int64
	AssessmentID     int64
	Participants     *string
	EvaluationDate   *time.Time
	EvaluationSiteID int64
	CreatedBy        *string
	CreatedAt        *time.Time
	UpdatedBy        *string
	UpdatedAt        *time.Time
}

// MoleculeEvaluation is a map_adm."Map1_1MoleculeEvaluation" row linking
// one molecule to one evaluation, with per-time-point odor text and
// separate CP/FF results.
type MoleculeEvaluation struct {
	ID                         int64
	EvaluationID               int64
	MoleculeID                 int64
	SortOrder                  int
	GrDilutionSolventID        *int64
	BenchmarkDilutionSolventID *int64
	Odor0H                     *string
	Odor4H                     *string
	Odor24H                    *string
	Benchmark                  *string
	Comment                    *string
	FFNextSteps                *string
	CPNextSteps                *string
	ResultCP                   *int
	ResultFF                   *int
	CreatedBy                  *string
	CreatedAt                  *time.Time
	UpdatedAt                  *time.Time

	// Populated when the lookup joined the parent molecule.
	Molecule *Molecule
}

// MapToolOdorFamily is a map_adm."OdorFamily" row.
type MapToolOdorFamily struct {
	ID        int64
	Code      string
	Name      string
	Color     string
	CreatedBy *string
	CreatedAt *time.Time

	IsArchived         bool
	IsManuallyArchived bool
}

// MapToolOdorDescriptor is a map_adm."OdorDescriptor" row. OdorFamilyID is
// MAP Tool-local; it is resolved from the shared family code, never copied
// from the ADAMO side.
type MapToolOdorDescriptor struct {
	ID           int64
	Code         string
	Name         string
	ProfileName  *string
	OdorFamilyID int64
	CreatedBy    *string
	CreatedAt    *time.Time

	IsArchived         bool
	IsManuallyArchived bool
}
