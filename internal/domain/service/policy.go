package service

import (
	"time"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/valueobject"
)

// MapperPolicy supplies every default and placeholder value the field
// mappings need. Defaults are named and overridable here rather than
// inlined at call sites, so real business rules can replace them without
// touching the mapping functions.
type MapperPolicy struct {
	// Now supplies the clock used wherever a date must be approximated
	// (e.g. a missing evaluation date). Tests pin it.
	Now func() time.Time

	// InitialDilution is emitted on every mapped MapInitial. The legacy
	// system always wrote "10% in DPG" regardless of input; a real policy
	// should derive this from the source dilution solvent.
	InitialDilution string

	// ResultDilution is emitted on every mapped MapResult, pending
	// dilution-solvent mapping.
	ResultDilution string

	// DefaultQuantity is the quantity for molecules bridged from ADAMO,
	// which carries no quantity.
	DefaultQuantity float64

	// DefaultMoleculeStatus is assigned to molecules bridged from ADAMO.
	// Real status inference from evaluation outcomes is not modeled.
	DefaultMoleculeStatus valueobject.MoleculeStatus

	// SyncUser is recorded as the creating user when the source record
	// carries none.
	SyncUser string

	// AssessmentStatusFor resolves the MAP Tool assessment status code for
	// an ADAMO stage/segment combination.
	AssessmentStatusFor func(stage, segment string) int
}

// DefaultPolicy returns the policy carrying the legacy system's defaults.
func DefaultPolicy() MapperPolicy {
	return MapperPolicy{
		Now:                   time.Now,
		InitialDilution:       "10% in DPG",
		ResultDilution:        "10%",
		DefaultQuantity:       0,
		DefaultMoleculeStatus: valueobject.MoleculeStatusMap1,
		SyncUser:              "SYNC",
		AssessmentStatusFor:   AssessmentStatusFor,
	}
}

// defaultAssessmentStatus is used for stage/segment combinations missing
// from the table. It matches the code the legacy system wrote for every
// assessment.
const defaultAssessmentStatus = 1

type stageSegment struct {
	stage   valueobject.Stage
	segment valueobject.Segment
}

// assessmentStatusTable enumerates every ADAMO stage/segment combination
// explicitly. The codes are currently uniform pending confirmed status
// semantics from the MAP Tool side; listing each combination lets real
// codes be filled in without touching any call site.
var assessmentStatusTable = func() map[stageSegment]int {
	table := make(map[stageSegment]int, len(valueobject.AllStages)*2)
	for _, stage := range valueobject.AllStages {
		for _, segment := range []valueobject.Segment{valueobject.SegmentCP, valueobject.SegmentFF} {
			table[stageSegment{stage, segment}] = defaultAssessmentStatus
		}
	}
	return table
}()

// AssessmentStatusFor resolves the assessment status code for a
// stage/segment pair, falling back to the default for combinations outside
// the table.
func AssessmentStatusFor(stage, segment string) int {
	s, err := valueobject.NewStage(stage)
	if err != nil {
		return defaultAssessmentStatus
	}
	seg, err := valueobject.NewSegment(segment)
	if err != nil {
		return defaultAssessmentStatus
	}
	if code, ok := assessmentStatusTable[stageSegment{s, seg}]; ok {
		return code
	}
	return defaultAssessmentStatus
}
