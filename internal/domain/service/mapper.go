package service

import (
	"fmt"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/entity"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/valueobject"
)

// Mapper translates records between the ADAMO and MAP Tool schemas. Every
// mapping is total: an absent upstream field produces the target's defined
// default, never a failure. Mappings are pure given their inputs and the
// policy.
type Mapper struct {
	policy MapperPolicy
}

// NewMapper creates a Mapper with the given policy.
func NewMapper(policy MapperPolicy) *Mapper {
	if policy.Now == nil {
		policy.Now = DefaultPolicy().Now
	}
	if policy.AssessmentStatusFor == nil {
		policy.AssessmentStatusFor = AssessmentStatusFor
	}
	return &Mapper{policy: policy}
}

// AssessmentSessionName derives the canonical assessment name encoding an
// ADAMO session id. It is the natural key skip-detection queries by, so it
// is the single producer of the format; every path that synthesizes or
// checks a bridged assessment name goes through it.
func AssessmentSessionName(sessionID int64) string {
	return fmt.Sprintf("ADAMO-%d", sessionID)
}

// LegacyAssessmentSessionName derives the name format an earlier sync path
// wrote. Kept only so existence checks also recognize records bridged
// before the format was unified; nothing writes this format anymore.
func LegacyAssessmentSessionName(sessionID int64) string {
	return fmt.Sprintf("ADAMO Session %d", sessionID)
}

// MoleculeToInitial maps a MAP Tool molecule (plus its evaluation, when
// one was fetched) to an ADAMO MapInitial. RegNumber and Batch are left
// for the destination database's own generation.
func (m *Mapper) MoleculeToInitial(molecule entity.Molecule, evaluation *entity.MoleculeEvaluation) entity.MapInitial {
	now := m.policy.Now()

	initial := entity.MapInitial{
		GrNumber:     molecule.GrNumber,
		Chemist:      molecule.ChemistName,
		Dilution:     &m.policy.InitialDilution,
		CreatedBy:    orDefault(molecule.CreatedBy, m.policy.SyncUser),
		CreationDate: &now,
	}

	comment := fmt.Sprintf("Mapped from MAP Tool - Status: %s", molecule.Status)
	initial.Comments = &comment

	if evaluation != nil {
		initial.Odor0H = evaluation.Odor0H
		initial.Odor4H = evaluation.Odor4H
		initial.Odor24H = evaluation.Odor24H
	}

	// The evaluation creation date stands in for the observation date; an
	// absent evaluation degrades to "now". Both are approximations, not
	// true observation dates.
	if evaluation != nil && evaluation.CreatedAt != nil {
		initial.EvaluationDate = evaluation.CreatedAt
	} else {
		initial.EvaluationDate = &now
	}

	return initial
}

// ResultToAssessment maps an ADAMO result and its parent session to a MAP
// Tool assessment. The session name deterministically encodes the session
// id so re-running the mapping always yields an identical natural key.
func (m *Mapper) ResultToAssessment(result entity.MapResult, session entity.MapSession) entity.Assessment {
	now := m.policy.Now()

	dateTime := now
	if session.EvaluationDate != nil {
		dateTime = *session.EvaluationDate
	}

	stage := stringOrEmpty(session.Stage)
	segment := stringOrEmpty(session.Segment)

	return entity.Assessment{
		SessionName: AssessmentSessionName(session.SessionID),
		DateTime:    dateTime,
		Stage:       stage,
		Region:      stringOrEmpty(session.Region),
		Segment:     segment,
		Status:      m.policy.AssessmentStatusFor(stage, segment),
		IsClosed:    false,
		CreatedBy:   orDefault(result.CreatedBy, m.policy.SyncUser),
		CreatedAt:   &now,
	}
}

// MoleculeEvaluationToResult maps a MAP Tool molecule evaluation to an
// ADAMO result under the given session. Odor falls back through the three
// time points (first non-null wins); the score falls back CP then FF.
func (m *Mapper) MoleculeEvaluationToResult(
	molEval entity.MoleculeEvaluation,
	evaluation entity.Evaluation,
	sessionID int64,
) entity.MapResult {
	now := m.policy.Now()

	result := entity.MapResult{
		SessionID:         sessionID,
		Odor:              firstNonNil(molEval.Odor0H, molEval.Odor4H, molEval.Odor24H),
		BenchmarkComments: molEval.Benchmark,
		Result:            firstNonNil(molEval.ResultCP, molEval.ResultFF),
		Dilution:          &m.policy.ResultDilution,
		Sponsor:           evaluation.Participants,
		CreatedBy:         orDefault(molEval.CreatedBy, m.policy.SyncUser),
		CreationDate:      &now,
	}

	if molEval.Molecule != nil {
		result.GrNumber = molEval.Molecule.GrNumber
		result.RegNumber = molEval.Molecule.RegNumber
	}

	return result
}

// InitialToMolecule maps an ADAMO MapInitial back to a MAP Tool molecule.
func (m *Mapper) InitialToMolecule(initial entity.MapInitial) entity.Molecule {
	now := m.policy.Now()

	return entity.Molecule{
		GrNumber:    initial.GrNumber,
		RegNumber:   initial.RegNumber,
		ChemistName: initial.Chemist,
		Status:      m.policy.DefaultMoleculeStatus,
		Assessed:    true,
		Quantity:    m.policy.DefaultQuantity,
		CreatedBy:   orDefault(initial.CreatedBy, m.policy.SyncUser),
		CreatedAt:   &now,
	}
}

// ExtractOdorFamilyScores produces the subset of the twelve fixed family
// scores that are non-null on the characterization. This extraction is
// intentionally family-level only: the per-descriptor detail of the full
// schema is not transformed here (see DescriptorDetailNote).
func (m *Mapper) ExtractOdorFamilyScores(odorChar entity.OdorCharacterization) map[valueobject.FamilyCode]int {
	scores := make(map[valueobject.FamilyCode]int)

	put := func(code valueobject.FamilyCode, value *int) {
		if value != nil {
			scores[code] = *value
		}
	}

	put(valueobject.FamilyAmbergris, odorChar.AmbergrisFamily)
	put(valueobject.FamilyAromaticHerbal, odorChar.AromaticHerbalFamily)
	put(valueobject.FamilyCitrus, odorChar.CitrusFamily)
	put(valueobject.FamilyFloral, odorChar.FloralFamily)
	put(valueobject.FamilyFruity, odorChar.FruityFamily)
	put(valueobject.FamilyGreen, odorChar.GreenFamily)
	put(valueobject.FamilyMarine, odorChar.MarineFamily)
	put(valueobject.FamilyMuskyAnimalic, odorChar.MuskyAnimalicFamily)
	put(valueobject.FamilyOffOdors, odorChar.OffOdorsFamily)
	put(valueobject.FamilySpicy, odorChar.SpicyFamily)
	put(valueobject.FamilySweetGourmand, odorChar.SweetGourmandFamily)
	put(valueobject.FamilyWoody, odorChar.WoodyFamily)

	return scores
}

// DescriptorDetailNote documents that per-descriptor (100+ field)
// transformation is not implemented. Callers surfacing characterization
// results attach it so partial coverage is explicit rather than silent.
const DescriptorDetailNote = "family-level scores only; per-descriptor detail transformation is not implemented"

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orDefault(s *string, fallback string) *string {
	if s != nil && *s != "" {
		return s
	}
	return &fallback
}

func firstNonNil[T any](values ...*T) *T {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
