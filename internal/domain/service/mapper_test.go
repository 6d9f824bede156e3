package service

import (
	"strings"
	"testing"
	"time"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/entity"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/valueobject"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedPolicy() MapperPolicy {
	policy := DefaultPolicy()
	policy.Now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return policy
}

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

func TestMoleculeToInitialPreservesGRNumber(t *testing.T) {
	mapper := NewMapper(fixedPolicy())

	molecule := entity.Molecule{
		GrNumber:    valueobject.GRNumber("GR-87-0857-0"),
		ChemistName: strptr("J. Miller"),
		RegNumber:   strptr("10087857"),
		Status:      valueobject.MoleculeStatusMap1,
	}

	initial := mapper.MoleculeToInitial(molecule, nil)

	assert.Equal(t, molecule.GrNumber, initial.GrNumber)
	assert.Equal(t, "J. Miller", *initial.Chemist)
	require.NotNil(t, initial.Dilution)
	assert.Equal(t, "10% in DPG", *initial.Dilution)
	require.NotNil(t, initial.Comments)
	assert.Contains(t, *initial.Comments, "Map1")

	// RegNumber and Batch belong to the destination database's own
	// generation and must never be set by the mapping.
	assert.Nil(t, initial.RegNumber)
	assert.Nil(t, initial.Batch)
}

func TestMoleculeToInitialEvaluationFields(t *testing.T) {
	mapper := NewMapper(fixedPolicy())

	evalCreated := time.Date(2023, 3, 15, 9, 30, 0, 0, time.UTC)
	evaluation := &entity.MoleculeEvaluation{
		Odor0H:    strptr("fresh, citrus"),
		Odor24H:   strptr("faded"),
		CreatedAt: &evalCreated,
	}

	molecule := entity.Molecule{GrNumber: valueobject.GRNumber("GR-87-0857-0")}
	initial := mapper.MoleculeToInitial(molecule, evaluation)

	assert.Equal(t, "fresh, citrus", *initial.Odor0H)
	assert.Nil(t, initial.Odor4H)
	assert.Equal(t, "faded", *initial.Odor24H)
	require.NotNil(t, initial.EvaluationDate)
	assert.Equal(t, evalCreated, *initial.EvaluationDate)
}

func TestMoleculeToInitialDefaultsEvaluationDate(t *testing.T) {
	policy := fixedPolicy()
	mapper := NewMapper(policy)

	initial := mapper.MoleculeToInitial(entity.Molecule{GrNumber: "GR-87-0857-0"}, nil)

	require.NotNil(t, initial.EvaluationDate)
	assert.Equal(t, policy.Now(), *initial.EvaluationDate)
}

func TestAssessmentSessionNameDeterministic(t *testing.T) {
	first := AssessmentSessionName(4111)
	second := AssessmentSessionName(4111)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "4111")
}

func TestSessionNameFormatsDiverge(t *testing.T) {
	// The legacy sync path wrote "ADAMO Session {id}" while migration
	// wrote "ADAMO-{id}". The canonical producer emits the latter; the
	// legacy form survives only for read-side recognition. Both call
	// sites are pinned here so neither drifts.
	assert.Equal(t, "ADAMO-4111", AssessmentSessionName(4111))
	assert.Equal(t, "ADAMO Session 4111", LegacyAssessmentSessionName(4111))
	assert.NotEqual(t, AssessmentSessionName(4111), LegacyAssessmentSessionName(4111))
}

func TestResultToAssessmentEndToEnd(t *testing.T) {
	mapper := NewMapper(fixedPolicy())

	session := entity.MapSession{
		SessionID: 4111,
		Stage:     strptr("MAP 3"),
		Region:    strptr("US"),
		Segment:   strptr("CP"),
	}
	result := entity.MapResult{
		GrNumber: valueobject.GRNumber("GR-86-6561-0"),
		Result:   intptr(1),
	}

	assessment := mapper.ResultToAssessment(result, session)

	assert.Equal(t, "MAP 3", assessment.Stage)
	assert.Equal(t, "US", assessment.Region)
	assert.Equal(t, "CP", assessment.Segment)
	assert.True(t, strings.Contains(assessment.SessionName, "4111"))
	assert.False(t, assessment.IsClosed)
	assert.Equal(t, AssessmentStatusFor("MAP 3", "CP"), assessment.Status)
}

func TestResultToAssessmentTotalOnEmptySession(t *testing.T) {
	policy := fixedPolicy()
	mapper := NewMapper(policy)

	assessment := mapper.ResultToAssessment(entity.MapResult{}, entity.MapSession{SessionID: 7})

	assert.Equal(t, "", assessment.Stage)
	assert.Equal(t, policy.Now(), assessment.DateTime)
	assert.Equal(t, AssessmentSessionName(7), assessment.SessionName)
}

func TestMoleculeEvaluationToResultFallbacks(t *testing.T) {
	mapper := NewMapper(fixedPolicy())

	molEval := entity.MoleculeEvaluation{
		Odor4H:   strptr("woody, dry"),
		ResultFF: intptr(3),
		Molecule: &entity.Molecule{
			GrNumber:  valueobject.GRNumber("GR-87-0857-0"),
			RegNumber: strptr("10087857"),
		},
	}
	evaluation := entity.Evaluation{Participants: strptr("panel A")}

	result := mapper.MoleculeEvaluationToResult(molEval, evaluation, 4111)

	assert.Equal(t, int64(4111), result.SessionID)
	// 0h is absent, so the 4h description wins.
	assert.Equal(t, "woody, dry", *result.Odor)
	// CP is absent, so the FF score wins.
	assert.Equal(t, 3, *result.Result)
	assert.Equal(t, "panel A", *result.Sponsor)
	assert.Equal(t, "GR-87-0857-0", result.GrNumber.String())
	assert.Equal(t, "10087857", *result.RegNumber)
}

func TestMoleculeEvaluationToResultCPWinsOverFF(t *testing.T) {
	mapper := NewMapper(fixedPolicy())

	molEval := entity.MoleculeEvaluation{
		ResultCP: intptr(2),
		ResultFF: intptr(5),
	}

	result := mapper.MoleculeEvaluationToResult(molEval, entity.Evaluation{}, 1)
	assert.Equal(t, 2, *result.Result)
}

func TestRoundTripPreservesIdentity(t *testing.T) {
	mapper := NewMapper(fixedPolicy())

	molecule := entity.Molecule{
		GrNumber:  valueobject.GRNumber("GR-86-6561-0"),
		RegNumber: strptr("10866561"),
	}

	initial := mapper.MoleculeToInitial(molecule, nil)
	// The mapper never emits RegNumber on the ADAMO side; round-trip on
	// that field goes through the stored row, where Oracle derives it.
	initial.RegNumber = molecule.RegNumber

	back := mapper.InitialToMolecule(initial)

	assert.Equal(t, molecule.GrNumber, back.GrNumber)
	assert.Equal(t, *molecule.RegNumber, *back.RegNumber)
	assert.Equal(t, valueobject.MoleculeStatusMap1, back.Status)
	assert.True(t, back.Assessed)
	assert.Equal(t, 0.0, back.Quantity)
}

func TestExtractOdorFamilyScoresSingleFamily(t *testing.T) {
	mapper := NewMapper(fixedPolicy())

	odorChar := entity.OdorCharacterization{
		GrNumber:     valueobject.GRNumber("GR-87-0857-0"),
		FloralFamily: intptr(7),
	}

	scores := mapper.ExtractOdorFamilyScores(odorChar)

	require.Len(t, scores, 1)
	assert.Equal(t, 7, scores[valueobject.FamilyFloral])
}

func TestExtractOdorFamilyScoresAllFamilies(t *testing.T) {
	mapper := NewMapper(fixedPolicy())

	odorChar := entity.OdorCharacterization{
		AmbergrisFamily:      intptr(1),
		AromaticHerbalFamily: intptr(2),
		CitrusFamily:         intptr(3),
		FloralFamily:         intptr(4),
		FruityFamily:         intptr(5),
		GreenFamily:          intptr(6),
		MarineFamily:         intptr(7),
		MuskyAnimalicFamily:  intptr(8),
		OffOdorsFamily:       intptr(9),
		SpicyFamily:          intptr(1),
		SweetGourmandFamily:  intptr(2),
		WoodyFamily:          intptr(3),
	}

	scores := mapper.ExtractOdorFamilyScores(odorChar)
	assert.Len(t, scores, len(valueobject.AllFamilyCodes))
}

func TestExtractOdorFamilyScoresEmpty(t *testing.T) {
	mapper := NewMapper(fixedPolicy())

	scores := mapper.ExtractOdorFamilyScores(entity.OdorCharacterization{})
	assert.Empty(t, scores)
}

func TestPolicyOverride(t *testing.T) {
	policy := fixedPolicy()
	policy.InitialDilution = "5% in EtOH"
	policy.DefaultMoleculeStatus = valueobject.MoleculeStatusNone
	mapper := NewMapper(policy)

	initial := mapper.MoleculeToInitial(entity.Molecule{GrNumber: "GR-87-0857-0"}, nil)
	assert.Equal(t, "5% in EtOH", *initial.Dilution)

	molecule := mapper.InitialToMolecule(entity.MapInitial{GrNumber: "GR-87-0857-0"})
	assert.Equal(t, valueobject.MoleculeStatusNone, molecule.Status)
}
