package valueobject

import (
	"fmt"
	"strings"
)

// Stage represents an ADAMO evaluation phase.
type Stage string

// Stage constants as stored in MAP_SESSION.STAGE.
const (
	StageMAP0     Stage = "MAP 0"
	StageMAP1     Stage = "MAP 1"
	StageMAP2     Stage = "MAP 2"
	StageMAP3     Stage = "MAP 3"
	StageISC      Stage = "ISC"
	StageFIB      Stage = "FIB"
	StageFIM      Stage = "FIM"
	StageISCQuest Stage = "ISC (Quest)"
	StageCARDEX   Stage = "CARDEX"
	StageRPMC     Stage = "RPMC"
)

// AllStages lists every valid stage code.
var AllStages = []Stage{
	StageMAP0, StageMAP1, StageMAP2, StageMAP3, StageISC,
	StageFIB, StageFIM, StageISCQuest, StageCARDEX, StageRPMC,
}

// NewStage creates a Stage with validation. Matching is case-insensitive,
// the canonical casing is returned.
func NewStage(value string) (Stage, error) {
	for _, s := range AllStages {
		if strings.EqualFold(value, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid stage: %q", value)
}

// String returns the string representation of the stage.
func (s Stage) String() string {
	return string(s)
}

// IsValidStage reports whether the value is a recognized stage code.
func IsValidStage(value string) bool {
	_, err := NewStage(value)
	return err == nil
}
