package dto

import (
	"fmt"
	"time"
)

// MigrationBatchDefault bounds each migration step's source query.
const MigrationBatchDefault = 1000

// MigrationOptions tunes the one-shot bulk migration pass.
type MigrationOptions struct {
	BatchSize   int        `json:"batchSize"`
	StageFilter string     `json:"stageFilter,omitempty"`
	AfterDate   *time.Time `json:"afterDate,omitempty"`

	MigrateOdorFamilies         *bool `json:"migrateOdorFamilies,omitempty"`
	MigrateOdorDescriptors      *bool `json:"migrateOdorDescriptors,omitempty"`
	MigrateInitialData          *bool `json:"migrateInitialData,omitempty"`
	MigrateSessions             *bool `json:"migrateSessions,omitempty"`
	MigrateOdorCharacterization *bool `json:"migrateOdorCharacterizations,omitempty"`
	MigrateIgnoredMolecules     *bool `json:"migrateIgnoredMolecules,omitempty"`
}

// ApplyDefaults enables every step and sets the default batch size.
func (o *MigrationOptions) ApplyDefaults() {
	if o.BatchSize == 0 {
		o.BatchSize = MigrationBatchDefault
	}
	for _, toggle := range []**bool{
		&o.MigrateOdorFamilies,
		&o.MigrateOdorDescriptors,
		&o.MigrateInitialData,
		&o.MigrateSessions,
		&o.MigrateOdorCharacterization,
		&o.MigrateIgnoredMolecules,
	} {
		if *toggle == nil {
			*toggle = boolPtr(true)
		}
	}
}

// Validate rejects option combinations violating constraints before any
// I/O.
func (o *MigrationOptions) Validate() error {
	if o.BatchSize < 1 {
		return fmt.Errorf("batchSize must be at least 1")
	}
	return nil
}

// EntityStats counts one entity type's outcome within a migration run.
type EntityStats struct {
	Found    int `json:"found"`
	Migrated int `json:"migrated"`
	Skipped  int `json:"skipped"`
}

// MigrationResult aggregates a full migration run. Success means zero
// recorded errors.
type MigrationResult struct {
	Success   bool          `json:"success"`
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
	Duration  time.Duration `json:"duration"`

	OdorFamilies         EntityStats `json:"odorFamilies"`
	OdorDescriptors      EntityStats `json:"odorDescriptors"`
	Molecules            EntityStats `json:"molecules"`
	Assessments          EntityStats `json:"assessments"`
	OdorCharacterization EntityStats `json:"odorCharacterizations"`
	IgnoredMolecules     EntityStats `json:"ignoredMolecules"`

	// Errors is keyed by record identifier ("Session 4111: ...").
	Errors []string `json:"errors,omitempty"`
	// ErrorMessage is set when the run aborted before its steps could run
	// (unconfigured database, disabled feature).
	ErrorMessage string `json:"errorMessage,omitempty"`
}
