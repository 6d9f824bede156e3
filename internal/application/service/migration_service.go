package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/application/common"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/application/common/slogger"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/application/dto"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/config"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/entity"
	domain "github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/service"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/taxonomy"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/valueobject"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/port/outbound"

	"github.com/google/uuid"
)

// Migration step names, in dependency order. Later steps assume earlier
// ones have already produced referenceable rows.
const (
	StepOdorFamilies         = "odor_families"
	StepOdorDescriptors      = "odor_descriptors"
	StepMolecules            = "molecules"
	StepSessions             = "sessions"
	StepOdorCharacterization = "odor_characterizations"
	StepIgnoredMolecules     = "ignored_molecules"
)

// MigrationService runs the one-shot bulk migration of a populated ADAMO
// database into MAP Tool. One failing record does not stop its step and
// one failing step does not stop subsequent steps; at-most-one concurrent
// run is the caller's responsibility (two runs racing on existence checks
// could double-insert).
type MigrationService struct {
	mapper       *domain.Mapper
	adamo        outbound.Resolution[outbound.AdamoPorts]
	mapTool      outbound.Resolution[outbound.MapToolPorts]
	events       outbound.EventPublisher
	features     config.FeatureConfig
	seed         []taxonomy.Family
	batchTimeout time.Duration
}

// NewMigrationService creates a MigrationService. seed carries the
// canonical odor-family taxonomy merged into the family step when the
// source table is sparse; it may be nil.
func NewMigrationService(
	mapper *domain.Mapper,
	adamo outbound.Resolution[outbound.AdamoPorts],
	mapTool outbound.Resolution[outbound.MapToolPorts],
	events outbound.EventPublisher,
	features config.FeatureConfig,
	seed []taxonomy.Family,
	batchTimeout time.Duration,
) *MigrationService {
	if mapper == nil {
		panic("mapper cannot be nil")
	}
	if events == nil {
		panic("events cannot be nil")
	}
	return &MigrationService{
		mapper:       mapper,
		adamo:        adamo,
		mapTool:      mapTool,
		events:       events,
		features:     features,
		seed:         seed,
		batchTimeout: batchTimeout,
	}
}

// migrationRun carries the state one run threads through its steps.
type migrationRun struct {
	id       string
	options  dto.MigrationOptions
	adamo    outbound.AdamoPorts
	mapTool  outbound.MapToolPorts
	result   *dto.MigrationResult
	sequence int
}

// MigrateAdamoToMapTool walks every entity type once, in the fixed order
// families, descriptors, molecules, sessions, characterizations, ignored.
// The returned error is non-nil only for invalid options.
func (s *MigrationService) MigrateAdamoToMapTool(ctx context.Context, options dto.MigrationOptions) (*dto.MigrationResult, error) {
	options.ApplyDefaults()
	if err := options.Validate(); err != nil {
		return nil, err
	}

	result := &dto.MigrationResult{StartTime: time.Now().UTC()}

	if !s.features.EnableMigration {
		return s.abort(result, common.ErrMigrationDisabled.Error()), nil
	}
	if !s.features.EnableDatabaseWrites {
		return s.abort(result, common.ErrWritesDisabled.Error()), nil
	}

	adamo, ok := s.adamo.Get()
	if !ok {
		return s.abort(result, s.adamo.Reason()), nil
	}
	mapTool, ok := s.mapTool.Get()
	if !ok {
		return s.abort(result, s.mapTool.Reason()), nil
	}

	run := &migrationRun{
		id:      uuid.NewString(),
		options: options,
		adamo:   adamo,
		mapTool: mapTool,
		result:  result,
	}

	slogger.Info(ctx, "Starting migration from ADAMO to MAP Tool", slogger.Fields2(
		"run_id", run.id, "batch_size", options.BatchSize))
	s.publishRunStarted(ctx, run.id)

	steps := []struct {
		name    string
		enabled bool
		fn      func(context.Context, *migrationRun)
	}{
		{StepOdorFamilies, *options.MigrateOdorFamilies, s.migrateOdorFamilies},
		{StepOdorDescriptors, *options.MigrateOdorDescriptors, s.migrateOdorDescriptors},
		{StepMolecules, *options.MigrateInitialData, s.migrateMolecules},
		{StepSessions, *options.MigrateSessions, s.migrateSessions},
		{StepOdorCharacterization, *options.MigrateOdorCharacterization, s.migrateOdorCharacterizations},
		{StepIgnoredMolecules, *options.MigrateIgnoredMolecules, s.migrateIgnoredMolecules},
	}

	for _, step := range steps {
		if !step.enabled {
			continue
		}
		run.sequence++
		s.publishStepStarted(ctx, run, step.name)
		slogger.Info(ctx, "Migration step started", slogger.Fields2("run_id", run.id, "step", step.name))

		stepCtx, cancel := context.WithTimeout(ctx, s.batchTimeout)
		step.fn(stepCtx, run)
		cancel()
	}

	result.Success = len(result.Errors) == 0
	result.EndTime = time.Now().UTC()
	result.Duration = result.EndTime.Sub(result.StartTime)

	s.publishRunCompleted(ctx, run.id, result.Success)
	slogger.Info(ctx, "Migration completed", slogger.Fields{
		"run_id":   run.id,
		"success":  result.Success,
		"errors":   len(result.Errors),
		"duration": result.Duration.String(),
	})

	return result, nil
}

// migrateOdorFamilies bridges the family taxonomy by code. The canonical
// seed list is merged in behind the source rows, so a sparse source table
// still yields the twelve fixed families.
func (s *MigrationService) migrateOdorFamilies(ctx context.Context, run *migrationRun) {
	families, err := run.adamo.Taxonomy.FindFamilies(ctx, run.options.BatchSize)
	if err != nil {
		run.fail("OdorFamilies", err)
		return
	}

	byCode := make(map[string]bool, len(families))
	for _, family := range families {
		byCode[family.Code] = true
	}
	for _, seeded := range s.seed {
		if !byCode[seeded.Code] {
			families = append(families, entity.AdamoOdorFamily{
				Code:  seeded.Code,
				Name:  seeded.Name,
				Color: seeded.Color,
			})
		}
	}

	run.result.OdorFamilies.Found = len(families)

	for _, family := range families {
		exists, err := run.mapTool.Taxonomy.FamilyExists(ctx, family.Code)
		if err != nil {
			run.fail(fmt.Sprintf("OdorFamily %s", family.Code), err)
			continue
		}
		if exists {
			run.result.OdorFamilies.Skipped++
			continue
		}

		target := entity.MapToolOdorFamily{
			Code:  family.Code,
			Name:  family.Name,
			Color: family.Color,
		}
		if err := run.mapTool.Taxonomy.InsertFamily(ctx, &target); err != nil {
			run.fail(fmt.Sprintf("OdorFamily %s", family.Code), err)
			continue
		}
		run.result.OdorFamilies.Migrated++
	}
}

// migrateOdorDescriptors bridges descriptors, resolving each family
// reference by the shared code. A family code missing at the destination
// is a loud per-record error, never a placeholder id.
func (s *MigrationService) migrateOdorDescriptors(ctx context.Context, run *migrationRun) {
	descriptors, err := run.adamo.Taxonomy.FindDescriptors(ctx, run.options.BatchSize)
	if err != nil {
		run.fail("OdorDescriptors", err)
		return
	}

	run.result.OdorDescriptors.Found = len(descriptors)

	for _, descriptor := range descriptors {
		exists, err := run.mapTool.Taxonomy.DescriptorExists(ctx, descriptor.Code)
		if err != nil {
			run.fail(fmt.Sprintf("OdorDescriptor %s", descriptor.Code), err)
			continue
		}
		if exists {
			run.result.OdorDescriptors.Skipped++
			continue
		}

		family, err := run.mapTool.Taxonomy.FindFamilyByCode(ctx, descriptor.FamilyCode)
		if err != nil {
			run.fail(fmt.Sprintf("OdorDescriptor %s", descriptor.Code),
				common.WrapServiceError(common.OpLookupFamily, err))
			continue
		}
		if family == nil {
			run.fail(fmt.Sprintf("OdorDescriptor %s", descriptor.Code),
				fmt.Errorf("%w: %q", common.ErrFamilyCodeNotFound, descriptor.FamilyCode))
			continue
		}

		target := entity.MapToolOdorDescriptor{
			Code:         descriptor.Code,
			Name:         descriptor.Name,
			ProfileName:  descriptor.ProfileName,
			OdorFamilyID: family.ID,
		}
		if err := run.mapTool.Taxonomy.InsertDescriptor(ctx, &target); err != nil {
			run.fail(fmt.Sprintf("OdorDescriptor %s", descriptor.Code), err)
			continue
		}
		run.result.OdorDescriptors.Migrated++
	}
}

func (s *MigrationService) migrateMolecules(ctx context.Context, run *migrationRun) {
	initials, err := run.adamo.Initials.FindAll(ctx, outbound.InitialFilters{
		EvaluatedAfter: run.options.AfterDate,
		Limit:          run.options.BatchSize,
	})
	if err != nil {
		run.fail("Molecules", err)
		return
	}

	run.result.Molecules.Found = len(initials)

	for _, initial := range initials {
		exists, err := run.mapTool.Molecules.Exists(ctx, initial.GrNumber)
		if err != nil {
			run.fail(fmt.Sprintf("Molecule %s", initial.GrNumber), err)
			continue
		}
		if exists {
			run.result.Molecules.Skipped++
			continue
		}

		molecule := s.mapper.InitialToMolecule(initial)
		if err := run.mapTool.Molecules.Insert(ctx, &molecule); err != nil {
			run.fail(fmt.Sprintf("Molecule %s", initial.GrNumber), err)
			continue
		}
		run.result.Molecules.Migrated++
	}
}

func (s *MigrationService) migrateSessions(ctx context.Context, run *migrationRun) {
	sessions, err := run.adamo.Sessions.FindWithResults(ctx, outbound.SessionFilters{
		Stage:          run.options.StageFilter,
		EvaluatedAfter: run.options.AfterDate,
		IncludeResults: true,
		Limit:          run.options.BatchSize,
	})
	if err != nil {
		run.fail("Sessions", err)
		return
	}

	run.result.Assessments.Found = len(sessions)

	for _, session := range sessions {
		exists, err := s.assessmentExists(ctx, run.mapTool, session.SessionID)
		if err != nil {
			run.fail(fmt.Sprintf("Session %d", session.SessionID), err)
			continue
		}
		if exists {
			run.result.Assessments.Skipped++
			continue
		}

		if len(session.Results) == 0 {
			run.result.Assessments.Skipped++
			continue
		}

		assessment := s.mapper.ResultToAssessment(session.Results[0], session)
		if err := run.mapTool.Assessments.Insert(ctx, &assessment); err != nil {
			run.fail(fmt.Sprintf("Session %d", session.SessionID), err)
			continue
		}
		run.result.Assessments.Migrated++
	}
}

// assessmentExists mirrors the sync engine's dual-format check so
// assessments bridged by either historical path are recognized.
func (s *MigrationService) assessmentExists(ctx context.Context, mapTool outbound.MapToolPorts, sessionID int64) (bool, error) {
	exists, err := mapTool.Assessments.ExistsBySessionName(ctx, domain.AssessmentSessionName(sessionID))
	if err != nil || exists {
		return exists, err
	}
	return mapTool.Assessments.ExistsBySessionName(ctx, domain.LegacyAssessmentSessionName(sessionID))
}

// migrateOdorCharacterizations extracts family-level scores only.
// Per-descriptor detail would require 100+ OdorDetail rows per
// characterization and is reported as unimplemented rather than silently
// dropped.
func (s *MigrationService) migrateOdorCharacterizations(ctx context.Context, run *migrationRun) {
	odorChars, err := run.adamo.Characterizations.FindAll(ctx, run.options.BatchSize)
	if err != nil {
		run.fail("OdorCharacterizations", err)
		return
	}

	run.result.OdorCharacterization.Found = len(odorChars)

	for _, odorChar := range odorChars {
		scores := s.mapper.ExtractOdorFamilyScores(odorChar)
		if len(scores) == 0 {
			run.result.OdorCharacterization.Skipped++
			continue
		}
		slogger.Info(ctx, "Extracted odor family scores", slogger.Fields3(
			"gr_number", odorChar.GrNumber.String(),
			"families", len(scores),
			"note", domain.DescriptorDetailNote))
		run.result.OdorCharacterization.Migrated++
	}
}

// migrateIgnoredMolecules maps ADAMO ignore-list entries onto the closest
// destination state, Molecule.Status = Ignore. ADAMO carries ignore
// entries for molecules never loaded into MAP Tool; those are skipped.
func (s *MigrationService) migrateIgnoredMolecules(ctx context.Context, run *migrationRun) {
	ignored, err := run.adamo.Ignored.FindAll(ctx, run.options.BatchSize)
	if err != nil {
		run.fail("IgnoredMolecules", err)
		return
	}

	run.result.IgnoredMolecules.Found = len(ignored)

	for _, entry := range ignored {
		molecule, err := run.mapTool.Molecules.FindByGRNumber(ctx, entry.GrNumber)
		if err != nil {
			run.fail(fmt.Sprintf("IgnoredMolecule %s", entry.GrNumber), err)
			continue
		}
		if molecule == nil || molecule.Status == valueobject.MoleculeStatusIgnore {
			run.result.IgnoredMolecules.Skipped++
			continue
		}

		if err := run.mapTool.Molecules.UpdateStatus(ctx, molecule.ID, valueobject.MoleculeStatusIgnore, entry.EntryPerson); err != nil {
			run.fail(fmt.Sprintf("IgnoredMolecule %s", entry.GrNumber), err)
			continue
		}
		run.result.IgnoredMolecules.Migrated++
	}
}

func (r *migrationRun) fail(recordID string, err error) {
	r.result.Errors = append(r.result.Errors, fmt.Sprintf("%s: %v", recordID, err))
}

func (s *MigrationService) abort(result *dto.MigrationResult, message string) *dto.MigrationResult {
	result.Success = false
	result.ErrorMessage = message
	result.EndTime = time.Now().UTC()
	result.Duration = result.EndTime.Sub(result.StartTime)
	return result
}

func (s *MigrationService) publishRunStarted(ctx context.Context, runID string) {
	event := outbound.RunEvent{
		RunID:     runID,
		Operation: "migration",
		Timestamp: time.Now().UTC(),
	}
	if err := s.events.PublishRunStarted(ctx, event); err != nil {
		slogger.Warn(ctx, "Failed to publish run-started event", slogger.Field("run_id", runID))
	}
}

func (s *MigrationService) publishStepStarted(ctx context.Context, run *migrationRun, step string) {
	event := outbound.StepEvent{
		RunID:     run.id,
		Step:      step,
		Sequence:  run.sequence,
		Timestamp: time.Now().UTC(),
	}
	if err := s.events.PublishStepStarted(ctx, event); err != nil {
		slogger.Warn(ctx, "Failed to publish step-started event",
			slogger.Fields2("run_id", run.id, "step", step))
	}
}

func (s *MigrationService) publishRunCompleted(ctx context.Context, runID string, success bool) {
	event := outbound.RunEvent{
		RunID:     runID,
		Operation: "migration",
		Timestamp: time.Now().UTC(),
		Success:   &success,
	}
	if err := s.events.PublishRunCompleted(ctx, event); err != nil {
		slogger.Warn(ctx, "Failed to publish run-completed event", slogger.Field("run_id", runID))
	}
}
