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
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/valueobject"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/port/outbound"

	"github.com/google/uuid"
)

// SyncService moves bounded batches of records between the two schemas
// through the field mapper, honoring dry-run and skip-existing semantics.
// Each invocation is independent and stateless; the struct holds only
// configuration and ports.
type SyncService struct {
	mapper       *domain.Mapper
	adamo        outbound.Resolution[outbound.AdamoPorts]
	mapTool      outbound.Resolution[outbound.MapToolPorts]
	events       outbound.EventPublisher
	features     config.FeatureConfig
	batchTimeout time.Duration
}

// NewSyncService creates a SyncService. Either database may resolve to
// Unconfigured; affected operations then report not_configured instead of
// being attempted.
func NewSyncService(
	mapper *domain.Mapper,
	adamo outbound.Resolution[outbound.AdamoPorts],
	mapTool outbound.Resolution[outbound.MapToolPorts],
	events outbound.EventPublisher,
	features config.FeatureConfig,
	batchTimeout time.Duration,
) *SyncService {
	if mapper == nil {
		panic("mapper cannot be nil")
	}
	if events == nil {
		panic("events cannot be nil")
	}
	return &SyncService{
		mapper:       mapper,
		adamo:        adamo,
		mapTool:      mapTool,
		events:       events,
		features:     features,
		batchTimeout: batchTimeout,
	}
}

// SyncFromMapToAdamo bridges a filtered batch of MAP Tool molecules into
// ADAMO MapInitial records. Per-record failures are recorded and never
// abort the batch; the returned error is non-nil only for invalid
// requests, every runtime outcome is encoded in the response.
func (s *SyncService) SyncFromMapToAdamo(ctx context.Context, request dto.SyncFromMapRequest) (*dto.SyncResponse, error) {
	request.ApplyDefaults()
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if resp := s.gateCheck(request.DryRun); resp != nil {
		return resp, nil
	}

	mapTool, ok := s.mapTool.Get()
	if !ok {
		return notConfiguredResponse(s.mapTool.Reason(), request.DryRun), nil
	}
	adamo, ok := s.adamo.Get()
	if !ok {
		return notConfiguredResponse(s.adamo.Reason(), request.DryRun), nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.batchTimeout)
	defer cancel()

	runID := uuid.NewString()
	s.publishRunStarted(ctx, runID, "sync_from_map", request.DryRun)
	slogger.Info(ctx, "Starting sync from MAP Tool to ADAMO", slogger.Fields3(
		"run_id", runID, "batch_size", request.BatchSize, "dry_run", request.DryRun))

	response := &dto.SyncResponse{WasDryRun: request.DryRun}
	var errs []string

	filters := outbound.MoleculeFilters{
		GRNumbers:     request.GRNumbers,
		CreatedAfter:  request.CreatedAfter,
		ModifiedAfter: request.ModifiedAfter,
		Limit:         request.BatchSize,
	}
	if request.MoleculeStatus != nil {
		status, _ := valueobject.NewMoleculeStatus(*request.MoleculeStatus)
		filters.Status = &status
	}

	molecules, err := mapTool.Molecules.FindAll(ctx, filters)
	if err != nil {
		return s.failResponse(ctx, runID, request.DryRun,
			common.WrapServiceError(common.OpQueryMolecules, err)), nil
	}

	response.RecordsProcessed = len(molecules)

	for _, molecule := range molecules {
		if err := s.syncMolecule(ctx, adamo, mapTool, molecule, request, response); err != nil {
			slogger.ErrorWithError(ctx, err, "Failed to sync molecule",
				slogger.Field("gr_number", molecule.GrNumber.String()))
			errs = append(errs, fmt.Sprintf("Failed to sync %s: %v", molecule.GrNumber, err))
			response.RecordsFailed++
		}
	}

	s.finish(ctx, runID, response, errs,
		fmt.Sprintf("Would sync %d molecules to ADAMO", response.RecordsSynced),
		fmt.Sprintf("Successfully synced %d molecules to ADAMO", response.RecordsSynced))

	return response, nil
}

func (s *SyncService) syncMolecule(
	ctx context.Context,
	adamo outbound.AdamoPorts,
	mapTool outbound.MapToolPorts,
	molecule entity.Molecule,
	request dto.SyncFromMapRequest,
	response *dto.SyncResponse,
) error {
	if *request.SkipExisting {
		exists, err := adamo.Initials.Exists(ctx, molecule.GrNumber)
		if err != nil {
			return common.WrapServiceError(common.OpCheckInitialExists, err)
		}
		if exists {
			slogger.Debug(ctx, "Molecule already exists in ADAMO, skipping",
				slogger.Field("gr_number", molecule.GrNumber.String()))
			response.RecordsSkipped++
			return nil
		}
	}

	var evaluation *entity.MoleculeEvaluation
	if *request.IncludeEvaluations {
		found, err := mapTool.Evaluations.FindFirstByMoleculeID(ctx, molecule.ID)
		if err != nil {
			return common.WrapServiceError(common.OpFetchEvaluation, err)
		}
		evaluation = found
	}

	initial := s.mapper.MoleculeToInitial(molecule, evaluation)

	if !request.DryRun {
		if err := adamo.Initials.Insert(ctx, &initial); err != nil {
			return common.WrapServiceError(common.OpInsertInitial, err)
		}
	}

	response.RecordsSynced++
	return nil
}

// SyncFromAdamoToMap bridges a filtered batch of ADAMO sessions into MAP
// Tool assessments. A session requested with results but carrying none is
// counted as skipped, not failed.
func (s *SyncService) SyncFromAdamoToMap(ctx context.Context, request dto.SyncFromAdamoRequest) (*dto.SyncResponse, error) {
	request.ApplyDefaults()
	if err := request.Validate(); err != nil {
		return nil, err
	}

	if resp := s.gateCheck(request.DryRun); resp != nil {
		return resp, nil
	}

	adamo, ok := s.adamo.Get()
	if !ok {
		return notConfiguredResponse(s.adamo.Reason(), request.DryRun), nil
	}
	mapTool, ok := s.mapTool.Get()
	if !ok {
		return notConfiguredResponse(s.mapTool.Reason(), request.DryRun), nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.batchTimeout)
	defer cancel()

	runID := uuid.NewString()
	s.publishRunStarted(ctx, runID, "sync_from_adamo", request.DryRun)
	slogger.Info(ctx, "Starting sync from ADAMO to MAP Tool", slogger.Fields3(
		"run_id", runID, "batch_size", request.BatchSize, "dry_run", request.DryRun))

	response := &dto.SyncResponse{WasDryRun: request.DryRun}
	var errs []string

	sessions, err := adamo.Sessions.FindWithResults(ctx, outbound.SessionFilters{
		SessionIDs:     request.SessionIDs,
		Stage:          request.Stage,
		Region:         request.Region,
		Segment:        request.Segment,
		EvaluatedAfter: request.EvaluatedAfter,
		IncludeResults: *request.IncludeResults,
		Limit:          request.BatchSize,
	})
	if err != nil {
		return s.failResponse(ctx, runID, request.DryRun,
			common.WrapServiceError(common.OpQuerySessions, err)), nil
	}

	response.RecordsProcessed = len(sessions)

	for _, session := range sessions {
		if err := s.syncSession(ctx, adamo, mapTool, session, request, response); err != nil {
			slogger.ErrorWithError(ctx, err, "Failed to sync session",
				slogger.Field("session_id", session.SessionID))
			errs = append(errs, fmt.Sprintf("Failed to sync session %d: %v", session.SessionID, err))
			response.RecordsFailed++
		}
	}

	s.finish(ctx, runID, response, errs,
		fmt.Sprintf("Would sync %d sessions to MAP Tool", response.RecordsSynced),
		fmt.Sprintf("Successfully synced %d sessions to MAP Tool", response.RecordsSynced))

	return response, nil
}

func (s *SyncService) syncSession(
	ctx context.Context,
	adamo outbound.AdamoPorts,
	mapTool outbound.MapToolPorts,
	session entity.MapSession,
	request dto.SyncFromAdamoRequest,
	response *dto.SyncResponse,
) error {
	if *request.SkipExisting {
		exists, err := s.assessmentExists(ctx, mapTool, session.SessionID)
		if err != nil {
			return common.WrapServiceError(common.OpCheckAssessmentExists, err)
		}
		if exists {
			slogger.Debug(ctx, "Session already exists in MAP Tool, skipping",
				slogger.Field("session_id", session.SessionID))
			response.RecordsSkipped++
			return nil
		}
	}

	if !*request.IncludeResults || len(session.Results) == 0 {
		// Nothing to map without result data; not a failure.
		slogger.Warn(ctx, "Session has no results to map, skipping",
			slogger.Field("session_id", session.SessionID))
		response.RecordsSkipped++
		return nil
	}

	assessment := s.mapper.ResultToAssessment(session.Results[0], session)

	if request.IncludeOdorCharacterization {
		s.logOdorCharacterization(ctx, adamo, session.Results[0].GrNumber)
	}

	if !request.DryRun {
		if err := mapTool.Assessments.Insert(ctx, &assessment); err != nil {
			return common.WrapServiceError(common.OpInsertAssessment, err)
		}
	}

	response.RecordsSynced++
	return nil
}

// assessmentExists checks the canonical session-name key and the legacy
// format an earlier sync path wrote, so records bridged before the format
// was unified are still skip-detected.
func (s *SyncService) assessmentExists(ctx context.Context, mapTool outbound.MapToolPorts, sessionID int64) (bool, error) {
	exists, err := mapTool.Assessments.ExistsBySessionName(ctx, domain.AssessmentSessionName(sessionID))
	if err != nil || exists {
		return exists, err
	}
	return mapTool.Assessments.ExistsBySessionName(ctx, domain.LegacyAssessmentSessionName(sessionID))
}

func (s *SyncService) logOdorCharacterization(ctx context.Context, adamo outbound.AdamoPorts, grNumber valueobject.GRNumber) {
	odorChar, err := adamo.Characterizations.FindByGRNumber(ctx, grNumber)
	if err != nil {
		slogger.ErrorWithError(ctx, err, "Failed to fetch odor characterization",
			slogger.Field("gr_number", grNumber.String()))
		return
	}
	if odorChar == nil {
		return
	}
	scores := s.mapper.ExtractOdorFamilyScores(*odorChar)
	slogger.Info(ctx, "Extracted odor family scores", slogger.Fields3(
		"gr_number", grNumber.String(), "families", len(scores), "note", domain.DescriptorDetailNote))
}

// gateCheck fails a write-capable request fast when the write gate is off.
// Dry runs perform no writes and pass regardless.
func (s *SyncService) gateCheck(dryRun bool) *dto.SyncResponse {
	if dryRun || s.features.EnableDatabaseWrites {
		return nil
	}
	return &dto.SyncResponse{
		Status:      dto.SyncStatusDisabled,
		Message:     "Database writes are disabled. Set features.enable_database_writes to true or request a dry run.",
		WasDryRun:   false,
		CompletedAt: time.Now().UTC(),
	}
}

func (s *SyncService) finish(ctx context.Context, runID string, response *dto.SyncResponse, errs []string, dryMsg, realMsg string) {
	if response.RecordsFailed == 0 {
		response.Status = dto.SyncStatusSuccess
	} else {
		response.Status = dto.SyncStatusFail
	}
	if response.WasDryRun {
		response.Message = "[DRY RUN] " + dryMsg
	} else {
		response.Message = realMsg
	}
	if len(errs) > 0 {
		response.Errors = errs
	}
	response.CompletedAt = time.Now().UTC()

	success := response.RecordsFailed == 0
	s.publishRunCompleted(ctx, runID, response.WasDryRun, success)

	slogger.Info(ctx, "Sync completed", slogger.Fields{
		"run_id":  runID,
		"synced":  response.RecordsSynced,
		"skipped": response.RecordsSkipped,
		"failed":  response.RecordsFailed,
	})
}

func (s *SyncService) failResponse(ctx context.Context, runID string, dryRun bool, err error) *dto.SyncResponse {
	slogger.ErrorWithError(ctx, err, "Sync run aborted", slogger.Field("run_id", runID))
	s.publishRunCompleted(ctx, runID, dryRun, false)
	return &dto.SyncResponse{
		Status:      dto.SyncStatusFail,
		Message:     fmt.Sprintf("Sync failed: %v", err),
		Errors:      []string{err.Error()},
		WasDryRun:   dryRun,
		CompletedAt: time.Now().UTC(),
	}
}

func (s *SyncService) publishRunStarted(ctx context.Context, runID, operation string, dryRun bool) {
	event := outbound.RunEvent{
		RunID:     runID,
		Operation: operation,
		DryRun:    dryRun,
		Timestamp: time.Now().UTC(),
	}
	if err := s.events.PublishRunStarted(ctx, event); err != nil {
		slogger.Warn(ctx, "Failed to publish run-started event", slogger.Field("run_id", runID))
	}
}

func (s *SyncService) publishRunCompleted(ctx context.Context, runID string, dryRun, success bool) {
	event := outbound.RunEvent{
		RunID:     runID,
		Operation: "completed",
		DryRun:    dryRun,
		Timestamp: time.Now().UTC(),
		Success:   &success,
	}
	if err := s.events.PublishRunCompleted(ctx, event); err != nil {
		slogger.Warn(ctx, "Failed to publish run-completed event", slogger.Field("run_id", runID))
	}
}

func notConfiguredResponse(reason string, dryRun bool) *dto.SyncResponse {
	return &dto.SyncResponse{
		Status:      dto.SyncStatusNotConfigured,
		Message:     reason,
		WasDryRun:   dryRun,
		CompletedAt: time.Now().UTC(),
	}
}
