package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/application/dto"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/config"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/entity"
	domain "github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/service"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/port/outbound"
)

func newSyncService(ports *testPorts, features config.FeatureConfig) *SyncService {
	return NewSyncService(
		domain.NewMapper(domain.DefaultPolicy()),
		ports.adamoPorts(),
		ports.mapToolPorts(),
		ports.publisher,
		features,
		time.Minute,
	)
}

func writesEnabled() config.FeatureConfig {
	return config.FeatureConfig{EnableDatabaseWrites: true}
}

func testMolecule(id int64, gr string) entity.Molecule {
	return entity.Molecule{ID: id, GrNumber: mustGR(gr)}
}

func TestSyncFromMapToAdamo_DryRunHonorsBatchSize(t *testing.T) {
	ports := newTestPorts()
	for i, gr := range []string{"GR-84-11203-8", "GR-85-12000-1", "GR-86-13000-2", "GR-87-14000-3", "GR-88-15000-4"} {
		ports.molecules.molecules = append(ports.molecules.molecules, testMolecule(int64(i+1), gr))
	}

	svc := newSyncService(ports, config.FeatureConfig{})

	resp, err := svc.SyncFromMapToAdamo(context.Background(), dto.SyncFromMapRequest{
		BatchSize: 2,
		DryRun:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, dto.SyncStatusSuccess, resp.Status)
	assert.Equal(t, 2, resp.RecordsProcessed)
	assert.Equal(t, 2, resp.RecordsSynced)
	assert.Equal(t, 0, resp.RecordsFailed)
	assert.True(t, resp.WasDryRun)
	assert.Contains(t, resp.Message, "[DRY RUN]")

	// A dry run never reaches the destination.
	assert.Empty(t, ports.initials.inserted)
}

func TestSyncFromMapToAdamo_SkipExistingIsNotAFailure(t *testing.T) {
	ports := newTestPorts()
	ports.molecules.molecules = []entity.Molecule{
		testMolecule(1, "GR-84-11203-8"),
		testMolecule(2, "GR-85-12000-1"),
	}
	ports.initials.existing[mustGR("GR-84-11203-8")] = true

	svc := newSyncService(ports, writesEnabled())

	resp, err := svc.SyncFromMapToAdamo(context.Background(), dto.SyncFromMapRequest{})
	require.NoError(t, err)

	assert.Equal(t, dto.SyncStatusSuccess, resp.Status)
	assert.Equal(t, 2, resp.RecordsProcessed)
	assert.Equal(t, 1, resp.RecordsSynced)
	assert.Equal(t, 1, resp.RecordsSkipped)
	assert.Equal(t, 0, resp.RecordsFailed)
	assert.Empty(t, resp.Errors)
	require.Len(t, ports.initials.inserted, 1)
	assert.Equal(t, mustGR("GR-85-12000-1"), ports.initials.inserted[0].GrNumber)
}

func TestSyncFromMapToAdamo_FailedRecordDoesNotStopBatch(t *testing.T) {
	ports := newTestPorts()
	ports.molecules.molecules = []entity.Molecule{
		testMolecule(1, "GR-84-11203-8"),
		testMolecule(2, "GR-85-12000-1"),
		testMolecule(3, "GR-86-13000-2"),
	}
	ports.initials.insertErr[mustGR("GR-85-12000-1")] = errors.New("ORA-00001: unique constraint violated")

	svc := newSyncService(ports, writesEnabled())

	resp, err := svc.SyncFromMapToAdamo(context.Background(), dto.SyncFromMapRequest{})
	require.NoError(t, err)

	assert.Equal(t, dto.SyncStatusFail, resp.Status)
	assert.Equal(t, 3, resp.RecordsProcessed)
	assert.Equal(t, 2, resp.RecordsSynced)
	assert.Equal(t, 1, resp.RecordsFailed)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "GR-85-12000-1")

	// The record after the failing one still landed.
	require.Len(t, ports.initials.inserted, 2)
	assert.Equal(t, mustGR("GR-86-13000-2"), ports.initials.inserted[1].GrNumber)
}

func TestSyncFromMapToAdamo_WritesDisabledFailsFast(t *testing.T) {
	ports := newTestPorts()
	ports.molecules.molecules = []entity.Molecule{testMolecule(1, "GR-84-11203-8")}

	svc := newSyncService(ports, config.FeatureConfig{})

	resp, err := svc.SyncFromMapToAdamo(context.Background(), dto.SyncFromMapRequest{})
	require.NoError(t, err)

	assert.Equal(t, dto.SyncStatusDisabled, resp.Status)
	assert.Equal(t, 0, resp.RecordsProcessed)
	assert.Empty(t, ports.initials.inserted)
}

func TestSyncFromMapToAdamo_UnconfiguredAdamo(t *testing.T) {
	ports := newTestPorts()
	svc := NewSyncService(
		domain.NewMapper(domain.DefaultPolicy()),
		outbound.Unconfigured[outbound.AdamoPorts]("ADAMO database is not configured"),
		ports.mapToolPorts(),
		ports.publisher,
		writesEnabled(),
		time.Minute,
	)

	resp, err := svc.SyncFromMapToAdamo(context.Background(), dto.SyncFromMapRequest{})
	require.NoError(t, err)

	assert.Equal(t, dto.SyncStatusNotConfigured, resp.Status)
	assert.Equal(t, "ADAMO database is not configured", resp.Message)
}

func TestSyncFromMapToAdamo_InvalidBatchSize(t *testing.T) {
	svc := newSyncService(newTestPorts(), writesEnabled())

	_, err := svc.SyncFromMapToAdamo(context.Background(), dto.SyncFromMapRequest{
		BatchSize: dto.MapSyncBatchMax + 1,
	})
	assert.Error(t, err)
}

func TestSyncFromMapToAdamo_EvaluationOdorCarriedOver(t *testing.T) {
	ports := newTestPorts()
	ports.molecules.molecules = []entity.Molecule{testMolecule(7, "GR-84-11203-8")}
	odor := "floral, rosy"
	ports.evaluations.byMolecule[7] = &entity.MoleculeEvaluation{MoleculeID: 7, Odor4H: &odor}

	svc := newSyncService(ports, writesEnabled())

	resp, err := svc.SyncFromMapToAdamo(context.Background(), dto.SyncFromMapRequest{})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.RecordsSynced)
	require.Len(t, ports.initials.inserted, 1)
	require.NotNil(t, ports.initials.inserted[0].Odor4H)
	assert.Equal(t, odor, *ports.initials.inserted[0].Odor4H)
}

func sessionWithResult(id int64, stage, gr string) entity.MapSession {
	score := 4
	return entity.MapSession{
		SessionID: id,
		Stage:     &stage,
		Results: []entity.MapResult{
			{ResultID: id * 10, SessionID: id, GrNumber: mustGR(gr), Result: &score},
		},
	}
}

func TestSyncFromAdamoToMap_MapsSessionToAssessment(t *testing.T) {
	ports := newTestPorts()
	ports.sessions.sessions = []entity.MapSession{sessionWithResult(4111, "MAP 3", "GR-84-11203-8")}

	svc := newSyncService(ports, writesEnabled())

	resp, err := svc.SyncFromAdamoToMap(context.Background(), dto.SyncFromAdamoRequest{})
	require.NoError(t, err)

	assert.Equal(t, dto.SyncStatusSuccess, resp.Status)
	assert.Equal(t, 1, resp.RecordsSynced)
	require.Len(t, ports.assessments.inserted, 1)
	assert.Equal(t, "ADAMO-4111", ports.assessments.inserted[0].SessionName)
	assert.Equal(t, "MAP 3", ports.assessments.inserted[0].Stage)
}

func TestSyncFromAdamoToMap_SkipsBothSessionNameFormats(t *testing.T) {
	ports := newTestPorts()
	ports.sessions.sessions = []entity.MapSession{
		sessionWithResult(100, "MAP 3", "GR-84-11203-8"),
		sessionWithResult(200, "MAP 3", "GR-85-12000-1"),
	}
	ports.assessments.existingNames["ADAMO-100"] = true
	ports.assessments.existingNames["ADAMO Session 200"] = true

	svc := newSyncService(ports, writesEnabled())

	resp, err := svc.SyncFromAdamoToMap(context.Background(), dto.SyncFromAdamoRequest{})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.RecordsSkipped)
	assert.Equal(t, 0, resp.RecordsSynced)
	assert.Empty(t, ports.assessments.inserted)
}

func TestSyncFromAdamoToMap_SessionWithoutResultsIsSkipped(t *testing.T) {
	ports := newTestPorts()
	stage := "MAP 2"
	ports.sessions.sessions = []entity.MapSession{{SessionID: 300, Stage: &stage}}

	svc := newSyncService(ports, writesEnabled())

	resp, err := svc.SyncFromAdamoToMap(context.Background(), dto.SyncFromAdamoRequest{})
	require.NoError(t, err)

	assert.Equal(t, dto.SyncStatusSuccess, resp.Status)
	assert.Equal(t, 1, resp.RecordsSkipped)
	assert.Equal(t, 0, resp.RecordsFailed)
}

func TestSyncFromAdamoToMap_InvalidStageRejected(t *testing.T) {
	svc := newSyncService(newTestPorts(), writesEnabled())

	_, err := svc.SyncFromAdamoToMap(context.Background(), dto.SyncFromAdamoRequest{Stage: "MAP 9"})
	assert.Error(t, err)
}

func TestSyncPublishesRunLifecycleEvents(t *testing.T) {
	ports := newTestPorts()
	ports.molecules.molecules = []entity.Molecule{testMolecule(1, "GR-84-11203-8")}

	svc := newSyncService(ports, writesEnabled())

	_, err := svc.SyncFromMapToAdamo(context.Background(), dto.SyncFromMapRequest{})
	require.NoError(t, err)

	require.Len(t, ports.publisher.runs, 2)
	assert.Equal(t, "sync_from_map", ports.publisher.runs[0].Operation)
	require.NotNil(t, ports.publisher.runs[1].Success)
	assert.True(t, *ports.publisher.runs[1].Success)
	assert.Equal(t, ports.publisher.runs[0].RunID, ports.publisher.runs[1].RunID)
}
