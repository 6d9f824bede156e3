package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/application/dto"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/config"
)

type stubSyncService struct {
	fromMapResponse   *dto.SyncResponse
	fromAdamoResponse *dto.SyncResponse
	err               error
	lastMapRequest    *dto.SyncFromMapRequest
}

func (s *stubSyncService) SyncFromMapToAdamo(_ context.Context, request dto.SyncFromMapRequest) (*dto.SyncResponse, error) {
	s.lastMapRequest = &request
	return s.fromMapResponse, s.err
}

func (s *stubSyncService) SyncFromAdamoToMap(_ context.Context, _ dto.SyncFromAdamoRequest) (*dto.SyncResponse, error) {
	return s.fromAdamoResponse, s.err
}

type stubMigrationService struct {
	result *dto.MigrationResult
	err    error
}

func (s *stubMigrationService) MigrateAdamoToMapTool(_ context.Context, _ dto.MigrationOptions) (*dto.MigrationResult, error) {
	return s.result, s.err
}

type stubSessionService struct {
	response *dto.CreateSessionWithResultsResponse
	err      error
}

func (s *stubSessionService) CreateSessionWithResults(_ context.Context, _ dto.CreateSessionWithResultsRequest) (*dto.CreateSessionWithResultsResponse, error) {
	return s.response, s.err
}

func newTestRouter(sync SyncService, migration MigrationService, session SessionService) http.Handler {
	errorHandler := NewErrorHandler()
	cfg := &config.Config{}
	return NewRouter(
		NewHealthHandler(cfg, "test"),
		NewSyncHandler(sync, errorHandler),
		NewMigrationHandler(migration, errorHandler),
		NewAdamoHandler(session, errorHandler),
	)
}

func TestSyncFromMap_ReturnsEngineResponse(t *testing.T) {
	stub := &stubSyncService{
		fromMapResponse: &dto.SyncResponse{
			Status:           dto.SyncStatusSuccess,
			RecordsProcessed: 3,
			RecordsSynced:    3,
			CompletedAt:      time.Now().UTC(),
		},
	}
	router := newTestRouter(stub, &stubMigrationService{}, &stubSessionService{})

	req := httptest.NewRequest(http.MethodPost, "/sync/from-map",
		strings.NewReader(`{"batchSize": 10, "dryRun": true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.SyncResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, dto.SyncStatusSuccess, response.Status)
	assert.Equal(t, 3, response.RecordsSynced)

	require.NotNil(t, stub.lastMapRequest)
	assert.Equal(t, 10, stub.lastMapRequest.BatchSize)
	assert.True(t, stub.lastMapRequest.DryRun)
}

func TestSyncFromMap_EmptyBodyIsAccepted(t *testing.T) {
	stub := &stubSyncService{fromMapResponse: &dto.SyncResponse{Status: dto.SyncStatusSuccess}}
	router := newTestRouter(stub, &stubMigrationService{}, &stubSessionService{})

	req := httptest.NewRequest(http.MethodPost, "/sync/from-map", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSyncFromMap_MalformedBodyIsRejected(t *testing.T) {
	router := newTestRouter(&stubSyncService{}, &stubMigrationService{}, &stubSessionService{})

	req := httptest.NewRequest(http.MethodPost, "/sync/from-map", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "validation_failed", response.Error)
}

func TestSyncFromAdamo_DisabledMapsToForbidden(t *testing.T) {
	stub := &stubSyncService{fromAdamoResponse: &dto.SyncResponse{Status: dto.SyncStatusDisabled}}
	router := newTestRouter(stub, &stubMigrationService{}, &stubSessionService{})

	req := httptest.NewRequest(http.MethodPost, "/sync/from-adamo", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSyncFromAdamo_NotConfiguredMapsToServiceUnavailable(t *testing.T) {
	stub := &stubSyncService{fromAdamoResponse: &dto.SyncResponse{Status: dto.SyncStatusNotConfigured}}
	router := newTestRouter(stub, &stubMigrationService{}, &stubSessionService{})

	req := httptest.NewRequest(http.MethodPost, "/sync/from-adamo", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMigrate_AbortedRunMapsToConflict(t *testing.T) {
	stub := &stubMigrationService{result: &dto.MigrationResult{
		Success:      false,
		ErrorMessage: "migration is disabled by configuration",
	}}
	router := newTestRouter(&stubSyncService{}, stub, &stubSessionService{})

	req := httptest.NewRequest(http.MethodPost, "/migration/adamo-to-maptool", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestMigrate_CompletedRunWithRecordErrorsIsStillOK(t *testing.T) {
	stub := &stubMigrationService{result: &dto.MigrationResult{
		Success: false,
		Errors:  []string{"Molecule GR-84-11203-8: insert failed"},
	}}
	router := newTestRouter(&stubSyncService{}, stub, &stubSessionService{})

	req := httptest.NewRequest(http.MethodPost, "/migration/adamo-to-maptool", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateSessionWithResults_SuccessMapsToCreated(t *testing.T) {
	stub := &stubSessionService{response: &dto.CreateSessionWithResultsResponse{
		Status:         dto.SyncStatusSuccess,
		SessionID:      4111,
		ResultsCreated: 2,
	}}
	router := newTestRouter(&stubSyncService{}, &stubMigrationService{}, stub)

	req := httptest.NewRequest(http.MethodPost, "/adamo/sessions-with-results",
		strings.NewReader(`{"session": {"stage": "MAP 1"}, "results": [{"grNumber": "GR-84-11203-8"}]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateSessionWithResults_RollbackMapsToInternalError(t *testing.T) {
	stub := &stubSessionService{response: &dto.CreateSessionWithResultsResponse{
		Status:  dto.SyncStatusFail,
		Message: "Transaction rolled back",
	}}
	router := newTestRouter(&stubSyncService{}, &stubMigrationService{}, stub)

	req := httptest.NewRequest(http.MethodPost, "/adamo/sessions-with-results", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(&stubSyncService{}, &stubMigrationService{}, &stubSessionService{})

	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "ok", response.Status)
	assert.Equal(t, "not_configured", response.Databases["adamo"])
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(&stubSyncService{}, &stubMigrationService{}, &stubSessionService{})

	req := httptest.NewRequest(http.MethodGet, "/sync/from-map", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
