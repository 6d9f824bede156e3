package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/application/dto"
)

// maxRequestBodyBytes bounds every request body this API accepts.
const maxRequestBodyBytes = 1 << 20

// SyncService is the inbound surface of the sync engine.
type SyncService interface {
	SyncFromMapToAdamo(ctx context.Context, request dto.SyncFromMapRequest) (*dto.SyncResponse, error)
	SyncFromAdamoToMap(ctx context.Context, request dto.SyncFromAdamoRequest) (*dto.SyncResponse, error)
}

// SyncHandler handles HTTP requests for the two sync directions.
type SyncHandler struct {
	syncService  SyncService
	errorHandler *ErrorHandler
}

// NewSyncHandler creates a SyncHandler.
func NewSyncHandler(syncService SyncService, errorHandler *ErrorHandler) *SyncHandler {
	return &SyncHandler{syncService: syncService, errorHandler: errorHandler}
}

// SyncFromMap handles POST /sync/from-map.
func (h *SyncHandler) SyncFromMap(w http.ResponseWriter, r *http.Request) {
	var request dto.SyncFromMapRequest
	if err := decodeJSON(r, &request); err != nil {
		h.errorHandler.HandleValidationError(w, r, err)
		return
	}

	response, err := h.syncService.SyncFromMapToAdamo(r.Context(), request)
	if err != nil {
		h.errorHandler.HandleValidationError(w, r, err)
		return
	}

	WriteJSON(w, syncStatusCode(response.Status), response)
}

// SyncFromAdamo handles POST /sync/from-adamo.
func (h *SyncHandler) SyncFromAdamo(w http.ResponseWriter, r *http.Request) {
	var request dto.SyncFromAdamoRequest
	if err := decodeJSON(r, &request); err != nil {
		h.errorHandler.HandleValidationError(w, r, err)
		return
	}

	response, err := h.syncService.SyncFromAdamoToMap(r.Context(), request)
	if err != nil {
		h.errorHandler.HandleValidationError(w, r, err)
		return
	}

	WriteJSON(w, syncStatusCode(response.Status), response)
}

// syncStatusCode maps an engine status onto an HTTP status. Per-record
// failures still complete the run, so "fail" is a 200 with detail in the
// body.
func syncStatusCode(status string) int {
	switch status {
	case dto.SyncStatusDisabled:
		return http.StatusForbidden
	case dto.SyncStatusNotConfigured:
		return http.StatusServiceUnavailable
	default:
		return http.StatusOK
	}
}

// decodeJSON decodes a bounded request body, tolerating an empty body so
// every field can default.
func decodeJSON(r *http.Request, target any) error {
	body := http.MaxBytesReader(nil, r.Body, maxRequestBodyBytes)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
