package api

import (
	"context"
	"net/http"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/application/dto"
)

// SessionService is the inbound surface of transactional session creation.
type SessionService interface {
	CreateSessionWithResults(ctx context.Context, request dto.CreateSessionWithResultsRequest) (*dto.CreateSessionWithResultsResponse, error)
}

// AdamoHandler handles direct ADAMO write requests.
type AdamoHandler struct {
	sessionService SessionService
	errorHandler   *ErrorHandler
}

// NewAdamoHandler creates an AdamoHandler.
func NewAdamoHandler(sessionService SessionService, errorHandler *ErrorHandler) *AdamoHandler {
	return &AdamoHandler{sessionService: sessionService, errorHandler: errorHandler}
}

// CreateSessionWithResults handles POST /adamo/sessions-with-results.
func (h *AdamoHandler) CreateSessionWithResults(w http.ResponseWriter, r *http.Request) {
	var request dto.CreateSessionWithResultsRequest
	if err := decodeJSON(r, &request); err != nil {
		h.errorHandler.HandleValidationError(w, r, err)
		return
	}

	response, err := h.sessionService.CreateSessionWithResults(r.Context(), request)
	if err != nil {
		h.errorHandler.HandleValidationError(w, r, err)
		return
	}

	switch response.Status {
	case dto.SyncStatusSuccess:
		WriteJSON(w, http.StatusCreated, response)
	case dto.SyncStatusFail:
		// The transaction rolled back; nothing was created.
		WriteJSON(w, http.StatusInternalServerError, response)
	default:
		WriteJSON(w, syncStatusCode(response.Status), response)
	}
}
