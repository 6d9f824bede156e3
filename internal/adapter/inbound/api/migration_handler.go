package api

import (
	"context"
	"net/http"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/application/dto"
)

// MigrationService is the inbound surface of the bulk migration engine.
type MigrationService interface {
	MigrateAdamoToMapTool(ctx context.Context, options dto.MigrationOptions) (*dto.MigrationResult, error)
}

// MigrationHandler handles HTTP requests for the one-shot bulk migration.
type MigrationHandler struct {
	migrationService MigrationService
	errorHandler     *ErrorHandler
}

// NewMigrationHandler creates a MigrationHandler.
func NewMigrationHandler(migrationService MigrationService, errorHandler *ErrorHandler) *MigrationHandler {
	return &MigrationHandler{migrationService: migrationService, errorHandler: errorHandler}
}

// Migrate handles POST /migration/adamo-to-maptool.
func (h *MigrationHandler) Migrate(w http.ResponseWriter, r *http.Request) {
	var options dto.MigrationOptions
	if err := decodeJSON(r, &options); err != nil {
		h.errorHandler.HandleValidationError(w, r, err)
		return
	}

	result, err := h.migrationService.MigrateAdamoToMapTool(r.Context(), options)
	if err != nil {
		h.errorHandler.HandleValidationError(w, r, err)
		return
	}

	// An aborted run never started its steps.
	if result.ErrorMessage != "" {
		WriteJSON(w, http.StatusConflict, result)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
