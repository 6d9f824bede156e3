package api

import (
	"net/http"
	"time"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/config"
)

// HealthResponse reports service liveness and which of the two databases
// are wired up.
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp time.Time         `json:"timestamp"`
	Databases map[string]string `json:"databases"`
	Features  map[string]bool   `json:"features"`
}

// HealthHandler handles GET /health.
type HealthHandler struct {
	cfg     *config.Config
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(cfg *config.Config, version string) *HealthHandler {
	return &HealthHandler{cfg: cfg, version: version}
}

func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	databases := map[string]string{
		"adamo":   configuredStatus(h.cfg.Adamo.Configured()),
		"maptool": configuredStatus(h.cfg.MapTool.Configured()),
	}

	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   h.version,
		Timestamp: time.Now().UTC(),
		Databases: databases,
		Features: map[string]bool{
			"database_writes": h.cfg.Features.EnableDatabaseWrites,
			"migration":       h.cfg.Features.EnableMigration,
		},
	})
}

func configuredStatus(configured bool) string {
	if configured {
		return "configured"
	}
	return "not_configured"
}
