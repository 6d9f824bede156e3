package api

import "net/http"

// NewRouter registers every route on a fresh ServeMux using Go 1.22 method
// patterns.
func NewRouter(
	healthHandler *HealthHandler,
	syncHandler *SyncHandler,
	migrationHandler *MigrationHandler,
	adamoHandler *AdamoHandler,
) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.GetHealth)

	mux.HandleFunc("POST /sync/from-map", syncHandler.SyncFromMap)
	mux.HandleFunc("POST /sync/from-adamo", syncHandler.SyncFromAdamo)

	mux.HandleFunc("POST /migration/adamo-to-maptool", migrationHandler.Migrate)

	mux.HandleFunc("POST /adamo/sessions-with-results", adamoHandler.CreateSessionWithResults)

	return mux
}
