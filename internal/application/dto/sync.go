package dto

import (
	"fmt"
	"time"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/valueobject"
)

// Batch size bounds per direction.
const (
	MapSyncBatchDefault = 100
	MapSyncBatchMax     = 1000

	AdamoSyncBatchDefault = 50
	AdamoSyncBatchMax     = 500
)

// Sync statuses.
const (
	SyncStatusSuccess       = "success"
	SyncStatusFail          = "fail"
	SyncStatusDisabled      = "disabled"
	SyncStatusNotConfigured = "not_configured"
)

// SyncFromMapRequest asks for a batch of MAP Tool molecules to be bridged
// into ADAMO.
type SyncFromMapRequest struct {
	GRNumbers          []string   `json:"grNumbers,omitempty"`
	MoleculeStatus     *int       `json:"moleculeStatus,omitempty"`
	CreatedAfter       *time.Time `json:"createdAfter,omitempty"`
	ModifiedAfter      *time.Time `json:"modifiedAfter,omitempty"`
	BatchSize          int        `json:"batchSize"`
	DryRun             bool       `json:"dryRun"`
	SkipExisting       *bool      `json:"skipExisting,omitempty"`
	IncludeEvaluations *bool      `json:"includeEvaluations,omitempty"`
}

// ApplyDefaults fills unset fields with their documented defaults.
func (r *SyncFromMapRequest) ApplyDefaults() {
	if r.BatchSize == 0 {
		r.BatchSize = MapSyncBatchDefault
	}
	if r.SkipExisting == nil {
		r.SkipExisting = boolPtr(true)
	}
	if r.IncludeEvaluations == nil {
		r.IncludeEvaluations = boolPtr(true)
	}
}

// Validate rejects requests violating field constraints before any I/O.
func (r *SyncFromMapRequest) Validate() error {
	if r.BatchSize < 1 || r.BatchSize > MapSyncBatchMax {
		return fmt.Errorf("batchSize must be between 1 and %d", MapSyncBatchMax)
	}
	if r.MoleculeStatus != nil {
		if _, err := valueobject.NewMoleculeStatus(*r.MoleculeStatus); err != nil {
			return err
		}
	}
	for _, gr := range r.GRNumbers {
		if !valueobject.IsValidGRNumber(gr) {
			return fmt.Errorf("invalid GR number in grNumbers: %q", gr)
		}
	}
	return nil
}

// SyncFromAdamoRequest asks for a batch of ADAMO sessions to be bridged
// into MAP Tool.
type SyncFromAdamoRequest struct {
	SessionIDs                  []int64    `json:"sessionIds,omitempty"`
	Stage                       string     `json:"stage,omitempty"`
	Region                      string     `json:"region,omitempty"`
	Segment                     string     `json:"segment,omitempty"`
	EvaluatedAfter              *time.Time `json:"evaluatedAfter,omitempty"`
	BatchSize                   int        `json:"batchSize"`
	DryRun                      bool       `json:"dryRun"`
	SkipExisting                *bool      `json:"skipExisting,omitempty"`
	IncludeResults              *bool      `json:"includeResults,omitempty"`
	IncludeOdorCharacterization bool       `json:"includeOdorCharacterization"`
}

// ApplyDefaults fills unset fields with their documented defaults.
func (r *SyncFromAdamoRequest) ApplyDefaults() {
	if r.BatchSize == 0 {
		r.BatchSize = AdamoSyncBatchDefault
	}
	if r.SkipExisting == nil {
		r.SkipExisting = boolPtr(true)
	}
	if r.IncludeResults == nil {
		r.IncludeResults = boolPtr(true)
	}
}

// Validate rejects requests violating field constraints before any I/O.
func (r *SyncFromAdamoRequest) Validate() error {
	if r.BatchSize < 1 || r.BatchSize > AdamoSyncBatchMax {
		return fmt.Errorf("batchSize must be between 1 and %d", AdamoSyncBatchMax)
	}
	if r.Stage != "" && !valueobject.IsValidStage(r.Stage) {
		return fmt.Errorf("invalid stage: %q", r.Stage)
	}
	if r.Segment != "" && !valueobject.IsValidSegment(r.Segment) {
		return fmt.Errorf("invalid segment: %q", r.Segment)
	}
	return nil
}

// SyncResponse is the aggregate result of one sync run. Errors is omitted
// when empty to keep payloads compact.
type SyncResponse struct {
	Status           string    `json:"status"`
	RecordsProcessed int       `json:"recordsProcessed"`
	RecordsSynced    int       `json:"recordsSynced"`
	RecordsSkipped   int       `json:"recordsSkipped"`
	RecordsFailed    int       `json:"recordsFailed"`
	Message          string    `json:"message"`
	Errors           []string  `json:"errors,omitempty"`
	WasDryRun        bool      `json:"wasDryRun"`
	CompletedAt      time.Time `json:"completedAt"`
}

func boolPtr(b bool) *bool { return &b }
