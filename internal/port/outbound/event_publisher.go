package outbound

import (
	"context"
	"time"
)

// EventPublisher publishes run and step lifecycle events for sync and
// migration runs. Publishing is best-effort observability: a publish
// failure never fails the run.
type EventPublisher interface {
	PublishRunStarted(ctx context.Context, event RunEvent) error
	PublishStepStarted(ctx context.Context, event StepEvent) error
	PublishRunCompleted(ctx context.Context, event RunEvent) error
}

// RunEvent describes the start or end of a sync or migration run.
type RunEvent struct {
	RunID     string    `json:"run_id"`
	Operation string    `json:"operation"`
	DryRun    bool      `json:"dry_run"`
	Timestamp time.Time `json:"timestamp"`
	Success   *bool     `json:"success,omitempty"`
}

// StepEvent describes the start of one migration step. Step order in the
// event stream mirrors the engine's dependency order.
type StepEvent struct {
	RunID     string    `json:"run_id"`
	Step      string    `json:"step"`
	Sequence  int       `json:"sequence"`
	Timestamp time.Time `json:"timestamp"`
}
