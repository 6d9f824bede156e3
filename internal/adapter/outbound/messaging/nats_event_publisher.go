package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/config"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/port/outbound"
)

// Event subjects, appended to the configured subject prefix.
const (
	subjectRunStarted   = "run.started"
	subjectStepStarted  = "step.started"
	subjectRunCompleted = "run.completed"
)

// NATSEventPublisher publishes run and step lifecycle events as JSON
// messages. Publishing is fire-and-forget: a delivery failure is returned
// to the caller, who logs and moves on, it never affects the run's
// outcome.
type NATSEventPublisher struct {
	conn   *nats.Conn
	prefix string
}

// NewNATSEventPublisher connects to NATS and returns a publisher.
func NewNATSEventPublisher(cfg config.NATSConfig) (*NATSEventPublisher, error) {
	if cfg.URL == "" {
		return nil, errors.New("NATS URL cannot be empty")
	}
	if !strings.HasPrefix(cfg.URL, "nats://") {
		return nil, errors.New("invalid NATS URL scheme")
	}

	conn, err := nats.Connect(cfg.URL,
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	prefix := cfg.SubjectPrefix
	if prefix == "" {
		prefix = "mapbridge"
	}

	return &NATSEventPublisher{conn: conn, prefix: prefix}, nil
}

func (p *NATSEventPublisher) PublishRunStarted(ctx context.Context, event outbound.RunEvent) error {
	return p.publish(ctx, subjectRunStarted, event)
}

func (p *NATSEventPublisher) PublishStepStarted(ctx context.Context, event outbound.StepEvent) error {
	return p.publish(ctx, subjectStepStarted, event)
}

func (p *NATSEventPublisher) PublishRunCompleted(ctx context.Context, event outbound.RunEvent) error {
	return p.publish(ctx, subjectRunCompleted, event)
}

func (p *NATSEventPublisher) publish(ctx context.Context, subject string, event any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.conn.Publish(p.prefix+"."+subject, payload); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Close drains the connection, flushing buffered messages first.
func (p *NATSEventPublisher) Close() error {
	return p.conn.Drain()
}

// NoopEventPublisher is used when no NATS URL is configured. Every publish
// succeeds and goes nowhere.
type NoopEventPublisher struct{}

func (NoopEventPublisher) PublishRunStarted(context.Context, outbound.RunEvent) error   { return nil }
func (NoopEventPublisher) PublishStepStarted(context.Context, outbound.StepEvent) error { return nil }
func (NoopEventPublisher) PublishRunCompleted(context.Context, outbound.RunEvent) error { return nil }
