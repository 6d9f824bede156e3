package cmd

import (
	"context"
	"fmt"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/adapter/outbound/messaging"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/adapter/outbound/oracle"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/adapter/outbound/postgres"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/application/common/slogger"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/application/service"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/config"
	domain "github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/service"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/taxonomy"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/port/outbound"
)

// services bundles the application services one command wires up.
type services struct {
	Sync      *service.SyncService
	Migration *service.MigrationService
	Session   *service.SessionService
}

// buildServices resolves both databases and the event publisher, then
// constructs the engines. A database that is unconfigured or unreachable
// degrades to an Unconfigured resolution; affected operations report it
// per request instead of the process refusing to start.
func buildServices(ctx context.Context, cfg *config.Config) *services {
	adamo := resolveAdamo(ctx, cfg)
	mapTool := resolveMapTool(ctx, cfg)
	events := newEventPublisher(ctx, cfg)
	mapper := domain.NewMapper(domain.DefaultPolicy())

	return &services{
		Sync: service.NewSyncService(
			mapper, adamo, mapTool, events, cfg.Features, cfg.Sync.BatchTimeout),
		Migration: service.NewMigrationService(
			mapper, adamo, mapTool, events, cfg.Features, loadTaxonomySeed(ctx, cfg), cfg.Sync.BatchTimeout),
		Session: service.NewSessionService(adamo, cfg.Features),
	}
}

func resolveAdamo(ctx context.Context, cfg *config.Config) outbound.Resolution[outbound.AdamoPorts] {
	if !cfg.Adamo.Configured() {
		return outbound.Unconfigured[outbound.AdamoPorts]("ADAMO database is not configured")
	}

	db, err := oracle.NewDB(ctx, cfg.Adamo)
	if err != nil {
		slogger.Warn(ctx, "ADAMO database unavailable", slogger.Field("error", err.Error()))
		return outbound.Unconfigured[outbound.AdamoPorts](
			fmt.Sprintf("ADAMO database connection failed: %v", err))
	}
	return outbound.Configured(oracle.Ports(db))
}

func resolveMapTool(ctx context.Context, cfg *config.Config) outbound.Resolution[outbound.MapToolPorts] {
	if !cfg.MapTool.Configured() {
		return outbound.Unconfigured[outbound.MapToolPorts]("MAP Tool database is not configured")
	}

	pool, err := postgres.NewPool(ctx, cfg.MapTool)
	if err != nil {
		slogger.Warn(ctx, "MAP Tool database unavailable", slogger.Field("error", err.Error()))
		return outbound.Unconfigured[outbound.MapToolPorts](
			fmt.Sprintf("MAP Tool database connection failed: %v", err))
	}
	return outbound.Configured(postgres.Ports(pool))
}

func newEventPublisher(ctx context.Context, cfg *config.Config) outbound.EventPublisher {
	if cfg.NATS.URL == "" {
		return messaging.NoopEventPublisher{}
	}

	publisher, err := messaging.NewNATSEventPublisher(cfg.NATS)
	if err != nil {
		slogger.Warn(ctx, "NATS unavailable, event publishing disabled",
			slogger.Field("error", err.Error()))
		return messaging.NoopEventPublisher{}
	}
	return publisher
}

func loadTaxonomySeed(ctx context.Context, cfg *config.Config) []taxonomy.Family {
	families, err := taxonomy.LoadFamilies(cfg.Sync.TaxonomyFile)
	if err != nil {
		slogger.Warn(ctx, "Taxonomy seed file unavailable, using built-in families",
			slogger.Fields2("path", cfg.Sync.TaxonomyFile, "error", err.Error()))
		return taxonomy.DefaultFamilies()
	}
	return families
}
