package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/config"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/port/outbound"
)

// NewPool creates a connection pool for the MAP Tool database and verifies
// it with a ping.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s search_path=%s",
		cfg.Host, cfg.Port, cfg.Name, cfg.User, cfg.Password, cfg.SSLMode, cfg.Schema,
	)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConnections)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// Ports wires every MAP Tool repository onto one pool.
func Ports(pool *pgxpool.Pool) outbound.MapToolPorts {
	return outbound.MapToolPorts{
		Molecules:   NewMoleculeRepository(pool),
		Assessments: NewAssessmentRepository(pool),
		Evaluations: NewMoleculeEvaluationRepository(pool),
		Taxonomy:    NewOdorTaxonomyRepository(pool),
	}
}
