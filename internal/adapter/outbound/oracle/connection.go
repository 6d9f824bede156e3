package oracle

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/sijms/go-ora/v2"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/config"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/port/outbound"
)

// NewDB opens a connection pool to the ADAMO database and verifies it with
// a ping. go-ora is a pure Go driver, so no Oracle client installation is
// needed on the host.
func NewDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Service)

	db, err := sql.Open("oracle", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open oracle connection: %w", err)
	}

	if cfg.MaxConnections > 0 {
		db.SetMaxOpenConns(cfg.MaxConnections)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping oracle database: %w", err)
	}

	return db, nil
}

// Ports wires every ADAMO repository onto one connection pool.
func Ports(db *sql.DB) outbound.AdamoPorts {
	return outbound.AdamoPorts{
		Initials:          NewInitialRepository(db),
		Sessions:          NewSessionRepository(db),
		Results:           NewResultRepository(db),
		Characterizations: NewCharacterizationRepository(db),
		Taxonomy:          NewOdorTaxonomyRepository(db),
		Ignored:           NewIgnoredMoleculeRepository(db),
		UnitOfWork:        NewUnitOfWork(db),
	}
}

// querier is satisfied by both *sql.DB and *sql.Tx, so the session and
// result repositories can run inside or outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
