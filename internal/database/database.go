// Package database opens the two stores the service reads and writes:
// a pgx connection pool for PostgreSQL and a mongo client for the
// document collection.
//
// It wires query tracing into the drivers (pgx tracelog in the local env,
// New Relic when the agent runs) and pings each store on startup so a
// misconfigured deployment fails fast.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/imagestore/internal/config"
	loggerConfig "github.com/deppfellow/imagestore/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
)

// Database wraps the pgx connection pool.
type Database struct {
	Pool *pgxpool.Pool
	log  *zerolog.Logger
}

// DatabasePingTimeout bounds the startup ping of each store.
const DatabasePingTimeout = 10 * time.Second

// poolConfig parses the DSN and applies pool sizing and tracers.
func poolConfig(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*pgxpool.Config, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	if cfg.Database.MaxConns > 0 {
		pgxPoolConfig.MaxConns = cfg.Database.MaxConns
	}
	pgxPoolConfig.MinConns = cfg.Database.MinConns
	if cfg.Database.ConnMaxLifetime > 0 {
		pgxPoolConfig.MaxConnLifetime = cfg.Database.ConnMaxLifetime
	}
	if cfg.Database.ConnMaxIdleTime > 0 {
		pgxPoolConfig.MaxConnIdleTime = cfg.Database.ConnMaxIdleTime
	}

	var tracers []pgx.QueryTracer

	if loggerService != nil && loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}

	if obs := cfg.Observability; obs != nil && obs.Logging.SlowQueryThreshold > 0 {
		tracers = append(tracers, newSlowQueryTracer(obs.Logging.SlowQueryThreshold, logger))
	}

	// Query logging is noisy, so only the local env gets it.
	if cfg.Primary.Env == "local" {
		globalLevel := logger.GetLevel()
		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(loggerConfig.NewPgxLogger(globalLevel)),
			LogLevel: loggerConfig.GetPgxTraceLogLevel(globalLevel),
		})
	}

	switch len(tracers) {
	case 0:
	case 1:
		pgxPoolConfig.ConnConfig.Tracer = tracers[0]
	default:
		pgxPoolConfig.ConnConfig.Tracer = &multiTracer{tracers: tracers}
	}

	return pgxPoolConfig, nil
}

// New creates the PostgreSQL pool and pings it.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	pgxPoolConfig, err := poolConfig(cfg, logger, loggerService)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout)
	defer cancel()
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.Name).
		Msg("connected to the database")

	return &Database{Pool: pool, log: logger}, nil
}

// Ping checks the pool can still reach the server.
func (db *Database) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Close closes the database connection pool.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")
	db.Pool.Close()
	return nil
}
