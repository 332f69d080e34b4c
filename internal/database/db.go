package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"dbexplorer/internal/config"
	"dbexplorer/internal/logger"
)

const applicationName = "dbexplorer"

// BuildDSN builds a postgres:// URL with escaped credentials and database name.
func BuildDSN(cfg *config.DatabaseConfig) string {
	userInfo := url.UserPassword(cfg.User, cfg.Password)
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf(
		"postgres://%s@%s:%d/%s?sslmode=%s",
		userInfo.String(),
		cfg.Host,
		cfg.Port,
		url.PathEscape(cfg.Database),
		url.QueryEscape(sslMode),
	)
}

// PoolConfig parses the DSN and applies pool bounds and timeouts.
func PoolConfig(cfg *config.DatabaseConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(BuildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string (check your database settings): %w", err)
	}
	applyPoolSettings(poolConfig, cfg)
	return poolConfig, nil
}

// PoolConfigFromURL is PoolConfig for a ready-made connection string, e.g.
// one handed out by a test container.
func PoolConfigFromURL(connStr string, cfg *config.DatabaseConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	applyPoolSettings(poolConfig, cfg)
	return poolConfig, nil
}

func applyPoolSettings(poolConfig *pgxpool.Config, cfg *config.DatabaseConfig) {
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = int32(cfg.MinConns)
	}
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.ConnectTimeout > 0 {
		poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}

	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = make(map[string]string)
	}
	poolConfig.ConnConfig.RuntimeParams["application_name"] = applicationName
	if cfg.QueryTimeout > 0 {
		// Server-side backstop for the per-call context deadline.
		poolConfig.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(cfg.QueryTimeout.Milliseconds(), 10)
	}
}

// Connect creates the process-wide pool and verifies it with a ping.
func Connect(ctx context.Context, cfg *config.DatabaseConfig, log *logger.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}
	return ConnectWithConfig(ctx, poolConfig, cfg, log)
}

// ConnectWithConfig opens a pool from an already prepared config.
func ConnectWithConfig(ctx context.Context, poolConfig *pgxpool.Config, cfg *config.DatabaseConfig, log *logger.Logger) (*pgxpool.Pool, error) {
	log.Infow("Connecting to database",
		"host", poolConfig.ConnConfig.Host,
		"port", poolConfig.ConnConfig.Port,
		"database", poolConfig.ConnConfig.Database,
		"max_conns", poolConfig.MaxConns,
		"max_conn_idle_time", poolConfig.MaxConnIdleTime,
	)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Database connection pool established successfully")
	return pool, nil
}

// OpenDB exposes the pool through database/sql. Closing the returned DB does
// not close the pool.
func OpenDB(pool *pgxpool.Pool) *sql.DB {
	return stdlib.OpenDBFromPool(pool)
}

// Close closes the pool and the database/sql handle on top of it.
func Close(db *sql.DB, pool *pgxpool.Pool, log *logger.Logger) {
	if db != nil {
		if err := db.Close(); err != nil {
			log.Warnw("Failed to close database handle", "error", err)
		}
	}
	if pool != nil {
		pool.Close()
		log.Info("Database connection pool closed")
	}
}
