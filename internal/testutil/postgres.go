// Package testutil starts throwaway PostgreSQL instances for integration tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"dbexplorer/internal/config"
	"dbexplorer/internal/database"
	"dbexplorer/internal/logger"
)

const postgresImage = "postgres:16-alpine"

// StartPostgres runs a PostgreSQL container, applies migrations and returns a
// pool plus a config pointing at it. The test is skipped under -short or when
// no container runtime is available.
func StartPostgres(t *testing.T, migrations ...string) (*pgxpool.Pool, *config.Config) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := postgres.Run(ctx, postgresImage,
		postgres.WithDatabase("explorer"),
		postgres.WithUsername("explorer"),
		postgres.WithPassword("explorer"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := ctr.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.Database.User = "explorer"
	cfg.Database.Database = "explorer"
	cfg.Database.MaxConns = 4
	cfg.Database.MinConns = 0
	cfg.Auth.Secret = "integration-secret"

	poolConfig, err := database.PoolConfigFromURL(connStr, &cfg.Database)
	require.NoError(t, err)

	log := logger.NewNop()
	pool, err := database.ConnectWithConfig(ctx, poolConfig, &cfg.Database, log)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.RunMigrations(ctx, pool, log, migrations))
	return pool, cfg
}
