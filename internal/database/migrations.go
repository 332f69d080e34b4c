package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"dbexplorer/internal/logger"
)

// RunMigrations applies each statement in order and stops at the first
// failure. The explorer owns no schema; this prepares fixture databases.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger, migrations []string) error {
	for i, migration := range migrations {
		log.Debugw("Running migration", "step", i+1, "total", len(migrations))
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	log.Infow("All migrations completed successfully", "count", len(migrations))
	return nil
}
