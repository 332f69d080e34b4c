package server

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"

	"dbexplorer/internal/config"
	"dbexplorer/internal/database"
	"dbexplorer/internal/logger"
	"dbexplorer/internal/repositories"
	"dbexplorer/internal/services"
)

// App holds the process-wide Record Store handles and the services built on
// them. It is created once at startup and closed at shutdown.
type App struct {
	Tables        *services.TableService
	Relationships *services.RelationshipService
	Maintenance   *services.MaintenanceService

	pool *pgxpool.Pool
	db   *sql.DB
	log  *logger.Logger
}

// NewApp connects to the Record Store and wires the services.
func NewApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	pool, err := database.Connect(ctx, &cfg.Database, log)
	if err != nil {
		return nil, err
	}
	return NewAppWithPool(pool, cfg, log), nil
}

// NewAppWithPool wires the services over an existing pool and takes
// ownership of it.
func NewAppWithPool(pool *pgxpool.Pool, cfg *config.Config, log *logger.Logger) *App {
	db := database.OpenDB(pool)
	app := wire(db, cfg, log)
	app.pool = pool
	app.db = db
	return app
}

func wire(db repositories.DBTX, cfg *config.Config, log *logger.Logger) *App {
	timeout := cfg.Database.QueryTimeout

	// Dependency injection
	schemaRepo := repositories.NewSchemaRepository(db, cfg.Database.Schema, timeout)
	relationshipRepo := repositories.NewRelationshipRepository(db, schemaRepo, timeout)
	recordRepo := repositories.NewRecordRepository(db, timeout)

	maintenance := services.NewMaintenanceService(schemaRepo, recordRepo, cfg.Explorer, log)

	return &App{
		Tables:        services.NewTableService(schemaRepo, recordRepo, maintenance),
		Relationships: services.NewRelationshipService(schemaRepo, relationshipRepo, recordRepo, maintenance, cfg.Explorer.PrimaryKey),
		Maintenance:   maintenance,
		log:           log,
	}
}

// Close releases the pool.
func (a *App) Close() {
	database.Close(a.db, a.pool, a.log)
}
