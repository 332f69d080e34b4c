package services

import (
	"context"
	"time"

	"dbexplorer/internal/apperrors"
	"dbexplorer/internal/config"
	"dbexplorer/internal/logger"
	"dbexplorer/internal/querybuilder"
)

// MaintenanceService deletes expired rows from the configured maintenance
// table. Failures are logged and never returned.
type MaintenanceService struct {
	catalog SchemaCatalog
	records RecordStore
	cfg     config.ExplorerConfig
	log     *logger.Logger
	now     func() time.Time
}

func NewMaintenanceService(catalog SchemaCatalog, records RecordStore, cfg config.ExplorerConfig, log *logger.Logger) *MaintenanceService {
	return &MaintenanceService{
		catalog: catalog,
		records: records,
		cfg:     cfg,
		log:     log,
		now:     time.Now,
	}
}

// Sweep deletes rows older than the retention window when table is the
// maintenance table and returns how many were removed.
func (s *MaintenanceService) Sweep(ctx context.Context, table string) int64 {
	if !s.cfg.MaintenanceEnabled() || table != s.cfg.MaintenanceTable {
		return 0
	}

	log := s.log.WithTable(table)

	ok, err := s.catalog.ValidateIdentifier(ctx, table, s.cfg.MaintenanceColumn)
	if err != nil {
		log.Warnw("Maintenance sweep skipped", "error", apperrors.Maintenance(err, "failed to validate maintenance table"))
		return 0
	}
	if !ok {
		log.Warnw("Maintenance sweep skipped", "error",
			apperrors.InvalidIdentifier("maintenance column %q not found in %q", s.cfg.MaintenanceColumn, table))
		return 0
	}

	cutoff := s.now().Add(-s.cfg.RetentionWindow)
	st := querybuilder.DeleteOlderThan(s.catalog.Schema(), table, s.cfg.MaintenanceColumn, cutoff)

	deleted, err := s.records.Exec(ctx, st)
	if err != nil {
		log.Warnw("Maintenance sweep failed", "error", apperrors.Maintenance(err, "failed to delete expired rows"))
		return 0
	}

	if deleted > 0 {
		log.Infow("Maintenance sweep removed expired rows", "deleted", deleted, "cutoff", cutoff)
	}
	return deleted
}
