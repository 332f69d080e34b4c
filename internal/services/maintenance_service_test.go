package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"dbexplorer/internal/config"
	"dbexplorer/internal/logger"
	"dbexplorer/internal/models"
)

func maintenanceCatalog() *fakeCatalog {
	return &fakeCatalog{
		columns: map[string][]models.ColumnDescriptor{
			"one_time_codes": {col("id", "integer"), col("code", "text"), col("created_at", "timestamp with time zone")},
			"users":          {col("id", "integer")},
		},
	}
}

func maintenanceConfig() config.ExplorerConfig {
	cfg := config.DefaultConfig().Explorer
	cfg.MaintenanceTable = "one_time_codes"
	return cfg
}

func newObservedLogger() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return logger.FromZap(zap.New(core)), logs
}

func TestMaintenanceService_Sweep(t *testing.T) {
	store := newFakeStore()
	store.deleted = 4
	svc := NewMaintenanceService(maintenanceCatalog(), store, maintenanceConfig(), logger.NewNop())
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	deleted := svc.Sweep(context.Background(), "one_time_codes")
	assert.Equal(t, int64(4), deleted)

	stmts := store.statements()
	require.Len(t, stmts, 1)
	assert.Equal(t, `DELETE FROM "public"."one_time_codes" WHERE "created_at" < $1`, stmts[0].SQL)
	assert.Equal(t, []any{now.Add(-72 * time.Hour)}, stmts[0].Args)
}

func TestMaintenanceService_Sweep_OtherTable(t *testing.T) {
	store := newFakeStore()
	svc := NewMaintenanceService(maintenanceCatalog(), store, maintenanceConfig(), logger.NewNop())

	assert.Zero(t, svc.Sweep(context.Background(), "users"))
	assert.Empty(t, store.statements())
}

func TestMaintenanceService_Sweep_Disabled(t *testing.T) {
	store := newFakeStore()
	svc := NewMaintenanceService(maintenanceCatalog(), store, config.DefaultConfig().Explorer, logger.NewNop())

	assert.Zero(t, svc.Sweep(context.Background(), ""))
	assert.Zero(t, svc.Sweep(context.Background(), "one_time_codes"))
	assert.Empty(t, store.statements())
}

func TestMaintenanceService_Sweep_MissingColumn(t *testing.T) {
	cfg := maintenanceConfig()
	cfg.MaintenanceColumn = "expires_at"
	store := newFakeStore()
	log, logs := newObservedLogger()
	svc := NewMaintenanceService(maintenanceCatalog(), store, cfg, log)

	assert.Zero(t, svc.Sweep(context.Background(), "one_time_codes"))
	assert.Empty(t, store.statements())
	assert.Equal(t, 1, logs.FilterMessage("Maintenance sweep skipped").Len())
}

func TestMaintenanceService_Sweep_FailureIsSwallowed(t *testing.T) {
	store := newFakeStore()
	store.execErr = errors.New("permission denied for table one_time_codes")
	log, logs := newObservedLogger()
	svc := NewMaintenanceService(maintenanceCatalog(), store, maintenanceConfig(), log)

	assert.Zero(t, svc.Sweep(context.Background(), "one_time_codes"))

	entries := logs.FilterMessage("Maintenance sweep failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
	assert.Equal(t, "one_time_codes", entries[0].ContextMap()["table"])
}

func TestTableService_ListRows_SweepsMaintenanceTableFirst(t *testing.T) {
	store := newFakeStore()
	store.execErr = errors.New("lock timeout")
	catalog := maintenanceCatalog()
	sweeper := NewMaintenanceService(catalog, store, maintenanceConfig(), logger.NewNop())
	svc := NewTableService(catalog, store, sweeper)

	page, err := svc.ListRows(context.Background(), ListRowsParams{Table: "one_time_codes", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, page)

	stmts := store.statements()
	require.Len(t, stmts, 3)
	assert.Contains(t, stmts[0].SQL, "DELETE FROM")
	assert.Contains(t, stmts[1].SQL, "SELECT COUNT(*)")
}
