package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "explorer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
database:
  host: db.internal
  user: explorer
  password: secret
  database: app
  max_conns: 8
  query_timeout: 3s
explorer:
  primary_key: uid
  maintenance_table: one_time_codes
  retention_window: 24h
auth:
  secret: hmac-key
logging:
  level: debug
  format: text
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 8, cfg.Database.MaxConns)
	assert.Equal(t, 3*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, "uid", cfg.Explorer.PrimaryKey)
	assert.Equal(t, "one_time_codes", cfg.Explorer.MaintenanceTable)
	assert.Equal(t, 24*time.Hour, cfg.Explorer.RetentionWindow)
	assert.True(t, cfg.Explorer.MaintenanceEnabled())
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Untouched keys keep their defaults.
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "public", cfg.Database.Schema)
	assert.Equal(t, "created_at", cfg.Explorer.MaintenanceColumn)
	assert.Equal(t, 50, cfg.Explorer.DefaultPageSize)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("EXPLORER_DATABASE_HOST", "env-host")
	t.Setenv("EXPLORER_EXPLORER_MAX_PAGE_SIZE", "200")
	t.Setenv("DB_USERNAME", "legacy-user")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 200, cfg.Explorer.MaxPageSize)
	assert.Equal(t, "legacy-user", cfg.Database.User)
}

func TestLoad_ExpandsVariables(t *testing.T) {
	t.Setenv("APP_DB_PASSWORD", "from-env")
	path := writeConfig(t, `
database:
  password: ${APP_DB_PASSWORD}
  database: $UNSET_VARIABLE_FOR_TEST
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "$UNSET_VARIABLE_FOR_TEST", cfg.Database.Database)
}

func TestApplyOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyOverrides("warn", "", 0)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
}
