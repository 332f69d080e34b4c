package config

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// configIdentifier restricts configured identifiers to plain names. They are
// still checked against the live catalog before use.
var configIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		add("server.port", "must be between 1 and 65535, got %d", c.Server.Port)
	}

	db := c.Database
	if db.Host == "" {
		add("database.host", "is required")
	}
	if db.User == "" {
		add("database.user", "is required")
	}
	if db.Database == "" {
		add("database.database", "is required")
	}
	if db.Schema == "" {
		add("database.schema", "is required")
	}
	if db.MaxConns <= 0 {
		add("database.max_conns", "must be positive")
	}
	if db.MinConns < 0 || db.MinConns > db.MaxConns {
		add("database.min_conns", "must be between 0 and max_conns")
	}
	if db.ConnectTimeout <= 0 {
		add("database.connect_timeout", "must be positive")
	}
	if db.QueryTimeout < 0 {
		add("database.query_timeout", "must not be negative")
	}

	ex := c.Explorer
	if !configIdentifier.MatchString(ex.PrimaryKey) {
		add("explorer.primary_key", "invalid identifier %q", ex.PrimaryKey)
	}
	if ex.DefaultPageSize <= 0 {
		add("explorer.default_page_size", "must be positive")
	}
	if ex.MaxPageSize < ex.DefaultPageSize {
		add("explorer.max_page_size", "must be >= default_page_size (%d)", ex.DefaultPageSize)
	}
	if ex.MaintenanceEnabled() {
		if !configIdentifier.MatchString(ex.MaintenanceTable) {
			add("explorer.maintenance_table", "invalid identifier %q", ex.MaintenanceTable)
		}
		if !configIdentifier.MatchString(ex.MaintenanceColumn) {
			add("explorer.maintenance_column", "invalid identifier %q", ex.MaintenanceColumn)
		}
		if ex.RetentionWindow <= 0 {
			add("explorer.retention_window", "must be positive")
		}
	}

	if c.Auth.Secret == "" {
		add("auth.secret", "is required")
	}
	if c.Auth.CookieName == "" {
		add("auth.cookie_name", "is required")
	}

	if !validLevels[c.Logging.Level] {
		add("logging.level", "unknown level %q", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		add("logging.format", "must be json or text, got %q", c.Logging.Format)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
