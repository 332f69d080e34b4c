// Package config provides configuration structures and loading for the explorer API.
package config

import "time"

// Config represents the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	Explorer ExplorerConfig `yaml:"explorer" mapstructure:"explorer"`
	Auth     AuthConfig     `yaml:"auth" mapstructure:"auth"`
	CORS     CORSConfig     `yaml:"cors" mapstructure:"cors"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

// ServerConfig represents HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port" mapstructure:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// DatabaseConfig represents the Record Store connection and pool settings.
type DatabaseConfig struct {
	Host            string        `yaml:"host" mapstructure:"host"`
	Port            int           `yaml:"port" mapstructure:"port"`
	User            string        `yaml:"user" mapstructure:"user"`
	Password        string        `yaml:"password" mapstructure:"password"`
	Database        string        `yaml:"database" mapstructure:"database"`
	Schema          string        `yaml:"schema" mapstructure:"schema"`
	SSLMode         string        `yaml:"sslmode" mapstructure:"sslmode"`
	MaxConns        int           `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns        int           `yaml:"min_conns" mapstructure:"min_conns"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" mapstructure:"max_conn_idle_time"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" mapstructure:"max_conn_lifetime"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" mapstructure:"connect_timeout"`
	QueryTimeout    time.Duration `yaml:"query_timeout" mapstructure:"query_timeout"`
}

// ExplorerConfig holds the browsing conventions: the identifier column used
// to address a single row, page size bounds and the maintenance sweep.
type ExplorerConfig struct {
	PrimaryKey        string        `yaml:"primary_key" mapstructure:"primary_key"`
	DefaultPageSize   int           `yaml:"default_page_size" mapstructure:"default_page_size"`
	MaxPageSize       int           `yaml:"max_page_size" mapstructure:"max_page_size"`
	MaintenanceTable  string        `yaml:"maintenance_table" mapstructure:"maintenance_table"`
	MaintenanceColumn string        `yaml:"maintenance_column" mapstructure:"maintenance_column"`
	RetentionWindow   time.Duration `yaml:"retention_window" mapstructure:"retention_window"`
}

// AuthConfig represents session validation settings.
type AuthConfig struct {
	CookieName string `yaml:"cookie_name" mapstructure:"cookie_name"`
	Secret     string `yaml:"secret" mapstructure:"secret"`
}

// CORSConfig represents cross-origin settings for browser clients.
type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	AllowCredentials bool     `yaml:"allow_credentials" mapstructure:"allow_credentials"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     time.Minute,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			Schema:          "public",
			SSLMode:         "disable",
			MaxConns:        25,
			MinConns:        5,
			MaxConnIdleTime: time.Minute,
			MaxConnLifetime: 5 * time.Minute,
			ConnectTimeout:  5 * time.Second,
			QueryTimeout:    15 * time.Second,
		},
		Explorer: ExplorerConfig{
			PrimaryKey:        "id",
			DefaultPageSize:   50,
			MaxPageSize:       500,
			MaintenanceColumn: "created_at",
			RetentionWindow:   72 * time.Hour,
		},
		Auth: AuthConfig{
			CookieName: "session",
		},
		CORS: CORSConfig{
			AllowedOrigins:   []string{"http://localhost:3000"},
			AllowCredentials: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// MaintenanceEnabled reports whether a maintenance table is configured.
func (e ExplorerConfig) MaintenanceEnabled() bool {
	return e.MaintenanceTable != ""
}
