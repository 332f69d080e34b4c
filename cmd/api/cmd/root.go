package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dbexplorer/internal/config"
	"dbexplorer/internal/logger"
	"dbexplorer/internal/server"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile   string
	logLevel  string
	logFormat string
	noColor   bool
)

var rootCmd = &cobra.Command{
	Use:   "dbexplorer",
	Short: "Generic relational schema explorer",
	Long: `Explore an arbitrary PostgreSQL schema without knowing it in advance.

Features:
  - Table and column discovery from the live catalog
  - Searchable, sortable, paginated listings over any table
  - One-hop foreign-key neighbourhood of any row, in both directions`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"Path to configuration file (defaults plus environment when empty)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored terminal output")
}

// loadConfig loads, overrides and validates configuration.
func loadConfig(port int) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyOverrides(logLevel, logFormat, port)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// withApp runs fn against a connected App and closes it afterwards.
func withApp(ctx context.Context, fn func(*server.App, *config.Config, *logger.Logger) error) error {
	cfg, err := loadConfig(0)
	if err != nil {
		return err
	}

	log := logger.New(&cfg.Logging)
	defer func() { _ = log.Sync() }()

	app, err := server.NewApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	return fn(app, cfg, log)
}
