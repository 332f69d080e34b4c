package cmd

import (
	"fmt"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"dbexplorer/internal/config"
	"dbexplorer/internal/logger"
	"dbexplorer/internal/render"
	"dbexplorer/internal/server"
)

var nonEmptyOnly bool

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List tables of the configured schema",
	Long: `Tables prints every base table with its column count and the planner's
row estimate.

Example:
  dbexplorer tables --non-empty`,
	RunE: runTables,
}

func init() {
	tablesCmd.Flags().BoolVar(&nonEmptyOnly, "non-empty", false, "Hide tables estimated to be empty")
	rootCmd.AddCommand(tablesCmd)
}

func runTables(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(app *server.App, cfg *config.Config, log *logger.Logger) error {
		tables, err := app.Tables.ListTables(cmd.Context(), nonEmptyOnly)
		if err != nil {
			return fmt.Errorf("failed to list tables: %w", err)
		}

		if len(tables) == 0 {
			cmd.Printf("No tables in schema %s\n", cfg.Database.Schema)
			return nil
		}
		return render.Tables(cmd.OutOrStdout(), tables, useColor())
	})
}

func useColor() bool {
	return !noColor && color.SupportColor()
}
