package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"dbexplorer/internal/config"
	"dbexplorer/internal/logger"
	"dbexplorer/internal/render"
	"dbexplorer/internal/server"
)

var relationshipsCmd = &cobra.Command{
	Use:   "relationships",
	Short: "List foreign-key relationships of the configured schema",
	Long: `Relationships prints every foreign-key edge, one line per referencing
column. Composite keys appear as several lines sharing a constraint name.`,
	RunE: runRelationships,
}

func init() {
	rootCmd.AddCommand(relationshipsCmd)
}

func runRelationships(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(app *server.App, cfg *config.Config, log *logger.Logger) error {
		edges, err := app.Relationships.ListForeignKeys(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list relationships: %w", err)
		}

		if len(edges) == 0 {
			cmd.Printf("No foreign keys in schema %s\n", cfg.Database.Schema)
			return nil
		}
		return render.Relationships(cmd.OutOrStdout(), edges, useColor())
	})
}
