package cmd

import (
	"github.com/spf13/cobra"

	"dbexplorer/internal/config"
	"dbexplorer/internal/logger"
	"dbexplorer/internal/server"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete expired rows from the maintenance table",
	Long: `Sweep runs the retention cleanup that normally precedes reads on the
configured maintenance table. Failures are logged, never fatal.`,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(app *server.App, cfg *config.Config, log *logger.Logger) error {
		if !cfg.Explorer.MaintenanceEnabled() {
			cmd.Println("No maintenance table configured")
			return nil
		}

		deleted := app.Maintenance.Sweep(cmd.Context(), cfg.Explorer.MaintenanceTable)
		cmd.Printf("Deleted %d expired row(s) from %s\n", deleted, cfg.Explorer.MaintenanceTable)
		return nil
	})
}
