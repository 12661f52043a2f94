package commands

import (
	"github.com/spf13/cobra"

	"taskflow-app/taskflow/config"
	"taskflow-app/taskflow/database"
)

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Create or upgrade the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		cfg.ConfigureLogging()

		db, err := database.Setup(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		cmd.Println("Initialized the database.")
		return nil
	},
}
