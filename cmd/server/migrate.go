package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jengzang/astro-backend-go/internal/app"
	"github.com/jengzang/astro-backend-go/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		db, err := database.Open(database.Config{
			Path:         cfg.Database.Path,
			MaxOpenConns: cfg.Database.MaxOpenConns,
		}, logger)
		if err != nil {
			return err
		}
		defer db.Close()

		n, err := app.Migrate(db, logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s) to %s\n", n, cfg.Database.Path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
