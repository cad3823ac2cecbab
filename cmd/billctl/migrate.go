package main

import (
	"billdesk/internal/logger"
	"billdesk/migrations"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Long: `Apply every schema migration that has not yet been recorded in the
schema_migrations table. Safe to run repeatedly.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logger.WithComponent("migrate")

	pool, _, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := migrations.Apply(ctx, pool); err != nil {
		return err
	}
	log.Info().Msg("migrations applied")
	return nil
}
