package main

import (
	"context"
	"fmt"
	"os"

	"billdesk/internal/config"
	"billdesk/internal/db"
	"billdesk/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "billctl",
	Short: "billctl - maintenance CLI for the billing backend",
	Long: `billctl performs operational tasks against the billing database:
applying schema migrations, seeding demo data, and printing business reports.

It reads the same environment variables as the server (DATABASE_URL etc.),
including from a .env file in the working directory.`,
	Version: version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

// openPool loads the environment and connects to the database. The caller
// closes the pool.
func openPool(ctx context.Context) (*pgxpool.Pool, *config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := logger.Setup(cfg.LoggerConfig()); err != nil {
		return nil, nil, err
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return pool, cfg, nil
}
