// Package commands implements storectl, the storefront operations CLI.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"storefront/config"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/persistence/postgres"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// NewRootCommand builds the storectl command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "storectl",
		Short: "Storefront operations: schema migration, catalog seeding, admin keys",
		Long: `storectl runs one-off operations against the storefront database.

Configuration is read from config.yaml and environment variables, the same
way the storefront server reads it.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newMigrateCommand(),
		newSeedCommand(),
		newHashKeyCommand(),
	)

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDatabase loads configuration and connects to PostgreSQL.
func openDatabase() (*gorm.DB, *slog.Logger, func(), error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, nil, err
	}

	logger, err := logs.NewWithWriter(cfg, os.Stderr)
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := postgres.Open(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	return db, logger, closeDB, nil
}
