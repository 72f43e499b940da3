package main

import (
	"context"
	"fmt"

	"github.com/phrazzld/users-api/internal/platform/database"
	"github.com/spf13/cobra"
)

// migrateCommands are the goose commands exposed by the migrate command.
var migrateCommands = []string{"up", "down", "status", "version"}

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status|version]",
		Short:     "Run database migrations for the configured SQL store",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: migrateCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) == 1 {
				command = args[0]
			}
			return runMigrate(cmd.Context(), *configPath, command)
		},
	}
}

// runMigrate opens the configured database and runs one goose command.
func runMigrate(ctx context.Context, configPath, command string) error {
	cfg, log, err := initializeApp(configPath)
	if err != nil {
		return err
	}
	if !cfg.UsesDatabase() {
		err := fmt.Errorf("store driver %q has no database to migrate", cfg.Store.Driver)
		log.Error("Migration not possible", "error", err)
		return err
	}

	db, err := database.Open(ctx, cfg.Store.Driver, cfg.Database.URL)
	if err != nil {
		log.Error("Failed to open database", "error", err)
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database connection", "error", err)
		}
	}()

	if err := database.Migrate(ctx, db, cfg.Store.Driver, command, log); err != nil {
		log.Error("Migration failed", "command", command, "error", err)
		return err
	}

	log.Info("Migration completed", "command", command)
	return nil
}
