// Package main implements the users-api command: an HTTP server for the
// user directory and a migrate command for its SQL backends.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/users-api/internal/config"
	"github.com/phrazzld/users-api/internal/platform/logger"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the binary without a
// subcommand serves HTTP.
func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "users-api",
		Short:         "HTTP API for listing and creating users",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (default ./config.yaml if present)")

	root.AddCommand(newServeCmd(&configPath), newMigrateCmd(&configPath))
	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

// initializeApp loads configuration and sets up the default logger.
func initializeApp(configPath string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"store_driver", cfg.Store.Driver)
	if cfg.Database.URL != "" {
		log.Debug("Database configuration", "url_present", true)
	}

	return cfg, log, nil
}

// runServe builds the application and serves until ctx is cancelled.
func runServe(ctx context.Context, configPath string) error {
	cfg, log, err := initializeApp(configPath)
	if err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to initialize application", "error", err)
		return err
	}
	defer app.cleanup()

	if err := app.Run(ctx); err != nil {
		log.Error("Server stopped with error", "error", err)
		return err
	}
	return nil
}
