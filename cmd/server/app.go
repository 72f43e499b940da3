package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	apiMiddleware "github.com/phrazzld/users-api/internal/api/middleware"
	"github.com/phrazzld/users-api/internal/config"
	"github.com/phrazzld/users-api/internal/events"
	"github.com/phrazzld/users-api/internal/platform/database"
	"github.com/phrazzld/users-api/internal/platform/postgres"
	"github.com/phrazzld/users-api/internal/platform/sqlite"
	"github.com/phrazzld/users-api/internal/seed"
	"github.com/phrazzld/users-api/internal/service"
	"github.com/phrazzld/users-api/internal/store"
	"github.com/phrazzld/users-api/internal/store/memory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// application holds the shared dependencies of the server and releases
// them on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil for the memory store.
	db *sql.DB

	userStore   store.UserStore
	userService service.UserService

	eventEmitter events.EventEmitter

	registry *prometheus.Registry
	metrics  *apiMiddleware.Metrics
}

// newApplication wires the store selected by cfg into the service, event
// and metrics layers, then applies the seed file if one is configured.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}

	if err := app.setupStore(ctx); err != nil {
		app.cleanup()
		return nil, err
	}

	bus := events.NewBus(logger)
	bus.Subscribe(events.NewAuditLogHandler(logger))
	app.eventEmitter = bus

	userService, err := service.NewUserService(app.userStore, app.eventEmitter, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}
	app.userService = userService

	if err := app.setupMetrics(); err != nil {
		app.cleanup()
		return nil, err
	}

	if err := app.applySeed(ctx); err != nil {
		app.cleanup()
		return nil, err
	}

	logger.Info("Application initialized successfully", "store_driver", cfg.Store.Driver)
	return app, nil
}

// setupStore creates the user store for the configured driver. SQL stores
// are migrated to the latest schema first.
func (app *application) setupStore(ctx context.Context) error {
	driver := app.config.Store.Driver

	if driver == config.DriverMemory {
		app.userStore = memory.NewUserStore()
		app.logger.Info("Using in-memory user store")
		return nil
	}

	db, err := database.Open(ctx, driver, app.config.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	app.db = db
	app.logger.Info("Database connection established", "driver", driver)

	if err := database.Migrate(ctx, db, driver, "up", app.logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	switch driver {
	case config.DriverPostgres:
		app.userStore = postgres.NewPostgresUserStore(db, app.logger)
	case config.DriverSQLite:
		app.userStore = sqlite.NewSQLiteUserStore(db, app.logger)
	default:
		return fmt.Errorf("unsupported store driver %q", driver)
	}
	return nil
}

func (app *application) setupMetrics() error {
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metrics, err := apiMiddleware.NewMetrics(app.registry)
	if err != nil {
		return fmt.Errorf("failed to register HTTP metrics: %w", err)
	}
	app.metrics = metrics

	if err := apiMiddleware.RegisterUserCountGauge(app.registry, app.userService.CountUsers); err != nil {
		return fmt.Errorf("failed to register user gauge: %w", err)
	}
	return nil
}

func (app *application) applySeed(ctx context.Context) error {
	path := app.config.Store.SeedFile
	if path == "" {
		return nil
	}

	file, err := seed.Load(path)
	if err != nil {
		return err
	}
	if _, err := seed.Apply(ctx, app.userService, file, app.logger.With("component", "seed")); err != nil {
		return err
	}
	return nil
}

// Run serves HTTP until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
		app.db = nil
	}

	app.logger.Info("Application shutdown completed")
}
