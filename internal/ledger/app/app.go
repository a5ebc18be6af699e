package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/tabledger/internal/ledger/http"
	"github.com/aussiebroadwan/tabledger/internal/ledger/service"
	"github.com/aussiebroadwan/tabledger/internal/ledger/store"
	"github.com/aussiebroadwan/tabledger/internal/ledger/store/drivers/postgres"
	"github.com/aussiebroadwan/tabledger/internal/ledger/store/drivers/sqlite"
	"github.com/aussiebroadwan/tabledger/pkg/cryptox"
	"github.com/aussiebroadwan/tabledger/pkg/jwtx"
	"github.com/aussiebroadwan/tabledger/pkg/slogx"
	"github.com/redis/go-redis/v9"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	// adminTokenLeeway tolerates clock skew between the token minter and us.
	adminTokenLeeway = 30 * time.Second
)

// Application wires the ledger service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db        store.Store
	redis     *redis.Client // nil unless RATELIMIT_BACKEND=redis
	adminKeys *jwtx.KeySet
	sealer    *cryptox.KeySealer

	// Services
	clientService       *service.ClientService
	transferService     *service.TransferService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "ledger-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for secret hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	var err error
	if app.sealer, err = InitKeySealer(app.cfg, app.logger); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize key sealer: %w", err)
	}
	if app.adminKeys, err = LoadAdminKeys(app.cfg, app.logger); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	if err := app.initHTTP(); err != nil {
		app.closeStores()
		return nil, err
	}

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("ledger service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"database", app.cfg.DatabaseDriver,
		"ratelimit_backend", app.cfg.RateLimitBackend,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down ledger service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.closeStores(); err != nil {
		return err
	}

	app.logger.Info("ledger service stopped")
	return nil
}

func (app *Application) closeStores() error {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}

// initDatabase opens the configured store and applies migrations
func (app *Application) initDatabase() error {
	var db store.Store
	switch app.cfg.DatabaseDriver {
	case DriverSQLite:
		s, err := sqlite.NewStore(sqlite.DSNFromFile(app.cfg.DatabaseFile))
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		db = s
	case DriverPostgres:
		if app.cfg.DatabaseURL == "" {
			return fmt.Errorf("LEDGER_DATABASE_URL is required for the postgres driver")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s, err := postgres.NewStore(ctx, app.cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		db = s
	default:
		return fmt.Errorf("unknown database driver %q", app.cfg.DatabaseDriver)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.clientService = &service.ClientService{
		Store:           app.db,
		Sealer:          app.sealer,
		SignerAlgorithm: app.cfg.SignerAlgorithm,
		StoreTimeout:    app.cfg.StoreTimeout,
	}
	app.transferService = &service.TransferService{
		Store:            app.db,
		StoreTimeout:     app.cfg.StoreTimeout,
		BatchConcurrency: app.cfg.BatchConcurrency,
	}
	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP builds the limiters, router and server
func (app *Application) initHTTP() error {
	if app.cfg.RateLimitBackend == RateLimitRedis {
		app.redis = redis.NewClient(&redis.Options{
			Addr:     app.cfg.RedisAddr,
			Password: app.cfg.RedisPassword,
			DB:       app.cfg.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to reach redis at %s: %w", app.cfg.RedisAddr, err)
		}
	}

	var rdb redis.Cmdable
	if app.redis != nil {
		rdb = app.redis
	}
	limiters, err := BuildLimiters(app.cfg, app.db, rdb)
	if err != nil {
		return fmt.Errorf("failed to build rate limiters: %w", err)
	}

	router := httpapi.NewRouter(
		app.adminKeys,
		jwtx.NewKeySetVerifier(app.adminKeys, app.cfg.AdminIssuer, adminTokenLeeway),
		BuildVersion,
		app.db,
		limiters,
		app.logger,
	)

	router.ClientService = app.clientService
	router.TransferService = app.transferService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}
