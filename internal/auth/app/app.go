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

	httpapi "github.com/gatekit/gatekit/internal/auth/http"
	"github.com/gatekit/gatekit/internal/auth/notify"
	"github.com/gatekit/gatekit/internal/auth/service"
	"github.com/gatekit/gatekit/internal/auth/store"
	"github.com/gatekit/gatekit/internal/auth/store/drivers/memory"
	"github.com/gatekit/gatekit/internal/auth/store/drivers/sqlite"
	"github.com/gatekit/gatekit/pkg/clockx"
	"github.com/gatekit/gatekit/pkg/cryptox"
	"github.com/gatekit/gatekit/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	authService         *service.Service
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "gatekit",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initStore(); err != nil {
		return nil, err
	}
	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("gatekit starting", "port", app.cfg.Port, "version", BuildVersion, "driver", app.cfg.DatabaseDriver)

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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down gatekit...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing store", "error", err)
		return err
	}

	app.logger.Info("gatekit stopped")
	return nil
}

func (app *Application) initStore() error {
	switch app.cfg.DatabaseDriver {
	case "memory":
		app.db = memory.New()
		app.logger.Info("using in-memory store; data is lost on restart")
		return nil
	case "sqlite":
		dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
		db, err := sqlite.NewStore(dsn)
		if err != nil {
			return fmt.Errorf("failed to initialize store: %w", err)
		}
		app.db = db

		if err := db.ApplyMigrations(); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to apply store migrations: %w", err)
		}

		app.logger.Info("store migrations applied successfully")
		return nil
	default:
		return fmt.Errorf("unknown database driver %q", app.cfg.DatabaseDriver)
	}
}

func (app *Application) initServices() error {
	svc, err := service.NewService(service.Config{
		Store:    app.db,
		Notifier: &notify.LogSender{Logger: app.logger},
		Clock:    clockx.System{},
		TTL: service.TTLPolicy{
			Access:  app.cfg.AccessTTL,
			Refresh: app.cfg.RefreshTTL,
			Verify:  app.cfg.VerifyTTL,
			Reset:   app.cfg.ResetTTL,
		},
		SecretLength: app.cfg.SecretLength,
	})
	if err != nil {
		return fmt.Errorf("failed to build auth service: %w", err)
	}
	app.authService = svc

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		clockx.System{},
		app.logger,
		app.cfg.HousekeepingInterval,
	)

	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.authService, app.logger)
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
