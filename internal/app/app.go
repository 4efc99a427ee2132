// Package app wires configuration, storage, clients, use cases, and the
// HTTP server into a runnable application.
package app

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/adapter/handler"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/repository"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/infrastructure/config"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/infrastructure/observability"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/infrastructure/server"
)

// Application holds all application dependencies and lifecycle
type Application struct {
	config    *config.Config
	manager   *config.Manager
	logger    *AtomicLogger
	telemetry *observability.Telemetry

	// Storage
	notificationLog repository.NotificationLogRepository
	settingRepo     repository.SettingRepository
	dbPinger        dbPinger
	dbCloser        io.Closer // For cleanup

	// Infrastructure clients
	clients *Clients

	// Use cases
	useCases *UseCases

	// HTTP layer
	handlers *server.Handlers
	server   *server.Server

	// Telegram update pump (nil when Telegram is disabled)
	conversation *handler.TelegramConversationHandler
}

// dbPinger verifies database connectivity for readiness checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// New creates a new Application instance
func New(configPath string) (*Application, error) {
	app := &Application{}

	if err := app.bootstrap(configPath); err != nil {
		return nil, err
	}

	return app, nil
}

// Start runs the application until context is cancelled
func (app *Application) Start(ctx context.Context) error {
	app.logger.Get().Info("starting monitor-bridge",
		"port", app.config.Server.Port,
	)

	app.pushGlobalWebhook(ctx)

	if app.conversation != nil {
		go func() {
			if err := app.conversation.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				app.logger.Get().Error("telegram update loop stopped", "error", err)
			}
		}()
	}

	return app.server.Run(ctx)
}

// pushGlobalWebhook points the registry's event delivery at this instance.
// Failures are logged but never block startup; the operator can re-apply
// the URL through the settings flow.
func (app *Application) pushGlobalWebhook(ctx context.Context) {
	url, _ := app.manager.Get(entity.SettingRegistryWebhookURL)
	if url == "" {
		return
	}

	pushCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := app.clients.Registry.SetGlobalWebhook(pushCtx, url); err != nil {
		app.logger.Get().Warn("failed to register global webhook with registry",
			"url", url,
			"error", err,
		)
		return
	}
	app.logger.Get().Info("global webhook registered", "url", url)
}

// Shutdown gracefully stops the application
func (app *Application) Shutdown() error {
	app.logger.Get().Info("shutting down monitor-bridge")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown telemetry
	if app.telemetry != nil {
		if err := app.telemetry.Shutdown(ctx); err != nil {
			app.logger.Get().Error("failed to shutdown telemetry", "error", err)
		}
	}

	// Close database
	if app.dbCloser != nil {
		if err := app.dbCloser.Close(); err != nil {
			app.logger.Get().Error("failed to close database", "error", err)
			return err
		}
	}

	app.logger.Get().Info("monitor-bridge stopped")
	return nil
}
