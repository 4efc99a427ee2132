package app

import (
	"github.com/qj0r9j0vc2/monitor-bridge/internal/adapter/handler"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/infrastructure/server"
)

func (app *Application) initializeHandlers() error {
	logger := &slogAdapter{logger: app.logger}

	var checkers []handler.ReadinessChecker
	if app.dbPinger != nil {
		checkers = append(checkers, &databaseChecker{pinger: app.dbPinger})
	}

	app.handlers = &server.Handlers{
		Health:  handler.NewHealthHandler(checkers...),
		Metrics: handler.NewMetricsHandler(),
		Reload:  handler.NewReloadHandler(app.manager, logger),
		Webhook: handler.NewWebhookHandler(
			app.useCases.ProcessEvent,
			app.telemetry.Metrics,
			logger,
		),
	}

	if app.config.IsTelegramEnabled() {
		app.conversation = handler.NewTelegramConversationHandler(
			app.clients.TelegramBot,
			app.useCases.Engine,
			app.telemetry.Metrics,
			logger,
		)
	}

	return nil
}

func (app *Application) setupServer() error {
	router := server.NewRouter(
		app.handlers,
		app.telemetry.Metrics,
		app.config.Server.RequestTimeout,
		app.logger.Get(),
	)
	app.server = server.New(app.config.Server, router, app.logger.Get())
	return nil
}
