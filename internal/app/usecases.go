package app

import (
	"github.com/qj0r9j0vc2/monitor-bridge/internal/usecase/conversation"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/usecase/notify"
)

// UseCases holds all application use cases
type UseCases struct {
	ProcessEvent *notify.ProcessEventUseCase
	Engine       *conversation.Engine
}

func (app *Application) initializeUseCases() error {
	logger := &slogAdapter{logger: app.logger}

	formatter := notify.NewFormatter()
	dispatcher := notify.NewDispatcher(app.clients.Notifiers, logger)

	store := conversation.NewStore()
	access := conversation.NewAccessControl(app.manager)

	app.useCases = &UseCases{
		ProcessEvent: notify.NewProcessEventUseCase(
			formatter,
			dispatcher,
			app.notificationLog,
			logger,
		),
		Engine: conversation.NewEngine(
			app.clients.Registry,
			store,
			access,
			app.manager,
			logger,
		),
	}

	return nil
}
