package app

import (
	"context"
	"fmt"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/infrastructure/config"
)

func (app *Application) setupSettingsManager(configPath string) error {
	manager := config.NewManager(
		app.config,
		configPath,
		app.settingRepo,
		&slogAdapter{logger: app.logger},
	)

	if err := manager.LoadOverrides(context.Background()); err != nil {
		return fmt.Errorf("loading setting overrides: %w", err)
	}

	// Swap the logger when a hot reload changes the logging keys.
	manager.Subscribe(func(key, value string) {
		switch key {
		case "logging.level", "logging.format":
			cfg := manager.Config()
			app.logger.Set(buildLogger(cfg.Logging.Level, cfg.Logging.Format))
			app.logger.Get().Info("logger reconfigured",
				"level", cfg.Logging.Level,
				"format", cfg.Logging.Format,
			)
		}
	})

	if err := manager.Watch(); err != nil {
		return fmt.Errorf("watching config file: %w", err)
	}

	app.manager = manager
	return nil
}
