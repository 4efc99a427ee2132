package app

import (
	"github.com/qj0r9j0vc2/monitor-bridge/internal/infrastructure/observability"
)

// setupTelemetry initializes the metrics pipeline and the no-op tracer.
func (app *Application) setupTelemetry() error {
	telemetry, err := observability.NewTelemetry(observability.ServiceName, "v1.0.0")
	if err != nil {
		return err
	}

	app.telemetry = telemetry

	app.logger.Get().Info("telemetry initialized",
		"service", observability.ServiceName,
		"metrics_enabled", true,
		"tracing_enabled", false,
	)

	return nil
}
