package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/adapter/handler"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/adapter/handler/middleware"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/infrastructure/observability"
)

// Handlers holds all HTTP handlers.
type Handlers struct {
	Webhook *handler.WebhookHandler
	Health  *handler.HealthHandler
	Metrics *handler.MetricsHandler
	Reload  *handler.ReloadHandler
}

// NewRouter creates the HTTP router with all handlers.
func NewRouter(handlers *Handlers, metrics *observability.Metrics, requestTimeout time.Duration, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoints
	mux.Handle("/health", handlers.Health)
	mux.Handle("/ready", handlers.Health)
	mux.Handle("/", handlers.Health) // Root path returns health

	// Webhook endpoint
	if handlers.Webhook != nil {
		mux.Handle("/webhook", handlers.Webhook)
	}

	// Operational endpoints
	if handlers.Metrics != nil {
		mux.Handle("/metrics", handlers.Metrics)
	}
	if handlers.Reload != nil {
		mux.Handle("/-/reload", handlers.Reload)
	}

	// Apply middleware stack
	var h http.Handler = mux
	h = middleware.Timeout(requestTimeout, logger)(h)
	if metrics != nil {
		h = middleware.Observability(metrics)(h)
	}
	h = middleware.RequestID(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
