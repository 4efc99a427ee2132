package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/adapter/dto"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/logger"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/infrastructure/observability"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/usecase/notify"
)

// WebhookHandler handles SocialData webhook requests.
type WebhookHandler struct {
	processEvent *notify.ProcessEventUseCase
	metrics      *observability.Metrics
	logger       logger.Logger
}

// NewWebhookHandler creates a new handler. Metrics may be nil in tests.
func NewWebhookHandler(processEvent *notify.ProcessEventUseCase, metrics *observability.Metrics, log logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		processEvent: processEvent,
		metrics:      metrics,
		logger:       log,
	}
}

// ServeHTTP handles POST /webhook
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload dto.WebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.Error("failed to decode webhook payload",
			"error", err,
		)
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	start := time.Now()

	event := payload.ToEntity()
	output := h.processEvent.Execute(ctx, event)

	if h.metrics != nil {
		h.metrics.RecordEventReceived(ctx, string(event.Kind), event.IsKnown(), time.Since(start))
		for _, o := range output.Outcomes {
			h.metrics.RecordNotificationSent(ctx, o.Destination, o.OK, 0)
		}
	}

	var failed int
	for _, o := range output.Outcomes {
		if !o.OK {
			failed++
		}
	}
	h.logger.Info("webhook event processed",
		"kind", string(event.Kind),
		"monitorID", event.MonitorID,
		"destinations", len(output.Outcomes),
		"failed", failed,
	)

	// The source is acknowledged regardless of delivery outcomes; it has no
	// retry contract and a non-2xx would only make it drop events.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"status": "success",
	})
}
