package handler

import (
	"errors"
	"net/http"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/logger"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/infrastructure/config"
)

// ReloadHandler handles configuration reload requests.
type ReloadHandler struct {
	manager *config.Manager
	logger  logger.Logger
}

// NewReloadHandler creates a new reload handler.
func NewReloadHandler(manager *config.Manager, log logger.Logger) *ReloadHandler {
	return &ReloadHandler{
		manager: manager,
		logger:  log,
	}
}

// ServeHTTP handles POST /-/reload requests.
func (h *ReloadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.manager.Reload(); err != nil {
		if errors.Is(err, config.ErrRequiresRestart) {
			// Static config change - log warning but return 200
			h.logger.Warn("reload skipped", "error", err)
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("Configuration change requires restart\n"))
			return
		}

		// Reload failed - return error
		h.logger.Error("manual reload failed", "error", err)
		http.Error(w, "Configuration reload failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Configuration reloaded successfully\n"))
}
