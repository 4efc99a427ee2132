package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// ReadinessChecker reports whether one dependency is ready to serve.
type ReadinessChecker interface {
	Name() string
	Check(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	startTime time.Time
	checkers  []ReadinessChecker
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(checkers ...ReadinessChecker) *HealthHandler {
	return &HealthHandler{
		startTime: time.Now(),
		checkers:  checkers,
	}
}

// ServeHTTP handles GET /health and GET /ready
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.startTime).String(),
	}
	status := http.StatusOK

	// Liveness (/health) skips dependency checks; readiness includes them.
	if r.URL.Path == "/ready" && len(h.checkers) > 0 {
		checks := make(map[string]string, len(h.checkers))
		for _, c := range h.checkers {
			if err := c.Check(r.Context()); err != nil {
				checks[c.Name()] = err.Error()
				response["status"] = "degraded"
				status = http.StatusServiceUnavailable
			} else {
				checks[c.Name()] = "ok"
			}
		}
		response["checks"] = checks
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}
