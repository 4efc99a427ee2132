package conversation

import (
	"context"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
)

// RegistryClient is the upstream monitor registry surface the engine drives.
// Implementations map upstream failures to the domain error kinds.
type RegistryClient interface {
	// CreateMonitor registers a new monitor.
	// Returns errors.ErrDuplicateMonitor when one already exists for the handle.
	CreateMonitor(ctx context.Context, t entity.MonitorType, params entity.MonitorParams) (*entity.Monitor, error)

	// DeleteMonitor removes a monitor by ID.
	DeleteMonitor(ctx context.Context, id string) error

	// GetMonitor fetches one monitor record.
	// Returns errors.ErrMonitorNotFound on a lookup miss.
	GetMonitor(ctx context.Context, id string) (*entity.Monitor, error)

	// ListMonitors returns the given page of active monitors.
	ListMonitors(ctx context.Context, page int) ([]*entity.Monitor, error)

	// SetGlobalWebhook points the registry's event delivery at url.
	SetGlobalWebhook(ctx context.Context, url string) error
}

// Settings is the live configuration surface the engine reads and mutates.
type Settings interface {
	// Get returns the current value for a known key.
	Get(key string) (string, bool)

	// Set validates and applies a new value for a known key.
	Set(key, value string) error
}
