package repository

import (
	"context"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
)

// NotificationLogRepository persists the delivery log: one record per
// destination per processed webhook event. The log is operational telemetry;
// writes never gate webhook acknowledgment.
type NotificationLogRepository interface {
	// Save persists a new delivery record.
	Save(ctx context.Context, rec *entity.DeliveryRecord) error

	// FindByMonitorID retrieves records for one monitor, newest first.
	FindByMonitorID(ctx context.Context, monitorID string, limit int) ([]*entity.DeliveryRecord, error)

	// FindRecent retrieves the most recent records, newest first.
	FindRecent(ctx context.Context, limit int) ([]*entity.DeliveryRecord, error)
}

// SettingRepository persists runtime setting overrides so they survive
// restarts. Conversation state deliberately does not go through here.
type SettingRepository interface {
	// Put stores or replaces the value for a key.
	Put(ctx context.Context, key, value string) error

	// Get retrieves the value for a key.
	// Returns ErrNotFound if the key has no stored override.
	Get(ctx context.Context, key string) (string, error)

	// All returns every stored override.
	All(ctx context.Context) (map[string]string, error)
}
