// Package memory provides in-memory repository implementations.
// Used as the default storage backend and in tests.
package memory

import (
	"context"
	"sync"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
)

// NotificationLogRepository provides an in-memory implementation of
// repository.NotificationLogRepository. Thread-safe for concurrent access.
type NotificationLogRepository struct {
	mu        sync.RWMutex
	records   []*entity.DeliveryRecord // append order, oldest first
	byMonitor map[string][]int         // monitorID -> record indexes
}

// NewNotificationLogRepository creates a new in-memory delivery log.
func NewNotificationLogRepository() *NotificationLogRepository {
	return &NotificationLogRepository{
		byMonitor: make(map[string][]int),
	}
}

// Save persists a new delivery record.
func (r *NotificationLogRepository) Save(ctx context.Context, rec *entity.DeliveryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Store a copy to prevent external mutations
	recCopy := *rec
	r.records = append(r.records, &recCopy)
	if rec.MonitorID != "" {
		r.byMonitor[rec.MonitorID] = append(r.byMonitor[rec.MonitorID], len(r.records)-1)
	}
	return nil
}

// FindByMonitorID retrieves records for one monitor, newest first.
func (r *NotificationLogRepository) FindByMonitorID(ctx context.Context, monitorID string, limit int) ([]*entity.DeliveryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	indexes := r.byMonitor[monitorID]
	result := make([]*entity.DeliveryRecord, 0, min(limit, len(indexes)))
	for i := len(indexes) - 1; i >= 0 && len(result) < limit; i-- {
		recCopy := *r.records[indexes[i]]
		result = append(result, &recCopy)
	}
	return result, nil
}

// FindRecent retrieves the most recent records, newest first.
func (r *NotificationLogRepository) FindRecent(ctx context.Context, limit int) ([]*entity.DeliveryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entity.DeliveryRecord, 0, min(limit, len(r.records)))
	for i := len(r.records) - 1; i >= 0 && len(result) < limit; i-- {
		recCopy := *r.records[i]
		result = append(result, &recCopy)
	}
	return result, nil
}
