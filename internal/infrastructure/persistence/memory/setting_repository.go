package memory

import (
	"context"
	"sync"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/repository"
)

// SettingRepository provides an in-memory implementation of
// repository.SettingRepository. Thread-safe for concurrent access.
type SettingRepository struct {
	mu       sync.RWMutex
	settings map[string]string
}

// NewSettingRepository creates a new in-memory setting store.
func NewSettingRepository() *SettingRepository {
	return &SettingRepository{
		settings: make(map[string]string),
	}
}

// Put stores or replaces the value for a key.
func (r *SettingRepository) Put(ctx context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings[key] = value
	return nil
}

// Get retrieves the value for a key.
func (r *SettingRepository) Get(ctx context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.settings[key]
	if !ok {
		return "", repository.ErrNotFound
	}
	return value, nil
}

// All returns every stored override.
func (r *SettingRepository) All(ctx context.Context) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]string, len(r.settings))
	for k, v := range r.settings {
		result[k] = v
	}
	return result, nil
}
