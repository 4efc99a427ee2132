package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/repository"
)

// SettingRepository provides a MySQL implementation of
// repository.SettingRepository.
type SettingRepository struct {
	db *DB
}

// NewSettingRepository creates a new MySQL-backed setting store.
func NewSettingRepository(db *DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Put stores or replaces the value for a key.
func (r *SettingRepository) Put(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (`+"`key`"+`, value, updated_at)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE value = VALUES(value), updated_at = VALUES(updated_at)
	`, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}
	return nil
}

// Get retrieves the value for a key.
func (r *SettingRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE `key` = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query setting: %w", err)
	}
	return value, nil
}

// All returns every stored override.
func (r *SettingRepository) All(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT `key`, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		result[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}
	return result, nil
}
