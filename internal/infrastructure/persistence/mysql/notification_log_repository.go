package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
)

// NotificationLogRepository provides a MySQL implementation of
// repository.NotificationLogRepository.
type NotificationLogRepository struct {
	db *DB
}

// NewNotificationLogRepository creates a new MySQL-backed delivery log.
func NewNotificationLogRepository(db *DB) *NotificationLogRepository {
	return &NotificationLogRepository{db: db}
}

// Save persists a new delivery record.
func (r *NotificationLogRepository) Save(ctx context.Context, rec *entity.DeliveryRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notification_log (
			id, event_kind, monitor_id, destination, ok, error, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.EventKind,
		nullString(rec.MonitorID),
		rec.Destination,
		rec.OK,
		nullString(rec.Error),
		rec.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert delivery record: %w", err)
	}
	return nil
}

// FindByMonitorID retrieves records for one monitor, newest first.
func (r *NotificationLogRepository) FindByMonitorID(ctx context.Context, monitorID string, limit int) ([]*entity.DeliveryRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, event_kind, monitor_id, destination, ok, error, created_at
		FROM notification_log
		WHERE monitor_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, monitorID, limit)
	if err != nil {
		return nil, fmt.Errorf("query delivery records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// FindRecent retrieves the most recent records, newest first.
func (r *NotificationLogRepository) FindRecent(ctx context.Context, limit int) ([]*entity.DeliveryRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, event_kind, monitor_id, destination, ok, error, created_at
		FROM notification_log
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent delivery records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]*entity.DeliveryRecord, error) {
	var records []*entity.DeliveryRecord
	for rows.Next() {
		var (
			rec       entity.DeliveryRecord
			monitorID sql.NullString
			errMsg    sql.NullString
			createdAt time.Time
		)
		if err := rows.Scan(&rec.ID, &rec.EventKind, &monitorID, &rec.Destination, &rec.OK, &errMsg, &createdAt); err != nil {
			return nil, fmt.Errorf("scan delivery record: %w", err)
		}
		rec.MonitorID = monitorID.String
		rec.Error = errMsg.String
		rec.CreatedAt = createdAt
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate delivery records: %w", err)
	}
	return records, nil
}

// nullString converts a string to sql.NullString.
// Empty strings are stored as NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
