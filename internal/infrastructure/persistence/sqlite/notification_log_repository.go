package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
)

// NotificationLogRepository provides a SQLite implementation of
// repository.NotificationLogRepository.
type NotificationLogRepository struct {
	db *DB
}

// NewNotificationLogRepository creates a new SQLite-backed delivery log.
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
		boolToInt(rec.OK),
		nullString(rec.Error),
		timeToString(rec.CreatedAt),
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

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanRecords(rows rowScanner) ([]*entity.DeliveryRecord, error) {
	var records []*entity.DeliveryRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate delivery records: %w", err)
	}
	return records, nil
}

func scanRecord(row interface{ Scan(dest ...any) error }) (*entity.DeliveryRecord, error) {
	var (
		rec       entity.DeliveryRecord
		monitorID sql.NullString
		errMsg    sql.NullString
		ok        int
		createdAt string
	)
	if err := row.Scan(&rec.ID, &rec.EventKind, &monitorID, &rec.Destination, &ok, &errMsg, &createdAt); err != nil {
		return nil, fmt.Errorf("scan delivery record: %w", err)
	}

	rec.MonitorID = stringFromNull(monitorID)
	rec.Error = stringFromNull(errMsg)
	rec.OK = ok != 0
	rec.CreatedAt = parseTime(createdAt)
	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
