package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/repository"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate(context.Background()))
	return db
}

func deliveryRecord(id, monitorID string, ok bool, at time.Time) *entity.DeliveryRecord {
	return &entity.DeliveryRecord{
		ID:          id,
		EventKind:   "new_tweet",
		MonitorID:   monitorID,
		Destination: "telegram",
		OK:          ok,
		CreatedAt:   at,
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Migrate(context.Background()))
}

func TestNotificationLogRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationLogRepository(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	rec := deliveryRecord("a", "m1", true, now)
	rec.Error = ""
	require.NoError(t, repo.Save(ctx, rec))

	records, err := repo.FindByMonitorID(ctx, "m1", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, "a", got.ID)
	assert.Equal(t, "new_tweet", got.EventKind)
	assert.Equal(t, "m1", got.MonitorID)
	assert.Equal(t, "telegram", got.Destination)
	assert.True(t, got.OK)
	assert.Empty(t, got.Error)
	assert.True(t, got.CreatedAt.Equal(now), "got %v want %v", got.CreatedAt, now)
}

func TestNotificationLogFailureRecord(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationLogRepository(db)
	ctx := context.Background()

	rec := deliveryRecord("b", "m1", false, time.Now().UTC())
	rec.Error = "api down"
	require.NoError(t, repo.Save(ctx, rec))

	records, err := repo.FindByMonitorID(ctx, "m1", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].OK)
	assert.Equal(t, "api down", records[0].Error)
}

func TestNotificationLogOrderingAndLimit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationLogRepository(db)
	ctx := context.Background()

	base := time.Now().UTC()
	require.NoError(t, repo.Save(ctx, deliveryRecord("old", "m1", true, base.Add(-2*time.Hour))))
	require.NoError(t, repo.Save(ctx, deliveryRecord("mid", "m1", true, base.Add(-time.Hour))))
	require.NoError(t, repo.Save(ctx, deliveryRecord("new", "m1", true, base)))
	require.NoError(t, repo.Save(ctx, deliveryRecord("other", "m2", true, base)))

	records, err := repo.FindByMonitorID(ctx, "m1", 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "new", records[0].ID)
	assert.Equal(t, "mid", records[1].ID)

	recent, err := repo.FindRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 4)
	assert.Equal(t, "old", recent[3].ID)
}

func TestNotificationLogEmptyMonitorID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationLogRepository(db)
	ctx := context.Background()

	// Events with no monitor metadata are stored with a NULL monitor ID.
	require.NoError(t, repo.Save(ctx, deliveryRecord("x", "", true, time.Now().UTC())))

	recent, err := repo.FindRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Empty(t, recent[0].MonitorID)
}

func TestSettingRepositorySQLite(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingRepository(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Put(ctx, "registry.webhook_url", "https://a.test"))

	v, err := repo.Get(ctx, "registry.webhook_url")
	require.NoError(t, err)
	assert.Equal(t, "https://a.test", v)

	// Upsert replaces the value.
	require.NoError(t, repo.Put(ctx, "registry.webhook_url", "https://b.test"))
	v, err = repo.Get(ctx, "registry.webhook_url")
	require.NoError(t, err)
	assert.Equal(t, "https://b.test", v)

	require.NoError(t, repo.Put(ctx, "access.allowed_users", "alice,bob"))
	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "alice,bob", all["access.allowed_users"])
}
