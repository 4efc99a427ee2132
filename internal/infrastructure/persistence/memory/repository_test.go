package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/repository"
)

func record(id, monitorID, destination string, ok bool) *entity.DeliveryRecord {
	return &entity.DeliveryRecord{
		ID:          id,
		EventKind:   "new_tweet",
		MonitorID:   monitorID,
		Destination: destination,
		OK:          ok,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestNotificationLogSaveAndFind(t *testing.T) {
	repo := NewNotificationLogRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, record("a", "m1", "telegram", true)))
	require.NoError(t, repo.Save(ctx, record("b", "m1", "discord", false)))
	require.NoError(t, repo.Save(ctx, record("c", "m2", "telegram", true)))

	records, err := repo.FindByMonitorID(ctx, "m1", 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	// Newest first.
	assert.Equal(t, "b", records[0].ID)
	assert.Equal(t, "a", records[1].ID)

	records, err = repo.FindByMonitorID(ctx, "m1", 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "b", records[0].ID)

	records, err = repo.FindByMonitorID(ctx, "unknown", 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNotificationLogFindRecent(t *testing.T) {
	repo := NewNotificationLogRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, record("a", "m1", "telegram", true)))
	require.NoError(t, repo.Save(ctx, record("b", "m2", "slack", true)))
	require.NoError(t, repo.Save(ctx, record("c", "m3", "discord", false)))

	records, err := repo.FindRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "c", records[0].ID)
	assert.Equal(t, "b", records[1].ID)
}

func TestNotificationLogSaveCopies(t *testing.T) {
	repo := NewNotificationLogRepository()
	ctx := context.Background()

	rec := record("a", "m1", "telegram", true)
	require.NoError(t, repo.Save(ctx, rec))

	rec.Destination = "mutated"

	records, err := repo.FindByMonitorID(ctx, "m1", 1)
	require.NoError(t, err)
	assert.Equal(t, "telegram", records[0].Destination)
}

func TestSettingRepository(t *testing.T) {
	repo := NewSettingRepository()
	ctx := context.Background()

	_, err := repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Put(ctx, "registry.webhook_url", "https://a.test"))
	require.NoError(t, repo.Put(ctx, "access.allowed_users", "alice"))

	v, err := repo.Get(ctx, "registry.webhook_url")
	require.NoError(t, err)
	assert.Equal(t, "https://a.test", v)

	// Put replaces.
	require.NoError(t, repo.Put(ctx, "registry.webhook_url", "https://b.test"))
	v, err = repo.Get(ctx, "registry.webhook_url")
	require.NoError(t, err)
	assert.Equal(t, "https://b.test", v)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"registry.webhook_url": "https://b.test",
		"access.allowed_users": "alice",
	}, all)
}
