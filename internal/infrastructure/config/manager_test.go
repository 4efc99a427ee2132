package config

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/logger"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/infrastructure/persistence/memory"
)

const managerConfigYAML = `
registry:
  api_key: test-key
  webhook_url: https://file.example.com/webhook
access:
  allowed_users:
    - alice
logging:
  level: info
`

func newTestManager(t *testing.T) (*Manager, string, *memory.SettingRepository) {
	t.Helper()

	path := writeConfigFile(t, managerConfigYAML)
	cfg, err := Load(path)
	require.NoError(t, err)

	repo := memory.NewSettingRepository()
	m := NewManager(cfg, path, repo, logger.Noop{})
	require.NoError(t, m.LoadOverrides(context.Background()))
	return m, path, repo
}

func TestManagerGetFallsBackToConfig(t *testing.T) {
	m, _, _ := newTestManager(t)

	v, ok := m.Get(entity.SettingRegistryWebhookURL)
	assert.True(t, ok)
	assert.Equal(t, "https://file.example.com/webhook", v)

	v, ok = m.Get(entity.SettingAllowedUsers)
	assert.True(t, ok)
	assert.Equal(t, "alice", v)

	_, ok = m.Get("not.a.setting")
	assert.False(t, ok)
}

func TestManagerSetOverridesConfig(t *testing.T) {
	m, _, repo := newTestManager(t)

	require.NoError(t, m.Set(entity.SettingAllowedUsers, "alice,bob"))

	v, ok := m.Get(entity.SettingAllowedUsers)
	assert.True(t, ok)
	assert.Equal(t, "alice,bob", v)

	// The override is persisted, not just cached.
	stored, err := repo.Get(context.Background(), entity.SettingAllowedUsers)
	require.NoError(t, err)
	assert.Equal(t, "alice,bob", stored)
}

func TestManagerSetRejectsUnknownKey(t *testing.T) {
	m, _, _ := newTestManager(t)

	err := m.Set("not.a.setting", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown setting key")
}

func TestManagerSetValidatesValues(t *testing.T) {
	m, _, _ := newTestManager(t)

	assert.Error(t, m.Set(entity.SettingTelegramChatID, "not-a-number"))
	assert.NoError(t, m.Set(entity.SettingTelegramChatID, "-100123456"))

	assert.Error(t, m.Set(entity.SettingRegistryWebhookURL, "ftp://nope"))
	assert.NoError(t, m.Set(entity.SettingRegistryWebhookURL, "https://ok.example.com"))
}

func TestManagerSetNotifiesSubscribers(t *testing.T) {
	m, _, _ := newTestManager(t)

	var gotKey, gotValue string
	m.Subscribe(func(key, value string) {
		gotKey, gotValue = key, value
	})

	require.NoError(t, m.Set(entity.SettingSlackChannelID, "C123"))
	assert.Equal(t, entity.SettingSlackChannelID, gotKey)
	assert.Equal(t, "C123", gotValue)
}

func TestManagerLoadOverridesRestoresPersisted(t *testing.T) {
	path := writeConfigFile(t, managerConfigYAML)
	cfg, err := Load(path)
	require.NoError(t, err)

	repo := memory.NewSettingRepository()
	ctx := context.Background()
	require.NoError(t, repo.Put(ctx, entity.SettingAllowedUsers, "carol"))
	require.NoError(t, repo.Put(ctx, "stale.key", "ignored"))

	m := NewManager(cfg, path, repo, logger.Noop{})
	require.NoError(t, m.LoadOverrides(ctx))

	v, ok := m.Get(entity.SettingAllowedUsers)
	assert.True(t, ok)
	assert.Equal(t, "carol", v)
}

func TestManagerReloadAppliesReloadableChange(t *testing.T) {
	m, path, _ := newTestManager(t)

	var changed []string
	m.Subscribe(func(key, value string) {
		changed = append(changed, key+"="+value)
	})

	require.NoError(t, os.WriteFile(path, []byte(`
registry:
  api_key: test-key
  webhook_url: https://file.example.com/webhook
access:
  allowed_users:
    - alice
logging:
  level: debug
`), 0o644))

	require.NoError(t, m.Reload())
	assert.Equal(t, "debug", m.Config().Logging.Level)
	assert.Contains(t, changed, "logging.level=debug")
}

func TestManagerReloadRejectsStaticChange(t *testing.T) {
	m, path, _ := newTestManager(t)

	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9999
registry:
  api_key: test-key
  webhook_url: https://file.example.com/webhook
access:
  allowed_users:
    - alice
`), 0o644))

	err := m.Reload()
	assert.ErrorIs(t, err, ErrRequiresRestart)

	// Running config stays untouched.
	assert.Equal(t, 8080, m.Config().Server.Port)
}
