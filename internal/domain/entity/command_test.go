package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCallback(t *testing.T) {
	tests := []struct {
		data string
		want Command
	}{
		{"main_menu", OpenMenuCommand{}},
		{"start_monitor", StartMonitorCommand{}},
		{"stop_monitor", StopMonitorCommand{}},
		{"list_monitors", ListMonitorsCommand{}},
		{"monitor_details", MonitorDetailsCommand{}},
		{"settings_menu", SettingsMenuCommand{}},
		{"pump_fun_disabled", PumpFunCommand{}},
		{"start_monitor_user_tweets", SelectMonitorTypeCommand{Type: MonitorUserTweets}},
		{"start_monitor_user_following", SelectMonitorTypeCommand{Type: MonitorUserFollowing}},
		{"start_monitor_user_profile", SelectMonitorTypeCommand{Type: MonitorUserProfile}},
		{"view_monitor_bob", ViewMonitorCommand{Handle: "bob"}},
		{"delete_monitor_bob", DeleteMonitorCommand{Handle: "bob"}},
		{"update_setting_registry.webhook_url", UpdateSettingCommand{Key: "registry.webhook_url"}},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			cmd, err := ParseCallback(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd)
		})
	}
}

func TestParseCallbackLowercasesHandles(t *testing.T) {
	cmd, err := ParseCallback("view_monitor_BoB")
	require.NoError(t, err)
	assert.Equal(t, ViewMonitorCommand{Handle: "bob"}, cmd)

	cmd, err = ParseCallback("delete_monitor_ALICE")
	require.NoError(t, err)
	assert.Equal(t, DeleteMonitorCommand{Handle: "alice"}, cmd)
}

func TestParseCallbackErrors(t *testing.T) {
	bad := []string{
		"",
		"bogus",
		"start_monitor_pump_fun",
		"view_monitor_",
		"delete_monitor_",
		"update_setting_",
	}

	for _, data := range bad {
		t.Run(data, func(t *testing.T) {
			_, err := ParseCallback(data)
			assert.Error(t, err)
		})
	}
}

func TestCallbackDataRoundTrip(t *testing.T) {
	commands := []Command{
		OpenMenuCommand{},
		StartMonitorCommand{},
		SelectMonitorTypeCommand{Type: MonitorUserTweets},
		StopMonitorCommand{},
		ListMonitorsCommand{},
		MonitorDetailsCommand{},
		ViewMonitorCommand{Handle: "bob"},
		DeleteMonitorCommand{Handle: "bob"},
		SettingsMenuCommand{},
		UpdateSettingCommand{Key: "access.allowed_users"},
		PumpFunCommand{},
	}

	for _, cmd := range commands {
		parsed, err := ParseCallback(cmd.CallbackData())
		require.NoError(t, err, "token %q", cmd.CallbackData())
		assert.Equal(t, cmd, parsed)
	}
}
