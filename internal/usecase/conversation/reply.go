package conversation

import (
	"fmt"
	"strings"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
)

// Button is one inline keyboard action. Data is a callback token produced
// by entity.Command.CallbackData, never an ad hoc string.
type Button struct {
	Label string
	Data  string
}

// Reply is a platform-neutral response: rich text plus an optional inline
// keyboard. Channel transports render it for their platform.
type Reply struct {
	Text     string
	Keyboard [][]Button
}

func replyText(text string) *Reply {
	return &Reply{Text: text}
}

func button(label string, cmd entity.Command) Button {
	return Button{Label: label, Data: cmd.CallbackData()}
}

func mainMenuKeyboard() [][]Button {
	return [][]Button{
		{
			button("➕ Start Monitor", entity.StartMonitorCommand{}),
			button("🛑 Stop Monitor", entity.StopMonitorCommand{}),
		},
		{
			button("📃 List Monitors", entity.ListMonitorsCommand{}),
			button("🔍 Monitor Details", entity.MonitorDetailsCommand{}),
		},
		{
			button("⚙️ Settings", entity.SettingsMenuCommand{}),
		},
		{
			button("🚫 Pump.fun Monitor", entity.PumpFunCommand{}),
		},
	}
}

func monitorTypeKeyboard() [][]Button {
	return [][]Button{
		{
			button("User Tweets Monitor", entity.SelectMonitorTypeCommand{Type: entity.MonitorUserTweets}),
			button("User Following Monitor", entity.SelectMonitorTypeCommand{Type: entity.MonitorUserFollowing}),
		},
		{
			button("User Profile Monitor", entity.SelectMonitorTypeCommand{Type: entity.MonitorUserProfile}),
		},
	}
}

func duplicateResolutionKeyboard(handle string) [][]Button {
	return [][]Button{
		{
			button("View Monitor", entity.ViewMonitorCommand{Handle: handle}),
			button("Delete Monitor", entity.DeleteMonitorCommand{Handle: handle}),
		},
	}
}

func settingsKeyboard() [][]Button {
	var rows [][]Button
	for _, key := range entity.KnownSettingKeys() {
		rows = append(rows, []Button{
			button(key, entity.UpdateSettingCommand{Key: key}),
		})
	}
	return rows
}

func formatMonitorDetails(m *entity.Monitor) string {
	var b strings.Builder
	b.WriteString("🔍 " + entity.Bold("Monitor Details:") + "\n")
	if m.Handle != "" {
		fmt.Fprintf(&b, "Twitter: %s\n", entity.Link("@"+m.Handle, m.ProfileURL()))
	}
	fmt.Fprintf(&b, "Type: %s\n", m.Type)
	fmt.Fprintf(&b, "Created At: %s\n", m.CreatedAt)
	fmt.Fprintf(&b, "Monitor ID: %s\n", entity.Code(m.ID))
	return b.String()
}

func formatMonitorList(monitors []*entity.Monitor) string {
	var b strings.Builder
	b.WriteString(entity.Bold("📃 Active Monitors:") + "\n")

	if len(monitors) == 0 {
		b.WriteString("No active monitors found.")
		return b.String()
	}

	for _, m := range monitors {
		handle := m.Handle
		if handle == "" {
			handle = "N/A"
		}
		fmt.Fprintf(&b, "• Twitter: %s - Type: %s - Created: %s\n",
			entity.Link("@"+handle, "https://twitter.com/"+handle), m.Type, m.CreatedAt)
	}
	return b.String()
}
