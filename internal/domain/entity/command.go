package entity

import (
	"fmt"
	"strings"
)

// Command is one decoded operator action. Callback tokens arriving from a
// chat platform are parsed exactly once, at the boundary, into one of the
// variants below; handlers never split or normalize token strings themselves.
type Command interface {
	// CallbackData encodes the command back into its wire token, used when
	// building inline keyboards.
	CallbackData() string
	isCommand()
}

type (
	// OpenMenuCommand reopens the main menu.
	OpenMenuCommand struct{}

	// StartMonitorCommand opens the monitor-type selection submenu.
	StartMonitorCommand struct{}

	// SelectMonitorTypeCommand picks the type for a monitor being created.
	SelectMonitorTypeCommand struct{ Type MonitorType }

	// StopMonitorCommand asks for a handle whose monitor should stop.
	StopMonitorCommand struct{}

	// ListMonitorsCommand lists all active monitors.
	ListMonitorsCommand struct{}

	// MonitorDetailsCommand asks for a monitor ID to inspect.
	MonitorDetailsCommand struct{}

	// ViewMonitorCommand shows the monitor matching Handle. Handle is
	// always lower-cased on the wire; matching is case-insensitive.
	ViewMonitorCommand struct{ Handle string }

	// DeleteMonitorCommand deletes the monitor matching Handle.
	DeleteMonitorCommand struct{ Handle string }

	// SettingsMenuCommand opens the runtime settings menu.
	SettingsMenuCommand struct{}

	// UpdateSettingCommand asks for a new value for the setting Key.
	UpdateSettingCommand struct{ Key string }

	// PumpFunCommand is the permanently disabled Pump.fun menu entry.
	PumpFunCommand struct{}
)

func (OpenMenuCommand) isCommand()          {}
func (StartMonitorCommand) isCommand()      {}
func (SelectMonitorTypeCommand) isCommand() {}
func (StopMonitorCommand) isCommand()       {}
func (ListMonitorsCommand) isCommand()      {}
func (MonitorDetailsCommand) isCommand()    {}
func (ViewMonitorCommand) isCommand()       {}
func (DeleteMonitorCommand) isCommand()     {}
func (SettingsMenuCommand) isCommand()      {}
func (UpdateSettingCommand) isCommand()     {}
func (PumpFunCommand) isCommand()           {}

func (OpenMenuCommand) CallbackData() string       { return "main_menu" }
func (StartMonitorCommand) CallbackData() string   { return "start_monitor" }
func (StopMonitorCommand) CallbackData() string    { return "stop_monitor" }
func (ListMonitorsCommand) CallbackData() string   { return "list_monitors" }
func (MonitorDetailsCommand) CallbackData() string { return "monitor_details" }
func (SettingsMenuCommand) CallbackData() string   { return "settings_menu" }
func (PumpFunCommand) CallbackData() string        { return "pump_fun_disabled" }

func (c SelectMonitorTypeCommand) CallbackData() string {
	return "start_monitor_" + string(c.Type)
}

func (c ViewMonitorCommand) CallbackData() string {
	return "view_monitor_" + strings.ToLower(c.Handle)
}

func (c DeleteMonitorCommand) CallbackData() string {
	return "delete_monitor_" + strings.ToLower(c.Handle)
}

func (c UpdateSettingCommand) CallbackData() string {
	return "update_setting_" + c.Key
}

// ParseCallback decodes a callback token into a Command. Tokens that embed a
// handle are lower-cased for case-insensitive matching downstream.
func ParseCallback(data string) (Command, error) {
	switch data {
	case "main_menu":
		return OpenMenuCommand{}, nil
	case "start_monitor":
		return StartMonitorCommand{}, nil
	case "stop_monitor":
		return StopMonitorCommand{}, nil
	case "list_monitors":
		return ListMonitorsCommand{}, nil
	case "monitor_details":
		return MonitorDetailsCommand{}, nil
	case "settings_menu":
		return SettingsMenuCommand{}, nil
	case "pump_fun_disabled":
		return PumpFunCommand{}, nil
	}

	// Prefixed tokens carry a parameter. The bare prefixes above are
	// matched first, so TrimPrefix results are always non-empty here
	// unless the token is malformed.
	switch {
	case strings.HasPrefix(data, "start_monitor_"):
		t := MonitorType(strings.TrimPrefix(data, "start_monitor_"))
		if !t.Valid() {
			return nil, fmt.Errorf("unknown monitor type in callback %q", data)
		}
		return SelectMonitorTypeCommand{Type: t}, nil

	case strings.HasPrefix(data, "view_monitor_"):
		h := strings.ToLower(strings.TrimPrefix(data, "view_monitor_"))
		if h == "" {
			return nil, fmt.Errorf("empty handle in callback %q", data)
		}
		return ViewMonitorCommand{Handle: h}, nil

	case strings.HasPrefix(data, "delete_monitor_"):
		h := strings.ToLower(strings.TrimPrefix(data, "delete_monitor_"))
		if h == "" {
			return nil, fmt.Errorf("empty handle in callback %q", data)
		}
		return DeleteMonitorCommand{Handle: h}, nil

	case strings.HasPrefix(data, "update_setting_"):
		k := strings.TrimPrefix(data, "update_setting_")
		if k == "" {
			return nil, fmt.Errorf("empty setting key in callback %q", data)
		}
		return UpdateSettingCommand{Key: k}, nil
	}

	return nil, fmt.Errorf("unknown callback token %q", data)
}
