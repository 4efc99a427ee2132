package entity

// ConversationState is the position of a chat in the operator dialogue.
type ConversationState string

const (
	StateIdle                ConversationState = "idle"
	StateAwaitingMonitorType ConversationState = "awaiting_monitor_type"
	StateAwaitingHandle      ConversationState = "awaiting_handle"
	StateAwaitingDuplicate   ConversationState = "awaiting_duplicate_resolution"
	StateAwaitingStopHandle  ConversationState = "awaiting_stop_handle"
	StateAwaitingDetailsID   ConversationState = "awaiting_details_id"
	StateAwaitingSetting     ConversationState = "awaiting_setting_value"
)

// Session tracks one multi-step operator interaction. At most one Session
// exists per chat at any time; storing a new one replaces the old.
// Sessions are created on the first input that needs a follow-up and
// deleted as soon as the pending step resolves.
type Session struct {
	ChatID string
	State  ConversationState

	// PendingMonitorType is set while a monitor creation is underway.
	PendingMonitorType MonitorType

	// PendingHandle preserves the handle that triggered a duplicate
	// conflict so the view/delete resolution can still reach it.
	PendingHandle string

	// PendingSettingKey is the configuration key awaiting a new value.
	PendingSettingKey string
}
