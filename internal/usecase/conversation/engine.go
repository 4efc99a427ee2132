package conversation

import (
	"context"
	"fmt"
	"strings"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/entity"
	domainerrors "github.com/qj0r9j0vc2/monitor-bridge/internal/domain/errors"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/logger"
)

// Operator-facing message templates.
const (
	msgNotAuthorized = "🚫 Sorry, you are not authorized to use this bot."
	msgWelcome       = "👋 Welcome to Twitter Monitor Bot!\nUse the inline buttons below to manage monitors."
	msgChooseType    = "🔎 Choose the type of monitor to start:"
	msgAskHandle     = "✍️ Please provide the Twitter handle (without @) for monitoring:"
	msgAskStopHandle = "🛑 Please provide the Twitter handle (without @) to stop its monitor:"
	msgAskMonitorID  = "🔍 Please provide the Monitor ID to view details:"
	msgDetailsFailed = "⚠️ Could not retrieve monitor details. Please check the Monitor ID and try again."
	msgPumpFun       = "🚫 Pump.fun monitor creation is disabled due to cost restrictions."
	msgUnknown       = "❓ Unknown command."
	msgUseButtons    = "Please use the buttons above to continue."
	msgSettingsMenu  = "⚙️ Settings: choose a key to update."
)

// Engine is the per-chat finite state machine behind the operator command
// surface. One session per chat; every entry point acquires the chat's lock
// for the whole operation, so transitions for one chat never interleave
// across suspended registry calls.
type Engine struct {
	registry RegistryClient
	store    *Store
	access   *AccessControl
	settings Settings
	logger   logger.Logger
}

// NewEngine creates the conversation engine.
func NewEngine(
	registry RegistryClient,
	store *Store,
	access *AccessControl,
	settings Settings,
	log logger.Logger,
) *Engine {
	return &Engine{
		registry: registry,
		store:    store,
		access:   access,
		settings: settings,
		logger:   log,
	}
}

// OpenMenu handles the menu-open action. Any pending session for the chat
// is discarded: a fresh command always wins over unfinished conversation.
func (e *Engine) OpenMenu(ctx context.Context, chatID, username string) *Reply {
	unlock := e.store.Lock(chatID)
	defer unlock()

	if !e.access.IsAllowed(username) {
		return replyText(msgNotAuthorized)
	}

	e.store.Delete(chatID)
	return &Reply{Text: msgWelcome, Keyboard: mainMenuKeyboard()}
}

// HandleCallback handles an inline keyboard selection.
func (e *Engine) HandleCallback(ctx context.Context, chatID, username, data string) *Reply {
	unlock := e.store.Lock(chatID)
	defer unlock()

	if !e.access.IsAllowed(username) {
		return replyText(msgNotAuthorized)
	}

	cmd, err := entity.ParseCallback(data)
	if err != nil {
		e.logger.Warn("unparseable callback token",
			"chatID", chatID,
			"data", data,
		)
		return replyText(msgUnknown)
	}

	switch c := cmd.(type) {
	case entity.OpenMenuCommand:
		e.store.Delete(chatID)
		return &Reply{Text: msgWelcome, Keyboard: mainMenuKeyboard()}

	case entity.StartMonitorCommand:
		e.store.Put(&entity.Session{ChatID: chatID, State: entity.StateAwaitingMonitorType})
		return &Reply{Text: msgChooseType, Keyboard: monitorTypeKeyboard()}

	case entity.SelectMonitorTypeCommand:
		e.store.Put(&entity.Session{
			ChatID:             chatID,
			State:              entity.StateAwaitingHandle,
			PendingMonitorType: c.Type,
		})
		return replyText(msgAskHandle)

	case entity.StopMonitorCommand:
		e.store.Put(&entity.Session{ChatID: chatID, State: entity.StateAwaitingStopHandle})
		return replyText(msgAskStopHandle)

	case entity.MonitorDetailsCommand:
		e.store.Put(&entity.Session{ChatID: chatID, State: entity.StateAwaitingDetailsID})
		return replyText(msgAskMonitorID)

	case entity.ListMonitorsCommand:
		e.store.Delete(chatID)
		return e.listMonitors(ctx, chatID)

	case entity.ViewMonitorCommand:
		return e.viewMonitor(ctx, chatID, c.Handle)

	case entity.DeleteMonitorCommand:
		return e.deleteMonitorByHandle(ctx, chatID, c.Handle)

	case entity.SettingsMenuCommand:
		e.store.Delete(chatID)
		return &Reply{Text: msgSettingsMenu, Keyboard: settingsKeyboard()}

	case entity.UpdateSettingCommand:
		if !entity.IsKnownSettingKey(c.Key) {
			return replyText(msgUnknown)
		}
		e.store.Put(&entity.Session{
			ChatID:            chatID,
			State:             entity.StateAwaitingSetting,
			PendingSettingKey: c.Key,
		})
		return replyText(e.promptSettingValue(c.Key))

	case entity.PumpFunCommand:
		return replyText(msgPumpFun)
	}

	return replyText(msgUnknown)
}

// HandleText handles free-text input. A nil reply means the input was not
// addressed to the bot (no pending session, or a command the transport
// routes itself). Command-prefixed input always discards the pending
// session, whatever its state.
func (e *Engine) HandleText(ctx context.Context, chatID, username, text string) *Reply {
	unlock := e.store.Lock(chatID)
	defer unlock()

	if !e.access.IsAllowed(username) {
		return replyText(msgNotAuthorized)
	}

	if strings.HasPrefix(text, "/") {
		e.store.Delete(chatID)
		return nil
	}

	sess, ok := e.store.Get(chatID)
	if !ok {
		return nil
	}

	input := strings.TrimSpace(text)

	switch sess.State {
	case entity.StateAwaitingHandle:
		return e.createMonitor(ctx, sess, input)

	case entity.StateAwaitingStopHandle:
		e.store.Delete(chatID)
		return e.deleteMonitorByHandle(ctx, chatID, input)

	case entity.StateAwaitingDetailsID:
		e.store.Delete(chatID)
		return e.monitorDetails(ctx, input)

	case entity.StateAwaitingSetting:
		return e.applySetting(ctx, sess, input)

	case entity.StateAwaitingMonitorType, entity.StateAwaitingDuplicate:
		// These states resolve by callback only; leave the session alone.
		return replyText(msgUseButtons)
	}

	e.store.Delete(chatID)
	return nil
}

// createMonitor resolves the AwaitingHandleInput step.
func (e *Engine) createMonitor(ctx context.Context, sess *entity.Session, handle string) *Reply {
	params := entity.MonitorParams{Handle: handle}
	// New monitors deliver to the configured webhook URL from day one,
	// without waiting for the account-wide setting to propagate.
	if url, ok := e.settings.Get(entity.SettingRegistryWebhookURL); ok && url != "" {
		params.WebhookURL = url
	}

	monitor, err := e.registry.CreateMonitor(ctx, sess.PendingMonitorType, params)
	if err != nil {
		if domainerrors.IsDuplicate(err) {
			// Keep the handle: the view/delete resolution needs it.
			e.store.Put(&entity.Session{
				ChatID:             sess.ChatID,
				State:              entity.StateAwaitingDuplicate,
				PendingMonitorType: sess.PendingMonitorType,
				PendingHandle:      handle,
			})
			return &Reply{
				Text:     fmt.Sprintf("⚠️ A monitor for @%s already exists. Would you like to view its details or delete it?", handle),
				Keyboard: duplicateResolutionKeyboard(handle),
			}
		}

		e.logger.Error("monitor creation failed",
			"chatID", sess.ChatID,
			"handle", handle,
			"error", err,
		)
		e.store.Delete(sess.ChatID)
		return replyText(fmt.Sprintf("⚠️ Failed to create monitor: %v", err))
	}

	e.store.Delete(sess.ChatID)
	return replyText(fmt.Sprintf("✅ Monitor created successfully!\nMonitor ID: %s", entity.Code(monitor.ID)))
}

// listMonitors resolves the list action.
func (e *Engine) listMonitors(ctx context.Context, chatID string) *Reply {
	monitors, err := e.registry.ListMonitors(ctx, 1)
	if err != nil {
		e.logger.Error("listing monitors failed",
			"chatID", chatID,
			"error", err,
		)
		return replyText(fmt.Sprintf("⚠️ An error occurred: %v", err))
	}
	return replyText(formatMonitorList(monitors))
}

// viewMonitor resolves the duplicate-conflict "view" action. Terminal for
// the chat's pending session.
func (e *Engine) viewMonitor(ctx context.Context, chatID, handle string) *Reply {
	defer e.store.Delete(chatID)

	monitor, err := e.findByHandle(ctx, handle)
	if err != nil {
		return replyText(fmt.Sprintf("⚠️ An error occurred: %v", err))
	}
	if monitor == nil {
		return replyText(fmt.Sprintf("⚠️ No monitor found for @%s", handle))
	}
	return replyText(formatMonitorDetails(monitor))
}

// deleteMonitorByHandle resolves both the stop flow and the duplicate
// "delete" action. Terminal for the chat's pending session.
func (e *Engine) deleteMonitorByHandle(ctx context.Context, chatID, handle string) *Reply {
	defer e.store.Delete(chatID)

	monitor, err := e.findByHandle(ctx, handle)
	if err != nil {
		return replyText(fmt.Sprintf("⚠️ An error occurred: %v", err))
	}
	if monitor == nil {
		return replyText(fmt.Sprintf("⚠️ No monitor found for @%s", handle))
	}

	if err := e.registry.DeleteMonitor(ctx, monitor.ID); err != nil {
		e.logger.Error("monitor deletion failed",
			"chatID", chatID,
			"monitorID", monitor.ID,
			"error", err,
		)
		return replyText(fmt.Sprintf("⚠️ An error occurred: %v", err))
	}

	return replyText(fmt.Sprintf("✅ Monitor for @%s (ID: %s) has been deleted.",
		monitor.Handle, entity.Code(monitor.ID)))
}

// monitorDetails resolves the AwaitingDetailsId step: exact-ID lookup.
func (e *Engine) monitorDetails(ctx context.Context, id string) *Reply {
	monitor, err := e.registry.GetMonitor(ctx, id)
	if err != nil {
		if domainerrors.IsNotFound(err) {
			return replyText(msgDetailsFailed)
		}
		return replyText(fmt.Sprintf("⚠️ An error occurred: %v", err))
	}
	return replyText(formatMonitorDetails(monitor))
}

// applySetting resolves the AwaitingSettingValue step.
func (e *Engine) applySetting(ctx context.Context, sess *entity.Session, value string) *Reply {
	defer e.store.Delete(sess.ChatID)

	key := sess.PendingSettingKey
	if entity.IsMultiValueSetting(key) {
		value = normalizeList(value)
	}

	if err := e.settings.Set(key, value); err != nil {
		return replyText(fmt.Sprintf("⚠️ Failed to update setting: %v", err))
	}

	// The registry must learn about a new delivery URL immediately.
	if key == entity.SettingRegistryWebhookURL && value != "" {
		if err := e.registry.SetGlobalWebhook(ctx, value); err != nil {
			e.logger.Error("failed to push webhook URL to registry",
				"error", err,
			)
			return replyText(fmt.Sprintf("✅ Setting %s updated, but the registry rejected the new webhook URL: %v",
				entity.Code(key), err))
		}
	}

	return replyText(fmt.Sprintf("✅ Setting %s updated.", entity.Code(key)))
}

// findByHandle scans active monitors for a case-insensitive handle match.
// Returns nil, nil when nothing matches.
func (e *Engine) findByHandle(ctx context.Context, handle string) (*entity.Monitor, error) {
	monitors, err := e.registry.ListMonitors(ctx, 1)
	if err != nil {
		return nil, err
	}
	for _, m := range monitors {
		if m.MatchesHandle(handle) {
			return m, nil
		}
	}
	return nil, nil
}

func (e *Engine) promptSettingValue(key string) string {
	current, _ := e.settings.Get(key)
	if current == "" {
		current = "unset"
	}
	prompt := fmt.Sprintf("✍️ Send the new value for %s (current: %s):", entity.Code(key), entity.Code(current))
	if entity.IsMultiValueSetting(key) {
		prompt += "\nMultiple values are comma-separated."
	}
	return prompt
}

// normalizeList splits a comma-separated value, trims each element, drops
// empties and rejoins.
func normalizeList(raw string) string {
	var parts []string
	for _, p := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ",")
}
