package handler

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/qj0r9j0vc2/monitor-bridge/internal/domain/logger"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/infrastructure/observability"
	"github.com/qj0r9j0vc2/monitor-bridge/internal/usecase/conversation"
)

// TelegramConversationHandler pumps Telegram updates into the conversation
// engine and renders its replies back as messages with inline keyboards.
type TelegramConversationHandler struct {
	bot     *tgbotapi.BotAPI
	engine  *conversation.Engine
	metrics *observability.Metrics
	logger  logger.Logger
}

// NewTelegramConversationHandler creates the update pump.
// Metrics may be nil in tests.
func NewTelegramConversationHandler(
	bot *tgbotapi.BotAPI,
	engine *conversation.Engine,
	metrics *observability.Metrics,
	log logger.Logger,
) *TelegramConversationHandler {
	return &TelegramConversationHandler{
		bot:     bot,
		engine:  engine,
		metrics: metrics,
		logger:  log,
	}
}

// Run long-polls for updates until the context is canceled. Each update is
// handled on its own goroutine; serialization per chat happens inside the
// engine, so one chat's in-flight registry call never blocks another chat.
func (h *TelegramConversationHandler) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go h.handleUpdate(ctx, update)
		}
	}
}

func (h *TelegramConversationHandler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		h.handleMessage(ctx, update.Message)
	}
}

func (h *TelegramConversationHandler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Acknowledge the button press first so the client stops its spinner.
	if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		h.logger.Warn("answering callback query failed", "error", err)
	}

	if cb.Message == nil || cb.From == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	username := cb.From.UserName

	reply := h.engine.HandleCallback(ctx, formatChatID(chatID), username, cb.Data)
	h.recordInput(ctx, "callback", reply)
	h.send(chatID, reply)
}

func (h *TelegramConversationHandler) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	chatID := msg.Chat.ID
	username := msg.From.UserName

	var reply *conversation.Reply
	if msg.IsCommand() && msg.Command() == "start" {
		reply = h.engine.OpenMenu(ctx, formatChatID(chatID), username)
		h.recordInput(ctx, "command", reply)
	} else {
		reply = h.engine.HandleText(ctx, formatChatID(chatID), username, msg.Text)
		h.recordInput(ctx, "text", reply)
	}
	h.send(chatID, reply)
}

// send renders a reply. A nil reply means the engine chose not to respond.
func (h *TelegramConversationHandler) send(chatID int64, reply *conversation.Reply) {
	if reply == nil {
		return
	}

	msg := tgbotapi.NewMessage(chatID, reply.Text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if len(reply.Keyboard) > 0 {
		msg.ReplyMarkup = toInlineKeyboard(reply.Keyboard)
	}

	if _, err := h.bot.Send(msg); err != nil {
		h.logger.Error("sending conversation reply failed",
			"chatID", chatID,
			"error", err,
		)
	}
}

func (h *TelegramConversationHandler) recordInput(ctx context.Context, kind string, reply *conversation.Reply) {
	if h.metrics == nil {
		return
	}
	authorized := reply == nil || reply.Text != conversationUnauthorizedText
	h.metrics.RecordConversationInput(ctx, kind, authorized)
}

// conversationUnauthorizedText mirrors the engine's rejection message so the
// transport can label metrics without re-running the access check.
const conversationUnauthorizedText = "🚫 Sorry, you are not authorized to use this bot."

func toInlineKeyboard(rows [][]conversation.Button) tgbotapi.InlineKeyboardMarkup {
	keyboard := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data))
		}
		keyboard = append(keyboard, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

func formatChatID(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
