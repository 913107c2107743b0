package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aimatehq/aimate/internal/config"
	"github.com/aimatehq/aimate/internal/conversation"
)

const maxMessageLength = 4096

// Sender delivers conversation replies through the Telegram bot API,
// attaching the requested interactive markup and acknowledging callback
// presses.
type Sender struct {
	bot    *tgbotapi.BotAPI
	cfg    config.BotConfig
	logger *slog.Logger
}

func NewSender(log *slog.Logger, token string, cfg config.BotConfig) (*Sender, error) {
	if log == nil {
		log = slog.Default()
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	log.Info("telegram bot ready", slog.String("username", bot.Self.UserName))
	return &Sender{
		bot:    bot,
		cfg:    cfg,
		logger: log.With(slog.String("component", "telegram")),
	}, nil
}

// Send delivers one reply. A failed callback acknowledgment is logged but
// does not block the message itself.
func (s *Sender) Send(ctx context.Context, reply conversation.Reply) error {
	if reply.CallbackID != "" {
		callback := tgbotapi.NewCallback(reply.CallbackID, reply.CallbackAck)
		if _, err := s.bot.Request(callback); err != nil {
			s.logger.Warn("answer callback failed",
				slog.String("callback_id", reply.CallbackID), slog.Any("error", err))
		}
	}
	if reply.ChatID == 0 || strings.TrimSpace(reply.Text) == "" {
		return nil
	}
	msg := tgbotapi.NewMessage(reply.ChatID, truncateText(sanitizeText(reply.Text)))
	if markup := s.buildMarkup(reply.Markup); markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := s.bot.Send(msg); err != nil {
		s.logger.Error("send message failed",
			slog.Int64("chat_id", reply.ChatID), slog.Any("error", err))
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// Typing sends the typing chat action so the user sees activity while the
// completion call is in flight.
func (s *Sender) Typing(ctx context.Context, chatID int64) {
	action := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	if _, err := s.bot.Request(action); err != nil {
		s.logger.Warn("send typing action failed",
			slog.Int64("chat_id", chatID), slog.Any("error", err))
	}
}

func (s *Sender) buildMarkup(markup conversation.Markup) any {
	switch markup {
	case conversation.MarkupModelMenu:
		return modelMenuMarkup(s.cfg.Models, s.cfg.SupportURL)
	case conversation.MarkupQuickActions:
		return quickActionsMarkup(s.cfg.SupportURL)
	case conversation.MarkupReplyShortcuts:
		return replyShortcutsMarkup()
	default:
		return nil
	}
}

// modelMenuMarkup builds the model-selection inline keyboard: one button
// per supported model with "model_"-prefixed callback data, plus the
// support link.
func modelMenuMarkup(models []config.Model, supportURL string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(models)+1)
	for _, model := range models {
		label := model.Label
		if label == "" {
			label = model.ID
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "model_"+model.ID),
		))
	}
	if supportURL != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Buy me a coffee", supportURL),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func quickActionsMarkup(supportURL string) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Summarize (Coming Soon...)", "summarize"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Rewrite (Coming Soon...)", "rewrite"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Change LLM", "conf"),
		),
	}
	if supportURL != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Buy me a coffee", supportURL),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// replyShortcutsMarkup builds the persistent reply keyboard with fixed
// quick-reply labels.
func replyShortcutsMarkup() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("What you can do?"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Tell me a joke"),
		),
	)
	keyboard.OneTimeKeyboard = false
	return keyboard
}

// sanitizeText ensures valid UTF-8 for the Telegram API.
func sanitizeText(text string) string {
	if utf8.ValidString(text) {
		return text
	}
	return strings.ToValidUTF8(text, "")
}

// truncateText clamps text to Telegram's message length limit on a valid
// UTF-8 rune boundary, appending "..." when truncation occurs.
func truncateText(text string) string {
	if len(text) <= maxMessageLength {
		return text
	}
	const suffix = "..."
	limit := maxMessageLength - len(suffix)
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit] + suffix
}
