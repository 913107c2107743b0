package conversation

import (
	"context"
	"log/slog"

	"github.com/aimatehq/aimate/internal/chat"
	"github.com/aimatehq/aimate/internal/config"
	"github.com/aimatehq/aimate/internal/store"
)

// Handler orchestrates one inbound update: route, read the user record,
// call the completion endpoint when needed, merge history, persist, and
// produce the single outbound reply. It holds no state across invocations;
// every state transition is the read-modify-write of one user record.
type Handler struct {
	cfg    config.BotConfig
	store  store.Store
	chat   chat.Client
	logger *slog.Logger
}

func NewHandler(log *slog.Logger, cfg config.BotConfig, st store.Store, client chat.Client) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		cfg:    cfg,
		store:  st,
		chat:   client,
		logger: log.With(slog.String("component", "conversation")),
	}
}

// Handle processes exactly one update and returns the reply to deliver.
// It returns a non-nil error only for ErrMalformedUpdate; user-visible
// failures such as a completion error produce a reply and a nil error.
func (h *Handler) Handle(ctx context.Context, u Update) (Reply, error) {
	if u.Kind == UpdateInvalid || u.ChatID == 0 {
		return Reply{ChatID: u.ChatID, Text: somethingWrongText}, ErrMalformedUpdate
	}

	userKey := u.UserKey()
	rec := h.loadRecord(ctx, userKey)

	action := Route(u)
	switch action.Kind {
	case ActionShowWelcome:
		return Reply{
			ChatID: u.ChatID,
			Text:   welcomeText(h.cfg.DefaultModel),
			Markup: MarkupReplyShortcuts,
		}, nil

	case ActionShowModelMenu:
		return Reply{
			ChatID:     u.ChatID,
			Text:       chooseModelText,
			Markup:     MarkupModelMenu,
			CallbackID: u.CallbackID,
		}, nil

	case ActionShowQuickActions:
		return Reply{
			ChatID:     u.ChatID,
			Text:       quickActionText,
			Markup:     MarkupQuickActions,
			CallbackID: u.CallbackID,
		}, nil

	case ActionAnswerUnimplemented:
		return Reply{
			ChatID:     u.ChatID,
			Text:       unimplementedText(action.Feature),
			CallbackID: u.CallbackID,
		}, nil

	case ActionUnknownCommand:
		return Reply{ChatID: u.ChatID, Text: unknownCommandText(action.Command)}, nil

	case ActionSetModel:
		return h.handleSetModel(ctx, u, userKey, rec, action.Model), nil

	case ActionRespondToText:
		return h.handleText(ctx, u, userKey, rec, action.Text), nil

	case ActionAcknowledgeMedia:
		return Reply{ChatID: u.ChatID, Text: mediaAckText(action.Media, action.Duration)}, nil

	case ActionRejectUnsupported:
		return Reply{ChatID: u.ChatID, Text: unsupportedMediaText()}, nil

	default:
		return Reply{ChatID: u.ChatID, Text: somethingWrongText}, ErrMalformedUpdate
	}
}

// loadRecord reads the user record, degrading to defaults on a read
// failure, absence, or an unsupported stored model.
func (h *Handler) loadRecord(ctx context.Context, userKey string) store.Record {
	rec, found, err := h.store.Get(ctx, userKey)
	if err != nil {
		h.logger.Error("record read failed, using defaults",
			slog.String("user_key", userKey), slog.Any("error", err))
		return store.Record{Model: h.cfg.DefaultModel}
	}
	if !found {
		return store.Record{Model: h.cfg.DefaultModel}
	}
	if !h.cfg.Supported(rec.Model) {
		h.logger.Warn("stored model not supported, substituting default",
			slog.String("user_key", userKey), slog.String("model", rec.Model))
		rec.Model = h.cfg.DefaultModel
	}
	return rec
}

func (h *Handler) handleSetModel(ctx context.Context, u Update, userKey string, rec store.Record, model string) Reply {
	if !h.cfg.Supported(model) {
		return Reply{
			ChatID:      u.ChatID,
			Text:        invalidModelText(model),
			CallbackID:  u.CallbackID,
			CallbackAck: invalidModelText(model),
		}
	}
	rec.Model = model
	if err := h.store.Put(ctx, userKey, rec); err != nil {
		// Best-effort persistence: the confirmation still goes out.
		h.logger.Error("persist model selection failed",
			slog.String("user_key", userKey), slog.Any("error", err))
	}
	return Reply{
		ChatID:      u.ChatID,
		Text:        modelSetText(model),
		CallbackID:  u.CallbackID,
		CallbackAck: modelSetAckText(model),
	}
}

func (h *Handler) handleText(ctx context.Context, u Update, userKey string, rec store.Record, text string) Reply {
	messages := BuildContext(h.cfg.Persona, rec.History, text, h.cfg.ContextWindow)
	completion, err := h.chat.Complete(ctx, rec.Model, messages)
	if err != nil {
		// History stays untouched so a later retry sees the pre-update state.
		h.logger.Error("completion failed",
			slog.String("user_key", userKey),
			slog.String("model", rec.Model),
			slog.Any("error", err))
		return Reply{ChatID: u.ChatID, Text: completionFailText}
	}

	rec.History = AppendExchange(
		rec.History,
		chat.Message{Role: chat.RoleUser, Content: text},
		chat.Message{Role: chat.RoleAssistant, Content: completion},
		h.cfg.HistoryLimit,
	)
	if err := h.store.Put(ctx, userKey, rec); err != nil {
		h.logger.Error("persist history failed",
			slog.String("user_key", userKey), slog.Any("error", err))
	}
	return Reply{
		ChatID: u.ChatID,
		Text:   completion,
		Markup: MarkupReplyShortcuts,
	}
}
