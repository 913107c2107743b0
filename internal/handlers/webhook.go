package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/aimatehq/aimate/internal/conversation"
	"github.com/aimatehq/aimate/internal/telegram"
)

const webhookMaxBodyBytes int64 = 1 << 20 // 1 MiB

// Processor handles one classified update and produces the reply.
type Processor interface {
	Handle(ctx context.Context, u conversation.Update) (conversation.Reply, error)
}

// ReplySender delivers replies and activity indicators to the chat platform.
type ReplySender interface {
	Send(ctx context.Context, reply conversation.Reply) error
	Typing(ctx context.Context, chatID int64)
}

// WebhookHandler receives Telegram webhook deliveries. Each request is one
// independent, stateless invocation: parse, handle, reply, respond.
type WebhookHandler struct {
	logger    *slog.Logger
	processor Processor
	sender    ReplySender
}

func NewWebhookHandler(log *slog.Logger, processor Processor, sender ReplySender) *WebhookHandler {
	if log == nil {
		log = slog.Default()
	}
	return &WebhookHandler{
		logger:    log.With(slog.String("handler", "telegram_webhook")),
		processor: processor,
		sender:    sender,
	}
}

// Register registers the webhook route.
func (h *WebhookHandler) Register(e *echo.Echo) {
	e.POST("/telegram/webhook", h.Handle)
}

// Handle processes one webhook delivery. Outcomes map to status codes:
// 200 accepted (including user-visible failures), 400 bad input,
// 500 internal failure. Nothing is retried here; redelivery is the
// transport's call.
func (h *WebhookHandler) Handle(c echo.Context) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, webhookMaxBodyBytes+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("read body: %v", err))
	}
	if int64(len(payload)) > webhookMaxBodyBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, fmt.Sprintf("payload too large: max %d bytes", webhookMaxBodyBytes))
	}

	ctx := c.Request().Context()
	log := h.logger.With(slog.String("invocation_id", uuid.NewString()))

	update, err := telegram.ParseUpdate(payload)
	if err != nil {
		log.Warn("malformed update", slog.Any("error", err))
		h.apologize(ctx, log, telegram.BestEffortChatID(payload))
		return echo.NewHTTPError(http.StatusBadRequest, "no valid message or callback query found")
	}

	if update.Kind == conversation.UpdateText {
		h.sender.Typing(ctx, update.ChatID)
	}

	reply, err := h.processor.Handle(ctx, update)
	if err != nil {
		if errors.Is(err, conversation.ErrMalformedUpdate) {
			log.Warn("unroutable update", slog.Any("error", err))
			h.apologize(ctx, log, update.ChatID)
			return echo.NewHTTPError(http.StatusBadRequest, "no valid message or callback query found")
		}
		log.Error("handle update failed", slog.Any("error", err))
		h.apologize(ctx, log, update.ChatID)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	// State is already persisted at this point; a delivery failure is
	// logged rather than surfaced, so the transport does not redeliver
	// and duplicate the exchange.
	if err := h.sender.Send(ctx, reply); err != nil {
		log.Error("send reply failed", slog.Int64("chat_id", reply.ChatID), slog.Any("error", err))
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *WebhookHandler) apologize(ctx context.Context, log *slog.Logger, chatID int64) {
	if chatID == 0 {
		return
	}
	err := h.sender.Send(ctx, conversation.Reply{
		ChatID: chatID,
		Text:   "Sorry, something went wrong. Please try again.",
	})
	if err != nil {
		log.Warn("send apology failed", slog.Int64("chat_id", chatID), slog.Any("error", err))
	}
}
