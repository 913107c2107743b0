package telegram

import (
	"encoding/json"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aimatehq/aimate/internal/conversation"
)

// ParseUpdate translates a raw Telegram webhook payload into the closed
// update variant the conversation engine consumes. ErrMalformedUpdate is
// reserved for undecodable payloads and updates with no resolvable chat;
// a message carrying a payload outside the enumerated media kinds comes
// back as an unknown-media update so the engine can answer with the
// supported-kinds list.
func ParseUpdate(raw []byte) (conversation.Update, error) {
	var update tgbotapi.Update
	if err := json.Unmarshal(raw, &update); err != nil {
		return conversation.Update{}, fmt.Errorf("%w: decode payload: %v", conversation.ErrMalformedUpdate, err)
	}

	if update.CallbackQuery != nil {
		return parseCallback(update.CallbackQuery)
	}
	if update.Message != nil {
		return parseMessage(update.Message)
	}
	return conversation.Update{}, fmt.Errorf("%w: no message or callback query", conversation.ErrMalformedUpdate)
}

func parseCallback(cq *tgbotapi.CallbackQuery) (conversation.Update, error) {
	if cq.Message == nil || cq.Message.Chat == nil || cq.From == nil {
		return conversation.Update{}, fmt.Errorf("%w: callback query missing message or sender", conversation.ErrMalformedUpdate)
	}
	return conversation.Update{
		Kind:         conversation.UpdateCallback,
		ChatID:       cq.Message.Chat.ID,
		FromID:       cq.From.ID,
		CallbackID:   cq.ID,
		CallbackData: strings.TrimSpace(cq.Data),
	}, nil
}

func parseMessage(msg *tgbotapi.Message) (conversation.Update, error) {
	if msg.Chat == nil {
		return conversation.Update{}, fmt.Errorf("%w: message missing chat", conversation.ErrMalformedUpdate)
	}
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		return conversation.Update{
			Kind:    conversation.UpdateCommand,
			ChatID:  chatID,
			Command: msg.Command(),
		}, nil
	}
	if text := strings.TrimSpace(msg.Text); text != "" {
		return conversation.Update{
			Kind:   conversation.UpdateText,
			ChatID: chatID,
			Text:   text,
		}, nil
	}

	if kind, duration, ok := classifyMedia(msg); ok {
		return conversation.Update{
			Kind:     conversation.UpdateMedia,
			ChatID:   chatID,
			Media:    kind,
			Duration: duration,
		}, nil
	}
	// Dice, venues, games, and service messages land here. Answering with
	// the supported-kinds list keeps the response a 2xx; a non-2xx would
	// make Telegram redeliver the same update.
	return conversation.Update{
		Kind:   conversation.UpdateMedia,
		ChatID: chatID,
		Media:  conversation.MediaUnknown,
	}, nil
}

func classifyMedia(msg *tgbotapi.Message) (conversation.MediaKind, int, bool) {
	switch {
	case msg.Audio != nil:
		return conversation.MediaAudio, msg.Audio.Duration, true
	case msg.Video != nil:
		return conversation.MediaVideo, msg.Video.Duration, true
	case len(msg.Photo) > 0:
		return conversation.MediaPhoto, 0, true
	case msg.Voice != nil:
		return conversation.MediaVoice, msg.Voice.Duration, true
	case msg.Document != nil:
		return conversation.MediaDocument, 0, true
	case msg.Sticker != nil:
		return conversation.MediaSticker, 0, true
	case msg.VideoNote != nil:
		return conversation.MediaVideoNote, msg.VideoNote.Duration, true
	case msg.Contact != nil:
		return conversation.MediaContact, 0, true
	case msg.Location != nil:
		return conversation.MediaLocation, 0, true
	case msg.Poll != nil:
		return conversation.MediaPoll, 0, true
	default:
		return "", 0, false
	}
}

// BestEffortChatID digs a chat id out of an arbitrary payload so a generic
// apology can still be delivered for malformed updates. Returns 0 when no
// chat id is resolvable.
func BestEffortChatID(raw []byte) int64 {
	var update tgbotapi.Update
	if err := json.Unmarshal(raw, &update); err != nil {
		return 0
	}
	if update.Message != nil && update.Message.Chat != nil {
		return update.Message.Chat.ID
	}
	if update.CallbackQuery != nil && update.CallbackQuery.Message != nil && update.CallbackQuery.Message.Chat != nil {
		return update.CallbackQuery.Message.Chat.ID
	}
	return 0
}
