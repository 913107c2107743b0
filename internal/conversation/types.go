package conversation

import "strconv"

// UpdateKind tags the closed set of inbound update variants.
type UpdateKind int

const (
	UpdateInvalid UpdateKind = iota
	UpdateCommand
	UpdateText
	UpdateCallback
	UpdateMedia
)

// MediaKind is a recognized non-text message kind.
type MediaKind string

const (
	MediaAudio     MediaKind = "audio"
	MediaVideo     MediaKind = "video"
	MediaPhoto     MediaKind = "photo"
	MediaVoice     MediaKind = "voice"
	MediaDocument  MediaKind = "document"
	MediaSticker   MediaKind = "sticker"
	MediaVideoNote MediaKind = "video_note"
	MediaContact   MediaKind = "contact"
	MediaLocation  MediaKind = "location"
	MediaPoll      MediaKind = "poll"

	// MediaUnknown covers message payloads outside the enumerated kinds
	// (dice, venues, service messages); the router rejects it with the
	// supported-kinds list.
	MediaUnknown MediaKind = "unknown"
)

// KnownMediaKinds lists every media kind the router recognizes, in the
// order they are reported to users.
var KnownMediaKinds = []MediaKind{
	MediaAudio, MediaVideo, MediaPhoto, MediaVoice, MediaDocument,
	MediaSticker, MediaVideoNote, MediaContact, MediaLocation, MediaPoll,
}

// Update is one inbound event, alive only for the duration of a single
// invocation. Exactly one variant's fields are populated, per Kind.
type Update struct {
	Kind   UpdateKind
	ChatID int64
	FromID int64 // callback presses carry the presser's user id

	Command string // command name without the slash prefix

	Text string

	CallbackID   string
	CallbackData string

	Media    MediaKind
	Duration int // seconds, for audio/video/voice/video_note
}

// UserKey derives the stable per-user storage key. Callback presses key by
// the pressing user, everything else by the chat.
func (u Update) UserKey() string {
	if u.FromID != 0 {
		return strconv.FormatInt(u.FromID, 10)
	}
	return strconv.FormatInt(u.ChatID, 10)
}

// ActionKind tags the router's classification result.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionShowWelcome
	ActionShowModelMenu
	ActionShowQuickActions
	ActionAnswerUnimplemented
	ActionUnknownCommand
	ActionSetModel
	ActionRespondToText
	ActionAcknowledgeMedia
	ActionRejectUnsupported
)

// Action is the router's verdict for one update. The router only
// classifies; all I/O happens in the update handler.
type Action struct {
	Kind     ActionKind
	Model    string    // ActionSetModel
	Text     string    // ActionRespondToText
	Feature  string    // ActionAnswerUnimplemented
	Command  string    // ActionUnknownCommand
	Media    MediaKind // ActionAcknowledgeMedia / ActionRejectUnsupported
	Duration int
}

// Markup enumerates the interactive markups a reply can carry.
type Markup int

const (
	MarkupNone Markup = iota
	MarkupModelMenu
	MarkupQuickActions
	MarkupReplyShortcuts
)

// Reply is the single outbound message produced by one invocation.
// CallbackID, when set, asks the transport to also acknowledge the
// originating button press with CallbackAck.
type Reply struct {
	ChatID      int64
	Text        string
	Markup      Markup
	CallbackID  string
	CallbackAck string
}
