package telegram

import (
	"errors"
	"testing"

	"github.com/aimatehq/aimate/internal/conversation"
)

func TestParseUpdateCommand(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"update_id":1,"message":{"message_id":5,"chat":{"id":42,"type":"private"},"text":"/start","entities":[{"type":"bot_command","offset":0,"length":6}]}}`)
	u, err := ParseUpdate(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Kind != conversation.UpdateCommand || u.Command != "start" || u.ChatID != 42 {
		t.Fatalf("unexpected update: %+v", u)
	}
}

func TestParseUpdateText(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"update_id":1,"message":{"message_id":5,"chat":{"id":42,"type":"private"},"text":"hello"}}`)
	u, err := ParseUpdate(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Kind != conversation.UpdateText || u.Text != "hello" {
		t.Fatalf("unexpected update: %+v", u)
	}
}

func TestParseUpdateCallback(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"update_id":1,"callback_query":{"id":"cb-9","from":{"id":7},"message":{"message_id":5,"chat":{"id":42,"type":"private"}},"data":"model_llama2-70b-4096"}}`)
	u, err := ParseUpdate(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Kind != conversation.UpdateCallback {
		t.Fatalf("expected callback update: %+v", u)
	}
	if u.ChatID != 42 || u.FromID != 7 || u.CallbackID != "cb-9" {
		t.Fatalf("unexpected identifiers: %+v", u)
	}
	if u.CallbackData != "model_llama2-70b-4096" {
		t.Fatalf("unexpected data: %s", u.CallbackData)
	}
}

func TestParseUpdateMedia(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		raw      string
		kind     conversation.MediaKind
		duration int
	}{
		{
			name:     "voice",
			raw:      `{"message":{"chat":{"id":42},"voice":{"file_id":"v1","duration":9}}}`,
			kind:     conversation.MediaVoice,
			duration: 9,
		},
		{
			name:     "audio",
			raw:      `{"message":{"chat":{"id":42},"audio":{"file_id":"a1","duration":120}}}`,
			kind:     conversation.MediaAudio,
			duration: 120,
		},
		{
			name: "photo",
			raw:  `{"message":{"chat":{"id":42},"photo":[{"file_id":"p1","width":10,"height":10}]}}`,
			kind: conversation.MediaPhoto,
		},
		{
			name: "poll",
			raw:  `{"message":{"chat":{"id":42},"poll":{"id":"q1","question":"?"}}}`,
			kind: conversation.MediaPoll,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			u, err := ParseUpdate([]byte(tc.raw))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if u.Kind != conversation.UpdateMedia || u.Media != tc.kind {
				t.Fatalf("unexpected update: %+v", u)
			}
			if u.Duration != tc.duration {
				t.Fatalf("want duration=%d got=%d", tc.duration, u.Duration)
			}
		})
	}
}

func TestParseUpdateUnknownPayload(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
	}{
		{name: "dice", raw: `{"message":{"chat":{"id":42},"dice":{"emoji":"🎲","value":3}}}`},
		{name: "venue", raw: `{"message":{"chat":{"id":42},"venue":{"title":"HQ","address":"1 Main St"}}}`},
		{name: "empty message", raw: `{"message":{"chat":{"id":42}}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			u, err := ParseUpdate([]byte(tc.raw))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if u.Kind != conversation.UpdateMedia || u.Media != conversation.MediaUnknown {
				t.Fatalf("expected unknown-media update, got %+v", u)
			}
			if u.ChatID != 42 {
				t.Fatalf("want chat id 42, got %d", u.ChatID)
			}
		})
	}
}

func TestParseUpdateMalformed(t *testing.T) {
	t.Parallel()

	cases := []string{
		`not json`,
		`{}`,
		`{"update_id":1}`,
		`{"callback_query":{"id":"cb-9","data":"model_x"}}`,
	}
	for _, raw := range cases {
		_, err := ParseUpdate([]byte(raw))
		if !errors.Is(err, conversation.ErrMalformedUpdate) {
			t.Fatalf("raw=%q expected ErrMalformedUpdate, got %v", raw, err)
		}
	}
}

func TestBestEffortChatID(t *testing.T) {
	t.Parallel()

	if got := BestEffortChatID([]byte(`{"message":{"chat":{"id":42}}}`)); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	if got := BestEffortChatID([]byte(`{"callback_query":{"message":{"chat":{"id":7}}}}`)); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	if got := BestEffortChatID([]byte(`garbage`)); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}
