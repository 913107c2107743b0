package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/aimatehq/aimate/internal/conversation"
)

type fakeProcessor struct {
	reply conversation.Reply
	err   error
	got   *conversation.Update
}

func (p *fakeProcessor) Handle(_ context.Context, u conversation.Update) (conversation.Reply, error) {
	p.got = &u
	return p.reply, p.err
}

type fakeSender struct {
	sent    []conversation.Reply
	sendErr error
	typing  []int64
}

func (s *fakeSender) Send(_ context.Context, reply conversation.Reply) error {
	s.sent = append(s.sent, reply)
	return s.sendErr
}

func (s *fakeSender) Typing(_ context.Context, chatID int64) {
	s.typing = append(s.typing, chatID)
}

func postWebhook(t *testing.T, h *WebhookHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h.Register(e)
	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestWebhookTextMessage(t *testing.T) {
	t.Parallel()

	processor := &fakeProcessor{reply: conversation.Reply{ChatID: 42, Text: "answer"}}
	sender := &fakeSender{}
	h := NewWebhookHandler(nil, processor, sender)

	rec := postWebhook(t, h, `{"message":{"chat":{"id":42},"text":"hi"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, processor.got)
	require.Equal(t, conversation.UpdateText, processor.got.Kind)
	require.Equal(t, []int64{42}, sender.typing, "typing action precedes the completion")
	require.Len(t, sender.sent, 1)
	require.Equal(t, "answer", sender.sent[0].Text)
}

func TestWebhookCallbackSkipsTyping(t *testing.T) {
	t.Parallel()

	processor := &fakeProcessor{reply: conversation.Reply{ChatID: 42, Text: "done"}}
	sender := &fakeSender{}
	h := NewWebhookHandler(nil, processor, sender)

	rec := postWebhook(t, h, `{"callback_query":{"id":"cb","from":{"id":7},"message":{"chat":{"id":42}},"data":"conf"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, sender.typing)
}

func TestWebhookMalformedPayload(t *testing.T) {
	t.Parallel()

	processor := &fakeProcessor{}
	sender := &fakeSender{}
	h := NewWebhookHandler(nil, processor, sender)

	rec := postWebhook(t, h, `{"update_id":1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Nil(t, processor.got, "malformed updates never reach the processor")
}

func TestWebhookMalformedPayloadApologizesWhenChatResolvable(t *testing.T) {
	t.Parallel()

	processor := &fakeProcessor{}
	sender := &fakeSender{}
	h := NewWebhookHandler(nil, processor, sender)

	rec := postWebhook(t, h, `{"callback_query":{"id":"cb","message":{"chat":{"id":42}}}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Len(t, sender.sent, 1)
	require.Equal(t, int64(42), sender.sent[0].ChatID)
}

func TestWebhookUnknownPayloadAccepted(t *testing.T) {
	t.Parallel()

	processor := &fakeProcessor{reply: conversation.Reply{ChatID: 42, Text: "Unsupported message type."}}
	sender := &fakeSender{}
	h := NewWebhookHandler(nil, processor, sender)

	// A non-2xx here would make Telegram redeliver the dice message forever.
	rec := postWebhook(t, h, `{"message":{"chat":{"id":42},"dice":{"emoji":"🎲","value":3}}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, processor.got)
	require.Equal(t, conversation.UpdateMedia, processor.got.Kind)
	require.Equal(t, conversation.MediaUnknown, processor.got.Media)
	require.Empty(t, sender.typing)
	require.Len(t, sender.sent, 1)
}

func TestWebhookInternalFault(t *testing.T) {
	t.Parallel()

	processor := &fakeProcessor{err: errors.New("boom")}
	sender := &fakeSender{}
	h := NewWebhookHandler(nil, processor, sender)

	rec := postWebhook(t, h, `{"message":{"chat":{"id":42},"text":"hi"}}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	// Best-effort apology to the resolved chat.
	require.Len(t, sender.sent, 1)
	require.Equal(t, int64(42), sender.sent[0].ChatID)
}

func TestWebhookSendFailureStillAccepted(t *testing.T) {
	t.Parallel()

	processor := &fakeProcessor{reply: conversation.Reply{ChatID: 42, Text: "answer"}}
	sender := &fakeSender{sendErr: errors.New("telegram down")}
	h := NewWebhookHandler(nil, processor, sender)

	rec := postWebhook(t, h, `{"message":{"chat":{"id":42},"text":"hi"}}`)
	require.Equal(t, http.StatusOK, rec.Code, "state is persisted; redelivery would duplicate the exchange")
}

func TestWebhookOversizedPayload(t *testing.T) {
	t.Parallel()

	h := NewWebhookHandler(nil, &fakeProcessor{}, &fakeSender{})
	rec := postWebhook(t, h, `{"pad":"`+strings.Repeat("x", int(webhookMaxBodyBytes)+10)+`"}`)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
