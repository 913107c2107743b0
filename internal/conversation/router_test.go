package conversation

import "testing"

func TestRouteModelCallback(t *testing.T) {
	t.Parallel()

	action := Route(Update{
		Kind:         UpdateCallback,
		ChatID:       10,
		FromID:       20,
		CallbackData: "model_mixtral-8x7b-32768",
	})
	if action.Kind != ActionSetModel {
		t.Fatalf("expected ActionSetModel, got %v", action.Kind)
	}
	if action.Model != "mixtral-8x7b-32768" {
		t.Fatalf("unexpected model: %s", action.Model)
	}
}

func TestRouteCallbackTokens(t *testing.T) {
	t.Parallel()

	cases := []struct {
		data    string
		want    ActionKind
		feature string
	}{
		{data: "conf", want: ActionShowModelMenu},
		{data: "menu", want: ActionShowQuickActions},
		{data: "summarize", want: ActionAnswerUnimplemented, feature: "summarize"},
		{data: "rewrite", want: ActionAnswerUnimplemented, feature: "rewrite"},
		{data: "unknown-token", want: ActionNone},
	}
	for _, tc := range cases {
		action := Route(Update{Kind: UpdateCallback, ChatID: 1, CallbackData: tc.data})
		if action.Kind != tc.want {
			t.Fatalf("data=%q want=%v got=%v", tc.data, tc.want, action.Kind)
		}
		if action.Feature != tc.feature {
			t.Fatalf("data=%q want feature=%q got=%q", tc.data, tc.feature, action.Feature)
		}
	}
}

func TestRouteModelCallbackNeverRoutesToText(t *testing.T) {
	t.Parallel()

	action := Route(Update{Kind: UpdateCallback, ChatID: 1, CallbackData: "model_llama2-70b-4096"})
	if action.Kind == ActionRespondToText {
		t.Fatal("model callback must not route to text response")
	}
	if action.Kind != ActionSetModel || action.Model != "llama2-70b-4096" {
		t.Fatalf("unexpected action: %+v", action)
	}
}

func TestRouteCommands(t *testing.T) {
	t.Parallel()

	cases := []struct {
		command string
		want    ActionKind
	}{
		{command: "start", want: ActionShowWelcome},
		{command: "conf", want: ActionShowModelMenu},
		{command: "menu", want: ActionShowQuickActions},
		{command: "START", want: ActionShowWelcome},
		{command: "help", want: ActionUnknownCommand},
	}
	for _, tc := range cases {
		action := Route(Update{Kind: UpdateCommand, ChatID: 1, Command: tc.command})
		if action.Kind != tc.want {
			t.Fatalf("command=%q want=%v got=%v", tc.command, tc.want, action.Kind)
		}
	}
}

func TestRouteFreeText(t *testing.T) {
	t.Parallel()

	action := Route(Update{Kind: UpdateText, ChatID: 1, Text: "hi"})
	if action.Kind != ActionRespondToText || action.Text != "hi" {
		t.Fatalf("unexpected action: %+v", action)
	}
}

func TestRouteMedia(t *testing.T) {
	t.Parallel()

	action := Route(Update{Kind: UpdateMedia, ChatID: 1, Media: MediaVoice, Duration: 7})
	if action.Kind != ActionAcknowledgeMedia {
		t.Fatalf("expected acknowledgment, got %v", action.Kind)
	}
	if action.Media != MediaVoice || action.Duration != 7 {
		t.Fatalf("unexpected action: %+v", action)
	}

	for _, kind := range []MediaKind{MediaUnknown, MediaKind("dice")} {
		action = Route(Update{Kind: UpdateMedia, ChatID: 1, Media: kind})
		if action.Kind != ActionRejectUnsupported {
			t.Fatalf("media=%q expected unsupported rejection, got %v", kind, action.Kind)
		}
	}
}

func TestRouteInvalid(t *testing.T) {
	t.Parallel()

	if action := Route(Update{}); action.Kind != ActionNone {
		t.Fatalf("expected ActionNone, got %v", action.Kind)
	}
}
