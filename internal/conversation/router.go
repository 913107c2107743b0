package conversation

import "strings"

const modelCallbackPrefix = "model_"

// Route classifies an inbound update into an action. Precedence:
// model-selection callbacks, fixed callback tokens, commands, free text,
// then media. Route is pure; handlers perform all I/O.
func Route(u Update) Action {
	switch u.Kind {
	case UpdateCallback:
		return routeCallback(u)
	case UpdateCommand:
		return routeCommand(u)
	case UpdateText:
		return Action{Kind: ActionRespondToText, Text: u.Text}
	case UpdateMedia:
		if isKnownMedia(u.Media) {
			return Action{Kind: ActionAcknowledgeMedia, Media: u.Media, Duration: u.Duration}
		}
		return Action{Kind: ActionRejectUnsupported, Media: u.Media}
	default:
		return Action{Kind: ActionNone}
	}
}

func routeCallback(u Update) Action {
	data := strings.TrimSpace(u.CallbackData)
	if model, ok := strings.CutPrefix(data, modelCallbackPrefix); ok {
		return Action{Kind: ActionSetModel, Model: model}
	}
	switch data {
	case "conf":
		return Action{Kind: ActionShowModelMenu}
	case "menu":
		return Action{Kind: ActionShowQuickActions}
	case "summarize", "rewrite":
		return Action{Kind: ActionAnswerUnimplemented, Feature: data}
	default:
		return Action{Kind: ActionNone}
	}
}

func routeCommand(u Update) Action {
	switch strings.ToLower(strings.TrimSpace(u.Command)) {
	case "start":
		return Action{Kind: ActionShowWelcome}
	case "conf":
		return Action{Kind: ActionShowModelMenu}
	case "menu":
		return Action{Kind: ActionShowQuickActions}
	default:
		// The original dropped unknown commands on the floor; an explicit
		// reply is friendlier and makes typos visible.
		return Action{Kind: ActionUnknownCommand, Command: u.Command}
	}
}

func isKnownMedia(kind MediaKind) bool {
	for _, known := range KnownMediaKinds {
		if kind == known {
			return true
		}
	}
	return false
}
