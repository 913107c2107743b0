package conversation

import (
	"fmt"
	"strings"
)

func welcomeText(defaultModel string) string {
	return fmt.Sprintf(
		"Welcome to AI Mate LLM Bot!\n\n"+
			"The current model is set to %s\n\n"+
			"Use the /conf command to change the model.\n\n"+
			"Feel free to ask anything. Let's talk!",
		defaultModel,
	)
}

const (
	chooseModelText    = "Choose the model for the conversation:"
	quickActionText    = "Choose a Quick Action:"
	completionFailText = "Sorry, I could not come up with a reply just now. Please try again."
	somethingWrongText = "Sorry, something went wrong. Please try again."
)

func modelSetText(model string) string {
	return fmt.Sprintf("The model has been set to %s.\n\nLet's talk!", model)
}

func modelSetAckText(model string) string {
	return "Model changed to " + model
}

func invalidModelText(model string) string {
	return fmt.Sprintf("Sorry, %q is not one of the supported models.", model)
}

func unimplementedText(feature string) string {
	switch feature {
	case "summarize":
		return "Summarization feature is coming soon. Come back later."
	case "rewrite":
		return "Rewrite feature is coming soon. Come back later."
	default:
		return fmt.Sprintf("The %s feature is coming soon. Come back later.", feature)
	}
}

func unknownCommandText(command string) string {
	return fmt.Sprintf("Unknown command /%s. Try /start, /conf or /menu.", command)
}

func mediaAckText(kind MediaKind, duration int) string {
	switch kind {
	case MediaAudio:
		return fmt.Sprintf("Received an audio message with duration %d seconds.", duration)
	case MediaVideo:
		return fmt.Sprintf("Received a video message with duration %d seconds.", duration)
	case MediaVoice:
		return fmt.Sprintf("Received a voice message with duration %d seconds.", duration)
	case MediaVideoNote:
		return fmt.Sprintf("Received a video note message with duration %d seconds.", duration)
	default:
		return fmt.Sprintf("Received a %s message.", kind)
	}
}

func unsupportedMediaText() string {
	kinds := make([]string, 0, len(KnownMediaKinds)+1)
	kinds = append(kinds, "text")
	for _, kind := range KnownMediaKinds {
		kinds = append(kinds, string(kind))
	}
	return "Unsupported message type. Sorry, I can only process the following types of messages:\n\n" +
		strings.Join(kinds, "\n")
}
