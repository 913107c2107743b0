package conversation

import "github.com/aimatehq/aimate/internal/chat"

// BuildContext assembles the bounded message list sent to the completion
// endpoint: the persona system message, the last window user-role turns
// from history, and the new user message last. The window is independent
// of (and smaller than) the retention cap, so request size stays bounded
// no matter how large the stored history grows.
func BuildContext(persona string, history []chat.Message, text string, window int) []chat.Message {
	userTurns := make([]chat.Message, 0, window)
	for _, msg := range history {
		if msg.Role == chat.RoleUser {
			userTurns = append(userTurns, msg)
		}
	}
	if window > 0 && len(userTurns) > window {
		userTurns = userTurns[len(userTurns)-window:]
	}

	messages := make([]chat.Message, 0, len(userTurns)+2)
	messages = append(messages, chat.Message{Role: chat.RoleSystem, Content: persona})
	messages = append(messages, userTurns...)
	messages = append(messages, chat.Message{Role: chat.RoleUser, Content: text})
	return messages
}
