package chat

import (
	"context"
	"errors"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a chat message
type Message struct {
	Role    string `json:"role"` // user, assistant, system
	Content string `json:"content"`
}

// ErrCompletionFailed covers every downstream completion failure: network
// errors, non-2xx responses and unparseable bodies all collapse into it.
var ErrCompletionFailed = errors.New("completion failed")

// Client produces a completion for an ordered message list against a
// specific model. Implementations must wrap failures in ErrCompletionFailed.
type Client interface {
	Complete(ctx context.Context, model string, messages []Message) (string, error)
}
