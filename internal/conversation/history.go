package conversation

import "github.com/aimatehq/aimate/internal/chat"

// AppendExchange appends a user/assistant pair to history and truncates
// from the front so the result never exceeds limit. Eviction is purely
// positional: oldest entries drop first. The operation is not idempotent;
// at-most-once delivery of updates is the transport's responsibility.
func AppendExchange(history []chat.Message, userMsg, assistantMsg chat.Message, limit int) []chat.Message {
	merged := make([]chat.Message, 0, len(history)+2)
	merged = append(merged, history...)
	merged = append(merged, userMsg, assistantMsg)
	if limit > 0 && len(merged) > limit {
		merged = merged[len(merged)-limit:]
	}
	return merged
}
