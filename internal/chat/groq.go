package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/aimatehq/aimate/internal/config"
)

// GroqClient talks to the Groq chat-completions endpoint, which speaks the
// OpenAI protocol.
type GroqClient struct {
	client  openai.Client
	timeout time.Duration
	logger  *slog.Logger
}

func NewGroqClient(log *slog.Logger, cfg config.GroqConfig) *GroqClient {
	if log == nil {
		log = slog.Default()
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultGroqBaseURL
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = config.DefaultTimeoutSeconds * time.Second
	}
	return &GroqClient{
		client: openai.NewClient(
			option.WithBaseURL(baseURL),
			option.WithAPIKey(cfg.APIKey),
		),
		timeout: timeout,
		logger:  log.With(slog.String("client", "groq")),
	}
}

// Complete implements Client. The call carries its own timeout so a slow
// completion cannot stall the whole invocation.
func (c *GroqClient) Complete(ctx context.Context, model string, messages []Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: toOpenAIMessages(messages),
	}
	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		c.logger.Error("chat completion failed", slog.String("model", model), slog.Any("error", err))
		return "", fmt.Errorf("%w: %v", ErrCompletionFailed, err)
	}
	if len(resp.Choices) == 0 {
		c.logger.Error("chat completion returned no choices", slog.String("model", model))
		return "", fmt.Errorf("%w: empty choices", ErrCompletionFailed)
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: empty content", ErrCompletionFailed)
	}
	return content, nil
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			result[i] = openai.SystemMessage(msg.Content)
		case RoleAssistant:
			result[i] = openai.AssistantMessage(msg.Content)
		default:
			result[i] = openai.UserMessage(msg.Content)
		}
	}
	return result
}
