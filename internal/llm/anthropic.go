package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicClient completes prompts against the Anthropic Messages API.
type AnthropicClient struct {
	client anthropic.Client
	model  string
}

func NewAnthropicClient(apiKey, model string) *AnthropicClient {
	return &AnthropicClient{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (a *AnthropicClient) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: int64(maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("messages.new: %w", err)
	}

	if len(msg.Content) == 0 {
		return "", fmt.Errorf("empty response (stop_reason: %s)", msg.StopReason)
	}
	text := strings.TrimSpace(msg.Content[0].Text)
	if text == "" {
		return "", fmt.Errorf("empty text in response (stop_reason: %s)", msg.StopReason)
	}

	return text, nil
}
