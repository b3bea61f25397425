package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
)

const SystemPrompt = "You are a helpful assistant for refinancing loans."

var ErrEmptyCompletion = errors.New("completion returned no choices")

// Client asks the chat-completion API for a single reply.
type Client struct {
	api   *goopenai.Client
	model string
}

func NewClient(apiKey, model, baseURL string, timeout time.Duration) *Client {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	if model == "" {
		model = goopenai.GPT3Dot5Turbo
	}

	return &Client{
		api:   goopenai.NewClientWithConfig(cfg),
		model: model,
	}
}

// Complete sends userText as the only user turn after the fixed system prompt
// and returns the trimmed first choice.
func (c *Client) Complete(ctx context.Context, userText string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: goopenai.ChatMessageRoleUser, Content: userText},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
