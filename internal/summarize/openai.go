// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/pdiddy/paper-digest/pkg/types"
)

const (
	// DefaultModel is the chat model used when none is configured.
	DefaultModel = "gemini-2.0-flash"

	// DefaultBaseURL is Gemini's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
)

// ErrMissingAPIKey is returned when a completion is requested without a key.
var ErrMissingAPIKey = errors.New("LLM API key not set")

// OpenAIBackend calls an OpenAI-compatible chat completions endpoint with a
// single user message at temperature 0. SDK retries are disabled.
type OpenAIBackend struct {
	Model   string
	APIKey  string
	BaseURL string
}

// NewOpenAIBackend returns a backend for cfg, filling in defaults.
func NewOpenAIBackend(cfg types.AIConfig) *OpenAIBackend {
	b := &OpenAIBackend{Model: cfg.Model, APIKey: cfg.APIKey, BaseURL: cfg.BaseURL}
	if b.Model == "" {
		b.Model = DefaultModel
	}
	if b.BaseURL == "" {
		b.BaseURL = DefaultBaseURL
	}
	return b
}

// Complete implements Completer.
func (b *OpenAIBackend) Complete(ctx context.Context, prompt string) (string, error) {
	if b.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	client := openai.NewClient(
		option.WithAPIKey(b.APIKey),
		option.WithBaseURL(b.BaseURL),
		option.WithMaxRetries(0),
	)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(b.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion (%s): %w", b.Model, err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
