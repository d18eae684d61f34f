package openai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
)

// Config for the OpenAI client.
type Config struct {
	APIKey      string
	Model       string  // default "gpt-4o-mini"
	Temperature float32 // 0..2
}

// Client implements llm.Extractor over the OpenAI chat completions API.
type Client struct {
	cfg    Config
	client *openai.Client
	log    *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	return &Client{
		cfg:    cfg,
		client: openai.NewClient(cfg.APIKey),
		log:    logger,
	}
}

// Infer sends one chat turn and returns the raw assistant message content.
func (c *Client) Infer(ctx context.Context, prompt string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.openai.request", "req_id", rid, "model", c.cfg.Model, "prompt_len", len(prompt))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		c.log.Error("llm.openai.error", "req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return "", fmt.Errorf("openai error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in openai response")
	}

	c.log.Info("llm.openai.response", "req_id", rid,
		"elapsed_ms", time.Since(start).Milliseconds())
	return resp.Choices[0].Message.Content, nil
}
