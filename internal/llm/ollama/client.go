package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Config for the Ollama chat client.
type Config struct {
	Endpoint string        // default http://localhost:11434/api/chat
	Model    string        // default "llama3.2"
	Timeout  time.Duration // default 45s
}

// Client talks to a local Ollama instance and implements llm.Extractor.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "http://localhost:11434/api/chat"
	}
	if cfg.Model == "" {
		cfg.Model = "llama3.2"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger,
	}
}

// Infer sends one chat turn and returns the raw assistant message content.
func (c *Client) Infer(ctx context.Context, prompt string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	body := map[string]any{
		"model":  c.cfg.Model,
		"stream": false,
		"messages": []map[string]any{
			{"role": "user", "content": prompt},
		},
	}
	bs, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(bs))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Info("llm.ollama.request", "req_id", rid, "model", c.cfg.Model, "content_length", len(bs))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("llm.ollama.send_error", "req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return "", err
	}
	defer func(body io.ReadCloser) {
		if cerr := body.Close(); cerr != nil {
			c.log.Warn("llm.ollama.body_close_error", "req_id", rid, "error", cerr)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)

	c.log.Info("llm.ollama.response", "req_id", rid, "status", resp.StatusCode,
		"bytes", len(raw), "elapsed_ms", time.Since(start).Milliseconds())

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("ollama status %d: %s", resp.StatusCode, raw)
	}

	var out struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}
	return out.Message.Content, nil
}
