// Package oracle provides the chat-completion client used for intent
// extraction. It talks to any OpenAI-compatible endpoint via a custom
// base URL and exposes only the minimal prompt-in, text-out contract.
package oracle

import (
	"context"
	"errors"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	apperrors "github.com/campusnav/hku-mapbot-go/internal/errors"
	"github.com/campusnav/hku-mapbot-go/internal/logger"
	"github.com/campusnav/hku-mapbot-go/internal/metrics"
)

// Completer is the abstract oracle contract: one prompt in, text out.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds oracle client settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client is an OpenAI-compatible chat completion client.
// It implements the Completer interface.
type Client struct {
	client  openai.Client
	model   string
	timeout time.Duration
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewClient creates a new oracle client.
// Returns nil if apiKey is empty (oracle disabled).
func NewClient(cfg Config, log *logger.Logger, m *metrics.Metrics) *Client {
	if cfg.APIKey == "" {
		return nil
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := openai.NewClient(
		option.WithBaseURL(cfg.BaseURL),
		option.WithAPIKey(cfg.APIKey),
	)

	return &Client{
		client:  client,
		model:   cfg.Model,
		timeout: timeout,
		log:     log.WithModule("oracle"),
		metrics: m,
	}
}

// Complete sends one prompt and returns the model's text reply.
// Safe to call on a nil receiver, which reports the oracle as unavailable.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c == nil {
		return "", apperrors.ErrOracleUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0.1), // Low temperature for consistent extraction
		MaxTokens:   openai.Int(512),
	}

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params)
	duration := time.Since(start)

	if err != nil {
		status := "error"
		if errors.Is(err, context.DeadlineExceeded) {
			status = "timeout"
		}
		c.metrics.RecordOracleRequest(status, duration.Seconds())
		c.log.WithError(err).WithField("duration_ms", duration.Milliseconds()).
			Warn("chat completion failed")
		return "", apperrors.NewOracleError(c.model, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		c.metrics.RecordOracleRequest("invalid_response", duration.Seconds())
		return "", apperrors.NewOracleError(c.model, errors.New("empty response from model"))
	}

	c.metrics.RecordOracleRequest("success", duration.Seconds())
	if resp.Usage.TotalTokens > 0 {
		c.log.WithFields(map[string]any{
			"input_tokens":  resp.Usage.PromptTokens,
			"output_tokens": resp.Usage.CompletionTokens,
			"duration_ms":   duration.Milliseconds(),
		}).Debug("chat completion done")
	}

	return resp.Choices[0].Message.Content, nil
}

// IsEnabled returns true if the oracle client is configured.
func (c *Client) IsEnabled() bool {
	return c != nil
}
