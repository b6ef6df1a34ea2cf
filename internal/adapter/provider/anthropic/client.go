package anthropic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/lexinote-backend/internal/config"
	"github.com/heartmarshall/lexinote-backend/internal/provider"
)

// Client is a text completion provider backed by the Anthropic Messages API.
// It does not generate images.
type Client struct {
	api     sdk.Client
	model   string
	timeout time.Duration
	log     *slog.Logger
}

// NewClient creates a Client from the LLM configuration.
func NewClient(cfg config.LLMConfig, logger *slog.Logger) *Client {
	return newClient(cfg, logger, option.WithAPIKey(cfg.AnthropicAPIKey))
}

// NewClientWithURL creates a Client against a custom API base URL (for testing).
func NewClientWithURL(baseURL string, cfg config.LLMConfig, logger *slog.Logger) *Client {
	return newClient(cfg, logger,
		option.WithAPIKey(cfg.AnthropicAPIKey),
		option.WithBaseURL(baseURL),
	)
}

func newClient(cfg config.LLMConfig, logger *slog.Logger, opts ...option.RequestOption) *Client {
	// The SDK retries twice unless told otherwise.
	opts = append(opts, option.WithMaxRetries(max(cfg.RetryAttempts, 0)))
	return &Client{
		api:     sdk.NewClient(opts...),
		model:   cfg.AnthropicModel,
		timeout: cfg.ChatTimeout,
		log:     logger.With("adapter", "anthropic"),
	}
}

// Complete sends the conversation to Claude and returns the concatenated text blocks.
func (c *Client) Complete(ctx context.Context, req provider.CompletionRequest) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	params := sdk.MessageNewParams{
		Model:       sdk.Model(c.model),
		MaxTokens:   int64(req.MaxTokens),
		Temperature: sdk.Float(req.Temperature),
	}
	if params.MaxTokens <= 0 {
		params.MaxTokens = 2048
	}
	if system := req.System(); system != "" {
		params.System = []sdk.TextBlockParam{{Text: system}}
	}
	for _, m := range req.Messages {
		switch m.Role {
		case provider.RoleUser:
			params.Messages = append(params.Messages, sdk.NewUserMessage(sdk.NewTextBlock(m.Content)))
		case provider.RoleAssistant:
			params.Messages = append(params.Messages, sdk.NewAssistantMessage(sdk.NewTextBlock(m.Content)))
		}
	}
	if len(params.Messages) == 0 {
		return "", errors.New("anthropic: no user messages")
	}

	start := time.Now()
	msg, err := c.api.Messages.New(ctx, params)
	if err != nil {
		c.log.ErrorContext(ctx, "messages call failed",
			slog.String("model", c.model),
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("anthropic: messages: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", errors.New("anthropic: empty response")
	}

	c.log.DebugContext(ctx, "messages call",
		slog.String("model", c.model),
		slog.Duration("duration", time.Since(start)),
		slog.Int("content_len", len(text)),
	)
	return text, nil
}
