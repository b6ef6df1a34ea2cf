package siliconflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/heartmarshall/lexinote-backend/internal/config"
	"github.com/heartmarshall/lexinote-backend/internal/provider"
)

// Client talks to the SiliconFlow OpenAI-compatible API for chat
// completions and text-to-image generation.
type Client struct {
	http          *resty.Client
	chatModel     string
	imageModel    string
	chatTimeout   time.Duration
	imageTimeout  time.Duration
	retryAttempts uint
	retryDelay    time.Duration
	log           *slog.Logger
}

// NewClient creates a Client from the LLM configuration.
func NewClient(cfg config.LLMConfig, logger *slog.Logger) *Client {
	attempts := cfg.RetryAttempts
	if attempts < 0 {
		attempts = 0
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Authorization", "Bearer "+cfg.APIKey).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:          httpClient,
		chatModel:     cfg.ChatModel,
		imageModel:    cfg.ImageModel,
		chatTimeout:   cfg.ChatTimeout,
		imageTimeout:  cfg.ImageTimeout,
		retryAttempts: uint(attempts),
		retryDelay:    500 * time.Millisecond,
		log:           logger.With("adapter", "siliconflow"),
	}
}

// Close releases idle connections held by the underlying HTTP client.
func (c *Client) Close() error {
	return c.http.Close()
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type imageRequest struct {
	Model             string  `json:"model"`
	Prompt            string  `json:"prompt"`
	NegativePrompt    string  `json:"negative_prompt,omitempty"`
	ImageSize         string  `json:"image_size,omitempty"`
	BatchSize         int     `json:"batch_size,omitempty"`
	NumInferenceSteps int     `json:"num_inference_steps,omitempty"`
	GuidanceScale     float64 `json:"guidance_scale,omitempty"`
}

type imageResponse struct {
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
}

// statusError is returned when the API answers with a non-2xx status.
type statusError struct {
	Status int
	Body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Status, truncate(e.Body, 300))
}

// Complete sends a chat completion and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, req provider.CompletionRequest) (string, error) {
	body := chatRequest{
		Model:       c.chatModel,
		Messages:    make([]chatMessage, 0, len(req.Messages)),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	for _, m := range req.Messages {
		body.Messages = append(body.Messages, chatMessage{Role: string(m.Role), Content: m.Content})
	}

	start := time.Now()
	var content string
	err := c.withRetry(ctx, "chat", func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, c.chatTimeout)
		defer cancel()

		resp, err := c.http.R().
			SetContext(ctx).
			SetBody(body).
			SetResult(&chatResponse{}).
			Post("/chat/completions")
		if err != nil {
			return err
		}
		if resp.IsError() {
			return &statusError{Status: resp.StatusCode(), Body: resp.String()}
		}

		out, ok := resp.Result().(*chatResponse)
		if !ok || out == nil || len(out.Choices) == 0 {
			return retry.Unrecoverable(errors.New("empty choices"))
		}
		content = strings.TrimSpace(out.Choices[0].Message.Content)
		if content == "" {
			return retry.Unrecoverable(errors.New("empty content"))
		}
		return nil
	})
	if err != nil {
		c.log.ErrorContext(ctx, "chat completion failed",
			slog.String("model", c.chatModel),
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("siliconflow: chat completion: %w", err)
	}

	c.log.DebugContext(ctx, "chat completion",
		slog.String("model", c.chatModel),
		slog.Duration("duration", time.Since(start)),
		slog.Int("content_len", len(content)),
	)
	return content, nil
}

// GenerateImage requests a single image and returns its URL.
func (c *Client) GenerateImage(ctx context.Context, req provider.ImageRequest) (string, error) {
	body := imageRequest{
		Model:             c.imageModel,
		Prompt:            req.Prompt,
		NegativePrompt:    req.NegativePrompt,
		ImageSize:         req.Size,
		BatchSize:         req.BatchSize,
		NumInferenceSteps: req.Steps,
		GuidanceScale:     req.GuidanceScale,
	}

	start := time.Now()
	var url string
	err := c.withRetry(ctx, "image", func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, c.imageTimeout)
		defer cancel()

		resp, err := c.http.R().
			SetContext(ctx).
			SetBody(body).
			SetResult(&imageResponse{}).
			Post("/images/generations")
		if err != nil {
			return err
		}
		if resp.IsError() {
			return &statusError{Status: resp.StatusCode(), Body: resp.String()}
		}

		out, ok := resp.Result().(*imageResponse)
		if !ok || out == nil || len(out.Images) == 0 || out.Images[0].URL == "" {
			return retry.Unrecoverable(errors.New("no image url in response"))
		}
		url = out.Images[0].URL
		return nil
	})
	if err != nil {
		c.log.ErrorContext(ctx, "image generation failed",
			slog.String("model", c.imageModel),
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("siliconflow: image generation: %w", err)
	}

	c.log.DebugContext(ctx, "image generation",
		slog.String("model", c.imageModel),
		slog.Duration("duration", time.Since(start)),
	)
	return url, nil
}

func (c *Client) withRetry(ctx context.Context, op string, fn func(context.Context) error) error {
	return retry.Do(
		func() error {
			err := fn(ctx)
			if err != nil && !isRetryable(err) {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(c.retryAttempts+1),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.log.WarnContext(ctx, "siliconflow retry",
				slog.String("op", op),
				slog.Uint64("attempt", uint64(n+1)),
				slog.String("reason", err.Error()),
			)
		}),
	)
}

// isRetryable reports whether err is worth another attempt: server errors,
// rate limiting and transport failures other than cancellation.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.Status >= http.StatusInternalServerError || se.Status == http.StatusTooManyRequests
	}
	return true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
