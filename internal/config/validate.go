package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}

	if c.Cache.ArticleTTL <= 0 || c.Cache.ImageTTL <= 0 {
		return errors.New("cache: ttl values must be > 0")
	}

	if err := c.Study.validate(); err != nil {
		return fmt.Errorf("study: %w", err)
	}

	if c.RateLimit.GeneratePerMinute <= 0 {
		return fmt.Errorf("rate_limit.generate_per_minute must be > 0 (got %d)", c.RateLimit.GeneratePerMinute)
	}

	return nil
}

func (l *LLMConfig) validate() error {
	l.Provider = strings.ToLower(strings.TrimSpace(l.Provider))

	switch l.Provider {
	case ProviderSiliconFlow:
		if l.BaseURL == "" {
			return errors.New("base_url is required")
		}
	case ProviderAnthropic:
		if l.AnthropicAPIKey == "" {
			return errors.New("anthropic_api_key is required for the anthropic provider")
		}
	default:
		return fmt.Errorf("unknown provider %q", l.Provider)
	}

	if l.ChatTimeout <= 0 || l.ImageTimeout <= 0 {
		return errors.New("timeouts must be > 0")
	}
	if l.RetryAttempts < 0 {
		return fmt.Errorf("retry_attempts must be >= 0 (got %d)", l.RetryAttempts)
	}

	return nil
}

func (s StudyConfig) validate() error {
	if s.MasteryThreshold < 1 {
		return fmt.Errorf("mastery_threshold must be >= 1 (got %d)", s.MasteryThreshold)
	}
	if s.DefaultDueLimit < 1 {
		return fmt.Errorf("default_due_limit must be >= 1 (got %d)", s.DefaultDueLimit)
	}
	if s.MaxDueLimit < s.DefaultDueLimit {
		return fmt.Errorf("max_due_limit (%d) must be >= default_due_limit (%d)", s.MaxDueLimit, s.DefaultDueLimit)
	}
	return nil
}
