package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
	t.Setenv("AUTH_JWT_SECRET", "this-is-a-very-long-jwt-secret-for-testing-32+")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10

auth:
  jwt_secret: "this-is-a-very-long-jwt-secret-for-testing-32+"

llm:
  provider: "siliconflow"
  api_key: "sk-test"
  chat_model: "Qwen/Qwen2.5-7B-Instruct"
  chat_timeout: "30s"

cache:
  article_ttl: "10m"
  image_ttl: "2h"

study:
  mastery_threshold: 6
  default_due_limit: 15

log:
  level: "debug"
  format: "text"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Server
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}

	// Database
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}

	// LLM
	if cfg.LLM.ChatModel != "Qwen/Qwen2.5-7B-Instruct" {
		t.Errorf("llm.chat_model = %q", cfg.LLM.ChatModel)
	}
	if cfg.LLM.ChatTimeout != 30*time.Second {
		t.Errorf("llm.chat_timeout = %v, want 30s", cfg.LLM.ChatTimeout)
	}
	if cfg.LLM.ImageTimeout != 120*time.Second {
		t.Errorf("llm.image_timeout = %v, want 120s (default)", cfg.LLM.ImageTimeout)
	}
	if cfg.LLM.ImageModel != "Kwai-Kolors/Kolors" {
		t.Errorf("llm.image_model = %q", cfg.LLM.ImageModel)
	}

	// Cache
	if cfg.Cache.ArticleTTL != 10*time.Minute {
		t.Errorf("cache.article_ttl = %v, want 10m", cfg.Cache.ArticleTTL)
	}
	if cfg.Cache.ImageTTL != 2*time.Hour {
		t.Errorf("cache.image_ttl = %v, want 2h", cfg.Cache.ImageTTL)
	}

	// Study
	if cfg.Study.MasteryThreshold != 6 {
		t.Errorf("study.mastery_threshold = %d, want 6", cfg.Study.MasteryThreshold)
	}
	if cfg.Study.MaxDueLimit != 100 {
		t.Errorf("study.max_due_limit = %d, want 100 (default)", cfg.Study.MaxDueLimit)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("CACHE_ARTICLE_TTL", "1m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Cache.ArticleTTL != time.Minute {
		t.Errorf("cache.article_ttl = %v, want 1m (ENV override)", cfg.Cache.ArticleTTL)
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")

	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Cache.ArticleTTL != 5*time.Minute {
		t.Errorf("cache.article_ttl = %v, want 5m (default)", cfg.Cache.ArticleTTL)
	}
	if cfg.Cache.ImageTTL != 60*time.Minute {
		t.Errorf("cache.image_ttl = %v, want 60m (default)", cfg.Cache.ImageTTL)
	}
	if cfg.Study.MasteryThreshold != 5 {
		t.Errorf("study.mastery_threshold = %d, want 5 (default)", cfg.Study.MasteryThreshold)
	}
	if cfg.Study.DefaultDueLimit != 20 {
		t.Errorf("study.default_due_limit = %d, want 20 (default)", cfg.Study.DefaultDueLimit)
	}
	if cfg.LLM.RetryAttempts != 0 {
		t.Errorf("llm.retry_attempts = %d, want 0 (default)", cfg.LLM.RetryAttempts)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "jwt secret too short", mutate: func(c *Config) { c.Auth.JWTSecret = "short" }, wantErr: true},
		{name: "jwt secret empty", mutate: func(c *Config) { c.Auth.JWTSecret = "" }, wantErr: true},
		{name: "unknown provider", mutate: func(c *Config) { c.LLM.Provider = "openai" }, wantErr: true},
		{name: "provider is case insensitive", mutate: func(c *Config) { c.LLM.Provider = " SiliconFlow " }},
		{name: "anthropic without key", mutate: func(c *Config) { c.LLM.Provider = ProviderAnthropic }, wantErr: true},
		{name: "anthropic with key", mutate: func(c *Config) {
			c.LLM.Provider = ProviderAnthropic
			c.LLM.AnthropicAPIKey = "key"
		}},
		{name: "siliconflow without base url", mutate: func(c *Config) { c.LLM.BaseURL = "" }, wantErr: true},
		{name: "zero chat timeout", mutate: func(c *Config) { c.LLM.ChatTimeout = 0 }, wantErr: true},
		{name: "negative retries", mutate: func(c *Config) { c.LLM.RetryAttempts = -1 }, wantErr: true},
		{name: "zero article ttl", mutate: func(c *Config) { c.Cache.ArticleTTL = 0 }, wantErr: true},
		{name: "zero image ttl", mutate: func(c *Config) { c.Cache.ImageTTL = 0 }, wantErr: true},
		{name: "mastery threshold zero", mutate: func(c *Config) { c.Study.MasteryThreshold = 0 }, wantErr: true},
		{name: "due limit zero", mutate: func(c *Config) { c.Study.DefaultDueLimit = 0 }, wantErr: true},
		{name: "max limit below default", mutate: func(c *Config) { c.Study.MaxDueLimit = 10 }, wantErr: true},
		{name: "rate limit zero", mutate: func(c *Config) { c.RateLimit.GeneratePerMinute = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

// validConfig returns a Config that passes all validation checks.
func validConfig() Config {
	return Config{
		Auth: AuthConfig{
			JWTSecret: "this-is-a-very-long-jwt-secret-for-testing-32+",
		},
		LLM: LLMConfig{
			Provider:     ProviderSiliconFlow,
			BaseURL:      "https://api.siliconflow.cn/v1",
			ChatTimeout:  60 * time.Second,
			ImageTimeout: 120 * time.Second,
		},
		Cache: CacheConfig{
			ArticleTTL: 5 * time.Minute,
			ImageTTL:   60 * time.Minute,
		},
		Study: StudyConfig{
			MasteryThreshold: 5,
			DefaultDueLimit:  20,
			MaxDueLimit:      100,
		},
		RateLimit: RateLimitConfig{
			GeneratePerMinute: 30,
			CleanupInterval:   5 * time.Minute,
		},
	}
}
