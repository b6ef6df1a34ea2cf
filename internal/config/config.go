package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	LLM       LLMConfig       `yaml:"llm"`
	Cache     CacheConfig     `yaml:"cache"`
	Study     StudyConfig     `yaml:"study"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"150s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds access token settings. Tokens are issued elsewhere;
// this service only verifies them.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"lexinote"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"168h"`
}

// LLM provider names.
const (
	ProviderSiliconFlow = "siliconflow"
	ProviderAnthropic   = "anthropic"
)

// LLMConfig holds text completion and image generation settings.
type LLMConfig struct {
	Provider      string        `yaml:"provider"       env:"LLM_PROVIDER"       env-default:"siliconflow"`
	BaseURL       string        `yaml:"base_url"       env:"LLM_BASE_URL"       env-default:"https://api.siliconflow.cn/v1"`
	APIKey        string        `yaml:"api_key"        env:"LLM_API_KEY"`
	ChatModel     string        `yaml:"chat_model"     env:"LLM_CHAT_MODEL"     env-default:"deepseek-ai/DeepSeek-R1-0528-Qwen3-8B"`
	ImageModel    string        `yaml:"image_model"    env:"LLM_IMAGE_MODEL"    env-default:"Kwai-Kolors/Kolors"`
	ChatTimeout   time.Duration `yaml:"chat_timeout"   env:"LLM_CHAT_TIMEOUT"   env-default:"60s"`
	ImageTimeout  time.Duration `yaml:"image_timeout"  env:"LLM_IMAGE_TIMEOUT"  env-default:"120s"`
	RetryAttempts int           `yaml:"retry_attempts" env:"LLM_RETRY_ATTEMPTS" env-default:"0"`

	AnthropicAPIKey string `yaml:"anthropic_api_key" env:"ANTHROPIC_API_KEY"`
	AnthropicModel  string `yaml:"anthropic_model"   env:"ANTHROPIC_MODEL"   env-default:"claude-3-5-haiku-latest"`
}

// CacheConfig holds TTLs of the in-memory generation caches.
type CacheConfig struct {
	ArticleTTL time.Duration `yaml:"article_ttl" env:"CACHE_ARTICLE_TTL" env-default:"5m"`
	ImageTTL   time.Duration `yaml:"image_ttl"   env:"CACHE_IMAGE_TTL"   env-default:"60m"`
}

// StudyConfig holds flashcard scheduling parameters.
type StudyConfig struct {
	MasteryThreshold int `yaml:"mastery_threshold" env:"STUDY_MASTERY_THRESHOLD" env-default:"5"`
	DefaultDueLimit  int `yaml:"default_due_limit" env:"STUDY_DEFAULT_DUE_LIMIT" env-default:"20"`
	MaxDueLimit      int `yaml:"max_due_limit"     env:"STUDY_MAX_DUE_LIMIT"     env-default:"100"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig limits requests that reach the LLM.
type RateLimitConfig struct {
	GeneratePerMinute int           `yaml:"generate_per_minute" env:"RATE_LIMIT_GENERATE_PER_MINUTE" env-default:"30"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP_INTERVAL"    env-default:"5m"`
}
