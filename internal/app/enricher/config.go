package enricher

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds enricher pipeline settings.
type Config struct {
	WordListPath string `yaml:"word_list_path" env:"ENRICH_WORD_LIST_PATH"`
	Concurrency  int    `yaml:"concurrency"    env:"ENRICH_CONCURRENCY"    env-default:"4"`
	MaxFailures  int    `yaml:"max_failures"   env:"ENRICH_MAX_FAILURES"   env-default:"20"`
}

// LoadConfig reads enricher config from YAML or environment variables.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("enrich config: file %s not found", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("enrich config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("enrich config: read env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("enrich config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.WordListPath == "" {
		return errors.New("word_list_path is required")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be >= 1 (got %d)", c.Concurrency)
	}
	if c.MaxFailures < 0 {
		return fmt.Errorf("max_failures must be >= 0 (got %d)", c.MaxFailures)
	}
	return nil
}
