package article

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
	"github.com/heartmarshall/lexinote-backend/internal/provider"
)

type completer interface {
	Complete(ctx context.Context, req provider.CompletionRequest) (string, error)
}

type articleCache interface {
	Get(key string) (domain.Article, bool)
	Set(key string, value domain.Article, ttl time.Duration)
}

// Service generates practice articles around a word list and caches them
// per user, level and word set.
type Service struct {
	log   *slog.Logger
	llm   completer
	cache articleCache
	ttl   time.Duration
}

// NewService creates an article service. ttl is how long a generated article
// is served from the cache.
func NewService(logger *slog.Logger, llm completer, cache articleCache, ttl time.Duration) *Service {
	return &Service{
		log:   logger.With("service", "article"),
		llm:   llm,
		cache: cache,
		ttl:   ttl,
	}
}
