package dictionary

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
	"github.com/heartmarshall/lexinote-backend/internal/provider"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordRepo interface {
	GetBySpelling(ctx context.Context, spelling string) (*domain.Word, error)
	Upsert(ctx context.Context, w domain.Word) (int64, error)
	Search(ctx context.Context, prefix string, limit int) ([]domain.WordSummary, error)
	RandomForUser(ctx context.Context, userID int64) (domain.WordSummary, error)
	Random(ctx context.Context) (domain.WordSummary, error)
	GetByID(ctx context.Context, id int64) (*domain.Word, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type completer interface {
	Complete(ctx context.Context, req provider.CompletionRequest) (string, error)
}

type pronunciationProvider interface {
	FetchPronunciations(ctx context.Context, word string) (*provider.PronunciationResult, error)
}

// pronunciationTimeout bounds the optional pronunciation lookup so that a slow
// audio source never dominates a word completion.
const pronunciationTimeout = 5 * time.Second

// Service is the dictionary completion engine: it serves stored words and
// completes missing or incomplete ones through the completion provider.
type Service struct {
	log         *slog.Logger
	words       wordRepo
	tx          txManager
	llm         completer
	pronouncer  pronunciationProvider
	clock       clockwork.Clock
	completions singleflight.Group
}

// NewService creates a dictionary service. pronouncer may be nil, in which
// case phonetics come only from the completion provider.
func NewService(
	logger *slog.Logger,
	words wordRepo,
	tx txManager,
	llm completer,
	pronouncer pronunciationProvider,
	clock clockwork.Clock,
) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		log:        logger.With("service", "dictionary"),
		words:      words,
		tx:         tx,
		llm:        llm,
		pronouncer: pronouncer,
		clock:      clock,
	}
}
