package study

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/lexinote-backend/internal/config"
	"github.com/heartmarshall/lexinote-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type flashcardRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Flashcard, error)
	ListDue(ctx context.Context, filter domain.DueFilter) ([]domain.Flashcard, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Flashcard, error)
	CreateIfAbsent(ctx context.Context, f domain.Flashcard) (*domain.Flashcard, bool, error)
	UpdateReview(ctx context.Context, f domain.Flashcard) (*domain.Flashcard, error)
	Delete(ctx context.Context, userID, id int64) error
}

type wordRepo interface {
	GetSummary(ctx context.Context, id int64) (domain.WordSummary, error)
	LoadSenses(ctx context.Context, words []*domain.Word) error
}

type notebookRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Notebook, error)
}

// Service schedules flashcard reviews and manages the user's cards.
type Service struct {
	log       *slog.Logger
	cards     flashcardRepo
	words     wordRepo
	notebooks notebookRepo
	clock     clockwork.Clock
	cfg       config.StudyConfig
}

// NewService creates a study service. A nil clock means the real clock.
func NewService(
	logger *slog.Logger,
	cards flashcardRepo,
	words wordRepo,
	notebooks notebookRepo,
	clock clockwork.Clock,
	cfg config.StudyConfig,
) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		log:       logger.With("service", "study"),
		cards:     cards,
		words:     words,
		notebooks: notebooks,
		clock:     clock,
		cfg:       cfg,
	}
}
