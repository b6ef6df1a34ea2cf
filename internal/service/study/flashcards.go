package study

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
	"github.com/heartmarshall/lexinote-backend/pkg/ctxutil"
)

// CreateFlashcard collects a word into the caller's review deck. Collecting a
// word twice returns the existing card.
func (s *Service) CreateFlashcard(ctx context.Context, input CreateFlashcardInput) (*domain.Flashcard, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	summary, err := s.words.GetSummary(ctx, input.WordID)
	if err != nil {
		return nil, fmt.Errorf("get word: %w", err)
	}

	if input.NotebookID != nil {
		if err := s.checkNotebook(ctx, userID, *input.NotebookID); err != nil {
			return nil, err
		}
	}

	card, created, err := s.cards.CreateIfAbsent(ctx, domain.Flashcard{
		UserID:         userID,
		WordID:         input.WordID,
		NotebookID:     input.NotebookID,
		Status:         domain.FlashcardStatusNew,
		Proficiency:    0,
		NextReviewDate: s.clock.Now(),
		Source:         domain.FlashcardSource(input.Source),
	})
	if err != nil {
		return nil, fmt.Errorf("create flashcard: %w", err)
	}

	card.Word = &domain.Word{ID: summary.ID, Spelling: summary.Spelling}

	if created {
		s.log.InfoContext(ctx, "flashcard created",
			slog.Int64("user_id", userID),
			slog.Int64("flashcard_id", card.ID),
			slog.String("word", summary.Spelling),
		)
	}

	return card, nil
}

// ListDue returns the caller's cards due now, most overdue first and weaker
// cards first among equally overdue ones. Each card carries its word with
// ordered senses.
func (s *Service) ListDue(ctx context.Context, input DueInput) ([]domain.Flashcard, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	filter := domain.DueFilter{
		UserID: userID,
		Now:    s.clock.Now(),
		Limit:  s.clampLimit(input.Limit),
	}

	// recent mode ignores the notebook; notebook mode without an id is unfiltered.
	if domain.DueMode(input.Mode) == domain.DueModeNotebook && input.NotebookID != nil {
		if err := s.checkNotebook(ctx, userID, *input.NotebookID); err != nil {
			return nil, err
		}
		filter.NotebookID = input.NotebookID
	}

	cards, err := s.cards.ListDue(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list due flashcards: %w", err)
	}

	if err := s.attachSenses(ctx, cards); err != nil {
		return nil, err
	}

	return cards, nil
}

// ListFlashcards returns all of the caller's cards, newest first.
func (s *Service) ListFlashcards(ctx context.Context) ([]domain.Flashcard, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	cards, err := s.cards.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list flashcards: %w", err)
	}
	return cards, nil
}

// DeleteFlashcard removes one of the caller's cards.
func (s *Service) DeleteFlashcard(ctx context.Context, id int64) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if id <= 0 {
		return domain.NewValidationError("id", "required")
	}

	if _, err := s.ownedCard(ctx, userID, id); err != nil {
		return err
	}

	if err := s.cards.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete flashcard: %w", err)
	}

	s.log.InfoContext(ctx, "flashcard deleted", slog.Int64("user_id", userID), slog.Int64("flashcard_id", id))
	return nil
}

func (s *Service) checkNotebook(ctx context.Context, userID, notebookID int64) error {
	nb, err := s.notebooks.GetByID(ctx, notebookID)
	if err != nil {
		return fmt.Errorf("get notebook: %w", err)
	}
	if nb.UserID != userID {
		return domain.ErrForbidden
	}
	return nil
}

func (s *Service) attachSenses(ctx context.Context, cards []domain.Flashcard) error {
	words := make([]*domain.Word, 0, len(cards))
	for i := range cards {
		if cards[i].Word != nil {
			words = append(words, cards[i].Word)
		}
	}
	if len(words) == 0 {
		return nil
	}
	if err := s.words.LoadSenses(ctx, words); err != nil {
		return fmt.Errorf("load senses: %w", err)
	}
	return nil
}

// clampLimit applies the default for 0 and caps at the configured maximum.
func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		return s.cfg.DefaultDueLimit
	}
	if limit > s.cfg.MaxDueLimit {
		return s.cfg.MaxDueLimit
	}
	return limit
}
