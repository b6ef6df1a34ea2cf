package study

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
	"github.com/heartmarshall/lexinote-backend/pkg/ctxutil"
)

// Review applies a review outcome to the caller's flashcard. A remembered
// review that reaches the mastery threshold deletes the card and returns
// Mastered=true. Concurrent reviews of one card are last-write-wins.
func (s *Service) Review(ctx context.Context, input ReviewInput) (*ReviewResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	card, err := s.ownedCard(ctx, userID, input.FlashcardID)
	if err != nil {
		return nil, err
	}

	outcome, ok := domain.ParseReviewOutcome(input.Result)
	if !ok {
		return nil, domain.NewValidationError("result", "must be remembered or forgotten")
	}

	now := s.clock.Now()
	next, mastered := Schedule(*card, outcome, now, s.cfg.MasteryThreshold)

	if mastered {
		if err := s.cards.Delete(ctx, userID, card.ID); err != nil {
			return nil, fmt.Errorf("delete mastered flashcard: %w", err)
		}
		s.log.InfoContext(ctx, "flashcard mastered",
			slog.Int64("user_id", userID),
			slog.Int64("flashcard_id", card.ID),
			slog.Int64("word_id", card.WordID),
		)
		return &ReviewResult{Flashcard: &next, Mastered: true}, nil
	}

	updated, err := s.cards.UpdateReview(ctx, next)
	if err != nil {
		return nil, fmt.Errorf("update flashcard: %w", err)
	}

	s.log.InfoContext(ctx, "flashcard reviewed",
		slog.Int64("user_id", userID),
		slog.Int64("flashcard_id", card.ID),
		slog.String("outcome", outcome.String()),
		slog.Int("proficiency", updated.Proficiency),
	)

	return &ReviewResult{Flashcard: updated}, nil
}

// ownedCard loads a card and checks it belongs to userID.
func (s *Service) ownedCard(ctx context.Context, userID, id int64) (*domain.Flashcard, error) {
	card, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get flashcard: %w", err)
	}
	if card.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return card, nil
}
