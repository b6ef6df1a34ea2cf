package study

import (
	"time"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
)

// IntervalDays is the review offset after reaching proficiency p (p >= 1):
// 1, 2, 4, 8 ... days.
func IntervalDays(p int) int {
	if p < 1 {
		return 0
	}
	return 1 << (p - 1)
}

// Schedule applies a review outcome to a card and returns the new state.
// mastered is true when a remembered review brings proficiency to the
// threshold; the caller must then delete the card instead of saving it.
func Schedule(card domain.Flashcard, outcome domain.ReviewOutcome, now time.Time, threshold int) (next domain.Flashcard, mastered bool) {
	next = card
	reviewedAt := now
	next.LastReviewedAt = &reviewedAt

	switch outcome {
	case domain.ReviewRemembered:
		next.Proficiency = card.Proficiency + 1
		if next.Proficiency >= threshold {
			return next, true
		}
		next.Status = domain.FlashcardStatusLearning
		next.NextReviewDate = now.Add(time.Duration(IntervalDays(next.Proficiency)) * 24 * time.Hour)
	case domain.ReviewForgotten:
		next.Proficiency = 0
		next.Status = domain.FlashcardStatusNew
		next.NextReviewDate = now
	}

	return next, false
}
