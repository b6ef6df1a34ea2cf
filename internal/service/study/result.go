package study

import "github.com/heartmarshall/lexinote-backend/internal/domain"

// ReviewResult is the outcome of a review. When Mastered is true the card
// has been deleted and Flashcard holds its final state.
type ReviewResult struct {
	Flashcard *domain.Flashcard
	Mastered  bool
}
