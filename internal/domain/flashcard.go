package domain

import "time"

// Flashcard is a user's review card for one word. At most one per (user, word).
type Flashcard struct {
	ID             int64
	UserID         int64
	WordID         int64
	NotebookID     *int64
	Status         FlashcardStatus
	Proficiency    int
	NextReviewDate time.Time
	LastReviewedAt *time.Time
	Source         FlashcardSource
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Word is populated by queries that join the word tree.
	Word *Word
}

// IsDue reports whether the card should be shown at now.
func (f *Flashcard) IsDue(now time.Time) bool {
	return !f.NextReviewDate.After(now)
}

// DueFilter scopes the due queue.
type DueFilter struct {
	UserID     int64
	NotebookID *int64
	Now        time.Time
	Limit      int
}
