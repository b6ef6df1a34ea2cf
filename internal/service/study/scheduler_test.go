package study

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func TestIntervalDays(t *testing.T) {
	t.Parallel()

	want := map[int]int{0: 0, 1: 1, 2: 2, 3: 4, 4: 8, 5: 16}
	for p, days := range want {
		assert.Equal(t, days, IntervalDays(p), "p=%d", p)
	}
}

func TestSchedule_Remembered(t *testing.T) {
	t.Parallel()

	for p := 0; p <= 3; p++ {
		card := domain.Flashcard{ID: 1, UserID: 2, Proficiency: p, Status: domain.FlashcardStatusNew, NextReviewDate: testNow.Add(-time.Hour)}
		if p > 0 {
			card.Status = domain.FlashcardStatusLearning
		}

		next, mastered := Schedule(card, domain.ReviewRemembered, testNow, 5)

		require.False(t, mastered, "p=%d", p)
		assert.Equal(t, p+1, next.Proficiency)
		assert.Equal(t, domain.FlashcardStatusLearning, next.Status)
		assert.Equal(t, testNow.Add(time.Duration(1<<p)*24*time.Hour), next.NextReviewDate, "p=%d", p)
		require.NotNil(t, next.LastReviewedAt)
		assert.Equal(t, testNow, *next.LastReviewedAt)
		assert.Equal(t, card.ID, next.ID)
	}
}

func TestSchedule_RememberedAtFourIsMastered(t *testing.T) {
	t.Parallel()

	card := domain.Flashcard{ID: 42, Proficiency: 4, Status: domain.FlashcardStatusLearning}

	next, mastered := Schedule(card, domain.ReviewRemembered, testNow, 5)

	assert.True(t, mastered)
	assert.Equal(t, 5, next.Proficiency)
}

func TestSchedule_CustomThreshold(t *testing.T) {
	t.Parallel()

	_, mastered := Schedule(domain.Flashcard{Proficiency: 1}, domain.ReviewRemembered, testNow, 2)
	assert.True(t, mastered)
}

func TestSchedule_ForgottenAlwaysResets(t *testing.T) {
	t.Parallel()

	for p := 0; p <= 4; p++ {
		card := domain.Flashcard{Proficiency: p, Status: domain.FlashcardStatusLearning, NextReviewDate: testNow.Add(72 * time.Hour)}

		next, mastered := Schedule(card, domain.ReviewForgotten, testNow, 5)

		require.False(t, mastered)
		assert.Equal(t, 0, next.Proficiency)
		assert.Equal(t, domain.FlashcardStatusNew, next.Status)
		assert.Equal(t, testNow, next.NextReviewDate)
		assert.True(t, next.IsDue(testNow))
		assert.Equal(t, testNow, *next.LastReviewedAt)
	}
}

func TestSchedule_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	card := domain.Flashcard{Proficiency: 2, Status: domain.FlashcardStatusLearning}
	_, _ = Schedule(card, domain.ReviewRemembered, testNow, 5)

	assert.Equal(t, 2, card.Proficiency)
	assert.Nil(t, card.LastReviewedAt)
}
