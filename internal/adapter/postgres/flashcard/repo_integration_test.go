package flashcard_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lexinote-backend/internal/adapter/postgres/flashcard"
	"github.com/heartmarshall/lexinote-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/lexinote-backend/internal/domain"
)

func TestRepo_CreateIfAbsent_Idempotent(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := flashcard.New(pool)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	word := testhelper.SeedWord(t, pool, "collect")

	card := domain.Flashcard{
		UserID:         user.ID,
		WordID:         word.ID,
		Status:         domain.FlashcardStatusNew,
		NextReviewDate: time.Now().UTC(),
		Source:         domain.FlashcardSourceSearch,
	}

	first, created, err := repo.CreateIfAbsent(ctx, card)
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := repo.CreateIfAbsent(ctx, card)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestRepo_ListDue_OrderAndPredicate(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := flashcard.New(pool)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	now := time.Now().UTC().Truncate(time.Microsecond)
	overdue := now.Add(-24 * time.Hour)

	create := func(proficiency int, next time.Time) int64 {
		t.Helper()
		w := testhelper.SeedWord(t, pool, "due")
		c, _, err := repo.CreateIfAbsent(ctx, domain.Flashcard{
			UserID:         user.ID,
			WordID:         w.ID,
			Status:         domain.FlashcardStatusLearning,
			Proficiency:    proficiency,
			NextReviewDate: next,
			Source:         domain.FlashcardSourceSearch,
		})
		require.NoError(t, err)
		return c.ID
	}

	strong := create(3, overdue)
	weak := create(1, overdue)
	recent := create(0, now.Add(-time.Minute))
	create(2, now.Add(48*time.Hour)) // not due yet

	got, err := repo.ListDue(ctx, domain.DueFilter{UserID: user.ID, Now: now, Limit: 20})
	require.NoError(t, err)

	ids := make([]int64, len(got))
	for i, c := range got {
		ids[i] = c.ID
		assert.False(t, c.NextReviewDate.After(now), "future card returned")
	}
	assert.Equal(t, []int64{weak, strong, recent}, ids)

	limited, err := repo.ListDue(ctx, domain.DueFilter{UserID: user.ID, Now: now, Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, weak, limited[0].ID)
}

func TestRepo_UpdateReviewAndDelete(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := flashcard.New(pool)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	word := testhelper.SeedWord(t, pool, "review")

	card, _, err := repo.CreateIfAbsent(ctx, domain.Flashcard{
		UserID:         user.ID,
		WordID:         word.ID,
		Status:         domain.FlashcardStatusNew,
		NextReviewDate: time.Now().UTC(),
		Source:         domain.FlashcardSourceSearch,
	})
	require.NoError(t, err)

	reviewedAt := time.Now().UTC().Truncate(time.Microsecond)
	card.Status = domain.FlashcardStatusLearning
	card.Proficiency = 1
	card.NextReviewDate = reviewedAt.AddDate(0, 0, 1)
	card.LastReviewedAt = &reviewedAt

	updated, err := repo.UpdateReview(ctx, *card)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Proficiency)
	assert.True(t, updated.NextReviewDate.Equal(card.NextReviewDate))

	require.NoError(t, repo.Delete(ctx, user.ID, card.ID))

	_, err = repo.GetByID(ctx, card.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.UpdateReview(ctx, *card)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
