package notebook_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lexinote-backend/internal/adapter/postgres/notebook"
	"github.com/heartmarshall/lexinote-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/lexinote-backend/internal/domain"
)

func TestRepo_DefaultNotebookIsUnique(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := notebook.New(pool)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)

	first, err := repo.GetOrCreateDefault(ctx, user.ID)
	require.NoError(t, err)
	second, err := repo.GetOrCreateDefault(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.IsDefault)
	assert.Equal(t, domain.DefaultNotebookName, first.Name)
}

func TestRepo_WordsLifecycle(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := notebook.New(pool)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	nb := testhelper.SeedNotebook(t, pool, user.ID)
	word := testhelper.SeedWord(t, pool, "notebook")

	require.NoError(t, repo.AddWord(ctx, nb.ID, word.ID))
	assert.ErrorIs(t, repo.AddWord(ctx, nb.ID, word.ID), domain.ErrAlreadyExists)
	assert.ErrorIs(t, repo.AddWord(ctx, nb.ID, -1), domain.ErrNotFound)

	words, err := repo.ListWords(ctx, nb.ID)
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, word.Spelling, words[0].Spelling)

	list, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].WordCount)

	require.NoError(t, repo.RemoveWord(ctx, nb.ID, word.ID))
	assert.ErrorIs(t, repo.RemoveWord(ctx, nb.ID, word.ID), domain.ErrNotFound)
}

func TestRepo_ListByUser_DefaultFirst(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := notebook.New(pool)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	def, err := repo.GetOrCreateDefault(ctx, user.ID)
	require.NoError(t, err)
	testhelper.SeedNotebook(t, pool, user.ID)

	list, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, def.ID, list[0].ID)
}
