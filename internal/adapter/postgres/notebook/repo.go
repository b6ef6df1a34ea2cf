// Package notebook implements notebook persistence using PostgreSQL.
package notebook

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/lexinote-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lexinote-backend/internal/domain"
)

// Repo provides notebook persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new notebook repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type notebookRow struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	IsDefault   bool      `db:"is_default"`
	CreatedAt   time.Time `db:"created_at"`
	WordCount   int       `db:"word_count"`
}

type notebookWordRow struct {
	WordID     int64     `db:"word_id"`
	Spelling   string    `db:"spelling"`
	PhoneticUK *string   `db:"phonetic_uk"`
	PhoneticUS *string   `db:"phonetic_us"`
	AddedAt    time.Time `db:"added_at"`
}

const getByIDSQL = `
SELECT id, user_id, name, description, is_default, created_at
FROM notebooks
WHERE id = $1`

const getDefaultSQL = `
SELECT id, user_id, name, description, is_default, created_at
FROM notebooks
WHERE user_id = $1 AND is_default`

const insertSQL = `
INSERT INTO notebooks (user_id, name, description, is_default)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, name, description, is_default, created_at`

const insertDefaultSQL = `
INSERT INTO notebooks (user_id, name, is_default)
VALUES ($1, $2, true)
ON CONFLICT (user_id) WHERE is_default DO NOTHING`

const listWordsSQL = `
SELECT w.id AS word_id, w.spelling, w.phonetic_uk, w.phonetic_us, nw.added_at
FROM notebook_words nw
JOIN words w ON w.id = nw.word_id
WHERE nw.notebook_id = $1
ORDER BY nw.added_at DESC, w.id DESC`

const addWordSQL = `INSERT INTO notebook_words (notebook_id, word_id) VALUES ($1, $2)`

const removeWordSQL = `DELETE FROM notebook_words WHERE notebook_id = $1 AND word_id = $2`

// GetByID returns a notebook regardless of owner.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Notebook, error) {
	var row notebookRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, getByIDSQL, id); err != nil {
		return nil, postgres.MapError(err, "notebook", id)
	}
	return toDomain(row), nil
}

// ListByUser returns the user's notebooks with word counts, default first then newest.
func (r *Repo) ListByUser(ctx context.Context, userID int64) ([]domain.Notebook, error) {
	query := postgres.Builder().
		Select("n.id", "n.user_id", "n.name", "n.description", "n.is_default", "n.created_at",
			"count(nw.word_id) AS word_count").
		From("notebooks n").
		LeftJoin("notebook_words nw ON nw.notebook_id = n.id").
		Where(squirrel.Eq{"n.user_id": userID}).
		GroupBy("n.id").
		OrderBy("n.is_default DESC", "n.created_at DESC", "n.id DESC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build notebooks query: %w", err)
	}

	var rows []notebookRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "notebooks of user", userID)
	}

	out := make([]domain.Notebook, len(rows))
	for i, row := range rows {
		out[i] = *toDomain(row)
	}
	return out, nil
}

// Create inserts a notebook.
func (r *Repo) Create(ctx context.Context, nb domain.Notebook) (*domain.Notebook, error) {
	var row notebookRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, insertSQL,
		nb.UserID, nb.Name, nb.Description, nb.IsDefault,
	)
	if err != nil {
		return nil, postgres.MapError(err, "notebook", nb.Name)
	}
	return toDomain(row), nil
}

// GetOrCreateDefault returns the user's default notebook, creating it on first use.
func (r *Repo) GetOrCreateDefault(ctx context.Context, userID int64) (*domain.Notebook, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if _, err := q.Exec(ctx, insertDefaultSQL, userID, domain.DefaultNotebookName); err != nil {
		return nil, postgres.MapError(err, "default notebook of user", userID)
	}

	var row notebookRow
	if err := pgxscan.Get(ctx, q, &row, getDefaultSQL, userID); err != nil {
		return nil, postgres.MapError(err, "default notebook of user", userID)
	}
	return toDomain(row), nil
}

// ListWords returns the words of a notebook, most recently added first.
func (r *Repo) ListWords(ctx context.Context, notebookID int64) ([]domain.NotebookWord, error) {
	var rows []notebookWordRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, listWordsSQL, notebookID); err != nil {
		return nil, postgres.MapError(err, "words of notebook", notebookID)
	}

	out := make([]domain.NotebookWord, len(rows))
	for i, row := range rows {
		out[i] = domain.NotebookWord{
			WordID:     row.WordID,
			Spelling:   row.Spelling,
			PhoneticUK: row.PhoneticUK,
			PhoneticUS: row.PhoneticUS,
			AddedAt:    row.AddedAt,
		}
	}
	return out, nil
}

// AddWord links a word to a notebook. A duplicate yields domain.ErrAlreadyExists,
// an unknown word domain.ErrNotFound.
func (r *Repo) AddWord(ctx context.Context, notebookID, wordID int64) error {
	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, addWordSQL, notebookID, wordID); err != nil {
		return postgres.MapError(err, "notebook word", wordID)
	}
	return nil
}

// RemoveWord unlinks a word. Returns domain.ErrNotFound when it was not in the notebook.
func (r *Repo) RemoveWord(ctx context.Context, notebookID, wordID int64) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, removeWordSQL, notebookID, wordID)
	if err != nil {
		return postgres.MapError(err, "notebook word", wordID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notebook word %d: %w", wordID, domain.ErrNotFound)
	}
	return nil
}

func toDomain(row notebookRow) *domain.Notebook {
	return &domain.Notebook{
		ID:          row.ID,
		UserID:      row.UserID,
		Name:        row.Name,
		Description: row.Description,
		IsDefault:   row.IsDefault,
		CreatedAt:   row.CreatedAt,
		WordCount:   row.WordCount,
	}
}
