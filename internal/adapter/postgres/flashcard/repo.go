// Package flashcard implements flashcard persistence using PostgreSQL.
package flashcard

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/lexinote-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lexinote-backend/internal/domain"
)

// Repo provides flashcard persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new flashcard repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type flashcardRow struct {
	ID             int64      `db:"id"`
	UserID         int64      `db:"user_id"`
	WordID         int64      `db:"word_id"`
	NotebookID     *int64     `db:"notebook_id"`
	Status         string     `db:"status"`
	Proficiency    int        `db:"proficiency"`
	NextReviewDate time.Time  `db:"next_review_date"`
	LastReviewedAt *time.Time `db:"last_reviewed_at"`
	Source         string     `db:"source"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

type flashcardWordRow struct {
	ID             int64      `db:"id"`
	UserID         int64      `db:"user_id"`
	WordID         int64      `db:"word_id"`
	NotebookID     *int64     `db:"notebook_id"`
	Status         string     `db:"status"`
	Proficiency    int        `db:"proficiency"`
	NextReviewDate time.Time  `db:"next_review_date"`
	LastReviewedAt *time.Time `db:"last_reviewed_at"`
	Source         string     `db:"source"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	Spelling       string     `db:"spelling"`
	PhoneticUK     *string    `db:"phonetic_uk"`
	PhoneticUS     *string    `db:"phonetic_us"`
}

var columns = []string{
	"f.id", "f.user_id", "f.word_id", "f.notebook_id", "f.status", "f.proficiency",
	"f.next_review_date", "f.last_reviewed_at", "f.source", "f.created_at", "f.updated_at",
}

var wordColumns = []string{"w.spelling", "w.phonetic_uk", "w.phonetic_us"}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const returningColumns = `
RETURNING id, user_id, word_id, notebook_id, status, proficiency,
          next_review_date, last_reviewed_at, source, created_at, updated_at`

const getByIDSQL = `
SELECT f.id, f.user_id, f.word_id, f.notebook_id, f.status, f.proficiency,
       f.next_review_date, f.last_reviewed_at, f.source, f.created_at, f.updated_at
FROM flashcards f
WHERE f.id = $1`

const getByUserWordSQL = `
SELECT f.id, f.user_id, f.word_id, f.notebook_id, f.status, f.proficiency,
       f.next_review_date, f.last_reviewed_at, f.source, f.created_at, f.updated_at
FROM flashcards f
WHERE f.user_id = $1 AND f.word_id = $2`

const insertSQL = `
INSERT INTO flashcards (user_id, word_id, notebook_id, status, proficiency, next_review_date, source)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (user_id, word_id) DO NOTHING` + returningColumns

const updateReviewSQL = `
UPDATE flashcards SET
    status           = $3,
    proficiency      = $4,
    next_review_date = $5,
    last_reviewed_at = $6,
    updated_at       = now()
WHERE id = $1 AND user_id = $2` + returningColumns

const deleteSQL = `DELETE FROM flashcards WHERE id = $1 AND user_id = $2`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a flashcard by primary key regardless of owner.
// Ownership is checked by the caller so that absent and foreign cards
// can be told apart.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Flashcard, error) {
	var row flashcardRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, getByIDSQL, id); err != nil {
		return nil, postgres.MapError(err, "flashcard", id)
	}
	return toDomain(row), nil
}

// GetByUserWord returns the user's flashcard for a word.
func (r *Repo) GetByUserWord(ctx context.Context, userID, wordID int64) (*domain.Flashcard, error) {
	var row flashcardRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, getByUserWordSQL, userID, wordID); err != nil {
		return nil, postgres.MapError(err, "flashcard of word", wordID)
	}
	return toDomain(row), nil
}

// ListDue returns cards with next_review_date <= filter.Now, most overdue
// first and weaker cards first among equally overdue ones.
func (r *Repo) ListDue(ctx context.Context, filter domain.DueFilter) ([]domain.Flashcard, error) {
	query := postgres.Builder().
		Select(append(columns, wordColumns...)...).
		From("flashcards f").
		Join("words w ON w.id = f.word_id").
		Where(squirrel.Eq{"f.user_id": filter.UserID}).
		Where(squirrel.LtOrEq{"f.next_review_date": filter.Now}).
		OrderBy("f.next_review_date ASC", "f.proficiency ASC", "f.id ASC").
		Limit(uint64(filter.Limit))

	if filter.NotebookID != nil {
		query = query.Where(squirrel.Eq{"f.notebook_id": *filter.NotebookID})
	}

	return r.selectWithWords(ctx, query, "due flashcards of user", filter.UserID)
}

// ListByUser returns all cards of the user, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID int64) ([]domain.Flashcard, error) {
	query := postgres.Builder().
		Select(append(columns, wordColumns...)...).
		From("flashcards f").
		Join("words w ON w.id = f.word_id").
		Where(squirrel.Eq{"f.user_id": userID}).
		OrderBy("f.created_at DESC", "f.id DESC")

	return r.selectWithWords(ctx, query, "flashcards of user", userID)
}

func (r *Repo) selectWithWords(ctx context.Context, query squirrel.SelectBuilder, entity string, key any) ([]domain.Flashcard, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", entity, err)
	}

	var rows []flashcardWordRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, entity, key)
	}

	out := make([]domain.Flashcard, len(rows))
	for i, row := range rows {
		f := toDomain(flashcardRow{
			ID:             row.ID,
			UserID:         row.UserID,
			WordID:         row.WordID,
			NotebookID:     row.NotebookID,
			Status:         row.Status,
			Proficiency:    row.Proficiency,
			NextReviewDate: row.NextReviewDate,
			LastReviewedAt: row.LastReviewedAt,
			Source:         row.Source,
			CreatedAt:      row.CreatedAt,
			UpdatedAt:      row.UpdatedAt,
		})
		f.Word = &domain.Word{
			ID:         row.WordID,
			Spelling:   row.Spelling,
			PhoneticUK: row.PhoneticUK,
			PhoneticUS: row.PhoneticUS,
		}
		out[i] = *f
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// CreateIfAbsent inserts the card unless the user already has one for the word,
// in which case the existing card is returned with created=false.
func (r *Repo) CreateIfAbsent(ctx context.Context, f domain.Flashcard) (*domain.Flashcard, bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var rows []flashcardRow
	err := pgxscan.Select(ctx, q, &rows, insertSQL,
		f.UserID, f.WordID, f.NotebookID, string(f.Status), f.Proficiency, f.NextReviewDate, string(f.Source),
	)
	if err != nil {
		return nil, false, postgres.MapError(err, "flashcard of word", f.WordID)
	}

	if len(rows) == 1 {
		return toDomain(rows[0]), true, nil
	}

	existing, err := r.GetByUserWord(ctx, f.UserID, f.WordID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// UpdateReview persists the scheduling fields of a reviewed card.
// The owner is part of the predicate; a card deleted meanwhile yields domain.ErrNotFound.
func (r *Repo) UpdateReview(ctx context.Context, f domain.Flashcard) (*domain.Flashcard, error) {
	var row flashcardRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, updateReviewSQL,
		f.ID, f.UserID, string(f.Status), f.Proficiency, f.NextReviewDate, f.LastReviewedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "flashcard", f.ID)
	}
	return toDomain(row), nil
}

// Delete removes the user's card. Returns domain.ErrNotFound if nothing was deleted.
func (r *Repo) Delete(ctx context.Context, userID, id int64) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, deleteSQL, id, userID)
	if err != nil {
		return postgres.MapError(err, "flashcard", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("flashcard %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func toDomain(row flashcardRow) *domain.Flashcard {
	return &domain.Flashcard{
		ID:             row.ID,
		UserID:         row.UserID,
		WordID:         row.WordID,
		NotebookID:     row.NotebookID,
		Status:         domain.FlashcardStatus(row.Status),
		Proficiency:    row.Proficiency,
		NextReviewDate: row.NextReviewDate,
		LastReviewedAt: row.LastReviewedAt,
		Source:         domain.FlashcardSource(row.Source),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
