// Package word implements storage of dictionary words with their senses and examples.
package word

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/lexinote-backend/internal/adapter/postgres"
	"github.com/heartmarshall/lexinote-backend/internal/domain"
)

// Repo provides word persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new word repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type wordRow struct {
	ID         int64   `db:"id"`
	Spelling   string  `db:"spelling"`
	PhoneticUK *string `db:"phonetic_uk"`
	PhoneticUS *string `db:"phonetic_us"`
	AudioUKURL *string `db:"audio_uk_url"`
	AudioUSURL *string `db:"audio_us_url"`
}

type senseRow struct {
	ID           int64   `db:"id"`
	WordID       int64   `db:"word_id"`
	SenseOrder   int     `db:"sense_order"`
	PartOfSpeech string  `db:"part_of_speech"`
	DefinitionEN string  `db:"definition_en"`
	DefinitionZH *string `db:"definition_zh"`
}

type exampleRow struct {
	ID         int64   `db:"id"`
	SenseID    int64   `db:"sense_id"`
	SentenceEN string  `db:"sentence_en"`
	SentenceZH *string `db:"sentence_zh"`
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const getWordBySpellingSQL = `
SELECT id, spelling, phonetic_uk, phonetic_us, audio_uk_url, audio_us_url
FROM words
WHERE spelling = $1`

const getWordByIDSQL = `
SELECT id, spelling, phonetic_uk, phonetic_us, audio_uk_url, audio_us_url
FROM words
WHERE id = $1`

const getSensesSQL = `
SELECT id, word_id, sense_order, part_of_speech, definition_en, definition_zh
FROM senses
WHERE word_id = ANY($1::bigint[])
ORDER BY word_id, sense_order`

const getExamplesSQL = `
SELECT id, sense_id, sentence_en, sentence_zh
FROM examples
WHERE sense_id = ANY($1::bigint[])
ORDER BY sense_id, position, id`

const upsertWordSQL = `
INSERT INTO words (spelling, phonetic_uk, phonetic_us, audio_uk_url, audio_us_url)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (spelling) DO UPDATE SET
    phonetic_uk  = EXCLUDED.phonetic_uk,
    phonetic_us  = EXCLUDED.phonetic_us,
    audio_uk_url = COALESCE(EXCLUDED.audio_uk_url, words.audio_uk_url),
    audio_us_url = COALESCE(EXCLUDED.audio_us_url, words.audio_us_url),
    updated_at   = now()
RETURNING id`

const deleteSensesSQL = `DELETE FROM senses WHERE word_id = $1`

const insertSenseSQL = `
INSERT INTO senses (word_id, sense_order, part_of_speech, definition_en, definition_zh)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`

const randomNotebookWordSQL = `
SELECT w.id, w.spelling
FROM (
    SELECT nw.word_id
    FROM notebook_words nw
    JOIN notebooks n ON n.id = nw.notebook_id
    WHERE n.user_id = $1
    LIMIT 100
) sample
JOIN words w ON w.id = sample.word_id
ORDER BY random()
LIMIT 1`

const randomWordSQL = `
SELECT id, spelling
FROM words
ORDER BY random()
LIMIT 1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetBySpelling returns the word with its ordered senses and examples.
// The spelling must already be normalized.
func (r *Repo) GetBySpelling(ctx context.Context, spelling string) (*domain.Word, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row wordRow
	if err := pgxscan.Get(ctx, q, &row, getWordBySpellingSQL, spelling); err != nil {
		return nil, postgres.MapError(err, "word", spelling)
	}

	return r.loadTree(ctx, q, row)
}

// GetByID returns the word with its ordered senses and examples.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Word, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row wordRow
	if err := pgxscan.Get(ctx, q, &row, getWordByIDSQL, id); err != nil {
		return nil, postgres.MapError(err, "word", id)
	}

	return r.loadTree(ctx, q, row)
}

// GetSummary returns id and spelling of a word.
func (r *Repo) GetSummary(ctx context.Context, id int64) (domain.WordSummary, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row wordRow
	if err := pgxscan.Get(ctx, q, &row, getWordByIDSQL, id); err != nil {
		return domain.WordSummary{}, postgres.MapError(err, "word", id)
	}
	return domain.WordSummary{ID: row.ID, Spelling: row.Spelling}, nil
}

// LoadSenses fills Senses (with examples) for each word in place.
func (r *Repo) LoadSenses(ctx context.Context, words []*domain.Word) error {
	if len(words) == 0 {
		return nil
	}
	q := postgres.QuerierFromCtx(ctx, r.db)

	ids := make([]int64, len(words))
	for i, w := range words {
		ids[i] = w.ID
	}

	senses, err := loadSenses(ctx, q, ids)
	if err != nil {
		return err
	}
	for _, w := range words {
		w.Senses = senses[w.ID]
	}
	return nil
}

// Search returns words whose spelling starts with prefix, ordered by spelling.
func (r *Repo) Search(ctx context.Context, prefix string, limit int) ([]domain.WordSummary, error) {
	query := postgres.Builder().
		Select("id", "spelling").
		From("words").
		Where(squirrel.Like{"spelling": postgres.EscapeLike(prefix) + "%"}).
		OrderBy("spelling ASC").
		Limit(uint64(limit))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search query: %w", err)
	}

	var rows []wordRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "word search", prefix)
	}

	out := make([]domain.WordSummary, len(rows))
	for i, row := range rows {
		out[i] = domain.WordSummary{ID: row.ID, Spelling: row.Spelling}
	}
	return out, nil
}

// RandomForUser picks a random word from the user's notebooks.
// Returns domain.ErrNotFound when the user has not collected any word.
func (r *Repo) RandomForUser(ctx context.Context, userID int64) (domain.WordSummary, error) {
	var row wordRow
	err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, randomNotebookWordSQL, userID)
	if err != nil {
		return domain.WordSummary{}, postgres.MapError(err, "notebook words of user", userID)
	}
	return domain.WordSummary{ID: row.ID, Spelling: row.Spelling}, nil
}

// Random picks a random stored word. Returns domain.ErrNotFound on an empty table.
func (r *Repo) Random(ctx context.Context) (domain.WordSummary, error) {
	var row wordRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, randomWordSQL); err != nil {
		return domain.WordSummary{}, postgres.MapError(err, "word", "random")
	}
	return domain.WordSummary{ID: row.ID, Spelling: row.Spelling}, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Upsert creates the word or updates its phonetics, then replaces all senses
// and examples with the given ones. Sense order is rewritten as 1..N in slice
// order. Call it inside TxManager.RunInTx so the replacement is atomic.
func (r *Repo) Upsert(ctx context.Context, w domain.Word) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var id int64
	err := q.QueryRow(ctx, upsertWordSQL,
		w.Spelling, w.PhoneticUK, w.PhoneticUS, w.AudioUKURL, w.AudioUSURL,
	).Scan(&id)
	if err != nil {
		return 0, postgres.MapError(err, "word", w.Spelling)
	}

	if _, err := q.Exec(ctx, deleteSensesSQL, id); err != nil {
		return 0, postgres.MapError(err, "word senses", id)
	}

	for i, s := range w.Senses {
		var senseID int64
		err := q.QueryRow(ctx, insertSenseSQL,
			id, i+1, s.PartOfSpeech, s.DefinitionEN, s.DefinitionZH,
		).Scan(&senseID)
		if err != nil {
			return 0, postgres.MapError(err, "sense", fmt.Sprintf("%s#%d", w.Spelling, i+1))
		}

		if err := insertExamples(ctx, q, senseID, s.Examples); err != nil {
			return 0, err
		}
	}

	return id, nil
}

func insertExamples(ctx context.Context, q postgres.Querier, senseID int64, examples []domain.Example) error {
	if len(examples) == 0 {
		return nil
	}

	insert := postgres.Builder().
		Insert("examples").
		Columns("sense_id", "position", "sentence_en", "sentence_zh")
	for i, ex := range examples {
		insert = insert.Values(senseID, i, ex.SentenceEN, ex.SentenceZH)
	}

	sql, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build examples insert: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "examples of sense", senseID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) loadTree(ctx context.Context, q postgres.Querier, row wordRow) (*domain.Word, error) {
	w := toDomainWord(row)

	senses, err := loadSenses(ctx, q, []int64{w.ID})
	if err != nil {
		return nil, err
	}
	w.Senses = senses[w.ID]

	return w, nil
}

// loadSenses returns ordered senses with examples grouped by word id.
func loadSenses(ctx context.Context, q postgres.Querier, wordIDs []int64) (map[int64][]domain.Sense, error) {
	var senseRows []senseRow
	if err := pgxscan.Select(ctx, q, &senseRows, getSensesSQL, wordIDs); err != nil {
		return nil, postgres.MapError(err, "senses of words", wordIDs)
	}

	out := make(map[int64][]domain.Sense, len(wordIDs))
	if len(senseRows) == 0 {
		return out, nil
	}

	senseIDs := make([]int64, len(senseRows))
	for i, s := range senseRows {
		senseIDs[i] = s.ID
	}

	var exampleRows []exampleRow
	if err := pgxscan.Select(ctx, q, &exampleRows, getExamplesSQL, senseIDs); err != nil {
		return nil, postgres.MapError(err, "examples of senses", senseIDs)
	}

	examples := make(map[int64][]domain.Example, len(senseRows))
	for _, e := range exampleRows {
		examples[e.SenseID] = append(examples[e.SenseID], domain.Example{
			ID:         e.ID,
			SenseID:    e.SenseID,
			SentenceEN: e.SentenceEN,
			SentenceZH: e.SentenceZH,
		})
	}

	for _, s := range senseRows {
		out[s.WordID] = append(out[s.WordID], domain.Sense{
			ID:           s.ID,
			WordID:       s.WordID,
			Order:        s.SenseOrder,
			PartOfSpeech: s.PartOfSpeech,
			DefinitionEN: s.DefinitionEN,
			DefinitionZH: s.DefinitionZH,
			Examples:     examples[s.ID],
		})
	}

	return out, nil
}

func toDomainWord(row wordRow) *domain.Word {
	return &domain.Word{
		ID:         row.ID,
		Spelling:   row.Spelling,
		PhoneticUK: row.PhoneticUK,
		PhoneticUS: row.PhoneticUS,
		AudioUKURL: row.AudioUKURL,
		AudioUSURL: row.AudioUSURL,
	}
}
