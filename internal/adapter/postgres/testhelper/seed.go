package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser inserts a user with a unique email.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()

	user := domain.User{Email: "testuser-" + uniqueSuffix() + "@example.com"}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO users (email) VALUES ($1) RETURNING id, created_at`,
		user.Email,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}
	return user
}

// SeedWord inserts a word with one complete sense and one example.
// The spelling gets a unique suffix so parallel tests do not collide.
func SeedWord(t *testing.T, pool *pgxpool.Pool, spelling string) domain.Word {
	t.Helper()
	ctx := context.Background()

	word := domain.Word{Spelling: spelling + "-" + uniqueSuffix()}
	if err := pool.QueryRow(ctx,
		`INSERT INTO words (spelling) VALUES ($1) RETURNING id, created_at, updated_at`,
		word.Spelling,
	).Scan(&word.ID, &word.CreatedAt, &word.UpdatedAt); err != nil {
		t.Fatalf("testhelper: SeedWord insert word: %v", err)
	}

	zh := "测试"
	sense := domain.Sense{WordID: word.ID, Order: 1, PartOfSpeech: "n.", DefinitionEN: "a test word", DefinitionZH: &zh}
	if err := pool.QueryRow(ctx,
		`INSERT INTO senses (word_id, sense_order, part_of_speech, definition_en, definition_zh)
		 VALUES ($1, 1, $2, $3, $4) RETURNING id`,
		word.ID, sense.PartOfSpeech, sense.DefinitionEN, sense.DefinitionZH,
	).Scan(&sense.ID); err != nil {
		t.Fatalf("testhelper: SeedWord insert sense: %v", err)
	}

	ex := domain.Example{SenseID: sense.ID, SentenceEN: "This is a test."}
	if err := pool.QueryRow(ctx,
		`INSERT INTO examples (sense_id, sentence_en) VALUES ($1, $2) RETURNING id`,
		sense.ID, ex.SentenceEN,
	).Scan(&ex.ID); err != nil {
		t.Fatalf("testhelper: SeedWord insert example: %v", err)
	}

	sense.Examples = []domain.Example{ex}
	word.Senses = []domain.Sense{sense}
	return word
}

// SeedNotebook inserts a non-default notebook for the user.
func SeedNotebook(t *testing.T, pool *pgxpool.Pool, userID int64) domain.Notebook {
	t.Helper()

	nb := domain.Notebook{UserID: userID, Name: "notebook-" + uniqueSuffix()}
	if err := pool.QueryRow(context.Background(),
		`INSERT INTO notebooks (user_id, name) VALUES ($1, $2) RETURNING id, created_at`,
		userID, nb.Name,
	).Scan(&nb.ID, &nb.CreatedAt); err != nil {
		t.Fatalf("testhelper: SeedNotebook: %v", err)
	}
	return nb
}
