package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
	"github.com/heartmarshall/lexinote-backend/internal/service/article"
	"github.com/heartmarshall/lexinote-backend/internal/service/dictionary"
	"github.com/heartmarshall/lexinote-backend/internal/service/notebook"
	"github.com/heartmarshall/lexinote-backend/internal/service/study"
	"github.com/heartmarshall/lexinote-backend/internal/transport/middleware"
	"github.com/heartmarshall/lexinote-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockDictionary struct {
	GetWordDetailFunc func(ctx context.Context, spelling string) (*dictionary.WordDetail, error)
	SearchFunc        func(ctx context.Context, query string, limit int) ([]domain.WordSummary, error)
	WordOfTheDayFunc  func(ctx context.Context, userID int64) *dictionary.DailyWord
}

func (m *mockDictionary) GetWordDetail(ctx context.Context, spelling string) (*dictionary.WordDetail, error) {
	return m.GetWordDetailFunc(ctx, spelling)
}

func (m *mockDictionary) Search(ctx context.Context, query string, limit int) ([]domain.WordSummary, error) {
	return m.SearchFunc(ctx, query, limit)
}

func (m *mockDictionary) WordOfTheDay(ctx context.Context, userID int64) *dictionary.DailyWord {
	return m.WordOfTheDayFunc(ctx, userID)
}

type mockStudy struct {
	CreateFlashcardFunc func(ctx context.Context, input study.CreateFlashcardInput) (*domain.Flashcard, error)
	ListDueFunc         func(ctx context.Context, input study.DueInput) ([]domain.Flashcard, error)
	ListFlashcardsFunc  func(ctx context.Context) ([]domain.Flashcard, error)
	DeleteFlashcardFunc func(ctx context.Context, id int64) error
	ReviewFunc          func(ctx context.Context, input study.ReviewInput) (*study.ReviewResult, error)
}

func (m *mockStudy) CreateFlashcard(ctx context.Context, input study.CreateFlashcardInput) (*domain.Flashcard, error) {
	return m.CreateFlashcardFunc(ctx, input)
}

func (m *mockStudy) ListDue(ctx context.Context, input study.DueInput) ([]domain.Flashcard, error) {
	return m.ListDueFunc(ctx, input)
}

func (m *mockStudy) ListFlashcards(ctx context.Context) ([]domain.Flashcard, error) {
	return m.ListFlashcardsFunc(ctx)
}

func (m *mockStudy) DeleteFlashcard(ctx context.Context, id int64) error {
	return m.DeleteFlashcardFunc(ctx, id)
}

func (m *mockStudy) Review(ctx context.Context, input study.ReviewInput) (*study.ReviewResult, error) {
	return m.ReviewFunc(ctx, input)
}

type mockArticles struct {
	GenerateFunc func(ctx context.Context, input article.GenerateInput) (*domain.Article, error)
}

func (m *mockArticles) Generate(ctx context.Context, input article.GenerateInput) (*domain.Article, error) {
	return m.GenerateFunc(ctx, input)
}

type mockImages struct {
	GenerateWordImageFunc func(ctx context.Context, word string) (string, error)
}

func (m *mockImages) GenerateWordImage(ctx context.Context, word string) (string, error) {
	return m.GenerateWordImageFunc(ctx, word)
}

type mockNotebooks struct {
	ListFunc               func(ctx context.Context) ([]domain.Notebook, error)
	CreateFunc             func(ctx context.Context, input notebook.CreateInput) (*domain.Notebook, error)
	GetOrCreateDefaultFunc func(ctx context.Context) (*domain.Notebook, error)
	DetailFunc             func(ctx context.Context, id int64) (*domain.NotebookDetail, error)
	AddWordFunc            func(ctx context.Context, notebookID, wordID int64) error
	RemoveWordFunc         func(ctx context.Context, notebookID, wordID int64) error
}

func (m *mockNotebooks) List(ctx context.Context) ([]domain.Notebook, error) {
	return m.ListFunc(ctx)
}

func (m *mockNotebooks) Create(ctx context.Context, input notebook.CreateInput) (*domain.Notebook, error) {
	return m.CreateFunc(ctx, input)
}

func (m *mockNotebooks) GetOrCreateDefault(ctx context.Context) (*domain.Notebook, error) {
	return m.GetOrCreateDefaultFunc(ctx)
}

func (m *mockNotebooks) Detail(ctx context.Context, id int64) (*domain.NotebookDetail, error) {
	return m.DetailFunc(ctx, id)
}

func (m *mockNotebooks) AddWord(ctx context.Context, notebookID, wordID int64) error {
	return m.AddWordFunc(ctx, notebookID, wordID)
}

func (m *mockNotebooks) RemoveWord(ctx context.Context, notebookID, wordID int64) error {
	return m.RemoveWordFunc(ctx, notebookID, wordID)
}

type mockUsers struct {
	GetProfileFunc func(ctx context.Context) (*domain.User, error)
}

func (m *mockUsers) GetProfile(ctx context.Context) (*domain.User, error) {
	return m.GetProfileFunc(ctx)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

const testUserID int64 = 7

type services struct {
	dictionary *mockDictionary
	study      *mockStudy
	articles   *mockArticles
	images     *mockImages
	notebooks  *mockNotebooks
	users      *mockUsers
	limit      middleware.Middleware
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(s services) http.Handler {
	log := newTestLogger()
	return NewRouter(Handlers{
		Health:     NewHealthHandler(&dbPingerMock{}, "test", clockwork.NewFakeClock()),
		Dictionary: NewDictionaryHandler(s.dictionary, log),
		Study:      NewStudyHandler(s.study, log),
		Generate:   NewGenerateHandler(s.articles, s.images, log),
		Notebook:   NewNotebookHandler(s.notebooks, log),
		User:       NewUserHandler(s.users, log),
	}, s.limit)
}

// do sends a request through h. A non-zero userID marks the request as authenticated.
func do(t *testing.T, h http.Handler, method, path, body string, userID int64) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != 0 {
		req = req.WithContext(ctxutil.WithUserID(req.Context(), userID))
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func ptr[T any](v T) *T { return &v }
