package rest

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
	"github.com/heartmarshall/lexinote-backend/internal/service/article"
	"github.com/heartmarshall/lexinote-backend/internal/service/dictionary"
)

func TestRouter_UnknownRoute(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestRouter(services{}), http.MethodGet, "/api/nothing", "", 0)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "route not found", decodeBody[errorResponse](t, rec).Error)
}

func TestRouter_SearchNotShadowedByLookup(t *testing.T) {
	t.Parallel()

	searched := false
	dict := &mockDictionary{
		SearchFunc: func(context.Context, string, int) ([]domain.WordSummary, error) {
			searched = true
			return nil, nil
		},
		GetWordDetailFunc: func(context.Context, string) (*dictionary.WordDetail, error) {
			t.Fatal("lookup must not handle /api/words/search")
			return nil, nil
		},
	}

	rec := do(t, newTestRouter(services{dictionary: dict}), http.MethodGet, "/api/words/search?query=a", "", 0)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, searched)
}

func TestRouter_GenerateLimitWrapsOnlyGenerationRoutes(t *testing.T) {
	t.Parallel()

	var limited []string
	limit := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limited = append(limited, r.URL.Path)
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		})
	}

	s := services{
		limit: limit,
		articles: &mockArticles{
			GenerateFunc: func(context.Context, article.GenerateInput) (*domain.Article, error) {
				t.Fatal("limited route reached the service")
				return nil, nil
			},
		},
		dictionary: &mockDictionary{
			GetWordDetailFunc: func(context.Context, string) (*dictionary.WordDetail, error) {
				return &dictionary.WordDetail{Word: "apple"}, nil
			},
		},
	}
	router := newTestRouter(s)

	rec := do(t, router, http.MethodPost, "/api/articles/generate", `{"words":["apple"],"level":"primary"}`, testUserID)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/images/word", `{"word":"apple"}`, testUserID)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/words/apple", "", testUserID)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, []string{"/api/articles/generate", "/api/images/word"}, limited)
}
