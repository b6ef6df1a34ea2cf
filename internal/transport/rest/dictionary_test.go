package rest

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
	"github.com/heartmarshall/lexinote-backend/internal/service/dictionary"
)

func TestDictionary_Lookup(t *testing.T) {
	t.Parallel()

	var gotSpelling string
	dict := &mockDictionary{
		GetWordDetailFunc: func(_ context.Context, spelling string) (*dictionary.WordDetail, error) {
			gotSpelling = spelling
			return &dictionary.WordDetail{
				ID:   3,
				Word: "apple",
				Phonetic: dictionary.Phonetic{
					UK: ptr("ˈæpl"),
					US: ptr("ˈæpəl"),
				},
				Senses: []dictionary.SenseDetail{{
					ID:       1,
					POS:      "n.",
					CN:       "苹果",
					Examples: []dictionary.ExampleDetail{{EN: "I ate an apple.", CN: "我吃了一个苹果。"}},
				}},
				Source: "llm",
				Cached: true,
			}, nil
		},
	}
	router := newTestRouter(services{dictionary: dict})

	rec := do(t, router, http.MethodGet, "/api/words/apple", "", 0)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "apple", gotSpelling)

	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "apple", body["word"])
	assert.Equal(t, "llm", body["source"])
	assert.Equal(t, true, body["cached"])

	phonetic := body["phonetic"].(map[string]any)
	assert.Equal(t, "ˈæpl", phonetic["uk"])
	assert.NotContains(t, phonetic, "ukAudio")

	senses := body["senses"].([]any)
	require.Len(t, senses, 1)
	sense := senses[0].(map[string]any)
	assert.Equal(t, "n.", sense["pos"])
	assert.Equal(t, "苹果", sense["cn"])
	assert.NotContains(t, sense, "enDefinition")
	examples := sense["examples"].([]any)
	assert.Equal(t, "I ate an apple.", examples[0].(map[string]any)["en"])
}

func TestDictionary_Lookup_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid word", fmt.Errorf("dictionary.GetWordDetail: %w", domain.ErrInvalidWord), http.StatusUnprocessableEntity, "INVALID_WORD"},
		{"upstream", domain.NewUpstreamError("complete word", nil), http.StatusBadGateway, "UPSTREAM"},
		{"validation", domain.NewValidationError("word", "required"), http.StatusBadRequest, "VALIDATION"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dict := &mockDictionary{
				GetWordDetailFunc: func(context.Context, string) (*dictionary.WordDetail, error) {
					return nil, tt.err
				},
			}

			rec := do(t, newTestRouter(services{dictionary: dict}), http.MethodGet, "/api/words/qwzx", "", 0)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeBody[errorResponse](t, rec).Code)
		})
	}
}

func TestDictionary_Search(t *testing.T) {
	t.Parallel()

	var gotQuery string
	var gotLimit int
	dict := &mockDictionary{
		SearchFunc: func(_ context.Context, query string, limit int) ([]domain.WordSummary, error) {
			gotQuery, gotLimit = query, limit
			return []domain.WordSummary{{ID: 1, Spelling: "apple"}, {ID: 2, Spelling: "apply"}}, nil
		},
	}

	rec := do(t, newTestRouter(services{dictionary: dict}), http.MethodGet, "/api/words/search?query=app&limit=5", "", 0)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "app", gotQuery)
	assert.Equal(t, 5, gotLimit)
	assert.Equal(t, []wordSummaryPayload{{ID: 1, Spelling: "apple"}, {ID: 2, Spelling: "apply"}}, decodeBody[[]wordSummaryPayload](t, rec))
}

func TestDictionary_Search_BadLimit(t *testing.T) {
	t.Parallel()

	dict := &mockDictionary{
		SearchFunc: func(context.Context, string, int) ([]domain.WordSummary, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	rec := do(t, newTestRouter(services{dictionary: dict}), http.MethodGet, "/api/words/search?query=app&limit=ten", "", 0)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[errorResponse](t, rec)
	assert.Equal(t, []fieldError{{Field: "limit", Message: "must be an integer"}}, body.Fields)
}

func TestDictionary_Daily(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		userID int64
	}{
		{"anonymous", 0},
		{"signed in", testUserID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotUserID int64 = -1
			dict := &mockDictionary{
				WordOfTheDayFunc: func(_ context.Context, userID int64) *dictionary.DailyWord {
					gotUserID = userID
					return &dictionary.DailyWord{WordID: 9, Word: "river", SimpleChinese: "河", ExampleSentence: "The river is long."}
				},
			}

			rec := do(t, newTestRouter(services{dictionary: dict}), http.MethodGet, "/api/words/daily", "", tt.userID)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.userID, gotUserID)
			assert.Equal(t, dailyWordResponse{
				WordID:          9,
				Word:            "river",
				SimpleChinese:   "河",
				ExampleSentence: "The river is long.",
			}, decodeBody[dailyWordResponse](t, rec))
		})
	}
}
