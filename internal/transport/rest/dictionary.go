package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
	"github.com/heartmarshall/lexinote-backend/internal/service/dictionary"
	"github.com/heartmarshall/lexinote-backend/pkg/ctxutil"
)

type dictionaryService interface {
	GetWordDetail(ctx context.Context, spelling string) (*dictionary.WordDetail, error)
	Search(ctx context.Context, query string, limit int) ([]domain.WordSummary, error)
	WordOfTheDay(ctx context.Context, userID int64) *dictionary.DailyWord
}

// DictionaryHandler serves word lookup endpoints.
type DictionaryHandler struct {
	svc dictionaryService
	log *slog.Logger
}

// NewDictionaryHandler creates a DictionaryHandler.
func NewDictionaryHandler(svc dictionaryService, logger *slog.Logger) *DictionaryHandler {
	return &DictionaryHandler{svc: svc, log: logger.With("handler", "dictionary")}
}

type wordDetailResponse struct {
	ID       int64           `json:"id"`
	Word     string          `json:"word"`
	Phonetic phoneticPayload `json:"phonetic"`
	Senses   []sensePayload  `json:"senses"`
	Source   string          `json:"source"`
	Cached   bool            `json:"cached"`
}

type phoneticPayload struct {
	UK      *string `json:"uk"`
	UKAudio *string `json:"ukAudio,omitempty"`
	US      *string `json:"us"`
	USAudio *string `json:"usAudio,omitempty"`
}

type sensePayload struct {
	ID           int              `json:"id"`
	POS          string           `json:"pos"`
	CN           string           `json:"cn"`
	ENDefinition *string          `json:"enDefinition,omitempty"`
	Examples     []examplePayload `json:"examples"`
}

type examplePayload struct {
	EN string `json:"en"`
	CN string `json:"cn"`
}

type wordSummaryPayload struct {
	ID       int64  `json:"id"`
	Spelling string `json:"spelling"`
}

type dailyWordResponse struct {
	WordID          int64  `json:"wordId"`
	Word            string `json:"word"`
	SimpleChinese   string `json:"simpleChinese"`
	ExampleSentence string `json:"exampleSentence"`
}

// Lookup handles GET /api/words/{spelling}.
func (h *DictionaryHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.GetWordDetail(r.Context(), r.PathValue("spelling"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toWordDetailResponse(detail))
}

// Search handles GET /api/words/search?query=&limit=.
func (h *DictionaryHandler) Search(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	words, err := h.svc.Search(r.Context(), r.URL.Query().Get("query"), limit)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]wordSummaryPayload, len(words))
	for i, ws := range words {
		out[i] = wordSummaryPayload{ID: ws.ID, Spelling: ws.Spelling}
	}
	writeJSON(w, http.StatusOK, out)
}

// Daily handles GET /api/words/daily. Authentication is optional: a signed-in
// user gets a word from their notebooks.
func (h *DictionaryHandler) Daily(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxutil.UserIDFromCtx(r.Context())
	dw := h.svc.WordOfTheDay(r.Context(), userID)

	writeJSON(w, http.StatusOK, dailyWordResponse{
		WordID:          dw.WordID,
		Word:            dw.Word,
		SimpleChinese:   dw.SimpleChinese,
		ExampleSentence: dw.ExampleSentence,
	})
}

func toWordDetailResponse(d *dictionary.WordDetail) wordDetailResponse {
	senses := make([]sensePayload, len(d.Senses))
	for i, s := range d.Senses {
		examples := make([]examplePayload, len(s.Examples))
		for j, ex := range s.Examples {
			examples[j] = examplePayload{EN: ex.EN, CN: ex.CN}
		}
		senses[i] = sensePayload{
			ID:           s.ID,
			POS:          s.POS,
			CN:           s.CN,
			ENDefinition: s.ENDefinition,
			Examples:     examples,
		}
	}

	return wordDetailResponse{
		ID:   d.ID,
		Word: d.Word,
		Phonetic: phoneticPayload{
			UK:      d.Phonetic.UK,
			UKAudio: d.Phonetic.UKAudio,
			US:      d.Phonetic.US,
			USAudio: d.Phonetic.USAudio,
		},
		Senses: senses,
		Source: d.Source,
		Cached: d.Cached,
	}
}
