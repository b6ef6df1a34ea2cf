package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
	"github.com/heartmarshall/lexinote-backend/internal/service/study"
)

type studyService interface {
	CreateFlashcard(ctx context.Context, input study.CreateFlashcardInput) (*domain.Flashcard, error)
	ListDue(ctx context.Context, input study.DueInput) ([]domain.Flashcard, error)
	ListFlashcards(ctx context.Context) ([]domain.Flashcard, error)
	DeleteFlashcard(ctx context.Context, id int64) error
	Review(ctx context.Context, input study.ReviewInput) (*study.ReviewResult, error)
}

// StudyHandler serves flashcard endpoints.
type StudyHandler struct {
	svc studyService
	log *slog.Logger
}

// NewStudyHandler creates a StudyHandler.
func NewStudyHandler(svc studyService, logger *slog.Logger) *StudyHandler {
	return &StudyHandler{svc: svc, log: logger.With("handler", "study")}
}

type createFlashcardRequest struct {
	WordID     int64  `json:"wordId"     validate:"required,gt=0"`
	Source     string `json:"source"     validate:"required,oneof=search notebook"`
	NotebookID *int64 `json:"notebookId" validate:"omitempty,gt=0"`
}

type reviewRequest struct {
	FlashcardID int64  `json:"flashcardId" validate:"required,gt=0"`
	Result      string `json:"result"      validate:"required"`
}

type flashcardResponse struct {
	ID             int64        `json:"id"`
	WordID         int64        `json:"wordId"`
	NotebookID     *int64       `json:"notebookId,omitempty"`
	Status         string       `json:"status"`
	Proficiency    int          `json:"proficiency"`
	NextReviewDate time.Time    `json:"nextReviewDate"`
	LastReviewedAt *time.Time   `json:"lastReviewedAt,omitempty"`
	Source         string       `json:"source"`
	CreatedAt      time.Time    `json:"createdAt"`
	Word           *wordPayload `json:"word,omitempty"`
}

type wordPayload struct {
	ID         int64                 `json:"id"`
	Spelling   string                `json:"spelling"`
	PhoneticUK *string               `json:"phoneticUk,omitempty"`
	PhoneticUS *string               `json:"phoneticUs,omitempty"`
	Senses     []flashcardSenseEntry `json:"senses,omitempty"`
}

type flashcardSenseEntry struct {
	Order        int                     `json:"senseOrder"`
	PartOfSpeech string                  `json:"partOfSpeech"`
	DefinitionEN string                  `json:"definitionEn"`
	DefinitionZH *string                 `json:"definitionZh,omitempty"`
	Examples     []flashcardExampleEntry `json:"examples"`
}

type flashcardExampleEntry struct {
	SentenceEN string  `json:"sentenceEn"`
	SentenceZH *string `json:"sentenceZh,omitempty"`
}

type reviewResponse struct {
	Flashcard flashcardResponse `json:"flashcard"`
	Mastered  bool              `json:"mastered"`
}

// Create handles POST /api/flashcards. Collecting a word twice returns the
// existing card.
func (h *StudyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createFlashcardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	card, err := h.svc.CreateFlashcard(r.Context(), study.CreateFlashcardInput{
		WordID:     req.WordID,
		Source:     req.Source,
		NotebookID: req.NotebookID,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toFlashcardResponse(*card))
}

// Due handles GET /api/flashcards/due?mode=&notebookId=&limit=.
func (h *StudyHandler) Due(w http.ResponseWriter, r *http.Request) {
	input := study.DueInput{Mode: r.URL.Query().Get("mode")}

	if raw := r.URL.Query().Get("notebookId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			handleError(w, r, h.log, domain.NewValidationError("notebookId", "must be an integer"))
			return
		}
		input.NotebookID = &id
	}

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	input.Limit = limit

	cards, err := h.svc.ListDue(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toFlashcardResponses(cards))
}

// List handles GET /api/flashcards.
func (h *StudyHandler) List(w http.ResponseWriter, r *http.Request) {
	cards, err := h.svc.ListFlashcards(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toFlashcardResponses(cards))
}

// Delete handles DELETE /api/flashcards/{id}.
func (h *StudyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.DeleteFlashcard(r.Context(), id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Review handles POST /api/flashcards/review.
func (h *StudyHandler) Review(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	res, err := h.svc.Review(r.Context(), study.ReviewInput{
		FlashcardID: req.FlashcardID,
		Result:      req.Result,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, reviewResponse{
		Flashcard: toFlashcardResponse(*res.Flashcard),
		Mastered:  res.Mastered,
	})
}

func toFlashcardResponses(cards []domain.Flashcard) []flashcardResponse {
	out := make([]flashcardResponse, len(cards))
	for i, c := range cards {
		out[i] = toFlashcardResponse(c)
	}
	return out
}

func toFlashcardResponse(c domain.Flashcard) flashcardResponse {
	resp := flashcardResponse{
		ID:             c.ID,
		WordID:         c.WordID,
		NotebookID:     c.NotebookID,
		Status:         c.Status.String(),
		Proficiency:    c.Proficiency,
		NextReviewDate: c.NextReviewDate,
		LastReviewedAt: c.LastReviewedAt,
		Source:         c.Source.String(),
		CreatedAt:      c.CreatedAt,
	}
	if c.Word != nil {
		resp.Word = toWordPayload(c.Word)
	}
	return resp
}

func toWordPayload(w *domain.Word) *wordPayload {
	p := &wordPayload{
		ID:         w.ID,
		Spelling:   w.Spelling,
		PhoneticUK: w.PhoneticUK,
		PhoneticUS: w.PhoneticUS,
	}
	for _, s := range w.Senses {
		entry := flashcardSenseEntry{
			Order:        s.Order,
			PartOfSpeech: s.PartOfSpeech,
			DefinitionEN: s.DefinitionEN,
			DefinitionZH: s.DefinitionZH,
			Examples:     make([]flashcardExampleEntry, len(s.Examples)),
		}
		for i, ex := range s.Examples {
			entry.Examples[i] = flashcardExampleEntry{SentenceEN: ex.SentenceEN, SentenceZH: ex.SentenceZH}
		}
		p.Senses = append(p.Senses, entry)
	}
	return p
}
