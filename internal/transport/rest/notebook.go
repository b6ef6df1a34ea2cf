package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
	"github.com/heartmarshall/lexinote-backend/internal/service/notebook"
)

type notebookService interface {
	List(ctx context.Context) ([]domain.Notebook, error)
	Create(ctx context.Context, input notebook.CreateInput) (*domain.Notebook, error)
	GetOrCreateDefault(ctx context.Context) (*domain.Notebook, error)
	Detail(ctx context.Context, id int64) (*domain.NotebookDetail, error)
	AddWord(ctx context.Context, notebookID, wordID int64) error
	RemoveWord(ctx context.Context, notebookID, wordID int64) error
}

// NotebookHandler serves notebook endpoints.
type NotebookHandler struct {
	svc notebookService
	log *slog.Logger
}

// NewNotebookHandler creates a NotebookHandler.
func NewNotebookHandler(svc notebookService, logger *slog.Logger) *NotebookHandler {
	return &NotebookHandler{svc: svc, log: logger.With("handler", "notebook")}
}

type createNotebookRequest struct {
	Name        string  `json:"name"        validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type addWordRequest struct {
	WordID int64 `json:"wordId" validate:"required,gt=0"`
}

type notebookResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	IsDefault   bool      `json:"isDefault"`
	CreatedAt   time.Time `json:"createdAt"`
	WordCount   int       `json:"wordCount"`
}

type notebookWordResponse struct {
	WordID     int64     `json:"wordId"`
	Spelling   string    `json:"spelling"`
	PhoneticUK *string   `json:"phoneticUk,omitempty"`
	PhoneticUS *string   `json:"phoneticUs,omitempty"`
	AddedAt    time.Time `json:"addedAt"`
}

type notebookDetailResponse struct {
	notebookResponse
	Words []notebookWordResponse `json:"words"`
}

// List handles GET /api/notebooks.
func (h *NotebookHandler) List(w http.ResponseWriter, r *http.Request) {
	nbs, err := h.svc.List(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]notebookResponse, len(nbs))
	for i, nb := range nbs {
		out[i] = toNotebookResponse(nb)
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /api/notebooks.
func (h *NotebookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createNotebookRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	nb, err := h.svc.Create(r.Context(), notebook.CreateInput{Name: req.Name, Description: req.Description})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toNotebookResponse(*nb))
}

// Default handles POST /api/notebooks/default.
func (h *NotebookHandler) Default(w http.ResponseWriter, r *http.Request) {
	nb, err := h.svc.GetOrCreateDefault(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toNotebookResponse(*nb))
}

// Detail handles GET /api/notebooks/{id}.
func (h *NotebookHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	d, err := h.svc.Detail(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	words := make([]notebookWordResponse, len(d.Words))
	for i, nw := range d.Words {
		words[i] = notebookWordResponse{
			WordID:     nw.WordID,
			Spelling:   nw.Spelling,
			PhoneticUK: nw.PhoneticUK,
			PhoneticUS: nw.PhoneticUS,
			AddedAt:    nw.AddedAt,
		}
	}
	writeJSON(w, http.StatusOK, notebookDetailResponse{
		notebookResponse: toNotebookResponse(d.Notebook),
		Words:            words,
	})
}

// AddWord handles POST /api/notebooks/{id}/words.
func (h *NotebookHandler) AddWord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req addWordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.AddWord(r.Context(), id, req.WordID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveWord handles DELETE /api/notebooks/{id}/words/{wordId}.
func (h *NotebookHandler) RemoveWord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	wordID, err := pathID(r, "wordId")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.RemoveWord(r.Context(), id, wordID); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toNotebookResponse(nb domain.Notebook) notebookResponse {
	return notebookResponse{
		ID:          nb.ID,
		Name:        nb.Name,
		Description: nb.Description,
		IsDefault:   nb.IsDefault,
		CreatedAt:   nb.CreatedAt,
		WordCount:   nb.WordCount,
	}
}
