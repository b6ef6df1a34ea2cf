package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
	"github.com/heartmarshall/lexinote-backend/internal/service/article"
)

type articleService interface {
	Generate(ctx context.Context, input article.GenerateInput) (*domain.Article, error)
}

type imageService interface {
	GenerateWordImage(ctx context.Context, word string) (string, error)
}

// GenerateHandler serves the LLM-backed generation endpoints.
type GenerateHandler struct {
	articles articleService
	images   imageService
	log      *slog.Logger
}

// NewGenerateHandler creates a GenerateHandler.
func NewGenerateHandler(articles articleService, images imageService, logger *slog.Logger) *GenerateHandler {
	return &GenerateHandler{
		articles: articles,
		images:   images,
		log:      logger.With("handler", "generate"),
	}
}

type generateArticleRequest struct {
	Words []string `json:"words" validate:"required,min=1,max=50,dive,required,max=64"`
	Level string   `json:"level" validate:"required,oneof=primary highschool cet4 cet6"`
}

type articleResponse struct {
	English    string `json:"english"`
	Translated string `json:"translated"`
}

type wordImageRequest struct {
	Word string `json:"word" validate:"required,max=64"`
}

type wordImageResponse struct {
	ImageURL string `json:"imageUrl"`
}

// Article handles POST /api/articles/generate.
func (h *GenerateHandler) Article(w http.ResponseWriter, r *http.Request) {
	var req generateArticleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	a, err := h.articles.Generate(r.Context(), article.GenerateInput{Words: req.Words, Level: req.Level})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, articleResponse{English: a.English, Translated: a.Translated})
}

// WordImage handles POST /api/images/word.
func (h *GenerateHandler) WordImage(w http.ResponseWriter, r *http.Request) {
	var req wordImageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	url, err := h.images.GenerateWordImage(r.Context(), req.Word)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, wordImageResponse{ImageURL: url})
}
