package rest

import (
	"net/http"

	"github.com/heartmarshall/lexinote-backend/internal/transport/middleware"
)

// Handlers groups every endpoint handler served by the router.
type Handlers struct {
	Health     *HealthHandler
	Dictionary *DictionaryHandler
	Study      *StudyHandler
	Generate   *GenerateHandler
	Notebook   *NotebookHandler
	User       *UserHandler
}

// NewRouter registers all routes. generateLimit wraps the endpoints that
// call the LLM; pass nil to leave them unlimited.
func NewRouter(h Handlers, generateLimit middleware.Middleware) *http.ServeMux {
	limited := middleware.Chain(generateLimit)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("GET /api/me", h.User.Me)

	mux.HandleFunc("GET /api/words/search", h.Dictionary.Search)
	mux.HandleFunc("GET /api/words/daily", h.Dictionary.Daily)
	mux.HandleFunc("GET /api/words/{spelling}", h.Dictionary.Lookup)

	mux.HandleFunc("POST /api/flashcards", h.Study.Create)
	mux.HandleFunc("GET /api/flashcards", h.Study.List)
	mux.HandleFunc("GET /api/flashcards/due", h.Study.Due)
	mux.HandleFunc("POST /api/flashcards/review", h.Study.Review)
	mux.HandleFunc("DELETE /api/flashcards/{id}", h.Study.Delete)

	mux.Handle("POST /api/articles/generate", limited(http.HandlerFunc(h.Generate.Article)))
	mux.Handle("POST /api/images/word", limited(http.HandlerFunc(h.Generate.WordImage)))

	mux.HandleFunc("GET /api/notebooks", h.Notebook.List)
	mux.HandleFunc("POST /api/notebooks", h.Notebook.Create)
	mux.HandleFunc("POST /api/notebooks/default", h.Notebook.Default)
	mux.HandleFunc("GET /api/notebooks/{id}", h.Notebook.Detail)
	mux.HandleFunc("POST /api/notebooks/{id}/words", h.Notebook.AddWord)
	mux.HandleFunc("DELETE /api/notebooks/{id}/words/{wordId}", h.Notebook.RemoveWord)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})

	return mux
}
