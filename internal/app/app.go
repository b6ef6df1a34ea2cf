package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/lexinote-backend/internal/adapter/postgres"
	flashcardrepo "github.com/heartmarshall/lexinote-backend/internal/adapter/postgres/flashcard"
	notebookrepo "github.com/heartmarshall/lexinote-backend/internal/adapter/postgres/notebook"
	userrepo "github.com/heartmarshall/lexinote-backend/internal/adapter/postgres/user"
	wordrepo "github.com/heartmarshall/lexinote-backend/internal/adapter/postgres/word"
	"github.com/heartmarshall/lexinote-backend/internal/adapter/provider/anthropic"
	"github.com/heartmarshall/lexinote-backend/internal/adapter/provider/freedict"
	"github.com/heartmarshall/lexinote-backend/internal/adapter/provider/siliconflow"
	"github.com/heartmarshall/lexinote-backend/internal/auth"
	"github.com/heartmarshall/lexinote-backend/internal/cache"
	"github.com/heartmarshall/lexinote-backend/internal/config"
	"github.com/heartmarshall/lexinote-backend/internal/domain"
	"github.com/heartmarshall/lexinote-backend/internal/provider"
	"github.com/heartmarshall/lexinote-backend/internal/service/article"
	"github.com/heartmarshall/lexinote-backend/internal/service/dictionary"
	"github.com/heartmarshall/lexinote-backend/internal/service/image"
	"github.com/heartmarshall/lexinote-backend/internal/service/notebook"
	"github.com/heartmarshall/lexinote-backend/internal/service/study"
	"github.com/heartmarshall/lexinote-backend/internal/service/user"
	"github.com/heartmarshall/lexinote-backend/internal/transport/middleware"
	"github.com/heartmarshall/lexinote-backend/internal/transport/rest"
)

// Completer is the text completion backend shared by the dictionary and
// article services.
type Completer interface {
	Complete(ctx context.Context, req provider.CompletionRequest) (string, error)
}

// Run is the application entry point. It loads configuration, connects to
// the database, wires services and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("llm_provider", cfg.LLM.Provider),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	clock := clockwork.NewRealClock()

	// Repositories
	txm := postgres.NewTxManager(pool)
	words := wordrepo.New(pool)
	cards := flashcardrepo.New(pool)
	notebooks := notebookrepo.New(pool)
	users := userrepo.New(pool)

	// Providers
	sf := siliconflow.NewClient(cfg.LLM, logger)
	defer sf.Close() //nolint:errcheck
	pronouncer := freedict.NewProvider(logger)
	defer pronouncer.Close() //nolint:errcheck
	llm := NewCompleter(cfg.LLM, sf, logger)

	// Caches
	articleCache := cache.New[string, domain.Article](clock)
	imageCache := cache.New[string, string](clock)

	// Services
	dictionarySvc := dictionary.NewService(logger, words, txm, llm, pronouncer, clock)
	studySvc := study.NewService(logger, cards, words, notebooks, clock, cfg.Study)
	articleSvc := article.NewService(logger, llm, articleCache, cfg.Cache.ArticleTTL)
	imageSvc := image.NewService(logger, sf, imageCache, cfg.Cache.ImageTTL)
	notebookSvc := notebook.NewService(logger, notebooks)
	userSvc := user.NewService(logger, users)

	// Transport
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	limiter := middleware.NewRateLimiter(clock, cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	router := rest.NewRouter(rest.Handlers{
		Health:     rest.NewHealthHandler(pool, BuildVersion(), clock),
		Dictionary: rest.NewDictionaryHandler(dictionarySvc, logger),
		Study:      rest.NewStudyHandler(studySvc, logger),
		Generate:   rest.NewGenerateHandler(articleSvc, imageSvc, logger),
		Notebook:   rest.NewNotebookHandler(notebookSvc, logger),
		User:       rest.NewUserHandler(userSvc, logger),
	}, limiter.Limit(cfg.RateLimit.GeneratePerMinute))

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager, logger),
		middleware.Logger(logger),
	)(router)

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("application stopped")
	return nil
}

// NewCompleter picks the text completion backend. Image generation always
// goes through SiliconFlow.
func NewCompleter(cfg config.LLMConfig, sf *siliconflow.Client, logger *slog.Logger) Completer {
	if cfg.Provider == config.ProviderAnthropic {
		return anthropic.NewClient(cfg, logger)
	}
	return sf
}
