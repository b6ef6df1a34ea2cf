// Command enrich completes a word list ahead of time so that later lookups
// are served from the database instead of the completion provider.
//
// Flags:
//
//	--enrich-config  path to enrich YAML config (default: environment only)
//
// The word list is one word per line; lines starting with # are ignored.
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/lexinote-backend/internal/adapter/postgres"
	wordrepo "github.com/heartmarshall/lexinote-backend/internal/adapter/postgres/word"
	"github.com/heartmarshall/lexinote-backend/internal/adapter/provider/freedict"
	"github.com/heartmarshall/lexinote-backend/internal/adapter/provider/siliconflow"
	"github.com/heartmarshall/lexinote-backend/internal/app"
	"github.com/heartmarshall/lexinote-backend/internal/app/enricher"
	"github.com/heartmarshall/lexinote-backend/internal/config"
	"github.com/heartmarshall/lexinote-backend/internal/service/dictionary"
)

func main() {
	enrichConfigPath := flag.String("enrich-config", "", "path to enrich YAML config")
	flag.Parse()

	appCfg, err := config.Load()
	if err != nil {
		slog.Error("load app config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := app.NewLogger(appCfg.Log)

	cfg, err := enricher.LoadConfig(*enrichConfigPath)
	if err != nil {
		logger.Error("load enrich config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, appCfg, cfg, logger); err != nil {
		logger.Error("enrichment failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, appCfg *config.Config, cfg *enricher.Config, logger *slog.Logger) error {
	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	sf := siliconflow.NewClient(appCfg.LLM, logger)
	defer sf.Close() //nolint:errcheck
	pronouncer := freedict.NewProvider(logger)
	defer pronouncer.Close() //nolint:errcheck

	llm := app.NewCompleter(appCfg.LLM, sf, logger)
	svc := dictionary.NewService(logger, wordrepo.New(pool), postgres.NewTxManager(pool), llm, pronouncer, clockwork.NewRealClock())

	_, err = enricher.Run(ctx, cfg, svc, logger)
	return err
}
