// Package enricher completes a word list through the dictionary service ahead
// of time, so that later lookups are served from the database.
package enricher

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
	"github.com/heartmarshall/lexinote-backend/internal/service/dictionary"
)

// ErrTooManyFailures stops a run once provider failures exceed Config.MaxFailures.
var ErrTooManyFailures = errors.New("too many failures")

type wordLookup interface {
	GetWordDetail(ctx context.Context, spelling string) (*dictionary.WordDetail, error)
}

// PipelineResult holds enrichment statistics.
type PipelineResult struct {
	TotalWords int
	Completed  int // completed through the provider
	Stored     int // already complete in the database
	Invalid    int // rejected as not a word
	Failed     int
}

// Run reads the word list at cfg.WordListPath and looks every word up.
func Run(ctx context.Context, cfg *Config, lookup wordLookup, log *slog.Logger) (PipelineResult, error) {
	f, err := os.Open(cfg.WordListPath)
	if err != nil {
		return PipelineResult{}, fmt.Errorf("read word list: %w", err)
	}
	defer f.Close()

	words, err := readWordList(f)
	if err != nil {
		return PipelineResult{}, fmt.Errorf("read word list: %w", err)
	}
	log.Info("word list loaded", slog.Int("count", len(words)))

	return RunWithWords(ctx, cfg, words, lookup, log)
}

// RunWithWords looks up words with at most cfg.Concurrency requests in flight.
// Invalid words are counted and skipped; other failures are counted until
// they exceed cfg.MaxFailures.
func RunWithWords(ctx context.Context, cfg *Config, words []string, lookup wordLookup, log *slog.Logger) (PipelineResult, error) {
	result := PipelineResult{TotalWords: len(words)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)

	for _, word := range words {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			detail, err := lookup.GetWordDetail(gctx, word)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil && detail.Cached:
				result.Stored++
			case err == nil:
				result.Completed++
			case errors.Is(err, domain.ErrInvalidWord), errors.Is(err, domain.ErrValidation):
				result.Invalid++
				log.Warn("skipping invalid word", slog.String("word", word))
			case gctx.Err() != nil:
				return gctx.Err()
			default:
				result.Failed++
				log.Error("lookup failed", slog.String("word", word), slog.String("error", err.Error()))
				if result.Failed > cfg.MaxFailures {
					return fmt.Errorf("%w: %d", ErrTooManyFailures, result.Failed)
				}
			}
			return nil
		})
	}

	err := g.Wait()

	log.Info("enrichment complete",
		slog.Int("total", result.TotalWords),
		slog.Int("completed", result.Completed),
		slog.Int("stored", result.Stored),
		slog.Int("invalid", result.Invalid),
		slog.Int("failed", result.Failed),
	)
	return result, err
}

// readWordList returns the non-empty lines of r; lines starting with # are comments.
// Duplicates after normalization are dropped.
func readWordList(r io.Reader) ([]string, error) {
	var words []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		key := domain.NormalizeText(word)
		if seen[key] {
			continue
		}
		seen[key] = true
		words = append(words, word)
	}
	return words, scanner.Err()
}
