package freedict

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/heartmarshall/lexinote-backend/internal/provider"
)

const defaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

// Provider looks up pronunciations on the FreeDictionary API.
type Provider struct {
	http       *resty.Client
	retryDelay time.Duration
	log        *slog.Logger
}

// NewProvider creates a Provider with the default FreeDictionary API URL.
func NewProvider(logger *slog.Logger) *Provider {
	return NewProviderWithURL(defaultBaseURL, logger)
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL string, logger *slog.Logger) *Provider {
	return &Provider{
		http:       resty.New().SetBaseURL(strings.TrimRight(baseURL, "/")).SetTimeout(10 * time.Second),
		retryDelay: 500 * time.Millisecond,
		log:        logger.With("adapter", "freedict"),
	}
}

// Close releases idle connections.
func (p *Provider) Close() error {
	return p.http.Close()
}

var errServer = errors.New("server error")

// FetchPronunciations returns the UK and US pronunciations of word.
// Returns nil, nil if the word is not found (HTTP 404).
func (p *Provider) FetchPronunciations(ctx context.Context, word string) (*provider.PronunciationResult, error) {
	p.log.DebugContext(ctx, "freedict request", slog.String("word", word))

	var entries []apiEntry
	notFound := false

	// One retry on 5xx or network errors.
	err := retry.Do(
		func() error {
			resp, err := p.http.R().
				SetContext(ctx).
				SetResult(&entries).
				Get("/" + url.PathEscape(word))
			if err != nil {
				return err
			}
			switch {
			case resp.StatusCode() == http.StatusNotFound:
				notFound = true
				return nil
			case resp.StatusCode() >= 500:
				return fmt.Errorf("%w: status %d", errServer, resp.StatusCode())
			case resp.IsError():
				return retry.Unrecoverable(fmt.Errorf("unexpected status %d", resp.StatusCode()))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(2),
		retry.Delay(p.retryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			p.log.WarnContext(ctx, "freedict retry", slog.String("word", word), slog.String("reason", err.Error()))
		}),
	)
	if err != nil {
		p.log.ErrorContext(ctx, "freedict request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("freedict: request failed: %w", err)
	}
	if notFound {
		return nil, nil
	}

	result := mapPronunciations(entries)

	p.log.DebugContext(ctx, "freedict response",
		slog.String("word", word),
		slog.Bool("uk", result.UK != nil),
		slog.Bool("us", result.US != nil),
	)

	return result, nil
}

// mapPronunciations picks one UK and one US pronunciation across all entries.
// Phonetics whose audio URL names a region win; a transcription without audio
// only fills an accent nothing else matched, and the first such transcription
// is used for both accents as a last resort.
func mapPronunciations(entries []apiEntry) *provider.PronunciationResult {
	result := &provider.PronunciationResult{}
	var fallback string

	for _, entry := range entries {
		if fallback == "" {
			fallback = entry.Phonetic
		}
		for _, ph := range entry.Phonetics {
			if fallback == "" && ph.Text != "" {
				fallback = ph.Text
			}
			if ph.Audio == "" {
				continue
			}
			pron := &provider.Pronunciation{Transcription: ph.Text, AudioURL: ph.Audio}
			switch inferRegion(ph.Audio) {
			case "UK":
				result.UK = merge(result.UK, pron)
			case "US":
				result.US = merge(result.US, pron)
			}
		}
	}

	if fallback != "" {
		if result.UK == nil {
			result.UK = &provider.Pronunciation{Transcription: fallback}
		}
		if result.US == nil {
			result.US = &provider.Pronunciation{Transcription: fallback}
		}
	}
	for _, pron := range []*provider.Pronunciation{result.UK, result.US} {
		if pron != nil && pron.Transcription == "" {
			pron.Transcription = fallback
		}
	}

	return result
}

// merge keeps the first pronunciation seen but fills its empty transcription.
func merge(cur, next *provider.Pronunciation) *provider.Pronunciation {
	if cur == nil {
		return next
	}
	if cur.Transcription == "" {
		cur.Transcription = next.Transcription
	}
	return cur
}

// inferRegion determines the pronunciation region from the audio URL.
func inferRegion(audioURL string) string {
	lower := strings.ToLower(audioURL)
	switch {
	case strings.Contains(lower, "-us.") || strings.Contains(lower, "-us-"):
		return "US"
	case strings.Contains(lower, "-uk.") || strings.Contains(lower, "-uk-"):
		return "UK"
	}
	return ""
}
