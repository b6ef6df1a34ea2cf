package enricher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
	"github.com/heartmarshall/lexinote-backend/internal/service/dictionary"
)

type lookupMock struct {
	mu    sync.Mutex
	calls []string
	fn    func(word string) (*dictionary.WordDetail, error)
}

func (m *lookupMock) GetWordDetail(_ context.Context, spelling string) (*dictionary.WordDetail, error) {
	m.mu.Lock()
	m.calls = append(m.calls, spelling)
	m.mu.Unlock()
	return m.fn(spelling)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReadWordList(t *testing.T) {
	input := "# CET-4 list\napple\n\n  river  \nApple\n#skip\nice cream\n"

	words, err := readWordList(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "river", "ice cream"}, words)
}

func TestRunWithWords_Counts(t *testing.T) {
	lookup := &lookupMock{fn: func(word string) (*dictionary.WordDetail, error) {
		switch word {
		case "apple":
			return &dictionary.WordDetail{Word: word, Cached: true}, nil
		case "river":
			return &dictionary.WordDetail{Word: word}, nil
		case "qwzx":
			return nil, domain.ErrInvalidWord
		default:
			return nil, domain.NewUpstreamError("complete word", errors.New("timeout"))
		}
	}}
	cfg := &Config{Concurrency: 2, MaxFailures: 5}

	res, err := RunWithWords(context.Background(), cfg, []string{"apple", "river", "qwzx", "boom"}, lookup, discardLogger())

	require.NoError(t, err)
	assert.Equal(t, PipelineResult{TotalWords: 4, Completed: 1, Stored: 1, Invalid: 1, Failed: 1}, res)
	assert.ElementsMatch(t, []string{"apple", "river", "qwzx", "boom"}, lookup.calls)
}

func TestRunWithWords_TooManyFailures(t *testing.T) {
	lookup := &lookupMock{fn: func(string) (*dictionary.WordDetail, error) {
		return nil, errors.New("provider down")
	}}
	cfg := &Config{Concurrency: 1, MaxFailures: 1}

	res, err := RunWithWords(context.Background(), cfg, []string{"a", "b", "c", "d", "e"}, lookup, discardLogger())

	require.ErrorIs(t, err, ErrTooManyFailures)
	assert.Equal(t, 2, res.Failed)
	assert.Len(t, lookup.calls, 2)
}

func TestRunWithWords_RespectsConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32
	lookup := &lookupMock{fn: func(word string) (*dictionary.WordDetail, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return &dictionary.WordDetail{Word: word}, nil
	}}
	cfg := &Config{Concurrency: 3, MaxFailures: 0}

	words := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	res, err := RunWithWords(context.Background(), cfg, words, lookup, discardLogger())

	require.NoError(t, err)
	assert.Equal(t, 10, res.Completed)
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestRun_ReadsWordListFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("apple\nriver\n"), 0o644))

	lookup := &lookupMock{fn: func(word string) (*dictionary.WordDetail, error) {
		return &dictionary.WordDetail{Word: word}, nil
	}}

	res, err := Run(context.Background(), &Config{WordListPath: path, Concurrency: 1}, lookup, discardLogger())

	require.NoError(t, err)
	assert.Equal(t, 2, res.Completed)
}

func TestRun_MissingFile(t *testing.T) {
	lookup := &lookupMock{}

	_, err := Run(context.Background(), &Config{WordListPath: "/nonexistent/words.txt", Concurrency: 1}, lookup, discardLogger())

	assert.Error(t, err)
	assert.Empty(t, lookup.calls)
}

func TestLoadConfig(t *testing.T) {
	t.Run("env", func(t *testing.T) {
		t.Setenv("ENRICH_WORD_LIST_PATH", "/data/words.txt")
		t.Setenv("ENRICH_CONCURRENCY", "8")

		cfg, err := LoadConfig("")

		require.NoError(t, err)
		assert.Equal(t, "/data/words.txt", cfg.WordListPath)
		assert.Equal(t, 8, cfg.Concurrency)
		assert.Equal(t, 20, cfg.MaxFailures)
	})

	t.Run("missing word list", func(t *testing.T) {
		t.Setenv("ENRICH_WORD_LIST_PATH", "")

		_, err := LoadConfig("")

		assert.ErrorContains(t, err, "word_list_path is required")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/enrich.yaml")

		assert.ErrorContains(t, err, "not found")
	})
}
