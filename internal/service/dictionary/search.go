package dictionary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
)

const searchLimit = 20

// Search returns stored words whose spelling starts with the normalized query.
// An empty query returns an empty result. Limit is clamped to [1, 20].
func (s *Service) Search(ctx context.Context, query string, limit int) ([]domain.WordSummary, error) {
	prefix := domain.NormalizeText(query)
	if prefix == "" {
		return []domain.WordSummary{}, nil
	}

	if limit <= 0 || limit > searchLimit {
		limit = searchLimit
	}

	words, err := s.words.Search(ctx, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("search words: %w", err)
	}
	return words, nil
}

const (
	fallbackSimpleChinese = "暂无释义"
	fallbackExample       = "No example available."
	dailyChineseMaxRunes  = 50
)

func fallbackDailyWord() *DailyWord {
	return &DailyWord{
		WordID:          -1,
		Word:            "hello",
		SimpleChinese:   "你好；问候用语",
		ExampleSentence: "Hello! It is nice to see you here.",
	}
}

// WordOfTheDay picks a random word from the user's notebooks, or from the
// whole store when userID is 0 or the user has none. It never fails: store
// errors and empty stores degrade to a fixed greeting word.
func (s *Service) WordOfTheDay(ctx context.Context, userID int64) *DailyWord {
	daily, err := s.pickDailyWord(ctx, userID)
	if err != nil {
		s.log.ErrorContext(ctx, "word of the day failed, using fallback",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()),
		)
		return fallbackDailyWord()
	}
	if daily == nil {
		s.log.WarnContext(ctx, "no word of the day available, using fallback", slog.Int64("user_id", userID))
		return fallbackDailyWord()
	}
	return daily
}

func (s *Service) pickDailyWord(ctx context.Context, userID int64) (*DailyWord, error) {
	var (
		summary domain.WordSummary
		found   bool
	)

	if userID != 0 {
		ws, err := s.words.RandomForUser(ctx, userID)
		switch {
		case err == nil:
			summary, found = ws, true
		case !errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("random notebook word: %w", err)
		}
	}

	if !found {
		ws, err := s.words.Random(ctx)
		switch {
		case err == nil:
			summary = ws
		case errors.Is(err, domain.ErrNotFound):
			return nil, nil
		default:
			return nil, fmt.Errorf("random word: %w", err)
		}
	}

	w, err := s.words.GetByID(ctx, summary.ID)
	if err != nil {
		return nil, fmt.Errorf("get word %d: %w", summary.ID, err)
	}
	if len(w.Senses) == 0 {
		return nil, nil
	}

	first := w.Senses[0]
	daily := &DailyWord{
		WordID:          w.ID,
		Word:            w.Spelling,
		SimpleChinese:   fallbackSimpleChinese,
		ExampleSentence: fallbackExample,
	}
	switch {
	case first.DefinitionZH != nil && *first.DefinitionZH != "":
		daily.SimpleChinese = *first.DefinitionZH
	case first.DefinitionEN != "":
		daily.SimpleChinese = truncateRunes(first.DefinitionEN, dailyChineseMaxRunes)
	}
	if len(first.Examples) > 0 {
		ex := first.Examples[0]
		switch {
		case ex.SentenceZH != nil && *ex.SentenceZH != "":
			daily.ExampleSentence = *ex.SentenceZH
		case ex.SentenceEN != "":
			daily.ExampleSentence = ex.SentenceEN
		}
	}

	return daily, nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
