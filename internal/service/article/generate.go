package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
	"github.com/heartmarshall/lexinote-backend/pkg/ctxutil"
)

// PlaceholderTranslation replaces a translation the model did not provide.
const PlaceholderTranslation = "（暂无中文翻译）"

const (
	maxWords      = 50
	maxWordLength = 64
)

// GenerateInput holds the parameters of an article request.
type GenerateInput struct {
	Words []string
	Level string
}

// Validate checks all fields and collects all errors.
func (i *GenerateInput) Validate() error {
	var errs []domain.FieldError

	words := normalizeWords(i.Words)
	switch {
	case len(words) == 0:
		errs = append(errs, domain.FieldError{Field: "words", Message: "at least one word is required"})
	case len(words) > maxWords:
		errs = append(errs, domain.FieldError{Field: "words", Message: fmt.Sprintf("at most %d words", maxWords)})
	}
	for _, w := range words {
		if len(w) > maxWordLength {
			errs = append(errs, domain.FieldError{Field: "words", Message: fmt.Sprintf("word longer than %d characters", maxWordLength)})
			break
		}
	}
	if !domain.ArticleLevel(i.Level).IsValid() {
		errs = append(errs, domain.FieldError{Field: "level", Message: "must be primary, highschool, cet4 or cet6"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Generate writes an article using every word in input.Words and translates
// it. The same word set at the same level is served from the cache for the
// configured TTL regardless of word order.
func (s *Service) Generate(ctx context.Context, input GenerateInput) (*domain.Article, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	level := domain.ArticleLevel(input.Level)
	profile, _ := profileFor(level)
	words := normalizeWords(input.Words)
	key := CacheKey(userID, level, words)

	if cached, ok := s.cache.Get(key); ok {
		s.log.DebugContext(ctx, "article served from cache", slog.Int64("user_id", userID), slog.String("level", level.String()))
		return &cached, nil
	}

	content, err := s.llm.Complete(ctx, buildRequest(words, profile))
	if err != nil {
		s.log.ErrorContext(ctx, "article generation failed",
			slog.Int64("user_id", userID),
			slog.String("level", level.String()),
			slog.String("error", err.Error()),
		)
		return nil, domain.NewGenerationError("generate article", err)
	}

	res := ParseArticle(content)
	if res.Kind == Unparseable {
		s.log.ErrorContext(ctx, "article reply had no text", slog.String("raw", content))
		return nil, domain.NewGenerationError("generate article", errors.New("empty article"))
	}

	article := res.Article
	if article.Translated == "" {
		article.Translated = PlaceholderTranslation
	}

	if missing := missingWords(article.English, words); len(missing) > 0 {
		s.log.WarnContext(ctx, "article is missing required words",
			slog.String("level", level.String()),
			slog.String("missing", strings.Join(missing, ",")),
		)
	}

	s.cache.Set(key, article, s.ttl)

	s.log.InfoContext(ctx, "article generated",
		slog.Int64("user_id", userID),
		slog.String("level", level.String()),
		slog.Int("words", len(words)),
		slog.String("parsed_as", res.Kind.String()),
	)

	return &article, nil
}

// CacheKey identifies an article by user, level and the word set. Words are
// sorted so that input order does not matter.
func CacheKey(userID int64, level domain.ArticleLevel, words []string) string {
	sorted := slices.Clone(words)
	for i, w := range sorted {
		sorted[i] = strings.ToLower(w)
	}
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	return fmt.Sprintf("%d|%s|%s", userID, level, strings.Join(sorted, ","))
}

// normalizeWords trims, lowercases and de-duplicates words, keeping the first
// occurrence order and dropping blanks.
func normalizeWords(words []string) []string {
	out := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		n := domain.NormalizeText(w)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func missingWords(text string, words []string) []string {
	lower := strings.ToLower(text)
	var missing []string
	for _, w := range words {
		if !strings.Contains(lower, w) {
			missing = append(missing, w)
		}
	}
	return missing
}
