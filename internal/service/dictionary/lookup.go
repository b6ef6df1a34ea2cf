package dictionary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
)

// GetWordDetail returns the complete record for spelling. A stored word whose
// senses all carry a Chinese definition and at least one example is served
// from the store; anything else is completed by the LLM, persisted and re-read.
//
// Fails with domain.ErrInvalidWord when the provider does not recognize the
// input and with domain.ErrUpstream when the provider call or its output fails.
func (s *Service) GetWordDetail(ctx context.Context, spelling string) (*WordDetail, error) {
	normalized := domain.NormalizeText(spelling)
	if normalized == "" {
		return nil, domain.NewValidationError("spelling", "required")
	}

	stored, err := s.words.GetBySpelling(ctx, normalized)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get word by spelling: %w", err)
	}
	if stored.IsComplete() {
		s.log.DebugContext(ctx, "word served from store", slog.String("word", normalized))
		return toWordDetail(stored, true), nil
	}

	// Concurrent misses of one spelling share a single completion. The flight
	// is detached from the caller's context so that a caller giving up does
	// not abort the persistence write other callers are waiting on.
	v, err, shared := s.completions.Do(normalized, func() (any, error) {
		return s.complete(context.WithoutCancel(ctx), normalized)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.log.DebugContext(ctx, "word completion shared", slog.String("word", normalized))
	}

	return toWordDetail(v.(*domain.Word), false), nil
}

// complete asks the LLM for the word, persists it and re-reads the stored tree.
func (s *Service) complete(ctx context.Context, spelling string) (*domain.Word, error) {
	start := s.clock.Now()

	content, err := s.llm.Complete(ctx, buildWordRequest(spelling))
	if err != nil {
		s.log.ErrorContext(ctx, "word completion failed",
			slog.String("word", spelling),
			slog.String("error", err.Error()),
		)
		return nil, domain.NewUpstreamError("complete word", err)
	}

	word, err := parseWordCompletion(content, spelling)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidWord) {
			s.log.InfoContext(ctx, "word not recognized", slog.String("word", spelling))
			return nil, err
		}
		s.log.ErrorContext(ctx, "word completion unparseable",
			slog.String("word", spelling),
			slog.String("error", err.Error()),
			slog.String("raw", content),
		)
		return nil, domain.NewUpstreamError("parse word completion", err)
	}

	s.fillPronunciations(ctx, word)

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		_, upsertErr := s.words.Upsert(txCtx, *word)
		return upsertErr
	})
	if err != nil {
		return nil, fmt.Errorf("save word: %w", err)
	}

	saved, err := s.words.GetBySpelling(ctx, spelling)
	if err != nil {
		return nil, fmt.Errorf("reload word: %w", err)
	}

	s.log.InfoContext(ctx, "word completed and saved",
		slog.String("word", spelling),
		slog.Int64("word_id", saved.ID),
		slog.Int("senses", len(saved.Senses)),
		slog.Duration("duration", s.clock.Since(start)),
	)

	return saved, nil
}

// fillPronunciations adds audio URLs and any transcription the LLM left out.
// Failures only cost the audio; the word is still saved.
func (s *Service) fillPronunciations(ctx context.Context, w *domain.Word) {
	if s.pronouncer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, pronunciationTimeout)
	defer cancel()

	res, err := s.pronouncer.FetchPronunciations(ctx, w.Spelling)
	if err != nil {
		s.log.WarnContext(ctx, "pronunciation lookup failed, proceeding without audio",
			slog.String("word", w.Spelling),
			slog.String("error", err.Error()),
		)
		return
	}
	if res == nil {
		return
	}

	if res.UK != nil {
		w.PhoneticUK = firstNonEmpty(w.PhoneticUK, res.UK.Transcription)
		w.AudioUKURL = firstNonEmpty(w.AudioUKURL, res.UK.AudioURL)
	}
	if res.US != nil {
		w.PhoneticUS = firstNonEmpty(w.PhoneticUS, res.US.Transcription)
		w.AudioUSURL = firstNonEmpty(w.AudioUSURL, res.US.AudioURL)
	}
}

func firstNonEmpty(cur *string, alt string) *string {
	if cur != nil && *cur != "" {
		return cur
	}
	if alt == "" {
		return cur
	}
	return &alt
}

func toWordDetail(w *domain.Word, cached bool) *WordDetail {
	d := &WordDetail{
		ID:   w.ID,
		Word: w.Spelling,
		Phonetic: Phonetic{
			UK:      nonEmpty(w.PhoneticUK),
			UKAudio: nonEmpty(w.AudioUKURL),
			US:      nonEmpty(w.PhoneticUS),
			USAudio: nonEmpty(w.AudioUSURL),
		},
		Senses: make([]SenseDetail, 0, len(w.Senses)),
		Source: SourceDictionaryLLM,
		Cached: cached,
	}

	for _, sense := range w.Senses {
		sd := SenseDetail{
			ID:       sense.Order,
			POS:      domain.ShortPartOfSpeech(sense.PartOfSpeech),
			CN:       sense.DefinitionEN,
			Examples: make([]ExampleDetail, 0, len(sense.Examples)),
		}
		if sense.DefinitionZH != nil && *sense.DefinitionZH != "" {
			sd.CN = *sense.DefinitionZH
		}
		if sense.DefinitionEN != "" {
			en := sense.DefinitionEN
			sd.ENDefinition = &en
		}
		for _, ex := range sense.Examples {
			ed := ExampleDetail{EN: ex.SentenceEN}
			if ex.SentenceZH != nil {
				ed.CN = *ex.SentenceZH
			}
			sd.Examples = append(sd.Examples, ed)
		}
		d.Senses = append(d.Senses, sd)
	}

	return d
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
