// Package image generates mnemonic illustrations for single words.
package image

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
	"github.com/heartmarshall/lexinote-backend/internal/provider"
)

const (
	promptTemplate = `A high-quality, visually clear illustration that helps remember the English word "%s". ` +
		"The style is slightly anime-like, warm and clean, no text, no watermark, single main subject, simple background."
	negativePrompt = "low quality, blurry, distorted, watermark, text, words, logo, noisy background"

	imageSize     = "1024x1024"
	imageSteps    = 20
	imageGuidance = 7.5
)

type imageGenerator interface {
	GenerateImage(ctx context.Context, req provider.ImageRequest) (string, error)
}

type urlCache interface {
	Get(key string) (string, bool)
	Set(key string, value string, ttl time.Duration)
}

// Service turns a word into an image URL, reusing URLs for the cache TTL.
type Service struct {
	log   *slog.Logger
	gen   imageGenerator
	cache urlCache
	ttl   time.Duration
}

// NewService creates an image service.
func NewService(logger *slog.Logger, gen imageGenerator, cache urlCache, ttl time.Duration) *Service {
	return &Service{
		log:   logger.With("service", "image"),
		gen:   gen,
		cache: cache,
		ttl:   ttl,
	}
}

// GenerateWordImage returns the URL of an illustration for word. Only
// successful generations are cached, keyed by the normalized word.
func (s *Service) GenerateWordImage(ctx context.Context, word string) (string, error) {
	key := domain.NormalizeText(word)
	if key == "" {
		return "", domain.NewValidationError("word", "required")
	}

	if url, ok := s.cache.Get(key); ok {
		s.log.DebugContext(ctx, "image served from cache", slog.String("word", key))
		return url, nil
	}

	url, err := s.gen.GenerateImage(ctx, buildRequest(key))
	if err != nil {
		s.log.ErrorContext(ctx, "image generation failed",
			slog.String("word", key),
			slog.String("error", err.Error()),
		)
		return "", domain.NewGenerationError("generate image", err)
	}
	if url == "" {
		return "", domain.NewGenerationError("generate image", errors.New("empty image url"))
	}

	s.cache.Set(key, url, s.ttl)
	s.log.InfoContext(ctx, "image generated", slog.String("word", key))

	return url, nil
}

func buildRequest(word string) provider.ImageRequest {
	return provider.ImageRequest{
		Prompt:         fmt.Sprintf(promptTemplate, word),
		NegativePrompt: negativePrompt,
		Size:           imageSize,
		BatchSize:      1,
		Steps:          imageSteps,
		GuidanceScale:  imageGuidance,
	}
}
