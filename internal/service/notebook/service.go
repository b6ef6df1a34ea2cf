// Package notebook manages user word collections.
package notebook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/lexinote-backend/internal/domain"
	"github.com/heartmarshall/lexinote-backend/pkg/ctxutil"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 500
)

type notebookRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Notebook, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Notebook, error)
	Create(ctx context.Context, nb domain.Notebook) (*domain.Notebook, error)
	GetOrCreateDefault(ctx context.Context, userID int64) (*domain.Notebook, error)
	ListWords(ctx context.Context, notebookID int64) ([]domain.NotebookWord, error)
	AddWord(ctx context.Context, notebookID, wordID int64) error
	RemoveWord(ctx context.Context, notebookID, wordID int64) error
}

// Service implements notebook operations for the authenticated user.
type Service struct {
	log       *slog.Logger
	notebooks notebookRepo
}

// NewService creates a notebook service.
func NewService(logger *slog.Logger, notebooks notebookRepo) *Service {
	return &Service{
		log:       logger.With("service", "notebook"),
		notebooks: notebooks,
	}
}

// CreateInput holds the fields of a new notebook.
type CreateInput struct {
	Name        string
	Description *string
}

// Validate checks all fields and collects all errors.
func (i *CreateInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if utf8.RuneCountInString(name) > maxNameLength {
		errs = append(errs, domain.FieldError{Field: "name", Message: fmt.Sprintf("max %d characters", maxNameLength)})
	}
	if i.Description != nil && utf8.RuneCountInString(*i.Description) > maxDescriptionLength {
		errs = append(errs, domain.FieldError{Field: "description", Message: fmt.Sprintf("max %d characters", maxDescriptionLength)})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// List returns the caller's notebooks, default first.
func (s *Service) List(ctx context.Context) ([]domain.Notebook, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	nbs, err := s.notebooks.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notebooks: %w", err)
	}
	return nbs, nil
}

// Create adds a notebook owned by the caller.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Notebook, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var description *string
	if input.Description != nil {
		if d := strings.TrimSpace(*input.Description); d != "" {
			description = &d
		}
	}

	nb, err := s.notebooks.Create(ctx, domain.Notebook{
		UserID:      userID,
		Name:        strings.TrimSpace(input.Name),
		Description: description,
	})
	if err != nil {
		return nil, fmt.Errorf("create notebook: %w", err)
	}

	s.log.InfoContext(ctx, "notebook created", slog.Int64("user_id", userID), slog.Int64("notebook_id", nb.ID))
	return nb, nil
}

// GetOrCreateDefault returns the caller's default notebook.
func (s *Service) GetOrCreateDefault(ctx context.Context) (*domain.Notebook, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	nb, err := s.notebooks.GetOrCreateDefault(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("default notebook: %w", err)
	}
	return nb, nil
}

// Detail returns a notebook with its words.
func (s *Service) Detail(ctx context.Context, id int64) (*domain.NotebookDetail, error) {
	nb, err := s.owned(ctx, id)
	if err != nil {
		return nil, err
	}

	words, err := s.notebooks.ListWords(ctx, nb.ID)
	if err != nil {
		return nil, fmt.Errorf("notebook words: %w", err)
	}
	nb.WordCount = len(words)

	return &domain.NotebookDetail{Notebook: *nb, Words: words}, nil
}

// AddWord puts a stored word into one of the caller's notebooks.
func (s *Service) AddWord(ctx context.Context, notebookID, wordID int64) error {
	if wordID <= 0 {
		return domain.NewValidationError("wordId", "required")
	}

	nb, err := s.owned(ctx, notebookID)
	if err != nil {
		return err
	}

	if err := s.notebooks.AddWord(ctx, nb.ID, wordID); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return fmt.Errorf("word %d already in notebook %d: %w", wordID, nb.ID, domain.ErrConflict)
		}
		return fmt.Errorf("add word: %w", err)
	}

	s.log.InfoContext(ctx, "word added to notebook", slog.Int64("notebook_id", nb.ID), slog.Int64("word_id", wordID))
	return nil
}

// RemoveWord takes a word out of one of the caller's notebooks.
func (s *Service) RemoveWord(ctx context.Context, notebookID, wordID int64) error {
	nb, err := s.owned(ctx, notebookID)
	if err != nil {
		return err
	}

	if err := s.notebooks.RemoveWord(ctx, nb.ID, wordID); err != nil {
		return fmt.Errorf("remove word: %w", err)
	}
	return nil
}

// owned loads a notebook and checks it belongs to the caller.
func (s *Service) owned(ctx context.Context, id int64) (*domain.Notebook, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if id <= 0 {
		return nil, domain.NewValidationError("id", "required")
	}

	nb, err := s.notebooks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get notebook: %w", err)
	}
	if nb.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return nb, nil
}
