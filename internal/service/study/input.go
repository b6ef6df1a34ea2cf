package study

import (
	"github.com/heartmarshall/lexinote-backend/internal/domain"
)

// ReviewInput holds a review submission. Result is "remembered"/"forgotten"
// or the client aliases "good"/"again".
type ReviewInput struct {
	FlashcardID int64
	Result      string
}

// Validate checks the fields that do not need the stored card. The outcome is
// checked after the card's existence and ownership.
func (i *ReviewInput) Validate() error {
	if i.FlashcardID <= 0 {
		return domain.NewValidationError("flashcard_id", "required")
	}
	return nil
}

// CreateFlashcardInput holds the parameters for collecting a word.
type CreateFlashcardInput struct {
	WordID     int64
	Source     string
	NotebookID *int64
}

// Validate checks all fields and collects all errors.
func (i *CreateFlashcardInput) Validate() error {
	var errs []domain.FieldError

	if i.WordID <= 0 {
		errs = append(errs, domain.FieldError{Field: "word_id", Message: "required"})
	}
	if i.Source == "" {
		errs = append(errs, domain.FieldError{Field: "source", Message: "required"})
	} else if !domain.FlashcardSource(i.Source).IsValid() {
		errs = append(errs, domain.FieldError{Field: "source", Message: "must be search or notebook"})
	}
	if i.NotebookID != nil && *i.NotebookID <= 0 {
		errs = append(errs, domain.FieldError{Field: "notebook_id", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// DueInput holds the parameters of the due queue.
type DueInput struct {
	Mode       string
	NotebookID *int64
	Limit      int
}

// Validate checks all fields and collects all errors. An empty mode means recent.
func (i *DueInput) Validate() error {
	var errs []domain.FieldError

	if i.Mode != "" && !domain.DueMode(i.Mode).IsValid() {
		errs = append(errs, domain.FieldError{Field: "mode", Message: "must be recent or notebook"})
	}
	if i.NotebookID != nil && *i.NotebookID <= 0 {
		errs = append(errs, domain.FieldError{Field: "notebook_id", Message: "must be positive"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
