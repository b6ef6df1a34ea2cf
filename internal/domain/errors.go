package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")

	// ErrInvalidWord means the completion provider did not recognize the input as a word.
	ErrInvalidWord = errors.New("invalid word")
	// ErrUpstream means a provider call failed or returned content that could not be parsed.
	ErrUpstream = errors.New("upstream error")
	// ErrGenerationFailed means article or image generation failed at the provider.
	ErrGenerationFailed = errors.New("generation failed")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// ProviderError wraps a failed call to an external text or image provider.
// Kind is ErrUpstream or ErrGenerationFailed; Message is safe to show to clients.
type ProviderError struct {
	Kind    error
	Op      string
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Message)
}

func (e *ProviderError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewUpstreamError wraps err as an ErrUpstream failure of op.
func NewUpstreamError(op string, err error) *ProviderError {
	return &ProviderError{Kind: ErrUpstream, Op: op, Message: errMessage(err), Err: err}
}

// NewGenerationError wraps err as an ErrGenerationFailed failure of op.
func NewGenerationError(op string, err error) *ProviderError {
	return &ProviderError{Kind: ErrGenerationFailed, Op: op, Message: errMessage(err), Err: err}
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
