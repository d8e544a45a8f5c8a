// Package shared contains the error taxonomy shared by every domain package.
// This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base error kinds. Every failure reported by the read pipeline carries
// exactly one of them, so callers can classify with errors.Is().
var (
	// ErrValidation - входные данные запроса некорректны.
	ErrValidation = errors.New("validation error")

	// ErrNotFound - запрошенная сущность не существует.
	ErrNotFound = errors.New("entity not found")

	// ErrUnexpected - всё остальное: недоступность хранилища, нарушение
	// целостности данных, отмена запроса.
	ErrUnexpected = errors.New("unexpected error")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "schedule", "group"
	Op      string // Operation that failed, e.g., "ValidateRange", "FindGroup"
	Kind    error  // Base error kind for errors.Is() checking
	Message string // Human-readable message, safe to show to API clients
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching against the error kind.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Validation builds a ValidationError.
func Validation(domain, op, message string) *DomainError {
	return NewDomainError(domain, op, ErrValidation, message)
}

// NotFound builds a NotFoundError.
func NotFound(domain, op, message string) *DomainError {
	return NewDomainError(domain, op, ErrNotFound, message)
}

// Unexpected wraps err as an UnexpectedError. An error that already carries
// a kind is returned unchanged so a failure is never classified twice.
func Unexpected(domain, op string, err error) error {
	if err == nil {
		return nil
	}
	if IsValidation(err) || IsNotFound(err) || IsUnexpected(err) {
		return err
	}
	return WrapError(domain, op, ErrUnexpected, "unexpected failure", err)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnexpected checks if the error is an unexpected error.
func IsUnexpected(err error) bool {
	return errors.Is(err, ErrUnexpected)
}

// MessageOf returns the client-facing message of a domain error, or
// fallback when err carries none.
func MessageOf(err error, fallback string) string {
	var de *DomainError
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return fallback
}
