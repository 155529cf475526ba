package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when input or an entity fails validation.
	// Every *ValidationError matches it with errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID cannot be normalised to a positive integer.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnauthenticated is returned when an operation requires a caller identity
	// and none was established for the request.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden is returned when the caller is authenticated but lacks the
	// role or ownership required for the operation.
	ErrForbidden = errors.New("insufficient permissions")
)

// FieldIssue describes a single failed constraint on an input field.
type FieldIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError carries one or more field-level issues.
type ValidationError struct {
	Issues []FieldIssue
	cause  error
}

// NewValidationError creates a ValidationError for a single field.
// The optional cause is kept for errors.Is checks (for example ErrInvalidID).
func NewValidationError(path, message string, cause error) *ValidationError {
	return &ValidationError{
		Issues: []FieldIssue{{Path: path, Message: message}},
		cause:  cause,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path == "" {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Path, issue.Message))
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Unwrap returns the underlying cause, if any.
func (e *ValidationError) Unwrap() error {
	return e.cause
}
