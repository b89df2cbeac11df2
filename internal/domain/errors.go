package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrPermissionDenied signals a rejected authorization check.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrValidation signals malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrLoginFailed signals invalid credentials.
	ErrLoginFailed = errors.New("login failed")

	// ErrConfiguration signals a wiring bug (missing or duplicate handler).
	// Fatal: the process setup is wrong, not the request.
	ErrConfiguration = errors.New("configuration error")
	// ErrIntegrity signals a cross-organization data inconsistency.
	// It points at a setup bug upstream and must not be auto-resolved.
	ErrIntegrity = errors.New("data integrity error")
)

// FieldError is a single validation failure qualified by its field path,
// e.g. "extra_fields[1].data.false_value".
type FieldError struct {
	Path    string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationError aggregates field-path-qualified failures.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError from field failures.
func NewValidationError(fields ...FieldError) error {
	return &ValidationError{Fields: fields}
}

// Invalid is a one-field ValidationError.
func Invalid(path, message string) error {
	return &ValidationError{Fields: []FieldError{{Path: path, Message: message}}}
}
