package shared

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every NotFoundError through errors.Is
var ErrNotFound = errors.New("not found")

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Lookup errors

// NotFoundError reports an unknown good, settlement or other keyed entity.
// Callers treat it as a severe configuration problem, not a normal miss.
type NotFoundError struct {
	*DomainError
	Kind string
	Key  string
}

func NewNotFoundError(kind string, key interface{}) *NotFoundError {
	k := fmt.Sprint(key)
	return &NotFoundError{
		DomainError: &DomainError{Message: fmt.Sprintf("%s %q not found", kind, k)},
		Kind:        kind,
		Key:         k,
	}
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// Configuration errors

type ConfigurationError struct {
	*DomainError
	Subject string
}

func NewConfigurationError(subject, message string) *ConfigurationError {
	return &ConfigurationError{
		DomainError: &DomainError{Message: fmt.Sprintf("%s: %s", subject, message)},
		Subject:     subject,
	}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
