package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes surfaced to API callers.
const (
	CodeDuplicateUsername  = "DUPLICATE_USERNAME"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeValidation         = "VALIDATION_ERROR"
	CodeStoreUnavailable   = "STORE_UNAVAILABLE"
)

// DomainError is an error kind returned by the services. Two DomainErrors
// match under errors.Is when their codes are equal.
type DomainError struct {
	Code    string
	Message string
	Field   string
	Err     error
}

func (e *DomainError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

var (
	ErrDuplicateUsername = &DomainError{
		Code:    CodeDuplicateUsername,
		Message: "username already exists",
	}
	ErrInvalidCredentials = &DomainError{
		Code:    CodeInvalidCredentials,
		Message: "invalid credentials",
	}
	ErrValidation = &DomainError{
		Code:    CodeValidation,
		Message: "validation failed",
	}
	ErrStoreUnavailable = &DomainError{
		Code:    CodeStoreUnavailable,
		Message: "store unavailable",
	}
)

// NewValidationError reports a missing or malformed field.
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: message,
		Field:   field,
	}
}

// StoreUnavailable wraps a persistence failure so that both the domain kind
// and the underlying cause stay reachable through errors.Is.
func StoreUnavailable(err error) *DomainError {
	return &DomainError{
		Code:    CodeStoreUnavailable,
		Message: "store unavailable",
		Err:     err,
	}
}

// Code extracts the API code of err, or "" when err is not a DomainError.
func Code(err error) string {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de.Code
	}
	return ""
}
