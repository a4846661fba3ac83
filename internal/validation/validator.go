package validation

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	apperrors "riskledger/internal/errors"
)

// Validator collects field errors in the order they were found.
type Validator struct {
	Errors map[string]string
	fields []string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records message for field. Only the first message per field is kept.
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; exists {
		return
	}
	v.Errors[field] = message
	v.fields = append(v.fields, field)
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Required checks that a string is not blank.
func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "must not be empty")
}

// MinLength checks if a string has at least n characters
func (v *Validator) MinLength(field, value string, n int) {
	v.Check(utf8.RuneCountInString(value) >= n, field, fmt.Sprintf("must be at least %d characters long", n))
}

// Finite rejects NaN and infinities.
func (v *Validator) Finite(field string, value float64) {
	v.Check(!math.IsNaN(value) && !math.IsInf(value, 0), field, "must be a finite number")
}

// NonNegative checks value >= 0.
func (v *Validator) NonNegative(field string, value float64) {
	v.Check(value >= 0, field, "must not be negative")
}

// Err returns the first recorded error as a validation DomainError, or nil.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	field := v.fields[0]
	return apperrors.NewValidationError(field, v.Errors[field])
}
