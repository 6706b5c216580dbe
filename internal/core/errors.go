package core

import (
	"errors"
	"strings"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidStatus = errors.New("invalid status")
	ErrNotFound      = errors.New("record not found")
)

// ValidationError reports which fields of a draft were missing or malformed.
// Field names are the JSON names so callers can highlight form inputs.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required field(s): "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid field(s): "+strings.Join(e.Invalid, ", "))
	}
	if len(parts) == 0 {
		return "validation failed"
	}
	return strings.Join(parts, "; ")
}

// Fields returns every offending field, missing ones first.
func (e *ValidationError) Fields() []string {
	return append(append([]string(nil), e.Missing...), e.Invalid...)
}

// Has reports whether the named field is among the offending ones.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields() {
		if f == field {
			return true
		}
	}
	return false
}

// InvalidField builds a ValidationError for a single malformed field.
func InvalidField(field string) *ValidationError {
	return &ValidationError{Invalid: []string{field}}
}

// AsValidation unwraps err into a ValidationError when it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
