package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Store operations. Callers match them with errors.Is.
var (
	// ErrInvalidFormat is returned when a file extension is neither .csv nor .json.
	ErrInvalidFormat = errors.New("file must be either CSV or JSON format")

	// ErrNotConfigured is returned when an operation runs before SetPath.
	ErrNotConfigured = errors.New("file path not set")

	ErrMissingField    = errors.New("missing field")
	ErrInvalidField    = errors.New("invalid field")
	ErrDuplicateID     = errors.New("duplicate id")
	ErrColumnConflict  = errors.New("column already exists")
	ErrColumnMissing   = errors.New("column does not exist")
	ErrColumnProtected = errors.New("cannot remove id column")
	ErrInvalidColumn   = errors.New("invalid column name")
)

// FieldError describes a validation failure for a single record field.
// It unwraps to ErrMissingField or ErrInvalidField.
type FieldError struct {
	Field  string
	Reason string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func missingField(field string, schema Schema) *FieldError {
	return &FieldError{
		Field:  field,
		Reason: fmt.Sprintf("all fields %v are required", []string(schema)),
		Err:    ErrMissingField,
	}
}

func invalidField(field, reason string) *FieldError {
	return &FieldError{Field: field, Reason: reason, Err: ErrInvalidField}
}
