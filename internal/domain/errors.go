package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrUnknownField signals a filter key that is not in the schema.
	ErrUnknownField = errors.New("unknown filter field")
	// ErrKindMismatch signals a filter value whose kind does not fit the field.
	ErrKindMismatch = errors.New("filter value kind mismatch")
	// ErrDecode signals a structurally invalid filter state encoding.
	ErrDecode = errors.New("decode filter state")
	// ErrInvalidName signals an unusable saved state name.
	ErrInvalidName = errors.New("invalid name")
)

// FieldError wraps a field-level sentinel with the offending key.
type FieldError struct {
	Key string
	Err error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %q", e.Err.Error(), e.Key)
}

func (e *FieldError) Unwrap() error { return e.Err }

// NewUnknownField creates an ErrUnknownField error for key.
func NewUnknownField(key string) error {
	return &FieldError{Key: key, Err: ErrUnknownField}
}

// NewKindMismatch creates an ErrKindMismatch error for key.
func NewKindMismatch(key string) error {
	return &FieldError{Key: key, Err: ErrKindMismatch}
}
