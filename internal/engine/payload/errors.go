package payload

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrEmptyPayload           = errors.New("empty payload")
	ErrMissingRequiredField   = errors.New("missing required field")
	ErrInvalidField           = errors.New("invalid field")
)

// UnsupportedTypeError names the discriminator that fell outside the closed set.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported content type %q", e.Type)
}

func (e *UnsupportedTypeError) Unwrap() error {
	return ErrUnsupportedContentType
}

// FieldError reports a required field that was absent or a field whose value
// cannot be encoded. A missing field also matches ErrEmptyPayload.
type FieldError struct {
	Type  Type
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Type, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func (e *FieldError) Is(target error) bool {
	return e.Err == ErrMissingRequiredField && target == ErrEmptyPayload
}

func missing(t Type, field string) error {
	return &FieldError{Type: t, Field: field, Err: ErrMissingRequiredField}
}

func invalid(t Type, field string) error {
	return &FieldError{Type: t, Field: field, Err: ErrInvalidField}
}
