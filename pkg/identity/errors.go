package identity

import (
	"errors"
	"fmt"
)

// ErrInvalidFormat is returned when an identity or group string does not
// match its canonical delimiter-separated structure.
var ErrInvalidFormat = errors.New("invalid format")

// MissingFieldError is returned when a required wire field is absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

// DuplicateFieldError is returned when a wire field appears more than once.
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate field %q", e.Field)
}

// UnknownFieldError is returned when a wire object carries a field the codec
// does not recognize.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Field)
}
