package apperrors

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error kinds, matched with errors.Is.
var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("not found")
	ErrPersistence = errors.New("persistence error")
)

// Error carries a human readable message together with its kind and cause.
type Error struct {
	kind    error
	message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

// Is matches the error kind.
func (e *Error) Is(target error) bool {
	return target == e.kind
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Validation creates an error for missing or malformed input.
func Validation(format string, args ...any) error {
	return &Error{kind: ErrValidation, message: fmt.Sprintf(format, args...)}
}

// NotFound creates an error for ids that don't resolve.
func NotFound(format string, args ...any) error {
	return &Error{kind: ErrNotFound, message: fmt.Sprintf(format, args...)}
}

// Persistence wraps a store failure.
func Persistence(cause error, format string, args ...any) error {
	return &Error{kind: ErrPersistence, message: fmt.Sprintf(format, args...), cause: cause}
}

// FromRepository turns a repository failure into notFound when the record is missing,
// or into a persistence error otherwise.
func FromRepository(err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return Persistence(err, "database error")
}
