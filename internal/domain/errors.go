package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindGeneration ErrorKind = "generation"
	KindStorage    ErrorKind = "storage"
)

// Sentinel errors for broad classification.
var (
	ErrRequired = errors.New("required field is empty")
	ErrNotFound = errors.New("not found")
)

// Error wraps an underlying error with operation context and a kind.
type Error struct {
	Op    string
	Kind  ErrorKind
	Field string // Optional: offending form field
	Msg   string // Optional: user-facing message
	Err   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Field != "" {
		base += fmt.Sprintf(" (field=%s)", e.Field)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// UserMessage returns the message meant for the status line.
// Falls back to the technical description when no message was set.
func (e *Error) UserMessage() string {
	if e == nil {
		return ""
	}
	if e.Msg != "" {
		return e.Msg
	}
	return e.Error()
}

// IsKind reports whether err (or anything it wraps) is a *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}

// UserMessage extracts a user-facing message from err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.UserMessage()
	}
	return err.Error()
}
