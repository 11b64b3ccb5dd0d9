package session

import "fmt"

// Kind classifies session errors so callers can pick a response status.
type Kind string

const (
	// KindNotFound means an unknown party code or player id.
	KindNotFound Kind = "NOT_FOUND"
	// KindValidation means input that is malformed or out of protocol.
	KindValidation Kind = "VALIDATION"
)

// Error is the error type returned by every session operation.
type Error struct {
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is a session error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound   = &Error{Kind: KindNotFound, Message: "not found"}
	ErrValidation = &Error{Kind: KindValidation, Message: "validation failed"}
)

func notFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func invalid(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}
