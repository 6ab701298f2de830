package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an operation failure. Handlers map kinds to HTTP statuses;
// services never return raw store errors to handlers.
type Kind int

const (
	Validation Kind = iota
	Referential
	Duplicate
	NotFound
	Conflict
	Forbidden
	AccessDenied
	InvalidCredentials
	TokenExpired
	TokenInvalid
	StoreUnavailable
)

type Error struct {
	Kind    Kind
	Message string
	// Dependents is set for Conflict errors and reports how many child
	// records block the delete.
	Dependents int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewConflict reports a delete blocked by dependent records.
func NewConflict(message string, dependents int) *Error {
	return &Error{Kind: Conflict, Message: message, Dependents: dependents}
}

// Wrap tags an underlying store error with a kind.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of err if it is an *Error, otherwise
// StoreUnavailable: an unclassified failure is treated as infrastructure.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return StoreUnavailable
}

// Is lets errors.Is match two app errors of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
