package services

import (
	"errors"
	"fmt"

	"soundwave/internal/store"
)

// Kind classifies a service failure. Handlers map it to an HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is returned by every service operation. Message is safe to show to
// clients; Err carries the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
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

const serverErrorMessage = "Server error"

func validationError(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }
func authError(msg string) *Error       { return &Error{Kind: KindAuth, Message: msg} }
func notFoundError(msg string) *Error   { return &Error{Kind: KindNotFound, Message: msg} }
func conflictError(msg string) *Error   { return &Error{Kind: KindConflict, Message: msg} }

func internalError(op string, err error) *Error {
	return &Error{Kind: KindInternal, Message: serverErrorMessage, Err: fmt.Errorf("%s: %w", op, err)}
}

// storeError maps store.ErrNotFound to a NotFound error with msg and every
// other failure to an internal error.
func storeError(op string, err error, notFoundMsg string) *Error {
	if errors.Is(err, store.ErrNotFound) {
		return notFoundError(notFoundMsg)
	}
	return internalError(op, err)
}

// KindOf reports the kind of err. Errors not produced by this package are
// internal.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}

// MessageOf returns the client facing message for err.
func MessageOf(err error) string {
	var svcErr *Error
	if errors.As(err, &svcErr) && svcErr.Message != "" {
		return svcErr.Message
	}
	return serverErrorMessage
}

const allFieldsRequired = "All fields are required"
