// Package apperror classifies failures so the HTTP layer can map them to
// status codes without knowing every usecase error.
package apperror

import "errors"

type Kind int

const (
	KindUnexpected Kind = iota
	KindNotFound
	KindValidation
	KindConflict
	KindDuplicate
	KindUnauthorized
	KindForbidden
)

// Error is a classified error. Err optionally points at a broader sentinel
// so reason errors still satisfy errors.Is against their family.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Because returns a new error of the same kind as parent that unwraps to it.
func Because(parent *Error, message string) *Error {
	return &Error{Kind: parent.Kind, Message: message, Err: parent}
}

func NotFound(message string) *Error     { return New(KindNotFound, message) }
func Validation(message string) *Error   { return New(KindValidation, message) }
func Conflict(message string) *Error     { return New(KindConflict, message) }
func Duplicate(message string) *Error    { return New(KindDuplicate, message) }
func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }
func Forbidden(message string) *Error    { return New(KindForbidden, message) }

// KindOf returns the kind of the first classified error in the chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}
