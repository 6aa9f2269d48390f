package service

import "errors"

// Error kinds. Every failure returned by Service is either one of these
// (checked with errors.Is), a types.ValidationErrors, or an unexpected
// storage error.
var (
	ErrNotFound            = errors.New("not found")
	ErrConstraintViolation = errors.New("constraint violation")
)

var (
	ErrUserNotFound  = &Error{Kind: ErrNotFound, Msg: "user not found"}
	ErrOrderNotFound = &Error{Kind: ErrNotFound, Msg: "order not found"}
	ErrDuplicateUser = &Error{Kind: ErrConstraintViolation, Msg: "duplicate username or email"}
)

// Error is a domain failure with a client-facing message
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}
