// Package errors is the coded error type shared by every layer.
// Import it as perr
package errors

import (
	stderrs "errors"
	"fmt"
)

// Error carries a machine code next to a human message. The cause is kept for
// logs and errors.Is but never sent over the wire
type Error struct {
	code  ErrorCode
	msg   string
	field string
	op    string
	cause error
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.cause == nil:
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *Error) Unwrap() error { return e.cause }

// Code returns the classification
func (e *Error) Code() ErrorCode { return e.code }

// Field names the offending input, if any
func (e *Error) Field() string { return e.field }

// Op names the operation that failed, if tagged
func (e *Error) Op() string { return e.op }

// New builds an error with a fixed message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf builds an error with a formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return New(code, fmt.Sprintf(format, a...))
}

// Wrap classifies cause under code
func Wrap(cause error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, cause: cause}
}

// Wrapf is Wrap with a formatted message
func Wrapf(cause error, code ErrorCode, format string, a ...any) error {
	return Wrap(cause, code, fmt.Sprintf(format, a...))
}

// InvalidArgf is Newf(ErrorCodeInvalidArgument, ...)
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// PanicErrf is Newf(ErrorCodePanic, ...)
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// Unauthorizedf is Newf(ErrorCodeUnauthorized, ...)
func Unauthorizedf(format string, a ...any) error { return Newf(ErrorCodeUnauthorized, format, a...) }

// Unavailablef is Newf(ErrorCodeUnavailable, ...)
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }

// Internalf is Newf(ErrorCodeUnknown, ...)
func Internalf(format string, a ...any) error { return Newf(ErrorCodeUnknown, format, a...) }

// As finds the outermost *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// CodeOf is the code of the outermost *Error, Unknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether CodeOf(err) is code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus maps any error to a response status
func HTTPStatus(err error) int { return CodeOf(err).HTTPStatus() }

// OpOf returns the op tag of the outermost *Error
func OpOf(err error) string {
	if e, ok := As(err); ok {
		return e.op
	}
	return ""
}

// WithField returns a copy of err naming the offending input.
// Foreign errors are returned as is
func WithField(err error, field string) error {
	return with(err, func(c *Error) { c.field = field })
}

// WithOp returns a copy of err tagged with the failing operation
func WithOp(err error, op string) error {
	return with(err, func(c *Error) { c.op = op })
}

func with(err error, set func(*Error)) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	set(&c)
	return &c
}

// Wire is the part of an error that is safe to send to clients
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

// WireFrom strips err down to its Wire form. nil gives the zero Wire
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return Wire{Code: e.code, Message: e.msg, Field: e.field}
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}
