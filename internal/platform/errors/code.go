package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode classifies a failure for callers and transports.
// Numeric values are internal; the wire carries the name
type ErrorCode uint16

// Codes, append only
const (
	ErrorCodeUnknown ErrorCode = iota
	// ErrorCodePanic marks a handler panic caught by middleware
	ErrorCodePanic
	// ErrorCodeUnavailable is a transient I/O or upstream failure
	ErrorCodeUnavailable
	ErrorCodeTooManyRequests
	ErrorCodeUnauthorized
	// ErrorCodeInvalidArgument is well formed input the engine cannot use,
	// such as an oversized upload or an unreadable indicator pack
	ErrorCodeInvalidArgument
	// ErrorCodeValidation is a malformed flag or query option
	ErrorCodeValidation
	ErrorCodeJSON
	// ErrorCodeNotFound is a missing transcript
	ErrorCodeNotFound
)

var codeNames = [...]string{
	ErrorCodeUnknown:         "unknown",
	ErrorCodePanic:           "panic",
	ErrorCodeUnavailable:     "unavailable",
	ErrorCodeTooManyRequests: "too_many_requests",
	ErrorCodeUnauthorized:    "unauthorized",
	ErrorCodeInvalidArgument: "invalid_argument",
	ErrorCodeValidation:      "validation",
	ErrorCodeJSON:            "json",
	ErrorCodeNotFound:        "not_found",
}

func (c ErrorCode) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return codeNames[ErrorCodeUnknown]
}

// MarshalText encodes the code by name
func (c ErrorCode) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText accepts the names produced by MarshalText
func (c *ErrorCode) UnmarshalText(b []byte) error {
	for i, n := range codeNames {
		if n == string(b) {
			*c = ErrorCode(i)
			return nil
		}
	}
	return fmt.Errorf("errors: unknown code %q", b)
}

// HTTPStatus maps the code onto a response status
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeInvalidArgument:
		return http.StatusUnprocessableEntity
	case ErrorCodeValidation, ErrorCodeJSON:
		return http.StatusBadRequest
	case ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrorCodeTooManyRequests:
		return http.StatusTooManyRequests
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
