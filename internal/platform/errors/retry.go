package errors

import (
	"context"
	stderrs "errors"
)

// IsRetryable reports whether err is a transient upstream condition worth
// another attempt. Cancellation and deadline expiry never are
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	c := CodeOf(err)
	return c == ErrorCodeUnavailable || c == ErrorCodeTooManyRequests
}
