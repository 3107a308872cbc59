package errors

import (
	"context"
	stderrs "errors"
	"testing"
)

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"foreign", stderrs.New("boom"), false},
		{"unavailable", New(ErrorCodeUnavailable, "down"), true},
		{"rate limited", Newf(ErrorCodeTooManyRequests, "slow down"), true},
		{"wrapped unavailable", Wrap(stderrs.New("eof"), ErrorCodeUnavailable, "read"), true},
		{"validation", New(ErrorCodeValidation, "bad"), false},
		{"canceled", Wrap(context.Canceled, ErrorCodeUnavailable, "read"), false},
		{"deadline", Wrap(context.DeadlineExceeded, ErrorCodeTooManyRequests, "call"), false},
	}
	for _, c := range cases {
		if got := IsRetryable(c.err); got != c.want {
			t.Fatalf("%s: IsRetryable = %v, want %v", c.name, got, c.want)
		}
	}
}
