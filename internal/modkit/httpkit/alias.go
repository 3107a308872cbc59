// Package httpkit is what modules build routes with, so they never import
// internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "chatlens/internal/platform/net/http"
)

type (
	// Response is the return-style handler result
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is a re-export of the platform router seam
	Router = phttp.Router
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// Error maps err to its status and error envelope
func Error(err error) Response { return phttp.Error(err) }

// Call adapts (value, error) handlers: errors become error envelopes, a
// returned Response passes through and anything else is a 200
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return Error(err)
		}
		if resp, ok := out.(Response); ok {
			return resp
		}
		return OK(out)
	})
}
