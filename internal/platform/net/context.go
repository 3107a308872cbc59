// Package net carries request scoped values and the transport envelope
package net

import (
	"context"

	"chatlens/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const keyClient ctxKey = "client"

// WithRequest stores reqID where both chi and the request logger find it
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	return logger.WithRequest(ctx, reqID)
}

// RequestID returns the request id on ctx, or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// WithClient records the authenticated client name
func WithClient(ctx context.Context, client string) context.Context {
	if client == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, keyClient, client)
	return logger.WithClient(ctx, client)
}

// Client returns the authenticated client name, or "" for anonymous requests
func Client(ctx context.Context) string {
	s, _ := ctx.Value(keyClient).(string)
	return s
}
