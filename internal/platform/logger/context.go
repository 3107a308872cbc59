package logger

import "context"

type ctxKey uint8

const (
	keyRequestID ctxKey = iota
	keyClient
)

// WithRequest tags ctx so C adds request_id to every line
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, keyRequestID, reqID)
}

// WithClient tags ctx with the authenticated client name
func WithClient(ctx context.Context, client string) context.Context {
	if client == "" {
		return ctx
	}
	return context.WithValue(ctx, keyClient, client)
}

// C returns the root logger carrying whatever tags ctx holds
func C(ctx context.Context) *Logger {
	c := Get().With()
	if v, ok := ctx.Value(keyRequestID).(string); ok {
		c = c.Str("request_id", v)
	}
	if v, ok := ctx.Value(keyClient).(string); ok {
		c = c.Str("client", v)
	}
	l := c.Logger()
	return &l
}
