package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "chatlens/internal/platform/net/http"
	"chatlens/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORSOrigins []string      // empty allows none
	SlowRequest time.Duration // access log warns at or above this; 0 disables
	Timeout     time.Duration // per request; 0 means 60s
}

// CommonStack is the middleware every versioned API scope gets. Scoped
// middleware sees the full path, so root-level probes belong in Heartbeat
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.LogContext,
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.SlowRequest}),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(timeout),
	}
}

// Auth wires the auth middleware to the platform JSON writer
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}

// Throttle caps concurrent requests in a scope; 0 disables it
func Throttle(limit int) func(http.Handler) http.Handler { return middleware.Throttle(limit) }

// Heartbeat answers GET path with a bare 200; mount it on the root router
func Heartbeat(path string) func(http.Handler) http.Handler { return middleware.Heartbeat(path) }
