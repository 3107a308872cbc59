package middleware

import (
	"net/http"
	"time"

	"chatlens/internal/platform/logger"
	pnet "chatlens/internal/platform/net"
)

// AccessLogOptions configures AccessLog
type AccessLogOptions struct {
	// Slow logs requests at or above this duration at warn; 0 disables it
	Slow time.Duration
}

type captureWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	n, err := cw.ResponseWriter.Write(b)
	cw.bytes += n
	return n, err
}

// AccessLog writes one zerolog line per request through the request scoped logger.
// Uploads are logged with their declared size so slow analyses can be told apart
func AccessLog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(cw, r)
			elapsed := time.Since(start)

			log := logger.C(r.Context())
			evt := log.Info()
			switch {
			case cw.status >= http.StatusInternalServerError:
				evt = log.Error()
			case opt.Slow > 0 && elapsed >= opt.Slow:
				evt = log.Warn()
			}
			if id := pnet.RequestID(r.Context()); id != "" {
				evt = evt.Str("request_id", id)
			}
			if r.ContentLength > 0 {
				evt = evt.Int64("upload_bytes", r.ContentLength)
			}
			evt.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", cw.status).
				Int("bytes", cw.bytes).
				Dur("elapsed", elapsed).
				Msg("request")
		})
	}
}
