package middleware

import (
	"net/http"

	pnet "chatlens/internal/platform/net"
)

// AuthPort identifies the client behind a request
type AuthPort interface {
	Parse(r *http.Request) (client string, err error)
}

// Auth rejects requests the port cannot identify and stores the client on the
// context. A nil port lets everything through
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if p == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithClient(r.Context(), client)))
		})
	}
}

// LogContext copies the chi request id into the request logger context.
// Mount it after RequestID
func LogContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := pnet.RequestID(r.Context()); id != "" {
			r = r.WithContext(pnet.WithRequest(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}
