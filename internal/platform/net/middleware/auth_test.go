package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "chatlens/internal/platform/errors"
	pnet "chatlens/internal/platform/net"
	"chatlens/internal/platform/net/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type portFunc func(*http.Request) (string, error)

func (f portFunc) Parse(r *http.Request) (string, error) { return f(r) }

func writeStatus(w http.ResponseWriter, status int, _ any) { w.WriteHeader(status) }

func TestAuth(t *testing.T) {
	cases := []struct {
		name       string
		port       middleware.AuthPort
		wantStatus int
		wantClient string
	}{
		{"nil port", nil, http.StatusOK, ""},
		{"rejected", portFunc(func(*http.Request) (string, error) {
			return "", perr.Unauthorizedf("nope")
		}), http.StatusUnauthorized, ""},
		{"plain error", portFunc(func(*http.Request) (string, error) {
			return "", errors.New("boom")
		}), http.StatusInternalServerError, ""},
		{"accepted", portFunc(func(*http.Request) (string, error) {
			return "cli", nil
		}), http.StatusOK, "cli"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var client string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				client = pnet.Client(r.Context())
			})
			rr := httptest.NewRecorder()
			middleware.Auth(c.port, writeStatus)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
			if rr.Code != c.wantStatus || client != c.wantClient {
				t.Fatalf("status=%d client=%q, want %d %q", rr.Code, client, c.wantStatus, c.wantClient)
			}
		})
	}
}

func TestLogContext_CarriesRequestID(t *testing.T) {
	var got string
	h := chimw.RequestID(middleware.LogContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = pnet.RequestID(r.Context())
	})))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc-1")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != "abc-1" {
		t.Fatalf("request id = %q", got)
	}
}
