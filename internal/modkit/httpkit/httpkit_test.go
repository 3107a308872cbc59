package httpkit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perrs "chatlens/internal/platform/errors"
	phttp "chatlens/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func newRouter() Router { return phttp.AdaptChi(chi.NewRouter()) }

func do(t *testing.T, r Router, method, path string) (*httptest.ResponseRecorder, phttp.Envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	var env phttp.Envelope
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return rec, env
}

func TestCall(t *testing.T) {
	r := newRouter()
	Get(r, "/value", func(*http.Request) (any, error) { return map[string]int{"n": 1}, nil })
	Post(r, "/created", func(*http.Request) (any, error) { return Created("made"), nil })
	Get(r, "/coded", func(*http.Request) (any, error) { return nil, perrs.InvalidArgf("bad") })
	Get(r, "/plain", func(*http.Request) (any, error) { return nil, errors.New("boom") })

	cases := []struct {
		method, path string
		status       int
	}{
		{http.MethodGet, "/value", http.StatusOK},
		{http.MethodPost, "/created", http.StatusCreated},
		{http.MethodGet, "/coded", http.StatusUnprocessableEntity},
		{http.MethodGet, "/plain", http.StatusInternalServerError},
	}
	for _, c := range cases {
		rec, env := do(t, r, c.method, c.path)
		if rec.Code != c.status || env.StatusCode != c.status {
			t.Fatalf("%s %s: %d %+v", c.method, c.path, rec.Code, env)
		}
		if c.status >= 400 && env.Error == "" {
			t.Fatalf("%s: missing error message", c.path)
		}
	}
}

type countingRouter struct {
	Router
	prefixes []string
	uses     int
}

func (c *countingRouter) Route(p string, fn func(Router)) {
	c.prefixes = append(c.prefixes, p)
	fn(c)
}

func (c *countingRouter) Use(...func(http.Handler) http.Handler) { c.uses++ }

func TestMountUnder(t *testing.T) {
	noop := func(next http.Handler) http.Handler { return next }

	r := &countingRouter{}
	mounted := 0
	MountUnder(r, "/analyses", []func(http.Handler) http.Handler{noop, noop}, func(Router) { mounted++ })
	MountUnder(r, "/meta", nil, func(Router) { mounted++ })
	if mounted != 2 || r.uses != 1 || len(r.prefixes) != 2 {
		t.Fatalf("mounted=%d uses=%d prefixes=%v", mounted, r.uses, r.prefixes)
	}

	v := &countingRouter{}
	MountAPIV1(v, nil, func(Router) {})
	MountAPI(v, "/v2", nil, func(Router) {})
	if v.prefixes[0] != "/api/v1" || v.prefixes[1] != "/api/v2" {
		t.Fatalf("prefixes = %v", v.prefixes)
	}
}

func TestCommonStack(t *testing.T) {
	r := newRouter()
	hit := 0
	MountAPIV1(r, CommonStack(StackOptions{}), func(api Router) {
		Get(api, "/ping", func(*http.Request) (any, error) { hit++; return "pong", nil })
		Get(api, "/panic", func(*http.Request) (any, error) { panic("boom") })
	})

	rec, env := do(t, r, http.MethodGet, "/api/v1/ping")
	if rec.Code != http.StatusOK || hit != 1 || env.RequestID == "" || rec.Header().Get("Cache-Control") == "" {
		t.Fatalf("ping: %d %+v %v", rec.Code, env, rec.Header())
	}

	rec, env = do(t, r, http.MethodGet, "/api/v1/panic")
	if rec.Code != http.StatusInternalServerError || env.Code != perrs.ErrorCodePanic {
		t.Fatalf("panic: %d %+v", rec.Code, env)
	}
}

func TestHeartbeat(t *testing.T) {
	r := newRouter()
	r.Use(Heartbeat("/health"))
	MountAPIV1(r, CommonStack(StackOptions{}), func(Router) {})

	rec, _ := do(t, r, http.MethodGet, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("heartbeat: %d", rec.Code)
	}
}

func TestAuthAndThrottle(t *testing.T) {
	r := newRouter()
	MountUnder(r, "/guarded", []func(http.Handler) http.Handler{
		Auth(NewPortFunc(StaticToken("tok", "cli"))),
		Throttle(2),
	}, func(sub Router) {
		Get(sub, "/", func(*http.Request) (any, error) { return "in", nil })
	})

	rec, env := do(t, r, http.MethodGet, "/guarded")
	if rec.Code != http.StatusUnauthorized || env.Code != perrs.ErrorCodeUnauthorized {
		t.Fatalf("no token: %d %+v", rec.Code, env)
	}

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer tok")
	ok := httptest.NewRecorder()
	r.Mux().ServeHTTP(ok, req)
	if ok.Code != http.StatusOK {
		t.Fatalf("with token: %d %s", ok.Code, ok.Body.String())
	}
}
