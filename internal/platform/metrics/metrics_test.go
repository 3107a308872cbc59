package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"chatlens/internal/platform/testkit"
)

func TestObserveAnalysis(t *testing.T) {
	m := New()
	m.ObserveAnalysis(40*time.Millisecond, 120, 2, "Friend", nil)
	m.ObserveAnalysis(time.Millisecond, 0, 0, "", nil)
	m.ObserveAnalysis(time.Millisecond, 0, 0, "", errors.New("open chat.txt"))

	cases := []struct {
		outcome, class string
		want           float64
	}{
		{"ok", "Friend", 1},
		{"empty", "", 1},
		{"error", "", 1},
		{"ok", "Romantic", 0},
	}
	for _, c := range cases {
		if got := testutil.ToFloat64(m.analyses.WithLabelValues(c.outcome, c.class)); got != c.want {
			t.Errorf("analyses{%s,%s} = %v, want %v", c.outcome, c.class, got, c.want)
		}
	}
	if got := testutil.ToFloat64(m.messages); got != 120 {
		t.Fatalf("messages = %v", got)
	}
	if got := testutil.ToFloat64(m.diagnostics); got != 2 {
		t.Fatalf("diagnostics = %v", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveAnalysis(time.Second, 1, 1, "Friend", nil)

	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) }))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("nil middleware status = %d", rec.Code)
	}
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Post("/api/v1/analyses", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusCreated) })
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/analyses", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	if n := testutil.CollectAndCount(m.requests); n != 2 {
		t.Fatalf("request series = %d, want 2", n)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	out := string(body)
	testkit.MustContain(t, out, `chatlens_http_request_duration_seconds_count{method="POST",route="/api/v1/analyses",status="201"} 1`)
	testkit.MustContain(t, out, `route="unmatched",status="404"`)
	testkit.MustContain(t, out, "go_goroutines")
	if strings.Contains(out, `route="/nope"`) {
		t.Fatal("raw paths must not become labels")
	}
}
