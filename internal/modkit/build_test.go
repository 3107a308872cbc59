package modkit

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"chatlens/internal/platform/logger"
	phttp "chatlens/internal/platform/net/http"
	"chatlens/internal/platform/testkit"
)

func ptr(f func(http.Handler) http.Handler) uintptr { return reflect.ValueOf(f).Pointer() }

func TestBuild(t *testing.T) {
	t.Parallel()

	mwA := func(next http.Handler) http.Handler { return next }
	mwB := func(next http.Handler) http.Handler { return next }

	cases := []struct {
		name   string
		opts   []Option
		want   Built
		mwWant []func(http.Handler) http.Handler
	}{
		{name: "zero", want: Built{}},
		{
			name: "analysis",
			opts: []Option{WithName("analysis"), WithPrefix("/analyses"), WithMiddlewares(mwA)},
			want: Built{Name: "analysis", Prefix: "/analyses"}, mwWant: []func(http.Handler) http.Handler{mwA},
		},
		{
			name: "later wins and middleware accumulates",
			opts: []Option{
				WithName("meta"), WithName("analysis"),
				WithMiddlewares(mwA), WithMiddlewares(mwB),
			},
			want: Built{Name: "analysis"}, mwWant: []func(http.Handler) http.Handler{mwA, mwB},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			b := Build(tc.opts...)
			if b.Name != tc.want.Name || b.Prefix != tc.want.Prefix {
				t.Fatalf("name/prefix = %q/%q, want %q/%q", b.Name, b.Prefix, tc.want.Name, tc.want.Prefix)
			}
			if len(b.Mw) != len(tc.mwWant) {
				t.Fatalf("mw len = %d, want %d", len(b.Mw), len(tc.mwWant))
			}
			for i := range b.Mw {
				if ptr(b.Mw[i]) != ptr(tc.mwWant[i]) {
					t.Fatalf("mw[%d] out of order", i)
				}
			}
			if b.Subrouter == nil || b.Register == nil {
				t.Fatal("hooks must default to non-nil")
			}
		})
	}
}

func TestBuild_CopiesMiddleware(t *testing.T) {
	t.Parallel()
	mwA := func(next http.Handler) http.Handler { return next }
	mwB := func(next http.Handler) http.Handler { return next }
	src := []func(http.Handler) http.Handler{mwA}

	b := Build(WithMiddlewares(src...))
	src[0] = mwB
	if ptr(b.Mw[0]) != ptr(mwA) {
		t.Fatal("Built.Mw aliases the caller slice")
	}
}

func TestBuild_HooksRunAgainstRouter(t *testing.T) {
	t.Parallel()

	var seen []string
	b := Build(
		WithSubrouter(func(r phttp.Router) phttp.Router {
			seen = append(seen, "sub")
			return r
		}),
		WithRegister(func(r phttp.Router) {
			seen = append(seen, "register")
			r.Get("/extra", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })
		}),
	)

	r := phttp.AdaptChi(chi.NewRouter())
	b.Register(b.Subrouter(r))
	if strings.Join(seen, ",") != "sub,register" {
		t.Fatalf("hook order = %v", seen)
	}

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/extra", nil))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("extra route status = %d", rec.Code)
	}
}

type analysisPorts struct{ Limit int }

func TestPorts(t *testing.T) {
	t.Parallel()

	if got := Ports[analysisPorts](Build(), "analysis"); got != (analysisPorts{}) {
		t.Fatalf("missing ports = %+v, want zero", got)
	}
	if got := Ports[analysisPorts](Build(WithPorts(analysisPorts{Limit: 3})), "analysis"); got.Limit != 3 {
		t.Fatalf("ports = %+v", got)
	}

	testkit.MustPanic(t, func() {
		Ports[analysisPorts](Build(WithPorts("nope")), "analysis")
	})
}

func TestDeps_Named(t *testing.T) {
	t.Parallel()

	var zero Deps
	zero.Named("analysis").Info().Msg("dropped")

	var buf bytes.Buffer
	d := Deps{Log: logger.Logger(zerolog.New(&buf))}
	d.Named("analysis").Info().Msg("ready")
	testkit.MustContain(t, buf.String(), `"component":"analysis"`)
}
