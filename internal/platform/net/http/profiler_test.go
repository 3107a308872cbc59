package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"chatlens/internal/platform/config"
	phttp "chatlens/internal/platform/net/http"
)

func TestMountProfiler(t *testing.T) {
	cases := []struct {
		enabled bool
		want    int
	}{
		{true, http.StatusOK},
		{false, http.StatusNotFound},
	}
	for _, c := range cases {
		r := phttp.NewServer(config.New()).Router()
		phttp.MountProfiler(r, "/debug", c.enabled)
		for _, path := range []string{"/debug/pprof/", "/debug/pprof/cmdline"} {
			rec := httptest.NewRecorder()
			r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			if rec.Code != c.want {
				t.Fatalf("enabled=%v %s: got %d want %d", c.enabled, path, rec.Code, c.want)
			}
		}
	}
}
