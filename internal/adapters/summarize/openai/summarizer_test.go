package openai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"chatlens/internal/platform/config"
	perr "chatlens/internal/platform/errors"
	"chatlens/internal/platform/testkit"

	"github.com/openai/openai-go/responses"
)

type fakeAPI struct {
	replies []string
	errs    []error
	calls   int
	last    responses.ResponseNewParams
}

func (f *fakeAPI) complete(_ context.Context, p responses.ResponseNewParams) (string, error) {
	i := f.calls
	f.calls++
	f.last = p
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.replies) {
		return f.replies[i], nil
	}
	return `{"summary":"fallthrough"}`, nil
}

func newTest(t *testing.T, api completer) (*Summarizer, *[]time.Duration) {
	t.Helper()
	s, err := newWith(api, Config{
		Model:            "test-model",
		MaxOutputTokens:  50,
		RateLimitWaits:   []time.Duration{time.Second, 2 * time.Second},
		ServerErrorWaits: []time.Duration{3 * time.Second},
	})
	if err != nil {
		t.Fatal(err)
	}
	var waits []time.Duration
	testkit.Swap(t, &s.sleep, func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	})
	return s, &waits
}

func TestSummarize_Decodes(t *testing.T) {
	api := &fakeAPI{replies: []string{` {"summary":"  Planning a weekend trip. "} `}}
	s, _ := newTest(t, api)
	got, err := s.Summarize(context.Background(), []string{"trip?", "yes\nsaturday"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "Planning a weekend trip." {
		t.Fatalf("got %q", got)
	}
	if api.last.Model != "test-model" {
		t.Fatalf("model = %v", api.last.Model)
	}
}

func TestSummarize_EmptyBodiesSkipsCall(t *testing.T) {
	api := &fakeAPI{}
	s, _ := newTest(t, api)
	if got, err := s.Summarize(context.Background(), nil); err != nil || got != "" || api.calls != 0 {
		t.Fatalf("got %q err %v calls %d", got, err, api.calls)
	}
}

func TestSummarize_RetriesThenSucceeds(t *testing.T) {
	api := &fakeAPI{
		errs:    []error{errors.New("POST: 429 Too Many Requests"), errors.New("500 Internal Server Error")},
		replies: []string{"", "", `{"summary":"ok"}`},
	}
	s, waits := newTest(t, api)
	got, err := s.Summarize(context.Background(), []string{"hi"})
	if err != nil || got != "ok" {
		t.Fatalf("got %q err %v", got, err)
	}
	if api.calls != 3 || len(*waits) != 2 || (*waits)[0] != time.Second || (*waits)[1] != 3*time.Second {
		t.Fatalf("calls=%d waits=%v", api.calls, *waits)
	}
}

func TestSummarize_GivesUpAfterBackoffs(t *testing.T) {
	e := errors.New("429 rate limit")
	api := &fakeAPI{errs: []error{e, e, e, e}}
	s, _ := newTest(t, api)
	_, err := s.Summarize(context.Background(), []string{"hi"})
	if !perr.IsCode(err, perr.ErrorCodeTooManyRequests) || !errors.Is(err, e) {
		t.Fatalf("err = %v", err)
	}
	if api.calls != 3 {
		t.Fatalf("calls = %d", api.calls)
	}
}

func TestSummarize_BadJSON(t *testing.T) {
	s, _ := newTest(t, &fakeAPI{replies: []string{"not json"}})
	if _, err := s.Summarize(context.Background(), []string{"hi"}); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("err = %v", err)
	}
}

func TestNew_DisabledWithoutKey(t *testing.T) {
	s, err := New(FromConfig(config.New()))
	if err != nil || s != nil {
		t.Fatalf("want nil summarizer, got %v %v", s, err)
	}
}

func TestFromConfig(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-test")
	c := FromConfig(config.New())
	if !c.Enabled() || c.Model != "gpt-test" || c.MaxOutputTokens != 200 {
		t.Fatalf("cfg = %+v", c)
	}
}

func TestGenerateSchema_Strict(t *testing.T) {
	m, err := GenerateSchema[summaryResponse]()
	if err != nil {
		t.Fatal(err)
	}
	if m["additionalProperties"] != false {
		t.Fatalf("schema not closed: %v", m)
	}
	req, ok := m["required"].([]string)
	if !ok || len(req) != 1 || req[0] != "summary" {
		t.Fatalf("required = %#v", m["required"])
	}
}

func TestTranscript(t *testing.T) {
	if got := transcript([]string{"a\nb", "c"}, 0); got != "a b\nc\n" {
		t.Fatalf("got %q", got)
	}
	if got := transcript([]string{"abc", "defgh"}, 6); got != "abc\n" {
		t.Fatalf("got %q", got)
	}
	if got := transcript([]string{strings.Repeat("x", 10)}, 4); got != "xxxx" {
		t.Fatalf("got %q", got)
	}
}
