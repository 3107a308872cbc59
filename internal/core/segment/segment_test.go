package segment

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"chatlens/internal/core/chat"
)

var t0 = time.Date(2023, 1, 1, 9, 0, 0, 0, time.UTC)

func rec(conv int, at time.Time, sender, body string) chat.Record {
	return chat.Record{ConversationID: conv, Timestamp: at, Sender: sender, Body: body}
}

func TestSegments_Basic(t *testing.T) {
	recs := []chat.Record{
		rec(1, t0, "Alice", "coffee later?"),
		rec(1, t0.Add(5*time.Minute), "Bob", "coffee sounds good"),
		rec(2, t0.Add(3*time.Hour), "Alice", "movie tonight"),
		rec(2, t0.Add(3*time.Hour+30*time.Minute), chat.SystemSender, "Bob changed the group name"),
	}
	got := Segments(recs, DefaultOptions())
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	s := got[0]
	if s.ConversationID != 1 || s.MessageCount != 2 || s.DurationMinutes != 5 {
		t.Fatalf("segment 1 = %+v", s)
	}
	if !reflect.DeepEqual(s.Participants, []string{"Alice", "Bob"}) {
		t.Fatalf("participants = %v", s.Participants)
	}
	if len(s.DominantThemes) == 0 || s.DominantThemes[0] != "coffee" {
		t.Fatalf("themes = %v", s.DominantThemes)
	}
	if !reflect.DeepEqual(got[1].Participants, []string{"Alice"}) {
		t.Fatalf("SYSTEM must not be a participant: %v", got[1].Participants)
	}
	if s.TextSummary != nil {
		t.Fatal("summary is filled only by Summarize")
	}
}

func TestSegments_Empty(t *testing.T) {
	got := Segments(nil, DefaultOptions())
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}

func TestSegments_DurationNonNegativeOnUnsortedInput(t *testing.T) {
	recs := []chat.Record{
		rec(1, t0.Add(10*time.Minute), "A", "x"),
		rec(1, t0, "B", "y"),
	}
	s := Segments(recs, DefaultOptions())[0]
	if !s.StartTime.Equal(t0) || s.DurationMinutes != 10 {
		t.Fatalf("got %+v", s)
	}
}

func TestSegments_CapKeepsLargestInChronologicalOrder(t *testing.T) {
	var recs []chat.Record
	sizes := map[int]int{}
	for conv := 1; conv <= 80; conv++ {
		n := (conv*37)%80 + 1 // a permutation of 1..80
		sizes[conv] = n
		start := t0.Add(time.Duration(conv) * 3 * time.Hour)
		for k := 0; k < n; k++ {
			recs = append(recs, rec(conv, start.Add(time.Duration(k)*time.Minute), "A", "hi"))
		}
	}

	got := Segments(recs, DefaultOptions())
	if len(got) != 50 {
		t.Fatalf("len = %d, want 50", len(got))
	}
	for i, s := range got {
		if s.MessageCount != sizes[s.ConversationID] {
			t.Fatalf("conv %d count %d want %d", s.ConversationID, s.MessageCount, sizes[s.ConversationID])
		}
		if s.MessageCount <= 30 {
			t.Fatalf("conv %d with %d messages should have been cut", s.ConversationID, s.MessageCount)
		}
		if i > 0 && !got[i-1].StartTime.Before(s.StartTime) {
			t.Fatalf("not chronological at %d", i)
		}
	}
}

func TestSegments_CustomLimit(t *testing.T) {
	recs := []chat.Record{
		rec(1, t0, "A", "a"),
		rec(2, t0.Add(2*time.Hour), "A", "b"),
		rec(2, t0.Add(2*time.Hour+time.Minute), "B", "c"),
	}
	got := Segments(recs, Options{Limit: 1})
	if len(got) != 1 || got[0].ConversationID != 2 {
		t.Fatalf("got %+v", got)
	}
}

func TestSegments_Stopwords(t *testing.T) {
	recs := []chat.Record{
		rec(1, t0, "A", "pizza pizza tonight"),
		rec(1, t0.Add(time.Minute), "B", "pizza sounds great tonight"),
	}
	got := Segments(recs, Options{Themes: 1, Stopwords: []string{"PIZZA"}})
	if len(got) != 1 || !reflect.DeepEqual(got[0].DominantThemes, []string{"tonight"}) {
		t.Fatalf("themes = %+v", got)
	}
}

func TestFallback(t *testing.T) {
	if got := Fallback([]string{"pizza tonight?", "pizza yes"}, 3); got != "Discussion about: pizza, tonight" {
		t.Fatalf("got %q", got)
	}
	if got := Fallback([]string{"ok", "lol"}, 3); got != "2 messages exchanged" {
		t.Fatalf("got %q", got)
	}
}

func TestSummarize(t *testing.T) {
	recs := []chat.Record{
		rec(1, t0, "A", "pizza tonight?"),
		rec(2, t0.Add(2*time.Hour), "A", "ok"),
		rec(3, t0.Add(4*time.Hour), "A", "ok"),
	}
	segs := Segments(recs, DefaultOptions())
	boom := errors.New("boom")
	sum := SummarizerFunc(func(_ context.Context, bodies []string) (string, error) {
		switch bodies[0] {
		case "pizza tonight?":
			return " Planning dinner. ", nil
		}
		return "", boom
	})

	failures := Summarize(context.Background(), segs, recs, sum, 5)
	if *segs[0].TextSummary != "Planning dinner." {
		t.Fatalf("summary 1 = %q", *segs[0].TextSummary)
	}
	if *segs[1].TextSummary != "1 messages exchanged" {
		t.Fatalf("summary 2 = %q", *segs[1].TextSummary)
	}
	if len(failures) != 2 || !errors.Is(failures[2], boom) {
		t.Fatalf("failures = %v", failures)
	}
}

func TestSummarize_NilSummarizerAndCancelledContext(t *testing.T) {
	recs := []chat.Record{rec(1, t0, "A", "pizza pizza")}
	segs := Segments(recs, DefaultOptions())
	Summarize(context.Background(), segs, recs, nil, 5)
	if *segs[0].TextSummary != "Discussion about: pizza" {
		t.Fatalf("got %q", *segs[0].TextSummary)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	sum := SummarizerFunc(func(context.Context, []string) (string, error) { called = true; return "x", nil })
	Summarize(ctx, segs, recs, sum, 5)
	if called {
		t.Fatal("summarizer called after cancellation")
	}
}
