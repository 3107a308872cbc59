package classify

import (
	"testing"
	"time"

	"chatlens/internal/core/chat"
)

func ptr(v float64) *float64 { return &v }

func TestScore_ThresholdBoundaries(t *testing.T) {
	cfg := DefaultConfig()

	exactly70 := Score(Inputs{RomanticPct: 20, IntimacyPct: 20, AvgResponseMin: ptr(0)}, cfg)
	if exactly70.Score != 70 || exactly70.Classification != Romantic {
		t.Fatalf("got %d %s, want 70 Romantic", exactly70.Score, exactly70.Classification)
	}

	sixtyNine := Score(Inputs{RomanticPct: 20, IntimacyPct: 20, AvgResponseMin: ptr(5)}, cfg)
	if sixtyNine.Score != 69 || sixtyNine.Classification != CloseFriend {
		t.Fatalf("got %d %s, want 69 CloseFriend", sixtyNine.Score, sixtyNine.Classification)
	}
}

func TestConfigLevel(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		score int
		want  Level
	}{
		{0, Acquaintance}, {19, Acquaintance}, {20, Friend}, {39, Friend},
		{40, CloseFriend}, {69, CloseFriend}, {70, Romantic}, {100, Romantic},
	}
	for _, tc := range tests {
		if got := cfg.Level(tc.score); got != tc.want {
			t.Fatalf("Level(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestScore_ComponentsClamped(t *testing.T) {
	r := Score(Inputs{
		RomanticPct: 90, IntimacyPct: 50, FuturePct: 30,
		MessagesPerDay: 500, AvgResponseMin: ptr(400),
	}, DefaultConfig())
	want := map[Factor]float64{
		FactorRomantic: 100, FactorIntimacy: 100, FactorFuture: 100,
		FactorFrequency: 100, FactorResponsiveness: 0,
	}
	for f, v := range want {
		if r.ComponentScores[f] != v {
			t.Fatalf("%s = %v, want %v", f, r.ComponentScores[f], v)
		}
	}
	if r.Score != 90 {
		t.Fatalf("score = %d, want 90", r.Score)
	}
}

func TestScore_NeutralResponsiveness(t *testing.T) {
	r := Score(Inputs{MessagesPerDay: 4}, DefaultConfig())
	if r.ComponentScores[FactorResponsiveness] != 50 {
		t.Fatalf("responsiveness = %v, want neutral 50", r.ComponentScores[FactorResponsiveness])
	}
	if r.ComponentScores[FactorFrequency] != 20 {
		t.Fatalf("frequency = %v, want 20", r.ComponentScores[FactorFrequency])
	}
	// 0.15*20 + 0.10*50 = 8
	if r.Score != 8 || r.Classification != Acquaintance {
		t.Fatalf("got %d %s", r.Score, r.Classification)
	}
}

func TestScore_CustomConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights = map[Factor]float64{FactorFrequency: 1}
	cfg.FriendThreshold = 5
	r := Score(Inputs{MessagesPerDay: 1}, cfg)
	if r.Score != 5 || r.Classification != Friend {
		t.Fatalf("got %d %s", r.Score, r.Classification)
	}
}

func TestClassify_Empty(t *testing.T) {
	if _, ok := Classify(nil, DefaultConfig()); ok {
		t.Fatalf("empty table must not classify")
	}
}

func TestInputsOf(t *testing.T) {
	d0 := time.Date(2023, 1, 1, 9, 0, 0, 0, time.UTC)
	recs := []chat.Record{
		{Timestamp: d0, Sender: "A", RomanticScore: 1},
		{Timestamp: d0.Add(10 * time.Minute), Sender: "B", ResponseTimeMinutes: ptr(10), IntimacyScore: 2},
		{Timestamp: d0.Add(49 * time.Hour), Sender: "A", ResponseTimeMinutes: ptr(30)},
		{Timestamp: d0.Add(50 * time.Hour), Sender: "A"},
	}
	in := InputsOf(recs)
	if in.RomanticPct != 25 || in.IntimacyPct != 25 || in.FuturePct != 0 {
		t.Fatalf("pcts wrong: %+v", in)
	}
	// Jan 1 .. Jan 3 inclusive is 3 days
	if in.MessagesPerDay != 4.0/3.0 {
		t.Fatalf("messages/day = %v", in.MessagesPerDay)
	}
	if in.AvgResponseMin == nil || *in.AvgResponseMin != 20 {
		t.Fatalf("avg response = %v", in.AvgResponseMin)
	}

	r, ok := Classify(recs, DefaultConfig())
	if !ok || r.Inputs.MessagesPerDay != in.MessagesPerDay {
		t.Fatalf("classify did not use inputs")
	}
}

func TestLevelText(t *testing.T) {
	b, _ := CloseFriend.MarshalText()
	if string(b) != "CloseFriend" {
		t.Fatalf("got %s", b)
	}
}
