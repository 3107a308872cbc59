package normalize

import "testing"

func TestLine_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "identity ascii", in: "[01/01/23, 09:00] Alice: hi", out: "[01/01/23, 09:00] Alice: hi"},
		{name: "narrow no-break space", in: "[01/01/23, 9:00\u202fPM] Alice: hi", out: "[01/01/23, 9:00 PM] Alice: hi"},
		{name: "no-break space", in: "[01/01/23,\u00a09:00] Bob: yo", out: "[01/01/23, 9:00] Bob: yo"},
		{name: "thin space", in: "a\u2009b", out: "a b"},
		{name: "leading LRM and BOM", in: "\ufeff\u200e[01/01/23, 09:00] A: x", out: "[01/01/23, 09:00] A: x"},
		{name: "trailing CR", in: "hello\r", out: "hello"},
		{name: "controls dropped", in: "he\x00ll\x7fo", out: "hello"},
		{name: "invalid utf8 dropped", in: string([]byte{0xff, 'o', 'k'}), out: "ok"},
		{name: "empty", in: "", out: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Line(tc.in); got != tc.out {
				t.Fatalf("Line(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

func TestFold_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "case fold", in: "I LOVE You", out: "i love you"},
		{name: "newlines collapse", in: "miss\nyou", out: "miss you"},
		{name: "zero width removed", in: "l\u200bove", out: "love"},
		{name: "nfkc ligature", in: "o\ufb03ce", out: "office"},
		{name: "accents kept", in: "TE QUIERO MUCHO, CARIÑO", out: "te quiero mucho, cariño"},
		{name: "edges trimmed", in: "  hey  ", out: "hey"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Fold(tc.in); got != tc.out {
				t.Fatalf("Fold(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

func TestFold_Concurrent(t *testing.T) {
	t.Parallel()
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 200; j++ {
				if got := Fold("Good MORNING"); got != "good morning" {
					t.Errorf("unexpected fold %q", got)
					return
				}
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
