package time

import (
	"testing"
	"time"
)

func TestPtr(t *testing.T) {
	if Ptr(time.Time{}) != nil {
		t.Fatal("zero time should be nil")
	}
	ts := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	if p := Ptr(ts); p == nil || !p.Equal(ts) {
		t.Fatalf("Ptr = %v", p)
	}
}
