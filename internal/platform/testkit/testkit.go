// Package testkit holds the small assertions and seams tests share
package testkit

import (
	"strings"
	"testing"
)

// Swap replaces *target for the rest of the test and restores it on cleanup.
// Works on package variables and struct fields alike
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}

// MustPanic fails the test unless fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic, got none")
		}
	}()
	fn()
}

// MustContain fails the test unless haystack contains needle; the whole
// haystack is logged so multi-line output stays readable
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Logf("output:\n%s", haystack)
		t.Fatalf("expected output to contain %q", needle)
	}
}
