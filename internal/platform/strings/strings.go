// Package strings holds the small string and slice helpers modules share
package strings

import std "strings"

// IfEmpty returns def when in is empty
func IfEmpty[T any](in, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString returns s, panicking with "<name> is required" when it is blank
func MustString(s, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes a mount path to a single leading slash and no
// trailing one. "" and "/" panic: modules never mount at the root
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}
