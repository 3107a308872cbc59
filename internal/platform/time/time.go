// Package time holds small time helpers for report types
package time

import "time"

// Ptr returns &t, or nil for the zero time so optional timestamps encode as null
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
