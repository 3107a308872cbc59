package indicators

import (
	"fmt"
	"strings"
)

// Category tags one of the configured keyword lists
type Category uint8

const (
	// Romantic covers affection and pet names
	Romantic Category = iota
	// Intimacy covers trust, disclosure and closeness
	Intimacy
	// FuturePlanning covers shared plans and commitments
	FuturePlanning

	numCategories
)

// Categories lists every category in a stable order
var Categories = [...]Category{Romantic, Intimacy, FuturePlanning}

// Key returns the wire name used in indicators.json and reports
func (c Category) Key() string {
	switch c {
	case Romantic:
		return "romantic"
	case Intimacy:
		return "intimacy"
	case FuturePlanning:
		return "future_planning"
	default:
		return fmt.Sprintf("category(%d)", uint8(c))
	}
}

func (c Category) String() string { return c.Key() }

// MarshalText encodes the category as its key, so maps keyed by Category serialize readably
func (c Category) MarshalText() ([]byte, error) { return []byte(c.Key()), nil }

// ParseCategory maps a wire name back to a Category
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "romantic":
		return Romantic, true
	case "intimacy":
		return Intimacy, true
	case "future_planning", "future", "futureplanning":
		return FuturePlanning, true
	}
	return 0, false
}

// Scores holds per-category hit counts for one message
type Scores [numCategories]int

// Get returns the count for c
func (s Scores) Get(c Category) int { return s[c] }

// Total sums every category
func (s Scores) Total() int {
	n := 0
	for _, v := range s {
		n += v
	}
	return n
}
