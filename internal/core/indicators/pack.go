// Package indicators counts romantic, intimacy and future-planning phrases in
// message bodies. Phrase lists come from an embedded indicators.json or a
// caller supplied file, and are matched case-insensitively in one pass
package indicators

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"chatlens/internal/core/normalize"
)

//go:embed indicators.json
var embedded []byte

type rawPack struct {
	Version    int                 `json:"version"`
	Meta       map[string]any      `json:"meta"`
	Categories map[string][]string `json:"categories"`
}

// Phrase is one folded keyword bound to its category
type Phrase struct {
	Term     string
	Category Category
}

// Pack is an immutable set of folded phrases per category
type Pack struct {
	Version int
	Meta    map[string]any

	// Phrases sorted by (category, term), deduplicated within a category
	Phrases []Phrase
}

// Load returns the pack compiled from the embedded indicators.json
func Load() (*Pack, error) { return Parse(embedded) }

// LoadFile reads a pack from a JSON file with the embedded layout
func LoadFile(path string) (*Pack, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("indicators: read %s: %w", path, err)
	}
	return Parse(b)
}

// Parse compiles a pack from raw JSON
func Parse(b []byte) (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(b, &rp); err != nil {
		return nil, fmt.Errorf("indicators: parse: %w", err)
	}
	if rp.Version != 1 {
		return nil, fmt.Errorf("indicators: unsupported version %d (want 1)", rp.Version)
	}

	lists := make(map[Category][]string, len(rp.Categories))
	for key, terms := range rp.Categories {
		c, ok := ParseCategory(key)
		if !ok {
			return nil, fmt.Errorf("indicators: unknown category %q", key)
		}
		lists[c] = append(lists[c], terms...)
	}
	p := FromLists(lists)
	p.Version = rp.Version
	p.Meta = rp.Meta
	return p, nil
}

// FromLists builds a pack from in-memory lists. Terms are folded, blank terms
// dropped and duplicates within a category removed
func FromLists(lists map[Category][]string) *Pack {
	p := &Pack{Version: 1}
	for _, c := range Categories {
		seen := make(map[string]struct{}, len(lists[c]))
		for _, t := range lists[c] {
			t = normalize.Fold(t)
			if t == "" {
				continue
			}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			p.Phrases = append(p.Phrases, Phrase{Term: t, Category: c})
		}
	}

	// deterministic order for tests and reports
	sort.SliceStable(p.Phrases, func(i, j int) bool {
		if p.Phrases[i].Category != p.Phrases[j].Category {
			return p.Phrases[i].Category < p.Phrases[j].Category
		}
		return p.Phrases[i].Term < p.Phrases[j].Term
	})
	return p
}

// Terms returns the folded phrases of one category
func (p *Pack) Terms(c Category) []string {
	var out []string
	for _, ph := range p.Phrases {
		if ph.Category == c {
			out = append(out, ph.Term)
		}
	}
	return out
}
