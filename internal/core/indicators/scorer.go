package indicators

import (
	"math"

	"chatlens/internal/core/chat"
	"chatlens/internal/core/normalize"
)

// Options controls matching behavior
type Options struct {
	// WordBoundary rejects matches glued to letters or digits ("kiss" in "kissimmee").
	// Off by default: phrases match as plain substrings
	WordBoundary bool
}

// Scorer counts phrase hits per category. Safe for concurrent use once built
type Scorer struct {
	pack *Pack
	opts Options
	ac   *automaton
}

// NewScorer builds a Scorer with default options
func NewScorer(p *Pack) *Scorer { return NewScorerWithOptions(p, Options{}) }

// NewScorerWithOptions builds a Scorer over every phrase of p
func NewScorerWithOptions(p *Pack, opts Options) *Scorer {
	ac := newAutomaton()
	for i, ph := range p.Phrases {
		ac.add(ph.Term, i)
	}
	ac.build()
	return &Scorer{pack: p, opts: opts, ac: ac}
}

// Pack returns the phrase pack the scorer was built from
func (s *Scorer) Pack() *Pack { return s.pack }

// Score returns per-category counts for body. Each phrase contributes its
// number of non-overlapping occurrences, leftmost first
func (s *Scorer) Score(body string) Scores {
	var out Scores
	text := normalize.Fold(body)
	if text == "" || len(s.pack.Phrases) == 0 {
		return out
	}

	// per phrase end of the last counted occurrence
	lastEnd := make([]int, len(s.pack.Phrases))
	s.ac.scan(text, func(start, end, id int) {
		if start < lastEnd[id] {
			return
		}
		if s.opts.WordBoundary && !boundaryOK(text, start, end) {
			return
		}
		lastEnd[id] = end
		out[s.pack.Phrases[id].Category]++
	})
	return out
}

// Count returns the score for one category
func (s *Scorer) Count(body string, c Category) int { return s.Score(body).Get(c) }

// Stats aggregates one category over a record set
type Stats struct {
	TotalIndicators      int            `json:"total_indicators"`
	BySender             map[string]int `json:"by_sender"`
	PercentageOfMessages int            `json:"percentage_of_messages"`
}

// Aggregate sums the per-record scores of c. PercentageOfMessages is the share of
// records with at least one hit, rounded to the nearest integer, 0 for no records
func Aggregate(records []chat.Record, c Category) Stats {
	st := Stats{BySender: map[string]int{}}
	if len(records) == 0 {
		return st
	}
	withHit := 0
	for _, r := range records {
		n := RecordScore(r, c)
		st.TotalIndicators += n
		st.BySender[r.Sender] += n
		if n > 0 {
			withHit++
		}
	}
	st.PercentageOfMessages = int(math.Round(float64(withHit) / float64(len(records)) * 100))
	return st
}

// AggregateAll runs Aggregate for every category
func AggregateAll(records []chat.Record) map[Category]Stats {
	out := make(map[Category]Stats, len(Categories))
	for _, c := range Categories {
		out[c] = Aggregate(records, c)
	}
	return out
}

// RecordScore reads the enriched score column of c
func RecordScore(r chat.Record, c Category) int {
	switch c {
	case Romantic:
		return r.RomanticScore
	case Intimacy:
		return r.IntimacyScore
	case FuturePlanning:
		return r.FuturePlanningScore
	}
	return 0
}

// Apply writes sc into the score columns of r
func Apply(r *chat.Record, sc Scores) {
	r.RomanticScore = sc.Get(Romantic)
	r.IntimacyScore = sc.Get(Intimacy)
	r.FuturePlanningScore = sc.Get(FuturePlanning)
}
