// Package enrich derives the per-message feature columns of a record table
//
// Steps, all order preserving and total
// 1 stable sort by timestamp
// 2 date, hour, weekday
// 3 message length (runes) and word count
// 4 response time against the immediate predecessor
// 5 conversation boundaries and ids
// 6 indicator scores
//
// Steps 4 and 5 depend on global order; Sequence reruns just those after
// independently enriched chunks are concatenated
package enrich

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"chatlens/internal/core/chat"
	"chatlens/internal/core/indicators"
)

const (
	// DefaultConversationGap splits conversations when exceeded (strictly greater)
	DefaultConversationGap = 60 * time.Minute
	// DefaultResponseCap caps response latency
	DefaultResponseCap = 1440 * time.Minute
)

// Options tunes the ordering-dependent fields
type Options struct {
	ConversationGap time.Duration
	ResponseCap     time.Duration
}

// DefaultOptions returns the 60 minute gap and 24 hour cap
func DefaultOptions() Options {
	return Options{ConversationGap: DefaultConversationGap, ResponseCap: DefaultResponseCap}
}

func (o Options) withDefaults() Options {
	if o.ConversationGap <= 0 {
		o.ConversationGap = DefaultConversationGap
	}
	if o.ResponseCap <= 0 {
		o.ResponseCap = DefaultResponseCap
	}
	return o
}

// Enricher derives features with a fixed scorer and options. Safe for concurrent use
type Enricher struct {
	scorer *indicators.Scorer
	opts   Options
}

// New builds an Enricher; a nil scorer leaves the score columns at zero
func New(scorer *indicators.Scorer, opts Options) *Enricher {
	return &Enricher{scorer: scorer, opts: opts.withDefaults()}
}

// Enrich returns a new, fully enriched table. The input slice is not modified.
// Empty input returns empty output
func (e *Enricher) Enrich(records []chat.Record) []chat.Record {
	if len(records) == 0 {
		return []chat.Record{}
	}
	out := make([]chat.Record, len(records))
	copy(out, records)

	SortStable(out)
	for i := range out {
		e.Local(&out[i])
	}
	sequence(out, e.opts)
	return out
}

// Local fills every field that depends only on the record itself (steps 2, 3 and 6)
func (e *Enricher) Local(r *chat.Record) {
	Temporal(r)
	Lengths(r)
	if e.scorer != nil {
		indicators.Apply(r, e.scorer.Score(r.Body))
	}
}

// Sequence sorts in place and recomputes the ordering-dependent fields (steps 1, 4 and 5)
func (e *Enricher) Sequence(records []chat.Record) {
	SortStable(records)
	sequence(records, e.opts)
}

// SortStable orders records by timestamp; ties keep their input order
func SortStable(records []chat.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
}

// Temporal sets date, hour and weekday (1=Monday .. 7=Sunday)
func Temporal(r *chat.Record) {
	ts := r.Timestamp.UTC()
	r.Date = ts.Format(chat.DateLayout)
	r.Hour = ts.Hour()
	r.Weekday = isoWeekday(ts.Weekday())
}

// Lengths sets message length in characters and whitespace-delimited word count
func Lengths(r *chat.Record) {
	r.MessageLength = utf8.RuneCountInString(r.Body)
	r.WordCount = len(strings.Fields(r.Body))
}

func isoWeekday(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}

// sequence assumes records are already sorted
func sequence(records []chat.Record, opts Options) {
	capMin := opts.ResponseCap.Minutes()
	convID := 0
	for i := range records {
		r := &records[i]
		r.ResponseTimeMinutes = nil

		if i == 0 {
			r.IsConversationStart = true
			convID = 1
			r.ConversationID = convID
			continue
		}

		prev := records[i-1]
		gap := r.Timestamp.Sub(prev.Timestamp)

		if r.Sender != prev.Sender {
			mins := gap.Minutes()
			if mins > capMin {
				mins = capMin
			}
			r.ResponseTimeMinutes = &mins
		}

		r.IsConversationStart = gap > opts.ConversationGap
		if r.IsConversationStart {
			convID++
		}
		r.ConversationID = convID
	}
}
