// Package temporal buckets an enriched record table into adaptive periods
// (weekly, biweekly or monthly, depending on the span) and aggregates each one
package temporal

import (
	"fmt"
	"sort"
	"time"

	"chatlens/internal/core/chat"
	"chatlens/internal/core/indicators"
	"chatlens/internal/core/topics"
)

// Granularity is the bucket width picked from the total span
type Granularity uint8

const (
	Weekly Granularity = iota
	Biweekly
	Monthly
)

func (g Granularity) String() string {
	switch g {
	case Weekly:
		return "weekly"
	case Biweekly:
		return "biweekly"
	case Monthly:
		return "monthly"
	}
	return fmt.Sprintf("granularity(%d)", uint8(g))
}

// MarshalText renders the lowercase name
func (g Granularity) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

const (
	// WeeklyBelowDays selects weekly periods for spans shorter than this
	WeeklyBelowDays = 30
	// BiweeklyBelowDays selects biweekly periods for spans shorter than this
	BiweeklyBelowDays = 180
	// DefaultThemes is the top-N keyword count per period
	DefaultThemes = 5
)

const day = 24 * time.Hour

// Choose maps a span in days to a granularity
func Choose(spanDays int) Granularity {
	switch {
	case spanDays < WeeklyBelowDays:
		return Weekly
	case spanDays < BiweeklyBelowDays:
		return Biweekly
	default:
		return Monthly
	}
}

// PeriodSummary aggregates the records of one period. PeriodStart and PeriodEnd
// are the first and last message instants inside it
type PeriodSummary struct {
	PeriodKey        string                      `json:"period_key"`
	PeriodIndex      int                         `json:"period_index"`
	PeriodStart      time.Time                   `json:"period_start"`
	PeriodEnd        time.Time                   `json:"period_end"`
	MessageCount     int                         `json:"message_count"`
	MessagesPerDay   float64                     `json:"messages_per_day"`
	AvgResponseTime  *float64                    `json:"avg_response_time"`
	SentimentTotals  map[indicators.Category]int `json:"sentiment_totals"`
	DominantThemes   []string                    `json:"dominant_themes"`
	PeakActivityDate string                      `json:"peak_activity_date"`
	SenderBreakdown  map[string]int              `json:"sender_breakdown"`
}

// Summary is the ordered period list plus the chosen granularity
type Summary struct {
	Granularity Granularity     `json:"granularity"`
	SpanDays    int             `json:"span_days"`
	Start       time.Time       `json:"start"`
	End         time.Time       `json:"end"`
	Periods     []PeriodSummary `json:"periods"`
}

// Empty reports whether no period was produced
func (s Summary) Empty() bool { return len(s.Periods) == 0 }

// Options tunes the summary
type Options struct {
	Themes    int
	Stopwords []string // extra words ignored by theme extraction
	// Force overrides the span based choice when non-nil
	Force *Granularity
}

type bucket struct {
	ps       PeriodSummary
	respSum  float64
	respN    int
	perDay   map[string]int
	words    *topics.Counter
	firstDay time.Time
	lastDay  time.Time
}

// Summarize builds the temporal summary. Empty input yields an empty summary
func Summarize(records []chat.Record, opts Options) Summary {
	if opts.Themes <= 0 {
		opts.Themes = DefaultThemes
	}
	if len(records) == 0 {
		return Summary{Periods: []PeriodSummary{}}
	}

	first, last := records[0].Day(), records[0].Day()
	for _, r := range records[1:] {
		d := r.Day()
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}
	span := daysBetween(first, last)
	g := Choose(span)
	if opts.Force != nil {
		g = *opts.Force
	}

	buckets := map[string]*bucket{}
	for _, r := range records {
		key, idx := periodOf(g, first, r.Day())
		b := buckets[key]
		if b == nil {
			b = &bucket{
				ps: PeriodSummary{
					PeriodKey:       key,
					PeriodIndex:     idx,
					PeriodStart:     r.Timestamp,
					PeriodEnd:       r.Timestamp,
					SentimentTotals: make(map[indicators.Category]int, len(indicators.Categories)),
					SenderBreakdown: map[string]int{},
				},
				perDay:   map[string]int{},
				words:    topics.NewCounter(opts.Stopwords...),
				firstDay: r.Day(),
				lastDay:  r.Day(),
			}
			for _, c := range indicators.Categories {
				b.ps.SentimentTotals[c] = 0
			}
			buckets[key] = b
		}
		b.add(r)
	}

	out := make([]PeriodSummary, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, b.finish(opts.Themes))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PeriodStart.Equal(out[j].PeriodStart) {
			return out[i].PeriodStart.Before(out[j].PeriodStart)
		}
		return out[i].PeriodKey < out[j].PeriodKey
	})

	return Summary{Granularity: g, SpanDays: span, Start: first, End: last, Periods: out}
}

func (b *bucket) add(r chat.Record) {
	ps := &b.ps
	ps.MessageCount++
	if r.Timestamp.Before(ps.PeriodStart) {
		ps.PeriodStart = r.Timestamp
	}
	if r.Timestamp.After(ps.PeriodEnd) {
		ps.PeriodEnd = r.Timestamp
	}
	if d := r.Day(); d.Before(b.firstDay) {
		b.firstDay = d
	} else if d.After(b.lastDay) {
		b.lastDay = d
	}
	if r.ResponseTimeMinutes != nil {
		b.respSum += *r.ResponseTimeMinutes
		b.respN++
	}
	for _, c := range indicators.Categories {
		ps.SentimentTotals[c] += indicators.RecordScore(r, c)
	}
	ps.SenderBreakdown[r.Sender]++
	b.perDay[r.Timestamp.Format(chat.DateLayout)]++
	b.words.Add(r.Body)
}

func (b *bucket) finish(themes int) PeriodSummary {
	ps := b.ps
	ps.MessagesPerDay = float64(ps.MessageCount) / float64(max(daysBetween(b.firstDay, b.lastDay), 1))
	if b.respN > 0 {
		avg := b.respSum / float64(b.respN)
		ps.AvgResponseTime = &avg
	}
	ps.DominantThemes = b.words.TopTokens(themes)

	// busiest date, earliest wins ties
	best := -1
	for date, n := range b.perDay {
		if n > best || (n == best && date < ps.PeakActivityDate) {
			best, ps.PeakActivityDate = n, date
		}
	}
	return ps
}

// periodOf returns the key and index of the period containing d
func periodOf(g Granularity, start, d time.Time) (string, int) {
	switch g {
	case Monthly:
		return d.Format("2006-01"), d.Year()*12 + int(d.Month())
	case Biweekly:
		idx := daysBetween(start, d) / 14
		return start.AddDate(0, 0, idx*14).Format(chat.DateLayout), idx
	default:
		idx := daysBetween(start, d) / 7
		return start.AddDate(0, 0, idx*7).Format(chat.DateLayout), idx
	}
}

// daysBetween counts whole calendar days from a to b, both UTC midnights
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / day)
}
