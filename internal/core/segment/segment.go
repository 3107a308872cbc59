// Package segment groups an enriched record table into conversation segments
package segment

import (
	"math"
	"sort"
	"time"

	"chatlens/internal/core/chat"
	"chatlens/internal/core/topics"
)

const (
	// DefaultLimit caps how many segments a run keeps
	DefaultLimit = 50
	// DefaultThemes is the number of dominant themes per segment
	DefaultThemes = 5
)

// Segment is one conversation. TextSummary is the only field filled after derivation
type Segment struct {
	ConversationID  int       `json:"conversation_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes float64   `json:"duration_minutes"`
	MessageCount    int       `json:"message_count"`
	Participants    []string  `json:"participants"`
	DominantThemes  []string  `json:"dominant_themes"`
	TextSummary     *string   `json:"text_summary"`
}

// Options bounds the output
type Options struct {
	Limit     int      // segments kept, ranked by message count
	Themes    int      // top-N topics per segment
	Stopwords []string // ignored by theme extraction on top of the built-in lists
}

// DefaultOptions returns a limit of 50 and five themes
func DefaultOptions() Options {
	return Options{Limit: DefaultLimit, Themes: DefaultThemes}
}

func (o Options) withDefaults() Options {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Themes < 0 {
		o.Themes = DefaultThemes
	}
	return o
}

type group struct {
	seg     Segment
	first   int // row of the first record, for stable ranking
	senders map[string]struct{}
	words   *topics.Counter
}

// Segments groups records by conversation id, keeps the Limit largest and
// returns them ordered by start time. Empty input yields an empty slice
func Segments(records []chat.Record, opts Options) []Segment {
	opts = opts.withDefaults()
	if len(records) == 0 {
		return []Segment{}
	}

	byID := map[int]*group{}
	order := make([]*group, 0)
	for i, r := range records {
		g, ok := byID[r.ConversationID]
		if !ok {
			g = &group{
				seg: Segment{
					ConversationID: r.ConversationID,
					StartTime:      r.Timestamp,
					EndTime:        r.Timestamp,
				},
				first:   i,
				senders: map[string]struct{}{},
				words:   topics.NewCounter(opts.Stopwords...),
			}
			byID[r.ConversationID] = g
			order = append(order, g)
		}
		g.seg.MessageCount++
		if r.Timestamp.Before(g.seg.StartTime) {
			g.seg.StartTime = r.Timestamp
		}
		if r.Timestamp.After(g.seg.EndTime) {
			g.seg.EndTime = r.Timestamp
		}
		if r.Sender != chat.SystemSender {
			g.senders[r.Sender] = struct{}{}
		}
		g.words.Add(r.Body)
	}

	// rank by size, keep the top Limit
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].seg.MessageCount != order[j].seg.MessageCount {
			return order[i].seg.MessageCount > order[j].seg.MessageCount
		}
		return order[i].first < order[j].first
	})
	if len(order) > opts.Limit {
		order = order[:opts.Limit]
	}

	out := make([]Segment, len(order))
	for i, g := range order {
		s := g.seg
		s.DurationMinutes = math.Abs(s.EndTime.Sub(s.StartTime).Minutes())
		s.Participants = sortedKeys(g.senders)
		s.DominantThemes = g.words.TopTokens(opts.Themes)
		out[i] = s
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].ConversationID < out[j].ConversationID
	})
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
