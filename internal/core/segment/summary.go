package segment

import (
	"context"
	"fmt"
	"strings"

	"chatlens/internal/core/chat"
	"chatlens/internal/core/topics"
)

// Summarizer produces an optional text summary for the bodies of one segment.
// An empty result or an error selects the built-in fallback
type Summarizer interface {
	Summarize(ctx context.Context, bodies []string) (string, error)
}

// SummarizerFunc adapts a function to Summarizer
type SummarizerFunc func(ctx context.Context, bodies []string) (string, error)

// Summarize implements Summarizer
func (f SummarizerFunc) Summarize(ctx context.Context, bodies []string) (string, error) {
	return f(ctx, bodies)
}

// Fallback is the deterministic summary used when no summarizer answers
func Fallback(bodies []string, themes int) string {
	if themes <= 0 {
		themes = DefaultThemes
	}
	if top := topics.Of(bodies, themes); len(top) > 0 {
		return "Discussion about: " + strings.Join(top, ", ")
	}
	return fmt.Sprintf("%d messages exchanged", len(bodies))
}

// Summarize fills TextSummary on every segment in place. sum may be nil.
// Failures from sum are recorded per segment in the returned map and never abort;
// a cancelled ctx stops calling sum and the remaining segments get the fallback
func Summarize(ctx context.Context, segs []Segment, records []chat.Record, sum Summarizer, themes int) map[int]error {
	bodies := map[int][]string{}
	for _, r := range records {
		bodies[r.ConversationID] = append(bodies[r.ConversationID], r.Body)
	}

	failures := map[int]error{}
	for i := range segs {
		b := bodies[segs[i].ConversationID]
		text := ""
		if sum != nil && ctx.Err() == nil {
			got, err := sum.Summarize(ctx, b)
			if err != nil {
				failures[segs[i].ConversationID] = err
			} else {
				text = strings.TrimSpace(got)
			}
		}
		if text == "" {
			text = Fallback(b, themes)
		}
		segs[i].TextSummary = &text
	}
	return failures
}
