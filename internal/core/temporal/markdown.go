package temporal

import (
	"fmt"
	"sort"
	"strings"

	"chatlens/internal/core/indicators"
)

// RenderMarkdown writes a human readable report of s
func RenderMarkdown(s Summary) string {
	var b strings.Builder
	b.WriteString("## Activity over time\n\n")
	if s.Empty() {
		b.WriteString("_No messages._\n")
		return b.String()
	}
	fmt.Fprintf(&b, "%s periods over %d days (%s to %s)\n\n",
		titleCase(s.Granularity.String()), s.SpanDays,
		s.Start.Format("2006-01-02"), s.End.Format("2006-01-02"))

	b.WriteString("| Period | Messages | Per day | Avg response (min) |")
	for _, c := range indicators.Categories {
		fmt.Fprintf(&b, " %s |", c.Key())
	}
	b.WriteString(" Peak day | Themes |\n")
	b.WriteString("|---|---:|---:|---:|")
	for range indicators.Categories {
		b.WriteString("---:|")
	}
	b.WriteString("---|---|\n")

	for _, p := range s.Periods {
		resp := "-"
		if p.AvgResponseTime != nil {
			resp = fmt.Sprintf("%.1f", *p.AvgResponseTime)
		}
		fmt.Fprintf(&b, "| %s | %d | %.2f | %s |", p.PeriodKey, p.MessageCount, p.MessagesPerDay, resp)
		for _, c := range indicators.Categories {
			fmt.Fprintf(&b, " %d |", p.SentimentTotals[c])
		}
		fmt.Fprintf(&b, " %s | %s |\n", p.PeakActivityDate, strings.Join(p.DominantThemes, ", "))
	}

	b.WriteString("\n### Senders per period\n\n")
	for _, p := range s.Periods {
		names := make([]string, 0, len(p.SenderBreakdown))
		for n := range p.SenderBreakdown {
			names = append(names, n)
		}
		sort.Strings(names)
		parts := make([]string, len(names))
		for i, n := range names {
			parts[i] = fmt.Sprintf("%s %d", n, p.SenderBreakdown[n])
		}
		fmt.Fprintf(&b, "- %s: %s\n", p.PeriodKey, strings.Join(parts, ", "))
	}
	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
