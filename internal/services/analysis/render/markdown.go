// Package render formats analysis reports for humans
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"chatlens/internal/core/classify"
	"chatlens/internal/core/indicators"
	"chatlens/internal/core/temporal"
	"chatlens/internal/services/analysis/domain"
)

var weekdays = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Markdown writes rep as a markdown document
func Markdown(w io.Writer, rep domain.Report) error {
	var b strings.Builder

	title := rep.Source
	if title == "" {
		title = "transcript"
	}
	fmt.Fprintf(&b, "# Chat analysis: %s\n\n", title)
	fmt.Fprintf(&b, "Report `%s`, generated %s.\n\n", rep.ID, rep.CreatedAt.UTC().Format(time.RFC3339))

	if rep.Empty {
		b.WriteString("_No participant messages found._\n")
		writeDiagnostics(&b, rep)
		_, err := io.WriteString(w, b.String())
		return err
	}

	writeOverview(&b, rep.Stats)
	writeClassification(&b, rep.Classification)
	writeIndicators(&b, rep.Indicators)
	writeSegments(&b, rep)
	b.WriteString(temporal.RenderMarkdown(rep.Temporal))
	writeDiagnostics(&b, rep)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeOverview(b *strings.Builder, s domain.Stats) {
	b.WriteString("## Overview\n\n")
	fmt.Fprintf(b, "- Messages: %d in %d conversations over %d active days\n", s.Records, s.Conversations, s.ActiveDays)
	if s.FirstMessage != nil && s.LastMessage != nil {
		fmt.Fprintf(b, "- From %s to %s\n", s.FirstMessage.Format("2006-01-02 15:04"), s.LastMessage.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(b, "- Average response: %s\n", minutes(s.AvgResponseMin))
	if s.BusiestHour != nil {
		fmt.Fprintf(b, "- Busiest hour: %02d:00\n", *s.BusiestHour)
	}
	if s.BusiestWeekday != nil && *s.BusiestWeekday >= 1 && *s.BusiestWeekday <= 7 {
		fmt.Fprintf(b, "- Busiest day: %s\n", weekdays[*s.BusiestWeekday-1])
	}

	b.WriteString("\n| Sender | Messages | Share | Avg length | Avg words | Avg response |\n")
	b.WriteString("|---|---:|---:|---:|---:|---:|\n")
	for _, p := range s.Participants {
		fmt.Fprintf(b, "| %s | %d | %.1f%% | %.1f | %.1f | %s |\n",
			escape(p.Sender), p.Messages, p.Share, p.AvgMessageLength, p.AvgWordCount, minutes(p.AvgResponseMin))
	}
	b.WriteString("\n")
}

func writeClassification(b *strings.Builder, r *classify.Result) {
	b.WriteString("## Relationship\n\n")
	if r == nil {
		b.WriteString("_Not enough data._\n\n")
		return
	}
	fmt.Fprintf(b, "**%s** (score %d/100)\n\n", r.Classification, r.Score)
	b.WriteString("| Component | Score |\n|---|---:|\n")
	for _, f := range classify.Factors {
		fmt.Fprintf(b, "| %s | %.1f |\n", f, r.ComponentScores[f])
	}
	b.WriteString("\n")
}

func writeIndicators(b *strings.Builder, m map[indicators.Category]indicators.Stats) {
	b.WriteString("## Indicators\n\n")
	b.WriteString("| Category | Total | % of messages |\n|---|---:|---:|\n")
	for _, c := range indicators.Categories {
		st := m[c]
		fmt.Fprintf(b, "| %s | %d | %d%% |\n", c.Key(), st.TotalIndicators, st.PercentageOfMessages)
	}
	b.WriteString("\n")
}

func writeSegments(b *strings.Builder, rep domain.Report) {
	fmt.Fprintf(b, "## Conversations (%d shown)\n\n", len(rep.Segments))
	for _, s := range rep.Segments {
		fmt.Fprintf(b, "- **#%d** %s, %d messages, %.0f min, %s",
			s.ConversationID, s.StartTime.Format("2006-01-02 15:04"), s.MessageCount,
			s.DurationMinutes, strings.Join(s.Participants, " & "))
		if len(s.DominantThemes) > 0 {
			fmt.Fprintf(b, " [%s]", strings.Join(s.DominantThemes, ", "))
		}
		if s.TextSummary != nil {
			fmt.Fprintf(b, "\n  %s", *s.TextSummary)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeDiagnostics(b *strings.Builder, rep domain.Report) {
	if len(rep.Diagnostics) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## Diagnostics (%d)\n\n", len(rep.Diagnostics))
	for _, d := range rep.Diagnostics {
		fmt.Fprintf(b, "- line %d: %s\n", d.LineNo, d.Reason)
	}
}

func minutes(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f min", *v)
}

func escape(s string) string { return strings.ReplaceAll(s, "|", `\|`) }
