package service

import (
	"math"
	"sort"
	"time"

	"chatlens/internal/core/chat"
	"chatlens/internal/core/langhint"
	ptime "chatlens/internal/platform/time"
	"chatlens/internal/services/analysis/domain"
)

type senderAcc struct {
	n, chars, words int
	respSum         float64
	respN           int
	first, last     time.Time
	langs           map[string]int
}

// tableStats computes whole-table and per-participant figures. records must be
// time ordered, as every enriched table is
func tableStats(records []chat.Record) domain.Stats {
	st := domain.Stats{
		Records:      len(records),
		Participants: []domain.ParticipantStats{},
		Languages:    map[string]int{},
	}
	if len(records) == 0 {
		return st
	}

	st.FirstMessage = ptime.Ptr(records[0].Timestamp)
	st.LastMessage = ptime.Ptr(records[len(records)-1].Timestamp)

	days := map[string]struct{}{}
	by := map[string]*senderAcc{}
	var respSum float64
	respN := 0

	for _, r := range records {
		if r.IsConversationStart {
			st.Conversations++
		}
		days[r.Date] = struct{}{}
		st.HourHistogram[r.Hour]++
		if r.Weekday >= 1 && r.Weekday <= 7 {
			st.WeekdayCounts[r.Weekday-1]++
		}

		a := by[r.Sender]
		if a == nil {
			a = &senderAcc{first: r.Timestamp, langs: map[string]int{}}
			by[r.Sender] = a
		}
		lang := langhint.Detect(r.Body).Lang
		if lang == "" {
			lang = "und"
		}
		a.langs[lang]++
		st.Languages[lang]++
		a.n++
		a.chars += r.MessageLength
		a.words += r.WordCount
		a.last = r.Timestamp
		if r.ResponseTimeMinutes != nil {
			a.respSum += *r.ResponseTimeMinutes
			a.respN++
			respSum += *r.ResponseTimeMinutes
			respN++
		}
	}
	st.ActiveDays = len(days)
	st.AvgResponseMin = mean(respSum, respN)
	st.BusiestHour = argmax(st.HourHistogram[:], 0)
	st.BusiestWeekday = argmax(st.WeekdayCounts[:], 1)

	for sender, a := range by {
		st.Participants = append(st.Participants, domain.ParticipantStats{
			Sender:           sender,
			Messages:         a.n,
			Share:            round2(float64(a.n) / float64(len(records)) * 100),
			AvgMessageLength: round2(float64(a.chars) / float64(a.n)),
			AvgWordCount:     round2(float64(a.words) / float64(a.n)),
			AvgResponseMin:   mean(a.respSum, a.respN),
			FirstMessage:     a.first.UTC().Format(time.RFC3339),
			LastMessage:      a.last.UTC().Format(time.RFC3339),
			Language:         langhint.Dominant(a.langs),
		})
	}
	sort.Slice(st.Participants, func(i, j int) bool {
		pi, pj := st.Participants[i], st.Participants[j]
		if pi.Messages != pj.Messages {
			return pi.Messages > pj.Messages
		}
		return pi.Sender < pj.Sender
	})
	return st
}

func mean(sum float64, n int) *float64 {
	if n == 0 {
		return nil
	}
	v := sum / float64(n)
	return &v
}

// argmax returns the first index with the highest count, shifted by base; nil when all are zero
func argmax(counts []int, base int) *int {
	best, at := 0, -1
	for i, c := range counts {
		if c > best {
			best, at = c, i
		}
	}
	if at < 0 {
		return nil
	}
	v := at + base
	return &v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
