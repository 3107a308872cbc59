// Package domain defines the report and contracts of the analysis service
package domain

import (
	"time"

	"chatlens/internal/adapters/ingest/transcript"
	"chatlens/internal/core/chat"
	"chatlens/internal/core/classify"
	"chatlens/internal/core/indicators"
	"chatlens/internal/core/lineparse"
	"chatlens/internal/core/segment"
	"chatlens/internal/core/temporal"
)

// Input tunes one analysis run. Zero values fall back to the module options
type Input struct {
	Source         string `json:"source,omitempty" query:"source" validate:"omitempty,max=255,filename" example:"chat.txt"`
	IncludeRecords bool   `json:"include_records,omitempty" query:"include_records" example:"false"`
	SegmentLimit   int    `json:"segment_limit,omitempty" query:"segment_limit" validate:"omitempty,min=1,max=500" example:"50"`
	Summaries      bool   `json:"summaries,omitempty" query:"summaries" example:"true"`
}

// ParticipantStats describes one sender
type ParticipantStats struct {
	Sender           string   `json:"sender"`
	Messages         int      `json:"messages"`
	Share            float64  `json:"share"` // percent of all records
	AvgMessageLength float64  `json:"avg_message_length"`
	AvgWordCount     float64  `json:"avg_word_count"`
	AvgResponseMin   *float64 `json:"avg_response_minutes"`
	FirstMessage     string   `json:"first_message"`
	LastMessage      string   `json:"last_message"`
	Language         string   `json:"language,omitempty"` // dominant detected language
}

// Stats summarizes the table as a whole
type Stats struct {
	Ingest         transcript.Stats   `json:"ingest"`
	Records        int                `json:"records"`
	Conversations  int                `json:"conversations"`
	ActiveDays     int                `json:"active_days"`
	FirstMessage   *time.Time         `json:"first_message"`
	LastMessage    *time.Time         `json:"last_message"`
	AvgResponseMin *float64           `json:"avg_response_minutes"`
	BusiestHour    *int               `json:"busiest_hour"`
	BusiestWeekday *int               `json:"busiest_weekday"` // 1=Monday .. 7=Sunday
	HourHistogram  [24]int            `json:"hour_histogram"`
	WeekdayCounts  [7]int             `json:"weekday_counts"` // index 0 is Monday
	Participants   []ParticipantStats `json:"participants"`
	Languages      map[string]int     `json:"languages"` // messages per detected language, "und" when unknown
	Chunks         int                `json:"chunks"`
	Streamed       bool               `json:"streamed"`
	DurationMillis int64              `json:"duration_ms"`
}

// Report is the full output of one run. Empty is true when no participant
// message survived; Classification is nil then
type Report struct {
	ID             string                                   `json:"id"`
	Source         string                                   `json:"source"`
	CreatedAt      time.Time                                `json:"created_at"`
	Empty          bool                                     `json:"empty"`
	Stats          Stats                                    `json:"stats"`
	Classification *classify.Result                         `json:"classification"`
	Indicators     map[indicators.Category]indicators.Stats `json:"indicators"`
	Segments       []segment.Segment                        `json:"segments"`
	Temporal       temporal.Summary                         `json:"temporal"`
	Diagnostics    []lineparse.Diagnostic                   `json:"diagnostics"`
	Records        []chat.Record                            `json:"records,omitempty"`
}
