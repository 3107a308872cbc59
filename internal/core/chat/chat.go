// Package chat holds the transcript data model shared by the parser, the
// enricher and every downstream consumer
package chat

import "time"

// SystemSender marks non-participant events (joins, encryption notices)
const SystemSender = "SYSTEM"

// DateLayout is the calendar-day form used for Record.Date and period keys
const DateLayout = "2006-01-02"

// Epoch is the sentinel timestamp substituted for headers whose date or time
// cannot be turned into a valid instant
var Epoch = time.Unix(0, 0).UTC()

// Message is one parsed transcript message, continuation lines already folded in
type Message struct {
	Timestamp time.Time `json:"timestamp"`
	Sender    string    `json:"sender"`
	Body      string    `json:"body"`
}

// IsSystem reports whether m is a non-participant event
func (m Message) IsSystem() bool { return m.Sender == SystemSender }

// Record is one retained message plus its derived features.
// ResponseTimeMinutes is nil for the first record and for same-sender follow ups
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	Sender    string    `json:"sender"`
	Body      string    `json:"body"`

	Date          string `json:"date"`
	Hour          int    `json:"hour"`
	Weekday       int    `json:"weekday"` // 1=Monday .. 7=Sunday
	MessageLength int    `json:"message_length"`
	WordCount     int    `json:"word_count"`

	ResponseTimeMinutes *float64 `json:"response_time_minutes"`
	IsConversationStart bool     `json:"is_conversation_start"`
	ConversationID      int      `json:"conversation_id"`

	RomanticScore       int `json:"romantic_score"`
	IntimacyScore       int `json:"intimacy_score"`
	FuturePlanningScore int `json:"future_planning_score"`
}

// FromMessage seeds a Record with the message fields only
func FromMessage(m Message) Record {
	return Record{Timestamp: m.Timestamp, Sender: m.Sender, Body: m.Body}
}

// Day returns the UTC calendar day of the record
func (r Record) Day() time.Time {
	y, mo, d := r.Timestamp.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

// FromMessages converts a message slice, dropping system events
func FromMessages(ms []Message) []Record {
	out := make([]Record, 0, len(ms))
	for _, m := range ms {
		if m.IsSystem() {
			continue
		}
		out = append(out, FromMessage(m))
	}
	return out
}
