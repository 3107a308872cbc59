// Package lineparse turns raw transcript lines into messages
//
// Grammar, in priority order
//
//	[DD/MM/YY(YY), H:MM(:SS)( AM|PM)] SENDER: BODY   participant message
//	[DD/MM/YY(YY), H:MM(:SS)( AM|PM)] BODY           SYSTEM message
//	anything else                                   continuation of the previous body
//
// Lines are normalized (Unicode spaces folded to ASCII) before matching.
// Headers with an impossible date or time still produce a message, stamped
// with chat.Epoch, and leave a Diagnostic behind
package lineparse

import (
	"regexp"
	"strings"
	"time"

	"chatlens/internal/core/chat"
	"chatlens/internal/core/normalize"
)

// Kind classifies a parsed line
type Kind uint8

const (
	// KindBlank is an empty line after normalization
	KindBlank Kind = iota
	// KindMessage is a participant message header
	KindMessage
	// KindSystem is a header without a sender
	KindSystem
	// KindContinuation is a line without a header
	KindContinuation
)

func (k Kind) String() string {
	switch k {
	case KindMessage:
		return "message"
	case KindSystem:
		return "system"
	case KindContinuation:
		return "continuation"
	default:
		return "blank"
	}
}

// Line is the structured form of one raw line
type Line struct {
	Kind      Kind
	Timestamp time.Time
	Sender    string
	Body      string // text for continuations
}

// Message converts a header line into a message
func (l Line) Message() chat.Message {
	return chat.Message{Timestamp: l.Timestamp, Sender: l.Sender, Body: l.Body}
}

// Diagnostic records a header whose timestamp fell back to the epoch sentinel
type Diagnostic struct {
	LineNo int    `json:"line_no"`
	Raw    string `json:"raw"`
	Reason string `json:"reason"`
}

// header captures day, month, year, hour, minute, second, meridiem and the rest
var header = regexp.MustCompile(
	`^\[(\d{1,2})/(\d{1,2})/(\d{2}|\d{4}), ?(\d{1,2}):(\d{2})(?::(\d{2}))? ?([AaPp]\.? ?[Mm]\.?)?\] ?(.*)$`,
)

// Parser is a line classifier with a running line counter. Not safe for concurrent use
type Parser struct {
	lineNo int
	diags  []Diagnostic
}

// New returns a Parser starting at line 1
func New() *Parser { return &Parser{} }

// Parse normalizes and classifies one raw line
func (p *Parser) Parse(raw string) Line {
	p.lineNo++
	s := normalize.Line(raw)
	if s == "" {
		return Line{Kind: KindBlank}
	}

	m := header.FindStringSubmatch(s)
	if m == nil {
		return Line{Kind: KindContinuation, Body: s}
	}

	ts, err := parseTimestamp(m[1], m[2], m[3], m[4], m[5], m[6], m[7])
	if err != nil {
		p.diags = append(p.diags, Diagnostic{LineNo: p.lineNo, Raw: s, Reason: err.Error()})
		ts = chat.Epoch
	}

	rest := m[8]
	if sender, body, ok := splitSender(rest); ok {
		return Line{Kind: KindMessage, Timestamp: ts, Sender: sender, Body: body}
	}
	return Line{Kind: KindSystem, Timestamp: ts, Sender: chat.SystemSender, Body: rest}
}

// LineNo returns the number of lines seen so far
func (p *Parser) LineNo() int { return p.lineNo }

// Diagnostics returns timestamp fallbacks recorded so far
func (p *Parser) Diagnostics() []Diagnostic { return p.diags }

// splitSender cuts "SENDER: BODY" at the first colon followed by a space or end of line.
// A sender must be non-empty after trimming
func splitSender(rest string) (string, string, bool) {
	for i := 0; i < len(rest); i++ {
		if rest[i] != ':' {
			continue
		}
		if i+1 < len(rest) && rest[i+1] != ' ' {
			continue
		}
		sender := strings.TrimSpace(rest[:i])
		if sender == "" {
			return "", "", false
		}
		body := ""
		if i+2 <= len(rest) {
			body = strings.TrimSpace(rest[i+2:])
		}
		return sender, body, true
	}
	return "", "", false
}
