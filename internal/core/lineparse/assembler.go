package lineparse

import (
	"chatlens/internal/core/chat"
)

// Stats counts what the assembler has seen
type Stats struct {
	Lines         int `json:"lines"`
	Messages      int `json:"messages"`
	System        int `json:"system"`
	Continuations int `json:"continuations"`
	Orphans       int `json:"orphans"` // continuations with nothing to attach to
	Blank         int `json:"blank"`
}

// Assembler folds continuation lines into the most recent message. A message
// is emitted once the next header arrives or on Flush, so bodies are complete
// when they leave. Not safe for concurrent use
type Assembler struct {
	p     *Parser
	open  chat.Message
	has   bool
	stats Stats
}

// NewAssembler returns an Assembler with its own Parser
func NewAssembler() *Assembler { return &Assembler{p: New()} }

// Feed consumes one raw line. It returns the previously open message when
// this line starts a new one
func (a *Assembler) Feed(raw string) (chat.Message, bool) {
	a.stats.Lines++
	l := a.p.Parse(raw)

	switch l.Kind {
	case KindBlank:
		a.stats.Blank++
		return chat.Message{}, false

	case KindContinuation:
		if !a.has {
			a.stats.Orphans++
			return chat.Message{}, false
		}
		a.stats.Continuations++
		a.open.Body += "\n" + l.Body
		return chat.Message{}, false

	default:
		if l.Kind == KindSystem {
			a.stats.System++
		}
		a.stats.Messages++
		prev, had := a.open, a.has
		a.open, a.has = l.Message(), true
		return prev, had
	}
}

// Flush emits the open message, if any, and resets the open slot
func (a *Assembler) Flush() (chat.Message, bool) {
	if !a.has {
		return chat.Message{}, false
	}
	m := a.open
	a.open, a.has = chat.Message{}, false
	return m, true
}

// Stats returns the counters accumulated so far
func (a *Assembler) Stats() Stats { return a.stats }

// Diagnostics returns the timestamp fallbacks recorded by the parser
func (a *Assembler) Diagnostics() []Diagnostic { return a.p.Diagnostics() }

// ParseLines is a convenience for in-memory input
func ParseLines(lines []string) ([]chat.Message, []Diagnostic) {
	a := NewAssembler()
	out := make([]chat.Message, 0, len(lines))
	for _, ln := range lines {
		if m, ok := a.Feed(ln); ok {
			out = append(out, m)
		}
	}
	if m, ok := a.Flush(); ok {
		out = append(out, m)
	}
	return out, a.Diagnostics()
}
