// Package topics ranks frequent content words over a set of message bodies
package topics

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"chatlens/internal/core/normalize"
)

// MinTokenLen is the shortest token, in runes, that can become a topic
const MinTokenLen = 3

// Term is one ranked token
type Term struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// Counter accumulates token frequencies. Not safe for concurrent use
type Counter struct {
	counts map[string]int
	stop   map[string]struct{}
}

// NewCounter returns a Counter using the built-in English/Spanish stopwords
// plus any extra words supplied
func NewCounter(extraStop ...string) *Counter {
	stop := defaultStopwords
	if len(extraStop) > 0 {
		stop = make(map[string]struct{}, len(defaultStopwords)+len(extraStop))
		for w := range defaultStopwords {
			stop[w] = struct{}{}
		}
		for _, w := range extraStop {
			stop[normalize.Fold(w)] = struct{}{}
		}
	}
	return &Counter{counts: map[string]int{}, stop: stop}
}

// Add tokenizes one body and counts its content words
func (c *Counter) Add(body string) {
	for _, tok := range Tokenize(body) {
		if _, skip := c.stop[tok]; skip {
			continue
		}
		c.counts[tok]++
	}
}

// Top returns the n most frequent tokens, count descending then token ascending
func (c *Counter) Top(n int) []Term {
	out := make([]Term, 0, len(c.counts))
	for tok, cnt := range c.counts {
		out = append(out, Term{Token: tok, Count: cnt})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Token < out[j].Token
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// TopTokens is Top without the counts
func (c *Counter) TopTokens(n int) []string {
	terms := c.Top(n)
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = t.Token
	}
	return out
}

// Of ranks the top n tokens over bodies in one call
func Of(bodies []string, n int) []string {
	c := NewCounter()
	for _, b := range bodies {
		c.Add(b)
	}
	return c.TopTokens(n)
}

// Tokenize folds s and splits it into candidate tokens: letter runs of at
// least MinTokenLen runes. URLs and anything containing digits are dropped
func Tokenize(s string) []string {
	s = normalize.Fold(s)
	if s == "" {
		return nil
	}
	var out []string
	for _, field := range strings.Fields(s) {
		if strings.Contains(field, "://") || strings.HasPrefix(field, "www.") {
			continue
		}
		for _, tok := range strings.FieldsFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
		}) {
			tok = strings.Trim(tok, "'")
			if utf8.RuneCountInString(tok) < MinTokenLen || hasDigit(tok) {
				continue
			}
			out = append(out, tok)
		}
	}
	return out
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}
