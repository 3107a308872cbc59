// Package normalize provides the deterministic text normalizers shared by the
// transcript parser and the keyword matchers
//
// Line pipeline (used before grammar matching)
// 1 drop invalid UTF-8, NUL and C0/C1 controls except tab
// 2 map every Unicode space separator (NBSP, narrow NBSP, thin space ...) to ASCII space
// 3 strip format marks exporters put at line start (BOM, LRM, RLM)
// 4 trim
//
// Fold pipeline (used for case-insensitive matching)
// 1 Unicode NFKC normalization
// 2 case folding
// 3 remove format chars (ZWJ, ZWNJ, FEFF)
// 4 collapse whitespace runs to a single ASCII space
package normalize

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// pool of fresh fold chains; transformers are stateful
var foldPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Cf)),
		)
	},
}

// spaceMap folds Unicode space separators to ASCII space
var spaceMap = runes.Map(func(r rune) rune {
	if r != ' ' && unicode.Is(unicode.Zs, r) {
		return ' '
	}
	return r
})

// Line cleans one raw transcript line so the header grammar only has to deal
// with ASCII spaces. It never changes letters or punctuation
func Line(s string) string {
	if s == "" {
		return ""
	}
	s = stripControls(s)
	s, _, _ = transform.String(spaceMap, s)
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.Is(unicode.Cf, r)
	})
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// Fold returns the case-folded matching form of s. Output is safe to feed to
// byte-oriented matchers: runs of whitespace become one ASCII space, so
// multi-word phrases match across line breaks
func Fold(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := foldPool.Get().(transform.Transformer)
	out, _, _ := transform.String(tr, s)
	tr.Reset()
	foldPool.Put(tr)

	return collapseSpaces(out)
}

// stripControls drops invalid bytes, NUL, DEL and C0/C1 controls except '\t'.
// Fast path returns s unchanged when nothing needs cleaning
func stripControls(s string) string {
	clean := true
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if dropRune(r, size) {
			clean = false
			break
		}
		i += size
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !dropRune(r, size) {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

func dropRune(r rune, size int) bool {
	switch {
	case r == utf8.RuneError && size == 1:
		return true
	case r == '\t':
		return false
	case r < 0x20, r == 0x7F:
		return true
	case r >= 0x80 && r <= 0x9F:
		return true
	}
	return false
}

// collapseSpaces converts whitespace runs to a single ASCII space and trims the edges
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
