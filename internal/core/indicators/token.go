package indicators

import (
	"unicode"
	"unicode/utf8"
)

// isWord reports whether r counts as part of a word for boundary checks
func isWord(r rune) bool {
	if r == utf8.RuneError || r == 0 {
		return false
	}
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.In(r, unicode.Mn, unicode.Pc)
}

// boundaryOK reports whether [start,end) is not glued to word characters on either side
func boundaryOK(s string, start, end int) bool {
	var prev, next rune
	if start > 0 {
		prev, _ = utf8.DecodeLastRuneInString(s[:start])
	}
	if end < len(s) {
		next, _ = utf8.DecodeRuneInString(s[end:])
	}
	return !isWord(prev) && !isWord(next)
}
