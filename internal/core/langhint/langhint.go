// Package langhint guesses the writing script and, where it is cheap to tell,
// the language of a chat message.
package langhint

import (
	"strings"
	"unicode"
)

// MinLetters is the letter count below which no language is reported
const MinLetters = 8

// Hint is the result for one text. Lang is a BCP-47 code or empty
type Hint struct {
	Script string `json:"script"`
	Lang   string `json:"lang,omitempty"`
}

var scripts = []struct {
	name  string
	table *unicode.RangeTable
	lang  string // set when the script alone decides the language
}{
	{"Hiragana", unicode.Hiragana, "ja"},
	{"Katakana", unicode.Katakana, "ja"},
	{"Hangul", unicode.Hangul, "ko"},
	{"Han", unicode.Han, ""},
	{"Arabic", unicode.Arabic, "ar"},
	{"Hebrew", unicode.Hebrew, "he"},
	{"Thai", unicode.Thai, "th"},
	{"Greek", unicode.Greek, "el"},
	{"Cyrillic", unicode.Cyrillic, ""},
	{"Devanagari", unicode.Devanagari, ""},
	{"Latin", unicode.Latin, ""},
}

// function words that rarely appear in the other language
var markers = map[string]map[string]struct{}{
	"en": set("the", "and", "you", "is", "are", "what", "this", "that", "with", "have", "was", "not", "but", "just", "my", "i'm", "it's", "don't", "to", "of"),
	"es": set("que", "el", "los", "las", "una", "por", "para", "con", "pero", "está", "estoy", "qué", "cómo", "muy", "también", "mi", "tu", "es", "y", "del"),
}

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// Detect returns the predominant script of s and a language when the evidence
// is strong: a script that maps to one language, or for Latin text a lead in
// English or Spanish function words (Spanish-only punctuation counts too)
func Detect(s string) Hint {
	counts := make([]int, len(scripts))
	letters := 0
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		for i, sc := range scripts {
			if unicode.Is(sc.table, r) {
				counts[i]++
				break
			}
		}
	}

	best := -1
	for i, c := range counts {
		// ties keep the earlier, more specific script
		if c > 0 && (best < 0 || c > counts[best]) {
			best = i
		}
	}
	if best < 0 {
		return Hint{}
	}
	h := Hint{Script: scripts[best].name}
	if letters < MinLetters {
		return h
	}

	switch {
	case counts[0] > 0 || counts[1] > 0:
		h.Lang = "ja"
	case scripts[best].lang != "":
		h.Lang = scripts[best].lang
	case scripts[best].name == "Latin":
		h.Lang = latinLang(s)
	}
	return h
}

func latinLang(s string) string {
	en, es := 0, 0
	if strings.ContainsAny(s, "ñÑ¿¡") {
		es += 2
	}
	for _, w := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	}) {
		if _, ok := markers["en"][w]; ok {
			en++
		}
		if _, ok := markers["es"][w]; ok {
			es++
		}
	}
	switch {
	case en > es:
		return "en"
	case es > en:
		return "es"
	default:
		return ""
	}
}

// Tally counts messages per language; messages without a language count under "und"
func Tally(bodies []string) map[string]int {
	out := make(map[string]int)
	for _, b := range bodies {
		lang := Detect(b).Lang
		if lang == "" {
			lang = "und"
		}
		out[lang]++
	}
	return out
}

// Dominant returns the most frequent language in t other than "und",
// breaking ties by code. Empty when nothing was detected
func Dominant(t map[string]int) string {
	best, n := "", 0
	for lang, c := range t {
		if lang == "und" {
			continue
		}
		if c > n || (c == n && lang < best) {
			best, n = lang, c
		}
	}
	return best
}
