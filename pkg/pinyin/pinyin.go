// Package pinyin normalizes romanized pronunciations so that tone-marked,
// tone-numbered and unmarked spellings of the same syllable compare equal.
package pinyin

import "strings"

// toneMap maps every toned vowel to its unmarked base. The umlaut-u family
// collapses to ü, never to plain u.
var toneMap = map[rune]rune{
	'ā': 'a', 'á': 'a', 'ǎ': 'a', 'à': 'a',
	'ē': 'e', 'é': 'e', 'ě': 'e', 'è': 'e',
	'ī': 'i', 'í': 'i', 'ǐ': 'i', 'ì': 'i',
	'ō': 'o', 'ó': 'o', 'ǒ': 'o', 'ò': 'o',
	'ū': 'u', 'ú': 'u', 'ǔ': 'u', 'ù': 'u',
	'ǖ': 'ü', 'ǘ': 'ü', 'ǚ': 'ü', 'ǜ': 'ü',
}

// Normalize lowercases and trims the input, strips the tone digits 1-5,
// replaces toned vowels with their base letters and removes all internal
// whitespace. Two spellings denote the same pronunciation iff their
// normalized forms are identical.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '1' && r <= '5' {
			continue
		}
		if base, ok := toneMap[r]; ok {
			r = base
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// Equivalent reports whether two answers are the same pronunciation
// under Normalize.
func Equivalent(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
