package textutil

import (
	"strings"
	"unicode"
)

// sentence-terminal punctuation, Latin and CJK
var sentenceEnders = map[rune]bool{
	'.': true, '!': true, '?': true, ';': true,
	'。': true, '！': true, '？': true, '；': true,
	'…': true,
}

// comma-class punctuation marking a soft clause boundary
var softPauses = map[rune]bool{
	',': true, ':': true,
	'、': true, '，': true, '：': true,
}

// EndsSentence reports whether the trimmed text ends in a
// sentence-terminal punctuation mark.
func EndsSentence(text string) bool {
	r := lastRune(strings.TrimSpace(text))
	return sentenceEnders[r]
}

// EndsSoftPause reports whether the trimmed text ends in a comma-class
// punctuation mark.
func EndsSoftPause(text string) bool {
	r := lastRune(strings.TrimSpace(text))
	return softPauses[r]
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}

// covers the CJK and Hangul blocks that render without inter-word spacing
var cjkRanges = []*unicode.RangeTable{
	unicode.Han,
	unicode.Hiragana,
	unicode.Katakana,
	unicode.Hangul,
}

// IsCJKRune reports whether r belongs to a CJK or Hangul block.
func IsCJKRune(r rune) bool {
	if r >= 0x3000 && r <= 0x303F { // CJK symbols and punctuation
		return true
	}
	if r >= 0xFF00 && r <= 0xFFEF { // full-width forms
		return true
	}
	return unicode.IsOneOf(cjkRanges, r)
}

// JoinAdjacent concatenates two adjacent caption fragments, inserting a
// single space unless the boundary sits between two CJK runes or either
// side already carries whitespace at the seam.
func JoinAdjacent(left, right string) string {
	if left == "" || right == "" {
		return left + right
	}
	l := lastRune(left)
	r, _ := firstRune(right)
	if unicode.IsSpace(l) || unicode.IsSpace(r) {
		return left + right
	}
	if IsCJKRune(l) && IsCJKRune(r) {
		return left + right
	}
	return left + " " + right
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}

// CollapseNewlines replaces every newline run in text with a single
// space; line-oriented formats cannot carry embedded line breaks.
func CollapseNewlines(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
