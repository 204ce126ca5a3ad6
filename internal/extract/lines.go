package extract

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// minLineLength drops page numbers, bullets and similar noise.
const minLineLength = 6

// Lines yields the normalized candidate lines of one page: whitespace runs
// collapsed to single spaces, trimmed, and at least minLineLength characters
// long. The sequence can be ranged over any number of times.
func Lines(pageText string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, raw := range strings.FieldsFunc(pageText, isLineBreak) {
			line := strings.Join(strings.Fields(raw), " ")
			if utf8.RuneCountInString(line) < minLineLength {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
