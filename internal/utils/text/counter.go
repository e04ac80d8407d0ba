// Package text provides the text processing primitives shared by the summarization pipeline:
// cleaning, sentence splitting, sentence-aligned chunking, counting and word frequency.
// Every function is pure and safe for concurrent use.
package text

import (
	"strings"
	"unicode/utf8"
)

// CountRunes counts the number of Unicode characters (runes) in the given text.
// Multi-byte characters (accented letters, CJK, emoji) count as one character each.
//
// Examples:
//
//	CountRunes("hello")   // 5
//	CountRunes("café")    // 4
//	CountRunes("")        // 0
func CountRunes(text string) int {
	return utf8.RuneCountInString(text)
}

// CountWords counts whitespace-separated tokens.
// Runs of whitespace (including newlines and tabs) count as a single separator.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CountSentences counts the non-blank fragments produced by splitting on '.'.
// It is a coarse measure intended for statistics, not for sentence segmentation.
func CountSentences(text string) int {
	count := 0
	for _, fragment := range strings.Split(text, ".") {
		if strings.TrimSpace(fragment) != "" {
			count++
		}
	}
	return count
}
