package text_test

import (
	"testing"

	"doc-summarizer/internal/utils/text"
)

func TestCountRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "ASCII text", input: "hello", expected: 5},
		{name: "ASCII with spaces", input: "hello world", expected: 11},
		{name: "accented", input: "café crème", expected: 10},
		{name: "Japanese", input: "こんにちは世界", expected: 7},
		{name: "emoji", input: "Hello👋", expected: 6},
		{name: "empty string", input: "", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := text.CountRunes(tt.input)
			if result != tt.expected {
				t.Errorf("CountRunes(%q) = %d, want %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "empty", input: "", expected: 0},
		{name: "only whitespace", input: " \n\t ", expected: 0},
		{name: "single word", input: "summary", expected: 1},
		{name: "multiple spaces", input: "one   two\tthree\nfour", expected: 4},
		{name: "punctuation attached", input: "Hello, world. Bye!", expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text.CountWords(tt.input); got != tt.expected {
				t.Errorf("CountWords(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCountSentences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "empty", input: "", expected: 0},
		{name: "no terminator", input: "just one fragment", expected: 1},
		{name: "two sentences", input: "First one. Second one.", expected: 2},
		{name: "blank fragments ignored", input: "A. . .B..", expected: 2},
		{name: "only dots", input: "...", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text.CountSentences(tt.input); got != tt.expected {
				t.Errorf("CountSentences(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}
