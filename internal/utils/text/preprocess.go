package text

import (
	"regexp"
	"strings"
)

const (
	// DefaultMaxChunkWords is the chunk size used when a caller passes a non-positive limit.
	DefaultMaxChunkWords = 1000

	// minCleanFragmentRunes drops fragments of this length or shorter during Clean.
	minCleanFragmentRunes = 10

	sentenceSeparator = ". "
)

var (
	// whitespaceRun matches ASCII whitespace plus \v, the C0 separators 0x1c-0x1f, NEL and
	// Unicode separators; \s alone misses several of them.
	whitespaceRun = regexp.MustCompile(`[\s\v\x1c-\x1f\x{85}\p{Z}]+`)

	// disallowedRunes matches everything except word characters, spaces and . , ! ? ; : -
	disallowedRunes = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s.,!?;:\-]`)
)

// Clean normalises raw extracted document text before summarization.
//
// Steps, in order:
//  1. collapse whitespace runs into a single space
//  2. strip characters other than word characters, whitespace and . , ! ? ; : -
//  3. split on '.', trim each fragment and discard fragments of 10 characters or fewer
//  4. rejoin the remaining fragments with ". "
//
// Clean never fails; degenerate input yields an empty string.
func Clean(raw string) string {
	collapsed := whitespaceRun.ReplaceAllString(raw, " ")
	stripped := disallowedRunes.ReplaceAllString(collapsed, "")

	fragments := strings.Split(stripped, ".")
	kept := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		trimmed := strings.TrimSpace(fragment)
		if CountRunes(trimmed) > minCleanFragmentRunes {
			kept = append(kept, trimmed)
		}
	}

	return strings.TrimSpace(strings.Join(kept, sentenceSeparator))
}

// Chunk splits cleaned text into sentence-aligned chunks of at most maxChunkWords words.
//
// Sentences (split on ". ") are accumulated greedily; a new chunk starts when adding the
// next sentence would exceed the limit and the current chunk is not empty. A single
// sentence longer than the limit becomes a chunk of its own and is never split. The final
// partial chunk is always emitted. Each chunk is its sentences joined by ". " with a
// trailing '.'. Chunk order follows sentence order.
//
// A non-positive maxChunkWords selects DefaultMaxChunkWords. Blank text yields no chunks.
func Chunk(cleaned string, maxChunkWords int) []string {
	if maxChunkWords <= 0 {
		maxChunkWords = DefaultMaxChunkWords
	}
	if strings.TrimSpace(cleaned) == "" {
		return nil
	}

	var (
		chunks       []string
		current      []string
		currentWords int
	)

	for _, sentence := range strings.Split(cleaned, sentenceSeparator) {
		words := CountWords(sentence)
		if currentWords+words > maxChunkWords && len(current) > 0 {
			chunks = append(chunks, joinChunk(current))
			current = []string{sentence}
			currentWords = words
			continue
		}
		current = append(current, sentence)
		currentWords += words
	}

	if len(current) > 0 {
		chunks = append(chunks, joinChunk(current))
	}

	return chunks
}

func joinChunk(sentences []string) string {
	return strings.Join(sentences, sentenceSeparator) + "."
}

// Sentences splits text on ". " and returns the trimmed sentences longer than minRunes
// characters, each terminated with a single '.'.
func Sentences(text string, minRunes int) []string {
	parts := strings.Split(text, sentenceSeparator)
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if CountRunes(trimmed) <= minRunes {
			continue
		}
		sentences = append(sentences, strings.TrimSuffix(trimmed, ".")+".")
	}
	return sentences
}
