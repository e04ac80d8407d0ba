package text_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-summarizer/internal/utils/text"
)

// sentenceOf builds a sentence of n distinct words without any '.'.
func sentenceOf(prefix string, n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return strings.Join(words, " ")
}

// splitSentences returns the raw ". "-separated sentence sequence of cleaned text.
func splitSentences(cleaned string) []string {
	if strings.TrimSpace(cleaned) == "" {
		return nil
	}
	return strings.Split(cleaned, ". ")
}

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "collapses whitespace and newlines",
			input:    "The   quick brown\n\nfox jumps.  Over the lazy\tdog today.",
			expected: "The quick brown fox jumps. Over the lazy dog today",
		},
		{
			name:     "drops short fragments",
			input:    "Fig. 3. This sentence is long enough. ok.",
			expected: "This sentence is long enough",
		},
		{
			name:     "strips disallowed characters but keeps punctuation set",
			input:    "Results (n=42) were #1 @ scale; really, truly good!",
			expected: "Results n42 were 1  scale; really, truly good!",
		},
		{
			name:     "control and separator whitespace becomes a space",
			input:    "alpha\vbeta\x1cgamma\x1fdelta\u0085epsilon\u00a0zeta\u2028eta",
			expected: "alpha beta gamma delta epsilon zeta eta",
		},
		{
			name:     "keeps unicode letters",
			input:    "Die Straße ist sehr lang und schön.",
			expected: "Die Straße ist sehr lang und schön",
		},
		{
			name:     "degenerate input",
			input:    "*** ### ...",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, text.Clean(tt.input))
		})
	}
}

func TestClean_Deterministic(t *testing.T) {
	input := "Some noisy   text!! With (parentheses) and [brackets]. Another sentence that is long."
	assert.Equal(t, text.Clean(input), text.Clean(input))
}

func TestChunk_SingleChunkUnderLimit(t *testing.T) {
	cleaned := "first sentence here. second sentence here"

	chunks := text.Chunk(cleaned, 1000)

	require.Len(t, chunks, 1)
	assert.Equal(t, "first sentence here. second sentence here.", chunks[0])
}

func TestChunk_EmptyText(t *testing.T) {
	assert.Empty(t, text.Chunk("", 1000))
	assert.Empty(t, text.Chunk("   ", 1000))
}

func TestChunk_DefaultLimit(t *testing.T) {
	sentences := []string{sentenceOf("a", 600), sentenceOf("b", 600)}
	cleaned := strings.Join(sentences, ". ")

	assert.Len(t, text.Chunk(cleaned, 0), 2)
	assert.Len(t, text.Chunk(cleaned, -5), 2)
}

func TestChunk_GreedyAccumulation(t *testing.T) {
	// 15 sentences of 100 words: 10 fit in the first chunk, 5 in the second.
	sentences := make([]string, 15)
	for i := range sentences {
		sentences[i] = sentenceOf(fmt.Sprintf("s%dw", i), 100)
	}
	cleaned := strings.Join(sentences, ". ")

	chunks := text.Chunk(cleaned, 1000)

	require.Len(t, chunks, 2)
	assert.Equal(t, 1000, text.CountWords(chunks[0]))
	assert.Equal(t, 500, text.CountWords(chunks[1]))
}

func TestChunk_OversizedSentenceIsOwnChunk(t *testing.T) {
	sentences := []string{
		sentenceOf("small", 10),
		sentenceOf("huge", 1500),
		sentenceOf("tail", 10),
	}
	cleaned := strings.Join(sentences, ". ")

	chunks := text.Chunk(cleaned, 1000)

	require.Len(t, chunks, 3)
	assert.Equal(t, 10, text.CountWords(chunks[0]))
	assert.Equal(t, 1500, text.CountWords(chunks[1]))
	assert.Equal(t, 10, text.CountWords(chunks[2]))
}

func TestChunk_PartitionsSentencesInOrder(t *testing.T) {
	limits := []int{1, 7, 25, 100, 1000}

	sentences := make([]string, 40)
	for i := range sentences {
		sentences[i] = sentenceOf(fmt.Sprintf("p%dw", i), 3+(i*7)%31)
	}
	cleaned := strings.Join(sentences, ". ")

	for _, limit := range limits {
		t.Run(fmt.Sprintf("limit=%d", limit), func(t *testing.T) {
			chunks := text.Chunk(cleaned, limit)

			var rebuilt []string
			for _, chunk := range chunks {
				rebuilt = append(rebuilt, splitSentences(strings.TrimSuffix(chunk, "."))...)
			}

			if diff := cmp.Diff(splitSentences(cleaned), rebuilt); diff != "" {
				t.Errorf("chunk sentences mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestChunk_NoChunkExceedsLimitUnlessSingleSentence(t *testing.T) {
	sentences := make([]string, 60)
	for i := range sentences {
		sentences[i] = sentenceOf(fmt.Sprintf("q%dw", i), 5+(i*13)%90)
	}
	cleaned := strings.Join(sentences, ". ")

	for _, limit := range []int{50, 120, 400} {
		for _, chunk := range text.Chunk(cleaned, limit) {
			words := text.CountWords(chunk)
			if words <= limit {
				continue
			}
			inner := splitSentences(strings.TrimSuffix(chunk, "."))
			assert.Len(t, inner, 1, "chunk over limit %d must hold exactly one sentence", limit)
		}
	}
}

func TestSentences(t *testing.T) {
	input := "Short one. This sentence is long enough to keep. Another long sentence stays here."

	got := text.Sentences(input, 20)

	assert.Equal(t, []string{
		"This sentence is long enough to keep.",
		"Another long sentence stays here.",
	}, got)
}

func TestSentences_Empty(t *testing.T) {
	assert.Empty(t, text.Sentences("", 20))
	assert.Empty(t, text.Sentences("tiny. also tiny", 20))
}
