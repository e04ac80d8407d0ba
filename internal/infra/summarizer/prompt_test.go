package summarizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"doc-summarizer/internal/usecase/summarize"
)

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		name     string
		req      summarize.ChunkRequest
		expected string
	}{
		{
			name: "without language",
			req:  summarize.ChunkRequest{MinWords: 120, MaxWords: 200},
			expected: "Summarize the following text in 120 to 200 words. Reply with the summary only.\n\n" +
				"body text",
		},
		{
			name: "with language",
			req:  summarize.ChunkRequest{MinWords: 20, MaxWords: 40, Language: "German"},
			expected: "Summarize the following text in 20 to 40 words. Write the summary in German. " +
				"Reply with the summary only.\n\nbody text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildPrompt(tt.req, "body text"))
		})
	}
}
