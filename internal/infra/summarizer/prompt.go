package summarizer

import (
	"fmt"

	"doc-summarizer/internal/usecase/summarize"
)

// buildPrompt constructs the summarization prompt for one chunk.
//
// Example output:
//
//	"Summarize the following text in 50 to 100 words. Write the summary in French.
//	Reply with the summary only.\n\n{text}"
func buildPrompt(req summarize.ChunkRequest, text string) string {
	language := ""
	if req.Language != "" {
		language = fmt.Sprintf(" Write the summary in %s.", req.Language)
	}
	return fmt.Sprintf("Summarize the following text in %d to %d words.%s Reply with the summary only.\n\n%s",
		req.MinWords, req.MaxWords, language, text)
}
