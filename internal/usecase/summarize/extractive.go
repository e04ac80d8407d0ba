package summarize

import (
	"strings"

	"doc-summarizer/internal/domain/entity"
	"doc-summarizer/internal/utils/text"
)

// minExtractiveSentenceRunes drops sentences of this length or shorter before selection.
const minExtractiveSentenceRunes = 20

// Extractive selects sentences by position: the first, a run from the first third, and the
// last. It is deterministic and never calls a model.
type Extractive struct{}

// NewExtractive returns the extractive summarizer.
func NewExtractive() *Extractive {
	return &Extractive{}
}

// Summarize picks about targetWords words worth of sentences from text.
//
// The sentence budget is targetWords divided by the average sentence length (at least one,
// at most every sentence). When every sentence fits they are all returned in order.
// Otherwise the first sentence is kept, then, if the budget exceeds two, a contiguous run
// starting at a third of the way through, then the last sentence if room remains and the
// run did not already include it.
// Text without any usable sentence yields entity.UnableMessage.
func (e *Extractive) Summarize(input string, targetWords int) string {
	sentences := text.Sentences(input, minExtractiveSentenceRunes)
	if len(sentences) == 0 {
		return entity.UnableMessage
	}

	totalWords := 0
	for _, s := range sentences {
		totalWords += text.CountWords(s)
	}
	avg := max(1, totalWords/len(sentences))
	target := max(1, min(len(sentences), targetWords/avg))

	if len(sentences) <= target {
		return strings.Join(sentences, " ")
	}

	selected := []string{sentences[0]}
	lastTaken := false

	if target > 2 {
		start := len(sentences) / 3
		end := min(len(sentences), start+target-2)
		selected = append(selected, sentences[start:end]...)
		lastTaken = end == len(sentences)
	}

	// The middle run can reach the end of a long document; never repeat the last sentence.
	if len(selected) < target && len(sentences) > 1 && !lastTaken {
		selected = append(selected, sentences[len(sentences)-1])
	}

	return strings.Join(selected, " ")
}
