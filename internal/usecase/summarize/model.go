package summarize

import (
	"context"
	"fmt"

	"doc-summarizer/internal/domain/entity"
)

// ChunkRequest is one unit of text handed to a model.
type ChunkRequest struct {
	Text     string
	MinWords int
	MaxWords int

	// Language is the detected document language (e.g. "English"), empty when unknown.
	Language string
}

// NewChunkRequest builds a request for text within budget.
func NewChunkRequest(text string, budget entity.LengthBudget, language string) ChunkRequest {
	return ChunkRequest{
		Text:     text,
		MinWords: budget.MinWords,
		MaxWords: budget.MaxWords,
		Language: language,
	}
}

// Model is a loaded sequence-to-sequence summarization model.
// Implementations may fail for any reason; callers never let a failure escape.
type Model interface {
	SummarizeChunk(ctx context.Context, req ChunkRequest) (string, error)
}

// Loader performs the expensive load step for one tier of the hierarchy.
type Loader func(ctx context.Context, d entity.ModelDescriptor) (Model, error)

// Fallback is a deterministic summarizer that never calls a model.
type Fallback interface {
	Summarize(text string, targetWords int) string
}

// ModelResultKind tags a ModelResult.
type ModelResultKind int

const (
	// ModelSuccess carries the model's summary.
	ModelSuccess ModelResultKind = iota
	// ModelUnavailable means no model was loaded.
	ModelUnavailable
	// ModelError means the model was invoked and failed; Err holds the cause.
	ModelError
)

func (k ModelResultKind) String() string {
	switch k {
	case ModelSuccess:
		return "success"
	case ModelUnavailable:
		return "unavailable"
	case ModelError:
		return "error"
	default:
		return fmt.Sprintf("ModelResultKind(%d)", int(k))
	}
}

// ModelResult is the outcome of a single model invocation.
type ModelResult struct {
	Kind ModelResultKind
	Text string
	Err  error
}
