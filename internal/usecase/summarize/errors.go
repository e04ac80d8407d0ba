package summarize

import "errors"

var (
	// ErrEmptyModelOutput is returned when a model answers with blank text.
	ErrEmptyModelOutput = errors.New("model returned empty summary")

	// ErrModelPanic wraps a panic recovered from a model or loader.
	ErrModelPanic = errors.New("model panicked")

	// ErrNoLoader is recorded when a hierarchy is given without a loader.
	ErrNoLoader = errors.New("no model loader configured")
)
