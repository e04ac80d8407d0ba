package summarizer

import "errors"

var (
	// ErrMissingAPIKey is returned when a tier's provider has no API key configured.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrUnknownProvider is returned for a descriptor whose provider has no adapter.
	ErrUnknownProvider = errors.New("unknown model provider")

	// ErrEmptyResponse is returned when the provider answers without any text.
	ErrEmptyResponse = errors.New("model returned empty response")
)
