package summarizer

import (
	"fmt"
	"time"

	"doc-summarizer/internal/config"
	"doc-summarizer/internal/resilience/retry"
)

// Options configures one model adapter.
type Options struct {
	// APIKey authenticates against the provider. Required.
	APIKey string

	// BaseURL overrides the provider endpoint. Empty selects the provider default.
	BaseURL string

	// MaxInputTokens truncates the text sent to the model (cl100k_base tokens).
	MaxInputTokens int

	// MaxOutputTokens caps the model response.
	MaxOutputTokens int

	// Timeout bounds one SummarizeChunk call, retries included.
	Timeout time.Duration

	// RateLimit is the sustained requests per second; RateBurst the bucket size.
	RateLimit float64
	RateBurst int

	// Retry controls backoff between attempts of one call.
	Retry retry.Config

	// Metrics records summary lengths and call durations. Nil selects Prometheus.
	Metrics SummaryMetricsRecorder
}

// DefaultOptions returns the adapter defaults for apiKey.
func DefaultOptions(apiKey string) Options {
	return Options{
		APIKey:          apiKey,
		MaxInputTokens:  3000,
		MaxOutputTokens: 512,
		Timeout:         60 * time.Second,
		RateLimit:       2,
		RateBurst:       2,
		Retry:           retry.ModelAPIConfig(),
	}
}

// OptionsFromConfig derives adapter options for provider from the pipeline configuration.
func OptionsFromConfig(cfg *config.SummarizerConfig, provider string) Options {
	opts := DefaultOptions(cfg.APIKey(provider))
	opts.MaxInputTokens = cfg.MaxInputTokens
	opts.MaxOutputTokens = cfg.MaxOutputTokens
	opts.Timeout = cfg.Timeout
	opts.RateLimit = cfg.RateLimit
	opts.RateBurst = cfg.RateBurst
	return opts
}

// Validate validates the options and returns an error if invalid.
func (o Options) Validate() error {
	if o.APIKey == "" {
		return ErrMissingAPIKey
	}

	if o.MaxInputTokens <= 0 {
		return fmt.Errorf("max input tokens must be positive, got %d", o.MaxInputTokens)
	}

	if o.MaxOutputTokens <= 0 {
		return fmt.Errorf("max output tokens must be positive, got %d", o.MaxOutputTokens)
	}

	if o.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", o.Timeout)
	}

	if o.RateLimit <= 0 || o.RateBurst <= 0 {
		return fmt.Errorf("rate limit must be positive, got %v/s burst %d", o.RateLimit, o.RateBurst)
	}

	if err := o.Retry.Validate(); err != nil {
		return err
	}

	return nil
}
