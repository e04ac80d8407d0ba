package config

import (
	"fmt"
	"strings"
	"time"

	"doc-summarizer/internal/domain/entity"
	pkgconfig "doc-summarizer/pkg/config"
)

// DefaultModels is the default model hierarchy, most capable first.
var DefaultModels = []string{
	"anthropic:claude-sonnet-4-5:Claude Sonnet 4.5",
	"anthropic:claude-haiku-4-5:Claude Haiku 4.5",
	"openai:gpt-4o:GPT-4o",
	"openai:gpt-4o-mini:GPT-4o mini",
}

const (
	maxChunkConcurrency = 16
	maxChunkWordsLimit  = 20000
)

// SummarizerConfig holds configuration for the summarization pipeline.
type SummarizerConfig struct {
	// Models is the ordered model hierarchy. The first model that loads is used.
	// Env: SUMMARIZER_MODELS (provider:model_id[:display name], comma-separated)
	// or SUMMARIZER_MODELS_FILE (YAML, takes precedence).
	Models []entity.ModelDescriptor

	// AnthropicAPIKey and OpenAIAPIKey authenticate the model providers.
	// A tier whose key is missing fails to load and the next tier is tried.
	AnthropicAPIKey string
	OpenAIAPIKey    string

	// ProbeOnLoad asks the provider for the model before accepting it as loaded.
	// Default: true
	ProbeOnLoad bool

	// MaxChunkWords is the word limit of one chunk of a long document. Default: 1000
	MaxChunkWords int

	// ChunkConcurrency is the number of chunks summarized in parallel. Default: 1
	ChunkConcurrency int

	// MaxInputTokens truncates model input. Default: 3000
	MaxInputTokens int

	// MaxOutputTokens caps model output. Default: 512
	MaxOutputTokens int

	// Timeout bounds one model call. Default: 60s
	Timeout time.Duration

	// RateLimit is the sustained requests per second allowed per model. Default: 2
	RateLimit float64

	// RateBurst is the rate limiter burst. Default: 2
	RateBurst int

	// DetectLanguage enables language detection for prompts and reports. Default: true
	DetectLanguage bool
}

// LoadSummarizerConfig loads summarizer configuration from environment variables.
// Returns a config with defaults if environment variables are not set.
func LoadSummarizerConfig() (*SummarizerConfig, error) {
	models, err := loadModels()
	if err != nil {
		return nil, fmt.Errorf("invalid summarizer configuration: %w", err)
	}

	config := &SummarizerConfig{
		Models:           models,
		AnthropicAPIKey:  pkgconfig.GetEnvString("ANTHROPIC_API_KEY", ""),
		OpenAIAPIKey:     pkgconfig.GetEnvString("OPENAI_API_KEY", ""),
		ProbeOnLoad:      pkgconfig.GetEnvBool("SUMMARIZER_PROBE_ON_LOAD", true),
		MaxChunkWords:    pkgconfig.GetEnvInt("SUMMARIZER_MAX_CHUNK_WORDS", 1000),
		ChunkConcurrency: pkgconfig.GetEnvInt("SUMMARIZER_CHUNK_CONCURRENCY", 1),
		MaxInputTokens:   pkgconfig.GetEnvInt("SUMMARIZER_MAX_INPUT_TOKENS", 3000),
		MaxOutputTokens:  pkgconfig.GetEnvInt("SUMMARIZER_MAX_OUTPUT_TOKENS", 512),
		Timeout:          pkgconfig.GetEnvDuration("SUMMARIZER_TIMEOUT", 60*time.Second),
		RateLimit:        pkgconfig.GetEnvFloat("SUMMARIZER_RATE_LIMIT", 2),
		RateBurst:        pkgconfig.GetEnvInt("SUMMARIZER_RATE_BURST", 2),
		DetectLanguage:   pkgconfig.GetEnvBool("SUMMARIZER_DETECT_LANGUAGE", true),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid summarizer configuration: %w", err)
	}

	return config, nil
}

func loadModels() ([]entity.ModelDescriptor, error) {
	if path := pkgconfig.GetEnvString("SUMMARIZER_MODELS_FILE", ""); path != "" {
		return LoadModelHierarchyFile(path)
	}
	return ParseModelHierarchy(pkgconfig.GetEnvStringList("SUMMARIZER_MODELS", DefaultModels))
}

// Validate checks configuration correctness.
// An empty model hierarchy is valid: the pipeline then runs extractive-only.
func (c *SummarizerConfig) Validate() error {
	seen := make(map[string]struct{}, len(c.Models))
	for i, m := range c.Models {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("model %d: %w", i, err)
		}
		if !isKnownProvider(m.Provider) {
			return fmt.Errorf("model %d: unknown provider %q", i, m.Provider)
		}
		if _, dup := seen[m.Key()]; dup {
			return fmt.Errorf("model %d: duplicate model %q", i, m.Key())
		}
		seen[m.Key()] = struct{}{}
	}

	if err := pkgconfig.ValidateIntRange(c.MaxChunkWords, 1, maxChunkWordsLimit); err != nil {
		return fmt.Errorf("SUMMARIZER_MAX_CHUNK_WORDS: %w", err)
	}

	if err := pkgconfig.ValidateIntRange(c.ChunkConcurrency, 1, maxChunkConcurrency); err != nil {
		return fmt.Errorf("SUMMARIZER_CHUNK_CONCURRENCY: %w", err)
	}

	if c.MaxInputTokens <= 0 {
		return fmt.Errorf("SUMMARIZER_MAX_INPUT_TOKENS must be positive")
	}

	if c.MaxOutputTokens <= 0 {
		return fmt.Errorf("SUMMARIZER_MAX_OUTPUT_TOKENS must be positive")
	}

	if err := pkgconfig.ValidatePositiveDuration(c.Timeout); err != nil {
		return fmt.Errorf("SUMMARIZER_TIMEOUT: %w", err)
	}

	if c.RateLimit <= 0 {
		return fmt.Errorf("SUMMARIZER_RATE_LIMIT must be positive")
	}

	if c.RateBurst <= 0 {
		return fmt.Errorf("SUMMARIZER_RATE_BURST must be positive")
	}

	return nil
}

// APIKey returns the configured key for provider, or "".
func (c *SummarizerConfig) APIKey(provider string) string {
	switch provider {
	case entity.ProviderAnthropic:
		return c.AnthropicAPIKey
	case entity.ProviderOpenAI:
		return c.OpenAIAPIKey
	default:
		return ""
	}
}

// ParseModelHierarchy parses "provider:model_id[:display name]" entries in order.
func ParseModelHierarchy(entries []string) ([]entity.ModelDescriptor, error) {
	models := make([]entity.ModelDescriptor, 0, len(entries))
	for _, entry := range entries {
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) < 2 {
			return nil, fmt.Errorf("model entry %q: expected provider:model_id[:display name]", entry)
		}

		d := entity.ModelDescriptor{
			Provider: strings.ToLower(strings.TrimSpace(parts[0])),
			ModelID:  strings.TrimSpace(parts[1]),
		}
		if len(parts) == 3 {
			d.DisplayName = strings.TrimSpace(parts[2])
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("model entry %q: %w", entry, err)
		}
		models = append(models, d)
	}
	return models, nil
}

func isKnownProvider(provider string) bool {
	return provider == entity.ProviderAnthropic || provider == entity.ProviderOpenAI
}
