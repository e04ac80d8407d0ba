package summarizer

import (
	"context"
	"fmt"

	"doc-summarizer/internal/config"
	"doc-summarizer/internal/domain/entity"
	"doc-summarizer/internal/usecase/summarize"
)

// prober is implemented by adapters that can check their model exists before use.
type prober interface {
	Probe(ctx context.Context) error
}

// LoaderOptions adjusts the adapters built by NewProviderLoader.
type LoaderOptions struct {
	// BaseURLs overrides the endpoint per provider.
	BaseURLs map[string]string

	// Customize, when set, is applied to the options of every adapter.
	Customize func(provider string, opts *Options)
}

// NewProviderLoader returns the loader of the model hierarchy described by cfg.
//
// Loading a descriptor builds the provider's adapter. It fails when the provider is
// unknown, its API key is missing, or, with ProbeOnLoad, the provider does not know the
// model id.
func NewProviderLoader(cfg *config.SummarizerConfig, lopts LoaderOptions) summarize.Loader {
	return func(ctx context.Context, d entity.ModelDescriptor) (summarize.Model, error) {
		opts := OptionsFromConfig(cfg, d.Provider)
		opts.BaseURL = lopts.BaseURLs[d.Provider]
		if lopts.Customize != nil {
			lopts.Customize(d.Provider, &opts)
		}

		var (
			model summarize.Model
			err   error
		)
		switch d.Provider {
		case entity.ProviderAnthropic:
			model, err = NewClaude(d, opts)
		case entity.ProviderOpenAI:
			model, err = NewOpenAI(d, opts)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, d.Provider)
		}
		if err != nil {
			return nil, err
		}

		if cfg.ProbeOnLoad {
			if p, ok := model.(prober); ok {
				if err := p.Probe(ctx); err != nil {
					return nil, err
				}
			}
		}

		return model, nil
	}
}
