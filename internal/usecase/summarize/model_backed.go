package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"doc-summarizer/internal/domain/entity"
	"doc-summarizer/internal/observability/logging"
	"doc-summarizer/internal/observability/metrics"
	"doc-summarizer/internal/utils/text"
)

// ModelBacked summarizes text with the first model of a hierarchy that loads, and
// redirects every unit it cannot summarize to a deterministic fallback.
//
// The active model is chosen once at construction and never replaced. A ModelBacked
// is safe for concurrent use as long as its Model is.
type ModelBacked struct {
	active     Model
	descriptor entity.ModelDescriptor
	hasActive  bool
	loadErrs   map[string]error
	fallback   Fallback
	logger     *slog.Logger
}

// ModelBackedOption configures a ModelBacked.
type ModelBackedOption func(*ModelBacked)

// WithLogger sets the logger used for load and fallback events.
func WithLogger(logger *slog.Logger) ModelBackedOption {
	return func(m *ModelBacked) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewModelBacked loads the hierarchy in priority order and keeps the first model that loads.
//
// Loading stops at the first success. When every descriptor fails (or the hierarchy is
// empty) the summarizer holds no model, the failure is logged once, and every later call
// routes to fallback. A nil fallback selects the extractive summarizer.
func NewModelBacked(
	ctx context.Context,
	hierarchy []entity.ModelDescriptor,
	loader Loader,
	fallback Fallback,
	opts ...ModelBackedOption,
) *ModelBacked {
	m := &ModelBacked{
		loadErrs: make(map[string]error),
		fallback: fallback,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.fallback == nil {
		m.fallback = NewExtractive()
	}

	for _, d := range hierarchy {
		model, err := m.load(ctx, loader, d)
		metrics.RecordModelLoad(d.Key(), err == nil)
		if err != nil {
			m.loadErrs[d.Key()] = err
			m.logger.Debug("model load failed",
				slog.String("model", d.Key()),
				slog.Any("error", err))
			continue
		}

		m.active = model
		m.descriptor = d
		m.hasActive = true
		m.logger.Info("model loaded",
			slog.String("model", d.Key()),
			slog.String("name", d.Name()))
		return m
	}

	m.logger.Warn("no summarization model available, using extractive summaries",
		slog.Int("hierarchy_size", len(hierarchy)),
		slog.Int("failed", len(m.loadErrs)))
	return m
}

func (m *ModelBacked) load(ctx context.Context, loader Loader, d entity.ModelDescriptor) (model Model, err error) {
	if loader == nil {
		return nil, ErrNoLoader
	}
	defer func() {
		if r := recover(); r != nil {
			model = nil
			err = fmt.Errorf("%w: load %s: %v", ErrModelPanic, d.Key(), r)
		}
	}()

	model, err = loader(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", d.Key(), err)
	}
	if model == nil {
		return nil, fmt.Errorf("load %s: loader returned no model", d.Key())
	}
	return model, nil
}

// Active returns the descriptor of the loaded model, if any.
func (m *ModelBacked) Active() (entity.ModelDescriptor, bool) {
	return m.descriptor, m.hasActive
}

// LoadErrors returns the load failure of every descriptor tried, keyed by descriptor key.
func (m *ModelBacked) LoadErrors() map[string]error {
	out := make(map[string]error, len(m.loadErrs))
	for k, v := range m.loadErrs {
		out[k] = v
	}
	return out
}

// SummarizeChunk invokes the active model once. It never panics and never returns a bare error:
// the outcome is reported through the ModelResult tag.
func (m *ModelBacked) SummarizeChunk(ctx context.Context, req ChunkRequest) (result ModelResult) {
	if !m.hasActive {
		return ModelResult{Kind: ModelUnavailable}
	}
	if err := ctx.Err(); err != nil {
		return ModelResult{Kind: ModelError, Err: err}
	}

	defer func() {
		if r := recover(); r != nil {
			result = ModelResult{Kind: ModelError, Err: fmt.Errorf("%w: %v", ErrModelPanic, r)}
		}
	}()

	out, err := m.active.SummarizeChunk(ctx, req)
	if err != nil {
		return ModelResult{Kind: ModelError, Err: err}
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return ModelResult{Kind: ModelError, Err: ErrEmptyModelOutput}
	}
	return ModelResult{Kind: ModelSuccess, Text: out}
}

// SummarizeOrFallback summarizes req with the model and falls back to the extractive summary
// of req.Text at req.MaxWords when the model is unavailable or fails.
// The boolean reports whether the fallback produced the text.
func (m *ModelBacked) SummarizeOrFallback(ctx context.Context, req ChunkRequest) (string, bool) {
	result := m.SummarizeChunk(ctx, req)

	switch result.Kind {
	case ModelSuccess:
		return result.Text, false
	case ModelError:
		logging.WithRequestID(ctx, m.logger).Warn("model summarization failed, using extractive summary",
			slog.String("model", m.descriptor.Key()),
			slog.Int("words", text.CountWords(req.Text)),
			slog.Any("error", result.Err))
	}

	metrics.RecordFallback(result.Kind.String())
	return m.fallback.Summarize(req.Text, req.MaxWords), true
}
