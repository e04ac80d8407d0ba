package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"doc-summarizer/internal/domain/entity"
	"doc-summarizer/internal/observability/logging"
	"doc-summarizer/internal/observability/metrics"
	"doc-summarizer/internal/observability/tracing"
	"doc-summarizer/internal/utils/text"
)

const (
	defaultMinInputWords       = 50
	defaultMinChunkWords       = 50
	defaultChunkThresholdWords = 1000
)

// Config holds the routing thresholds of the orchestrator.
type Config struct {
	MaxChunkWords       int // Maximum words per chunk on the chunked path
	ChunkThresholdWords int // Cleaned texts longer than this take the chunked path
	MinInputWords       int // Cleaned texts shorter than this are too short to summarize
	MinChunkWords       int // Chunks of this many words or fewer are skipped
	ChunkConcurrency    int // Chunks summarized at once; results are always kept in order
}

// DefaultConfig returns the standard thresholds with sequential chunk processing.
func DefaultConfig() Config {
	return Config{
		MaxChunkWords:       text.DefaultMaxChunkWords,
		ChunkThresholdWords: defaultChunkThresholdWords,
		MinInputWords:       defaultMinInputWords,
		MinChunkWords:       defaultMinChunkWords,
		ChunkConcurrency:    1,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxChunkWords <= 0 {
		c.MaxChunkWords = d.MaxChunkWords
	}
	if c.ChunkThresholdWords <= 0 {
		c.ChunkThresholdWords = d.ChunkThresholdWords
	}
	if c.MinInputWords <= 0 {
		c.MinInputWords = d.MinInputWords
	}
	if c.MinChunkWords < 0 {
		c.MinChunkWords = d.MinChunkWords
	}
	if c.ChunkConcurrency <= 0 {
		c.ChunkConcurrency = d.ChunkConcurrency
	}
	return c
}

// LanguageDetector names the language of a text, reporting false when it cannot tell.
type LanguageDetector interface {
	Detect(text string) (string, bool)
}

// Service is the summarization orchestrator.
// It owns its ModelBacked exclusively; separate Services share no mutable state.
type Service struct {
	model      *ModelBacked
	extractive Fallback
	detector   LanguageDetector
	config     Config
	logger     *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithConfig overrides the routing thresholds. Zero fields keep their defaults.
func WithConfig(cfg Config) ServiceOption {
	return func(s *Service) {
		s.config = cfg.withDefaults()
	}
}

// WithLanguageDetector enables language-aware prompts.
func WithLanguageDetector(d LanguageDetector) ServiceOption {
	return func(s *Service) {
		s.detector = d
	}
}

// WithRecoveryFallback replaces the summarizer used by the last-resort recovery path.
func WithRecoveryFallback(f Fallback) ServiceOption {
	return func(s *Service) {
		if f != nil {
			s.extractive = f
		}
	}
}

// WithServiceLogger sets the request logger.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates an orchestrator over model. A nil model means no model is available
// and every request is summarized extractively.
func NewService(model *ModelBacked, opts ...ServiceOption) *Service {
	s := &Service{
		model:      model,
		extractive: NewExtractive(),
		config:     DefaultConfig(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.model == nil {
		s.model = NewModelBacked(context.Background(), nil, nil, s.extractive, WithLogger(s.logger))
	}
	return s
}

// Model returns the model-backed summarizer used by the service.
func (s *Service) Model() *ModelBacked {
	return s.model
}

// GenerateSummary summarizes input within budget. It never panics and never returns an
// error: every failure is folded into the returned Outcome.
//
// Flow:
//  1. clean the input; fewer than MinInputWords words is TooShort and no model is called,
//     whatever the budget; an invalid budget is Failed
//  2. without a loaded model, or at most ChunkThresholdWords words, summarize the whole text
//  3. otherwise summarize each chunk above MinChunkWords with the per-chunk budget, join the
//     results in order and summarize the join once more if it is still over budget
//  4. anything escaping 2-3 is recovered once by summarizing the re-cleaned input extractively
func (s *Service) GenerateSummary(ctx context.Context, input string, budget entity.LengthBudget) (outcome entity.Outcome) {
	start := time.Now()
	ctx, requestID := logging.EnsureRequestID(ctx)
	logger := logging.WithRequestID(ctx, s.logger)

	ctx, span := tracing.StartSpan(ctx, "summarize.generate",
		attribute.String("request.id", requestID),
		attribute.Int("budget.min_words", budget.MinWords),
		attribute.Int("budget.max_words", budget.MaxWords),
	)
	defer span.End()

	if d, ok := s.model.Active(); ok {
		outcome.Model = d.Name()
	}

	defer func() {
		outcome.Stats = ComputeStats(outcome.Summary)
		duration := time.Since(start)
		metrics.RecordSummary(outcome.Kind.String(), duration)
		span.SetAttributes(
			attribute.String("outcome", outcome.Kind.String()),
			attribute.Bool("degraded", outcome.Degraded),
		)
		logger.Info("summary generated",
			slog.String("outcome", outcome.Kind.String()),
			slog.Bool("degraded", outcome.Degraded),
			slog.Int("summary_words", outcome.Stats.Words),
			slog.Duration("duration", duration))
	}()

	cleaned := text.Clean(input)
	words := text.CountWords(cleaned)
	span.SetAttributes(attribute.Int("input.words", words))
	if words < s.config.MinInputWords {
		outcome.Kind = entity.OutcomeTooShort
		return outcome
	}

	if err := budget.Validate(); err != nil {
		tracing.RecordError(span, err)
		outcome.Kind = entity.OutcomeFailed
		outcome.Reason = err.Error()
		return outcome
	}

	summary, language, degraded, err := s.summarizeRecovered(ctx, cleaned, words, budget)
	outcome.Language = language
	if err != nil {
		tracing.RecordError(span, err)
		logger.Error("summarization failed, recovering with extractive summary",
			slog.Int("words", words),
			slog.Any("error", err))

		degraded = true
		summary, err = s.recoverExtractive(input, budget.MaxWords)
		if err != nil {
			tracing.RecordError(span, err)
			outcome.Kind = entity.OutcomeFailed
			outcome.Reason = err.Error()
			outcome.Degraded = true
			return outcome
		}
	}

	outcome.Degraded = degraded
	if summary == entity.UnableMessage {
		outcome.Kind = entity.OutcomeFailed
		outcome.Reason = entity.UnableMessage
		return outcome
	}

	outcome.Kind = entity.OutcomeOK
	outcome.Summary = summary
	return outcome
}

// GenerateSummaryText is the string-only form of GenerateSummary: the summary, or one of the
// sentinel messages.
func (s *Service) GenerateSummaryText(ctx context.Context, input string, minWords, maxWords int) string {
	return s.GenerateSummary(ctx, input, entity.LengthBudget{MinWords: minWords, MaxWords: maxWords}).Text()
}

func (s *Service) summarizeRecovered(ctx context.Context, cleaned string, words int, budget entity.LengthBudget) (summary, language string, degraded bool, err error) {
	defer recoverInto(&err)

	language = s.detectLanguage(cleaned)

	if _, ok := s.model.Active(); ok && words > s.config.ChunkThresholdWords {
		summary, degraded, err = s.summarizeChunked(ctx, cleaned, budget, language)
		return summary, language, degraded, err
	}

	summary, degraded = s.model.SummarizeOrFallback(ctx, NewChunkRequest(cleaned, budget, language))
	return summary, language, degraded, nil
}

func (s *Service) summarizeChunked(ctx context.Context, cleaned string, budget entity.LengthBudget, language string) (string, bool, error) {
	chunks := text.Chunk(cleaned, s.config.MaxChunkWords)
	perChunk := budget.PerChunk(len(chunks))
	metrics.RecordChunks(len(chunks))

	summaries := make([]string, len(chunks))
	fallbacks := make([]bool, len(chunks))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.config.ChunkConcurrency)

	for i, chunk := range chunks {
		chunkWords := text.CountWords(chunk)
		if chunkWords <= s.config.MinChunkWords {
			continue
		}

		eg.Go(func() (err error) {
			defer recoverInto(&err)

			chunkCtx, span := tracing.StartSpan(egCtx, "summarize.chunk",
				attribute.Int("chunk.index", i),
				attribute.Int("chunk.words", chunkWords),
			)
			defer span.End()

			summaries[i], fallbacks[i] = s.model.SummarizeOrFallback(chunkCtx, NewChunkRequest(chunk, perChunk, language))
			span.SetAttributes(attribute.Bool("chunk.degraded", fallbacks[i]))
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return "", true, fmt.Errorf("summarize chunks: %w", err)
	}

	parts := make([]string, 0, len(summaries))
	degraded := false
	for i, summary := range summaries {
		if summary == "" {
			continue
		}
		parts = append(parts, summary)
		degraded = degraded || fallbacks[i]
	}

	// Every chunk was too small to summarize on its own.
	if len(parts) == 0 {
		summary, fellBack := s.model.SummarizeOrFallback(ctx, NewChunkRequest(cleaned, budget, language))
		return summary, fellBack, nil
	}

	joined := strings.Join(parts, " ")
	if text.CountWords(joined) <= budget.MaxWords {
		return joined, degraded, nil
	}

	summary, fellBack := s.model.SummarizeOrFallback(ctx, NewChunkRequest(joined, budget, language))
	return summary, degraded || fellBack, nil
}

func (s *Service) recoverExtractive(input string, targetWords int) (summary string, err error) {
	defer recoverInto(&err)
	metrics.RecordFallback("recovery")
	return s.extractive.Summarize(text.Clean(input), targetWords), nil
}

func (s *Service) detectLanguage(cleaned string) string {
	if s.detector == nil {
		return ""
	}
	language, ok := s.detector.Detect(cleaned)
	if !ok {
		return ""
	}
	return language
}

// recoverInto converts a panic into an error stored in err.
func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("unexpected failure: %v", r)
	}
}
