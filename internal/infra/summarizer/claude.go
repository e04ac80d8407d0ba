// Package summarizer provides the hosted model tiers of the summarization pipeline.
// It includes adapters for Claude (Anthropic) and OpenAI APIs with reliability patterns,
// token-budget input truncation, and the loader that turns a model descriptor into a
// ready summarize.Model.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"doc-summarizer/internal/domain/entity"
	"doc-summarizer/internal/observability/logging"
	"doc-summarizer/internal/resilience/retry"
	"doc-summarizer/internal/usecase/summarize"
	"doc-summarizer/internal/utils/text"
)

// Claude implements summarize.Model using Anthropic's Claude API.
// It includes rate limiting, circuit breaker and retry logic for improved reliability.
type Claude struct {
	client          anthropic.Client
	descriptor      entity.ModelDescriptor
	guard           *guard
	opts            Options
	metricsRecorder SummaryMetricsRecorder
}

// NewClaude creates a Claude tier for descriptor.
func NewClaude(d entity.ModelDescriptor, opts Options) (*Claude, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("claude %s: %w", d.ModelID, err)
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		// retries are handled by the guard
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(opts.BaseURL))
	}

	recorder := opts.Metrics
	if recorder == nil {
		recorder = NewPrometheusSummaryMetrics()
	}

	return &Claude{
		client:          anthropic.NewClient(clientOpts...),
		descriptor:      d,
		guard:           newGuard(d, opts),
		opts:            opts,
		metricsRecorder: recorder,
	}, nil
}

// Probe asks the API for the model, failing when the id is unknown or the key is rejected.
func (c *Claude) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	if _, err := c.client.Models.Get(ctx, c.descriptor.ModelID, anthropic.ModelGetParams{}); err != nil {
		return fmt.Errorf("claude probe %s: %w", c.descriptor.ModelID, classifyClaudeError(err))
	}
	return nil
}

// SummarizeChunk implements summarize.Model.
func (c *Claude) SummarizeChunk(ctx context.Context, req summarize.ChunkRequest) (string, error) {
	return c.guard.do(ctx, func(ctx context.Context) (string, error) {
		return c.doSummarize(ctx, req)
	})
}

// doSummarize performs the actual API call without retry or circuit breaker.
func (c *Claude) doSummarize(ctx context.Context, req summarize.ChunkRequest) (string, error) {
	logger := logging.WithRequestID(ctx, slog.Default())

	input, truncated := TruncateTokens(req.Text, c.opts.MaxInputTokens)
	if truncated {
		logger.Warn("text truncated for claude api",
			slog.String("model", c.descriptor.ModelID),
			slog.Int("original_words", text.CountWords(req.Text)),
			slog.Int("truncated_words", text.CountWords(input)))
	}

	logger.Debug("starting model summarization",
		slog.String("model", c.descriptor.ModelID),
		slog.Int("input_words", text.CountWords(input)),
		slog.Int("min_words", req.MinWords),
		slog.Int("max_words", req.MaxWords))

	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.descriptor.ModelID),
		MaxTokens: int64(c.opts.MaxOutputTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(buildPrompt(req, input)),
			),
		},
	})

	duration := time.Since(start)

	if err != nil {
		logger.Error("model summarization failed",
			slog.String("model", c.descriptor.ModelID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", classifyClaudeError(err))
	}

	var parts []string
	for _, block := range message.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			parts = append(parts, tb.Text)
		}
	}
	summary := strings.TrimSpace(strings.Join(parts, "\n"))
	if summary == "" {
		return "", fmt.Errorf("claude api: %w", ErrEmptyResponse)
	}

	words := text.CountWords(summary)
	logger.Debug("model summarization completed",
		slog.String("model", c.descriptor.ModelID),
		slog.Int("summary_words", words),
		slog.Duration("duration", duration))

	recordSummary(c.metricsRecorder, words, req.MaxWords, duration)

	return summary, nil
}

// classifyClaudeError exposes the HTTP status of an API error to the retry policy.
func classifyClaudeError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return &retry.HTTPError{
			StatusCode: apiErr.StatusCode,
			Message:    "claude api request failed",
			Err:        err,
		}
	}
	return err
}
