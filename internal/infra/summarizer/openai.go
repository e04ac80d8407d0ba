package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"doc-summarizer/internal/domain/entity"
	"doc-summarizer/internal/observability/logging"
	"doc-summarizer/internal/resilience/retry"
	"doc-summarizer/internal/usecase/summarize"
	"doc-summarizer/internal/utils/text"
)

// OpenAI implements summarize.Model using OpenAI's chat completion API.
// It includes rate limiting, circuit breaker and retry logic for improved reliability.
type OpenAI struct {
	client          *openai.Client
	descriptor      entity.ModelDescriptor
	guard           *guard
	opts            Options
	metricsRecorder SummaryMetricsRecorder
}

// NewOpenAI creates an OpenAI tier for descriptor.
func NewOpenAI(d entity.ModelDescriptor, opts Options) (*OpenAI, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("openai %s: %w", d.ModelID, err)
	}

	clientConfig := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		clientConfig.BaseURL = opts.BaseURL
	}

	recorder := opts.Metrics
	if recorder == nil {
		recorder = NewPrometheusSummaryMetrics()
	}

	return &OpenAI{
		client:          openai.NewClientWithConfig(clientConfig),
		descriptor:      d,
		guard:           newGuard(d, opts),
		opts:            opts,
		metricsRecorder: recorder,
	}, nil
}

// Probe asks the API for the model, failing when the id is unknown or the key is rejected.
func (o *OpenAI) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, o.opts.Timeout)
	defer cancel()

	if _, err := o.client.GetModel(ctx, o.descriptor.ModelID); err != nil {
		return fmt.Errorf("openai probe %s: %w", o.descriptor.ModelID, classifyOpenAIError(err))
	}
	return nil
}

// SummarizeChunk implements summarize.Model.
func (o *OpenAI) SummarizeChunk(ctx context.Context, req summarize.ChunkRequest) (string, error) {
	return o.guard.do(ctx, func(ctx context.Context) (string, error) {
		return o.doSummarize(ctx, req)
	})
}

// doSummarize performs the actual API call without retry or circuit breaker.
func (o *OpenAI) doSummarize(ctx context.Context, req summarize.ChunkRequest) (string, error) {
	logger := logging.WithRequestID(ctx, slog.Default())

	input, truncated := TruncateTokens(req.Text, o.opts.MaxInputTokens)
	if truncated {
		logger.Warn("text truncated for openai api",
			slog.String("model", o.descriptor.ModelID),
			slog.Int("original_words", text.CountWords(req.Text)),
			slog.Int("truncated_words", text.CountWords(input)))
	}

	logger.Debug("starting model summarization",
		slog.String("model", o.descriptor.ModelID),
		slog.Int("input_words", text.CountWords(input)),
		slog.Int("min_words", req.MinWords),
		slog.Int("max_words", req.MaxWords))

	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.descriptor.ModelID,
		MaxTokens: o.opts.MaxOutputTokens,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: buildPrompt(req, input),
		}},
	})

	duration := time.Since(start)

	if err != nil {
		logger.Error("model summarization failed",
			slog.String("model", o.descriptor.ModelID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai api error: %w", classifyOpenAIError(err))
	}

	// Validate response structure (safety check to prevent panic on array access)
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai api: %w", ErrEmptyResponse)
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", fmt.Errorf("openai api: %w", ErrEmptyResponse)
	}

	words := text.CountWords(summary)
	logger.Debug("model summarization completed",
		slog.String("model", o.descriptor.ModelID),
		slog.Int("summary_words", words),
		slog.Duration("duration", duration))

	recordSummary(o.metricsRecorder, words, req.MaxWords, duration)

	return summary, nil
}

// classifyOpenAIError exposes the HTTP status of an API error to the retry policy.
func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &retry.HTTPError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &retry.HTTPError{StatusCode: reqErr.HTTPStatusCode, Message: "openai request failed", Err: err}
	}
	return err
}
