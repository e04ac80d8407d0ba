package summarizer_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-summarizer/internal/domain/entity"
	"doc-summarizer/internal/infra/summarizer"
	"doc-summarizer/internal/resilience/retry"
	"doc-summarizer/internal/usecase/summarize"
)

var claudeHaiku = entity.ModelDescriptor{
	Provider:    entity.ProviderAnthropic,
	ModelID:     "claude-haiku-4-5",
	DisplayName: "Claude Haiku 4.5",
}

func claudeMessageJSON(texts ...string) string {
	content := make([]map[string]string, 0, len(texts))
	for _, t := range texts {
		content = append(content, map[string]string{"type": "text", "text": t})
	}
	body, _ := json.Marshal(map[string]any{
		"id":            "msg_01",
		"type":          "message",
		"role":          "assistant",
		"model":         "claude-haiku-4-5",
		"content":       content,
		"stop_reason":   "end_turn",
		"stop_sequence": nil,
		"usage":         map[string]int{"input_tokens": 120, "output_tokens": 40},
	})
	return string(body)
}

const claudeOverloaded = `{"type": "error", "error": {"type": "overloaded_error", "message": "Overloaded"}}`

// claudeRequest is the subset of the Messages API request the tests inspect.
type claudeRequest struct {
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
	Messages  []struct {
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"messages"`
}

func newClaude(t *testing.T, handler http.HandlerFunc, recorder *mockMetricsRecorder) *summarizer.Claude {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	model, err := summarizer.NewClaude(claudeHaiku, testOptions(server.URL+"/", recorder))
	require.NoError(t, err)
	return model
}

func TestClaude_SummarizeChunk(t *testing.T) {
	recorder := &mockMetricsRecorder{}
	var got claudeRequest

	model := newClaude(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(claudeMessageJSON("First part of the summary.", "Second part.")))
	}, recorder)

	summary, err := model.SummarizeChunk(context.Background(), summarize.ChunkRequest{
		Text:     "The chunk to summarize.",
		MinWords: 20,
		MaxWords: 130,
	})

	require.NoError(t, err)
	assert.Equal(t, "First part of the summary.\nSecond part.", summary)

	assert.Equal(t, "claude-haiku-4-5", got.Model)
	assert.Equal(t, 512, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	require.Len(t, got.Messages[0].Content, 1)
	prompt := got.Messages[0].Content[0].Text
	assert.Contains(t, prompt, "in 20 to 130 words")
	assert.NotContains(t, prompt, "Write the summary in")
	assert.Contains(t, prompt, "The chunk to summarize.")

	assert.Equal(t, []int{7}, recorder.lengths)
}

func TestClaude_ErrorHandling(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantCalls  int32
	}{
		{
			name:       "400 is not retried",
			statusCode: http.StatusBadRequest,
			body:       `{"type": "error", "error": {"type": "invalid_request_error", "message": "max_tokens: too large"}}`,
			wantCalls:  1,
		},
		{
			name:       "overloaded is retried",
			statusCode: 529,
			body:       claudeOverloaded,
			wantCalls:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			model := newClaude(t, func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}, &mockMetricsRecorder{})

			_, err := model.SummarizeChunk(context.Background(), summarize.ChunkRequest{Text: "text", MaxWords: 50})

			require.Error(t, err)
			assert.Contains(t, err.Error(), "claude api error")
			assert.Equal(t, tt.wantCalls, calls.Load())

			var httpErr *retry.HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, tt.statusCode, httpErr.StatusCode)
		})
	}
}

func TestClaude_RecoversAfterTransientFailure(t *testing.T) {
	var calls atomic.Int32
	model := newClaude(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"type": "error", "error": {"type": "api_error", "message": "Internal error"}}`))
			return
		}
		_, _ = w.Write([]byte(claudeMessageJSON("Recovered.")))
	}, &mockMetricsRecorder{})

	summary, err := model.SummarizeChunk(context.Background(), summarize.ChunkRequest{Text: "text", MaxWords: 50})

	require.NoError(t, err)
	assert.Equal(t, "Recovered.", summary)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClaude_EmptyResponse(t *testing.T) {
	model := newClaude(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(claudeMessageJSON()))
	}, &mockMetricsRecorder{})

	_, err := model.SummarizeChunk(context.Background(), summarize.ChunkRequest{Text: "text", MaxWords: 50})

	assert.ErrorIs(t, err, summarizer.ErrEmptyResponse)
}

func TestClaude_Probe(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{
			name:   "known model",
			status: http.StatusOK,
			body:   `{"id": "claude-haiku-4-5", "type": "model", "display_name": "Claude Haiku 4.5", "created_at": "2025-10-01T00:00:00Z"}`,
		},
		{
			name:    "unknown model",
			status:  http.StatusNotFound,
			body:    `{"type": "error", "error": {"type": "not_found_error", "message": "model: claude-haiku-4-5"}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := newClaude(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/v1/models/claude-haiku-4-5", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, &mockMetricsRecorder{})

			err := model.Probe(context.Background())

			if tt.wantErr {
				var httpErr *retry.HTTPError
				require.True(t, errors.As(err, &httpErr))
				assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewClaude_MissingAPIKey(t *testing.T) {
	_, err := summarizer.NewClaude(claudeHaiku, summarizer.DefaultOptions(""))
	assert.ErrorIs(t, err, summarizer.ErrMissingAPIKey)
}
