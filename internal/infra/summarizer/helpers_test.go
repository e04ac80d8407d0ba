package summarizer_test

import (
	"sync"
	"time"

	"doc-summarizer/internal/infra/summarizer"
	"doc-summarizer/internal/resilience/retry"
)

// mockMetricsRecorder captures recorded metrics instead of exporting them.
type mockMetricsRecorder struct {
	mu         sync.Mutex
	lengths    []int
	exceeded   int
	compliance []bool
	durations  int
}

func (m *mockMetricsRecorder) RecordLength(words int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lengths = append(m.lengths, words)
}

func (m *mockMetricsRecorder) RecordBudgetExceeded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exceeded++
}

func (m *mockMetricsRecorder) RecordCompliance(withinBudget bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.compliance = append(m.compliance, withinBudget)
}

func (m *mockMetricsRecorder) RecordDuration(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations++
}

// testOptions returns adapter options pointed at baseURL with millisecond retries.
func testOptions(baseURL string, recorder summarizer.SummaryMetricsRecorder) summarizer.Options {
	opts := summarizer.DefaultOptions("test-key")
	opts.BaseURL = baseURL
	opts.Timeout = 5 * time.Second
	opts.RateLimit = 1000
	opts.RateBurst = 100
	opts.Retry = retry.Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
	opts.Metrics = recorder
	return opts
}
