package summarizer

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SummaryMetricsRecorder records metrics about model-generated summaries.
// Tests inject their own recorder instead of Prometheus.
type SummaryMetricsRecorder interface {
	// RecordLength records the length of a generated summary in words.
	RecordLength(words int)

	// RecordBudgetExceeded counts a summary longer than its maximum word budget.
	RecordBudgetExceeded()

	// RecordCompliance records whether a summary stayed within its maximum word budget.
	RecordCompliance(withinBudget bool)

	// RecordDuration records the time taken by one provider call.
	RecordDuration(duration time.Duration)
}

// PrometheusSummaryMetrics implements SummaryMetricsRecorder using Prometheus metrics.
type PrometheusSummaryMetrics struct {
	lengthHistogram   prometheus.Histogram
	exceededCounter   prometheus.Counter
	complianceGauge   prometheus.Gauge
	durationHistogram prometheus.Histogram
}

var (
	prometheusMetricsInstance *PrometheusSummaryMetrics
	prometheusMetricsOnce     sync.Once
)

// getOrCreateHistogram gets an existing histogram or creates a new one if it doesn't exist
func getOrCreateHistogram(opts prometheus.HistogramOpts) prometheus.Histogram {
	h := prometheus.NewHistogram(opts)
	if err := prometheus.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Histogram)
		}
		return promauto.NewHistogram(opts)
	}
	return h
}

// getOrCreateCounter gets an existing counter or creates a new one if it doesn't exist
func getOrCreateCounter(opts prometheus.CounterOpts) prometheus.Counter {
	c := prometheus.NewCounter(opts)
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Counter)
		}
		return promauto.NewCounter(opts)
	}
	return c
}

// getOrCreateGauge gets an existing gauge or creates a new one if it doesn't exist
func getOrCreateGauge(opts prometheus.GaugeOpts) prometheus.Gauge {
	g := prometheus.NewGauge(opts)
	if err := prometheus.Register(g); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Gauge)
		}
		return promauto.NewGauge(opts)
	}
	return g
}

// NewPrometheusSummaryMetrics returns the process-wide Prometheus recorder.
// Every adapter shares one set of collectors.
func NewPrometheusSummaryMetrics() *PrometheusSummaryMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusSummaryMetrics{
			lengthHistogram: getOrCreateHistogram(prometheus.HistogramOpts{
				Name:    "model_summary_length_words",
				Help:    "Distribution of model summary lengths in words",
				Buckets: []float64{20, 50, 80, 100, 130, 200, 350, 500},
			}),
			exceededCounter: getOrCreateCounter(prometheus.CounterOpts{
				Name: "model_summary_budget_exceeded_total",
				Help: "Total number of model summaries longer than their maximum word budget",
			}),
			complianceGauge: getOrCreateGauge(prometheus.GaugeOpts{
				Name: "model_summary_budget_compliance",
				Help: "1 when the last model summary stayed within its word budget, else 0",
			}),
			durationHistogram: getOrCreateHistogram(prometheus.HistogramOpts{
				Name:    "model_call_duration_seconds",
				Help:    "Time taken by one model provider call",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			}),
		}
	})
	return prometheusMetricsInstance
}

// RecordLength implements SummaryMetricsRecorder.RecordLength
func (p *PrometheusSummaryMetrics) RecordLength(words int) {
	p.lengthHistogram.Observe(float64(words))
}

// RecordBudgetExceeded implements SummaryMetricsRecorder.RecordBudgetExceeded
func (p *PrometheusSummaryMetrics) RecordBudgetExceeded() {
	p.exceededCounter.Inc()
}

// RecordCompliance implements SummaryMetricsRecorder.RecordCompliance
func (p *PrometheusSummaryMetrics) RecordCompliance(withinBudget bool) {
	if withinBudget {
		p.complianceGauge.Set(1.0)
	} else {
		p.complianceGauge.Set(0.0)
	}
}

// RecordDuration implements SummaryMetricsRecorder.RecordDuration
func (p *PrometheusSummaryMetrics) RecordDuration(duration time.Duration) {
	p.durationHistogram.Observe(duration.Seconds())
}

// recordSummary records the metrics of one successful provider call.
func recordSummary(m SummaryMetricsRecorder, summaryWords, maxWords int, duration time.Duration) {
	within := summaryWords <= maxWords
	m.RecordLength(summaryWords)
	m.RecordDuration(duration)
	m.RecordCompliance(within)
	if !within {
		m.RecordBudgetExceeded()
	}
}
