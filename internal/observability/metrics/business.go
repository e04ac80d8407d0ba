package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RecordSummary records the outcome and duration of one summarization request.
// Outcome should be one of "ok", "too_short" or "failed".
func RecordSummary(outcome string, duration time.Duration) {
	SummariesTotal.WithLabelValues(outcome).Inc()
	SummarizationDuration.Observe(duration.Seconds())
}

// RecordFallback records a text summarized by the extractive path.
func RecordFallback(reason string) {
	SummaryFallbacksTotal.WithLabelValues(reason).Inc()
}

// RecordChunks records the chunk count of a document that took the chunked path.
func RecordChunks(count int) {
	SummaryChunks.Observe(float64(count))
}

// RecordModelLoad records a model load attempt.
func RecordModelLoad(model string, success bool) {
	ModelLoadsTotal.WithLabelValues(model, resultLabel(success)).Inc()
}

// RecordExtractionSuccess records a successful extraction and the size of the text it produced.
//
// Example:
//
//	start := time.Now()
//	text, err := extractor.Extract(ctx, doc)
//	if err == nil {
//	    RecordExtractionSuccess("pdf", time.Since(start), text.CountWords(doc))
//	}
func RecordExtractionSuccess(source string, duration time.Duration, words int) {
	DocumentExtractionsTotal.WithLabelValues(source, "success").Inc()
	DocumentExtractionDuration.WithLabelValues(source).Observe(duration.Seconds())
	DocumentWords.Observe(float64(words))
}

// RecordExtractionFailed records a failed extraction.
func RecordExtractionFailed(source string, duration time.Duration) {
	DocumentExtractionsTotal.WithLabelValues(source, "failure").Inc()
	DocumentExtractionDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// WriteTextfile writes every metric of the default registry to path in the Prometheus text
// format, for pickup by a node_exporter textfile collector after a batch run.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
