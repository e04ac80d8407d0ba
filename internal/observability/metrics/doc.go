// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the pipeline metrics of the summarizer:
//   - Summarization outcomes, durations and fallbacks
//   - Chunk counts of long documents
//   - Model load attempts
//   - Document extraction attempts, durations and sizes
//
// All metrics are registered with the Prometheus default registry. The CLI can dump them
// to a textfile after a run.
//
// Example usage:
//
//	import "doc-summarizer/internal/observability/metrics"
//
//	func summarize() {
//	    start := time.Now()
//	    // ... summarize ...
//	    metrics.RecordSummary("ok", time.Since(start))
//	}
package metrics
