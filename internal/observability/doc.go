// Package observability provides the observability infrastructure of the summarizer:
// structured logging, Prometheus metrics and OpenTelemetry tracing.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
//   - tracing: OpenTelemetry tracer and span helpers
//
// Example usage:
//
//	import (
//	    "doc-summarizer/internal/observability/logging"
//	    "doc-summarizer/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.RecordSummary("ok", elapsed)
//	}
package observability
