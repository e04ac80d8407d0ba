// Package tracing provides OpenTelemetry tracing integration.
//
// Spans are created through the global tracer provider, so they are no-ops until the
// binary installs a real provider. Tests install an in-memory exporter.
//
// Example usage:
//
//	import "doc-summarizer/internal/observability/tracing"
//
//	func summarize(ctx context.Context) {
//	    ctx, span := tracing.StartSpan(ctx, "summarize.generate")
//	    defer span.End()
//	    // ... summarize ...
//	}
package tracing
