// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for common logging patterns used throughout the application.
//
// Key features:
//   - JSON and text output formats
//   - Request ID propagation
//   - Context-aware logging
//   - Configurable log levels
//
// Example usage:
//
//	import "doc-summarizer/internal/observability/logging"
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started", slog.String("version", "1.0"))
//	}
//
//	func summarize(ctx context.Context) {
//	    ctx, _ = logging.EnsureRequestID(ctx)
//	    logger := logging.WithRequestID(ctx, logging.FromContext(ctx))
//	    logger.Info("summarizing document")
//	}
package logging
