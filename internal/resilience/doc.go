// Package resilience provides fault tolerance patterns for the calls the summarizer makes to
// the outside world: hosted model APIs and document downloads.
//
// The package supports:
//   - Circuit breakers per model tier and for document fetching
//   - Retry logic with exponential backoff and jitter
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.ModelAPIConfig("anthropic/claude-haiku-4-5"))
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callModel()
//	})
//
//	err := retry.WithBackoff(ctx, retry.ModelAPIConfig(), func() error {
//	    return performOperation()
//	})
package resilience
