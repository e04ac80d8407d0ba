package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"doc-summarizer/internal/domain/entity"
	"doc-summarizer/internal/resilience/circuitbreaker"
	"doc-summarizer/internal/resilience/retry"
)

// guard applies the per-model reliability stack to a provider call: a timeout for the whole
// call, then for every attempt a rate limiter token and the circuit breaker, with retries
// and backoff between attempts.
type guard struct {
	model   string
	limiter *rate.Limiter
	breaker *circuitbreaker.CircuitBreaker
	retry   retry.Config
	timeout time.Duration
}

func newGuard(d entity.ModelDescriptor, opts Options) *guard {
	return &guard{
		model:   d.Key(),
		limiter: rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateBurst),
		breaker: circuitbreaker.New(circuitbreaker.ModelAPIConfig(d.Key())),
		retry:   opts.Retry,
		timeout: opts.Timeout,
	}
}

func (g *guard) do(ctx context.Context, call func(ctx context.Context) (string, error)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var result string

	err := retry.WithBackoff(ctx, g.retry, func() error {
		if err := g.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}

		out, err := g.breaker.Execute(func() (interface{}, error) {
			return call(ctx)
		})
		if err != nil {
			if circuitbreaker.IsRejection(err) {
				slog.Warn("model circuit breaker open, request rejected",
					slog.String("model", g.model),
					slog.String("state", g.breaker.State().String()))
				return fmt.Errorf("%s unavailable: %w", g.model, err)
			}
			return err
		}

		result = out.(string)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%s summarize failed: %w", g.model, err)
	}

	return result, nil
}
