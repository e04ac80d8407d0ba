// Package retry re-runs calls that failed for a transient reason, waiting with exponential
// backoff and jitter between attempts.
// Model adapters and the URL extractor use it to ride out provider hiccups.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"syscall"
	"time"
)

// Config controls how often and how patiently a call is retried.
type Config struct {
	MaxAttempts    int           // Total attempts, including the first
	InitialDelay   time.Duration // Wait before the second attempt
	MaxDelay       time.Duration // Upper bound of any single wait, before jitter
	Multiplier     float64       // Growth factor of the wait between attempts
	JitterFraction float64       // Random extra wait as a fraction of the wait, 0.0-1.0
}

// ModelAPIConfig is used for hosted model calls. Attempts are few because each one is billed
// and the summarizer falls back to its extractive path afterwards.
func ModelAPIConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   2 * time.Second,
		MaxDelay:       10 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// DocumentFetchConfig is used for downloading documents by URL.
func DocumentFetchConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   1 * time.Second,
		MaxDelay:       10 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// Validate reports a config that could never make an attempt or never back off.
func (c Config) Validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1, got %d", c.MaxAttempts)
	}
	if c.InitialDelay < 0 || c.MaxDelay < 0 {
		return fmt.Errorf("retry delays must not be negative, got %v and %v", c.InitialDelay, c.MaxDelay)
	}
	if c.Multiplier < 1 {
		return fmt.Errorf("retry multiplier must be at least 1, got %v", c.Multiplier)
	}
	return nil
}

// WithBackoff runs fn until it succeeds, fails permanently, or MaxAttempts is spent.
// A permanent error is returned as is; exhausting the attempts wraps the last error.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	var err error
	wait := cfg.InitialDelay

	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil {
			if attempt > 1 {
				slog.Info("call succeeded after retry", slog.Int("attempt", attempt))
			}
			return nil
		}

		if !isTransient(err) {
			return err
		}
		if attempt >= cfg.MaxAttempts {
			return fmt.Errorf("max retry attempts (%d) exceeded: %w", cfg.MaxAttempts, err)
		}

		slog.Warn("transient failure, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", cfg.MaxAttempts),
			slog.Duration("wait", wait),
			slog.Any("error", err))

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}

		wait = cfg.next(wait)
	}
}

// next returns the wait that follows wait.
func (c Config) next(wait time.Duration) time.Duration {
	wait = min(time.Duration(float64(wait)*c.Multiplier), c.MaxDelay)
	return withJitter(wait, c.JitterFraction)
}

// isTransient reports whether err may go away on its own: network timeouts, refused or reset
// connections, and HTTP 5xx, 429 and 408. Cancellation is never transient.
func isTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return transientStatus(httpErr.StatusCode)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	for _, errno := range []syscall.Errno{syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.ETIMEDOUT, syscall.ENETUNREACH} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}

func transientStatus(code int) bool {
	switch {
	case code >= 500 && code < 600:
		return true
	case code == http.StatusTooManyRequests, code == http.StatusRequestTimeout:
		return true
	default:
		return false
	}
}

// HTTPError is a failed HTTP exchange with a model provider or a document host.
// Err optionally carries the provider error it was derived from.
type HTTPError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func withJitter(wait time.Duration, fraction float64) time.Duration {
	if fraction <= 0 || wait <= 0 {
		return wait
	}
	fraction = min(fraction, 1.0)
	// #nosec G404 -- backoff jitter needs no cryptographic randomness.
	return wait + time.Duration(rand.Float64()*float64(wait)*fraction)
}
