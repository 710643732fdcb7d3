package nbtai

import (
	"context"
	"errors"
	"time"
)

// RetryConfig holds configuration for the gateway retry behavior.
type RetryConfig struct {
	MaxAttempts int           // Total attempts before giving up
	Delay       time.Duration // Fixed delay between attempts

	// Notify, when set, is called before each retry with the attempt number
	// just failed, the attempt budget, and the error. Observability only.
	Notify func(attempt, maxAttempts int, err error)
}

// DefaultRetryConfig returns the default retry behavior: three attempts
// with a ten second pause between them. The free translation endpoints
// throttle aggressively, hence the long pause.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		Delay:       10 * time.Second,
	}
}

// RetryFunc is a function that can be retried.
type RetryFunc[T any] func() (T, error)

// WithRetry executes fn with bounded retries and a fixed delay. Every
// failure is retried except context cancellation; when the attempt budget
// is exhausted the last error is wrapped in an ExhaustedError.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn RetryFunc[T]) (T, error) {
	var lastErr error
	var zero T

	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		// Cancellation is not a backend failure; stop immediately.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return zero, err
		}

		if attempt < attempts {
			if cfg.Notify != nil {
				cfg.Notify(attempt, attempts, err)
			}

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(cfg.Delay):
			}
		}
	}

	return zero, &ExhaustedError{Attempts: attempts, Cause: lastErr}
}

// IsRetryable reports whether an error may succeed on another attempt.
// Used by providers to classify API failures; the gateway itself retries
// everything except cancellation regardless, since the free endpoints
// return opaque errors when throttling.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Retryable
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	return false
}
