package nbtai

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWithRetry_SuccessFirstTry(t *testing.T) {
	calls := 0
	result, err := WithRetry(context.Background(), RetryConfig{MaxAttempts: 3}, func() (string, error) {
		calls++
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if result != "ok" {
		t.Errorf("Expected 'ok', got %q", result)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}

func TestWithRetry_SuccessAfterFailures(t *testing.T) {
	calls := 0
	result, err := WithRetry(context.Background(), RetryConfig{MaxAttempts: 3, Delay: time.Millisecond}, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})

	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if result != "ok" {
		t.Errorf("Expected 'ok', got %q", result)
	}
	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}
}

func TestWithRetry_Exhaustion(t *testing.T) {
	calls := 0
	_, err := WithRetry(context.Background(), RetryConfig{MaxAttempts: 3, Delay: time.Millisecond}, func() (string, error) {
		calls++
		return "", errors.New("persistent")
	})

	if err == nil {
		t.Fatal("Expected error after exhaustion")
	}
	// Exactly the attempt budget, never a fourth call.
	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}

	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("Expected ExhaustedError, got %T", err)
	}
	if exhausted.Attempts != 3 {
		t.Errorf("Expected 3 attempts recorded, got %d", exhausted.Attempts)
	}
	if exhausted.Cause == nil || exhausted.Cause.Error() != "persistent" {
		t.Errorf("Expected last error as cause, got %v", exhausted.Cause)
	}
}

func TestWithRetry_NotifyCalledBetweenAttempts(t *testing.T) {
	var notices []int
	cfg := RetryConfig{
		MaxAttempts: 3,
		Delay:       time.Millisecond,
		Notify: func(attempt, maxAttempts int, err error) {
			notices = append(notices, attempt)
		},
	}

	_, _ = WithRetry(context.Background(), cfg, func() (string, error) {
		return "", errors.New("fail")
	})

	// Notified after attempts 1 and 2, not after the final one.
	if len(notices) != 2 || notices[0] != 1 || notices[1] != 2 {
		t.Errorf("Expected notices [1 2], got %v", notices)
	}
}

func TestWithRetry_ContextCancelledStopsImmediately(t *testing.T) {
	calls := 0
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(ctx, RetryConfig{MaxAttempts: 3}, func() (string, error) {
		calls++
		return "", errors.New("fail")
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Errorf("Expected no calls after cancellation, got %d", calls)
	}
}

func TestWithRetry_CancellationErrorNotRetried(t *testing.T) {
	calls := 0
	_, err := WithRetry(context.Background(), RetryConfig{MaxAttempts: 3, Delay: time.Millisecond}, func() (string, error) {
		calls++
		return "", context.DeadlineExceeded
	})

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected DeadlineExceeded, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Cancellation must not be retried, got %d calls", calls)
	}
}

func TestWithRetry_ZeroAttemptsMeansOne(t *testing.T) {
	calls := 0
	_, err := WithRetry(context.Background(), RetryConfig{}, func() (string, error) {
		calls++
		return "", errors.New("fail")
	})

	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) || exhausted.Attempts != 1 {
		t.Errorf("Expected ExhaustedError with 1 attempt, got %v", err)
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()

	if cfg.MaxAttempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", cfg.MaxAttempts)
	}
	if cfg.Delay != 10*time.Second {
		t.Errorf("Expected 10s delay, got %v", cfg.Delay)
	}
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(nil) {
		t.Error("nil is not retryable")
	}
	if !IsRetryable(&ProviderError{Message: "throttled", Retryable: true}) {
		t.Error("Retryable provider error must be retryable")
	}
	if IsRetryable(&ProviderError{Message: "bad request"}) {
		t.Error("Non-retryable provider error must not be retryable")
	}
	if IsRetryable(context.Canceled) {
		t.Error("Cancellation is never retryable")
	}
}
