package nbtai

import (
	"errors"
	"strings"
	"testing"
)

func TestProviderError(t *testing.T) {
	cause := errors.New("connection reset")
	err := &ProviderError{Message: "API call failed", Cause: cause, Retryable: true}

	if !strings.Contains(err.Error(), "API call failed") {
		t.Errorf("Message missing from error string: %q", err.Error())
	}
	if !strings.Contains(err.Error(), "connection reset") {
		t.Errorf("Cause missing from error string: %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Unwrap must expose the cause")
	}
}

func TestProviderError_NoCause(t *testing.T) {
	err := &ProviderError{Message: "empty response"}

	if err.Error() != "provider error: empty response" {
		t.Errorf("Unexpected error string: %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Error("Expected nil unwrap")
	}
}

func TestExhaustedError(t *testing.T) {
	cause := &ProviderError{Message: "throttled", Retryable: true}
	err := &ExhaustedError{Attempts: 3, Cause: cause}

	if !strings.Contains(err.Error(), "3 attempts") {
		t.Errorf("Attempt count missing: %q", err.Error())
	}

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Error("errors.As must reach the wrapped provider error")
	}
}

func TestUnsupportedLanguageError(t *testing.T) {
	err := &UnsupportedLanguageError{
		Lang:      "xx",
		Backend:   "google",
		Supported: []string{"en", "es", "pt"},
	}

	msg := err.Error()
	if !strings.Contains(msg, `"xx"`) || !strings.Contains(msg, `"google"`) {
		t.Errorf("Language or backend missing: %q", msg)
	}
	if !strings.Contains(msg, "en, es, pt") {
		t.Errorf("Supported list missing: %q", msg)
	}
}

func TestUnsupportedLanguageError_NoList(t *testing.T) {
	err := &UnsupportedLanguageError{Lang: "xx", Backend: "openai"}

	if strings.Contains(err.Error(), "supported languages") {
		t.Errorf("Empty supported list must be omitted: %q", err.Error())
	}
}
