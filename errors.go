package nbtai

import (
	"fmt"
	"strings"
)

// ProviderError indicates a translation backend failure (API error, rate
// limit, network error, etc.).
type ProviderError struct {
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// ExhaustedError indicates that the retry budget for one translation call
// was spent without success. It aborts the whole notebook run: a partially
// translated document must never be emitted as complete.
type ExhaustedError struct {
	Attempts int
	Cause    error
}

func (e *ExhaustedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("translation failed after %d attempts: %v", e.Attempts, e.Cause)
	}
	return fmt.Sprintf("translation failed after %d attempts", e.Attempts)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Cause
}

// UnsupportedLanguageError indicates that a backend rejected the configured
// source/target language pair. Raised before any cell is processed.
type UnsupportedLanguageError struct {
	Lang      string
	Backend   string
	Supported []string // Language codes the backend accepts, if enumerable
}

func (e *UnsupportedLanguageError) Error() string {
	msg := fmt.Sprintf("language %q not supported by backend %q", e.Lang, e.Backend)
	if len(e.Supported) > 0 {
		msg += ": supported languages: " + strings.Join(e.Supported, ", ")
	}
	return msg
}
