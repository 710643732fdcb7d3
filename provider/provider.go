// Package provider defines the translation backend interface and the
// built-in backend implementations.
package provider

import (
	"fmt"
	"strings"

	"github.com/ZaguanLabs/nbtai"
)

// AIProvider is the interface for translation backends.
// This is an alias to the main package interface for convenience.
type AIProvider = nbtai.AIProvider

// TranslateRequest is an alias to the main package type.
type TranslateRequest = nbtai.TranslateRequest

// Names of the built-in backends.
const (
	BackendGoogle   = "google"
	BackendMyMemory = "mymemory"
	BackendOpenAI   = "openai"
)

// Config holds the common configuration for constructing a backend by name.
type Config struct {
	SourceLang string // Source language code (validated at construction)
	TargetLang string // Target language code (validated at construction)

	// OpenAI backend
	APIKey      string  // API key (falls back to OPENAI_API_KEY env var)
	Model       string  // Model name (default: "gpt-4o-mini")
	BaseURL     string  // Custom base URL (optional)
	Temperature float32 // Generation temperature (default: 0.3)
}

// New constructs a backend by name. The name set is closed: adding a
// provider means adding a variant here and its implementation file, never
// branching on backend strings at call sites.
//
// Every constructor validates the configured language pair up front and
// fails with an UnsupportedLanguageError before any cell is processed.
func New(name string, cfg Config) (AIProvider, error) {
	switch strings.ToLower(name) {
	case BackendGoogle:
		return NewGoogleProvider(cfg)
	case BackendMyMemory:
		return NewMyMemoryProvider(cfg)
	case BackendOpenAI:
		return NewOpenAIProvider(OpenAIConfig{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			BaseURL:     cfg.BaseURL,
			Temperature: cfg.Temperature,
			SourceLang:  cfg.SourceLang,
			TargetLang:  cfg.TargetLang,
		})
	default:
		return nil, fmt.Errorf("backend %q not supported (available: %s, %s, %s)",
			name, BackendGoogle, BackendMyMemory, BackendOpenAI)
	}
}

// validateLangs checks a language pair against the known language tables.
func validateLangs(backend string, langs ...string) error {
	for _, lang := range langs {
		if lang == "" || !nbtai.IsKnownLanguage(lang) {
			return &nbtai.UnsupportedLanguageError{
				Lang:      lang,
				Backend:   backend,
				Supported: nbtai.SupportedCodes(),
			}
		}
	}
	return nil
}
