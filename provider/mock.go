package provider

import (
	"context"
	"fmt"
)

// MockProvider is a mock AI provider for testing.
type MockProvider struct {
	Translations map[string]string // Map of source text to translation
	CallCount    int               // Number of times Translate was called
	LastRequest  *TranslateRequest // Last request received
	Err          error             // If set, Translate returns this error
}

// NewMockProvider creates a new mock provider with default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"Hello":                "Hola",
			"World":                "Mundo",
			"Hello World":          "Hola Mundo",
			"Welcome to our site.": "Bienvenido a nuestro sitio.",
		},
	}
}

// Translate returns mock translations. Unknown texts come back bracketed
// so tests can tell translated output from pass-through.
func (m *MockProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	m.CallCount++
	m.LastRequest = &req

	if m.Err != nil {
		return "", m.Err
	}

	if translation, ok := m.Translations[req.Text]; ok {
		return translation, nil
	}
	return fmt.Sprintf("[%s]", req.Text), nil
}

// Reset resets the call count and last request.
func (m *MockProvider) Reset() {
	m.CallCount = 0
	m.LastRequest = nil
	m.Err = nil
}

// Verify MockProvider implements AIProvider
var _ AIProvider = (*MockProvider)(nil)
