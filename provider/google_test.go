package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ZaguanLabs/nbtai"
)

func newTestGoogle(t *testing.T, handler http.HandlerFunc) (*GoogleProvider, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGoogleProvider(Config{SourceLang: "en", TargetLang: "es"})
	if err != nil {
		t.Fatalf("NewGoogleProvider failed: %v", err)
	}
	p.SetEndpoint(server.URL)
	return p, server
}

func TestGoogleProvider_Translate(t *testing.T) {
	var gotQuery map[string]string
	p, _ := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"sl": q.Get("sl"),
			"tl": q.Get("tl"),
			"q":  q.Get("q"),
		}
		w.Write([]byte(`[[["Hola ","Hello ",null],["Mundo","World",null]],null,"en"]`))
	})

	got, err := p.Translate(context.Background(), TranslateRequest{
		Text:       "Hello World",
		SourceLang: "en",
		TargetLang: "es",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	// Segments concatenate in order.
	if got != "Hola Mundo" {
		t.Errorf("Expected 'Hola Mundo', got %q", got)
	}
	if gotQuery["sl"] != "en" || gotQuery["tl"] != "es" || gotQuery["q"] != "Hello World" {
		t.Errorf("Wrong query parameters: %v", gotQuery)
	}
}

func TestGoogleProvider_LocaleHyphenated(t *testing.T) {
	var gotTL string
	p, _ := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		gotTL = r.URL.Query().Get("tl")
		w.Write([]byte(`[[["Olá","Hello",null]]]`))
	})

	if _, err := p.Translate(context.Background(), TranslateRequest{
		Text: "Hello", SourceLang: "en", TargetLang: "pt_BR",
	}); err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if gotTL != "pt-BR" {
		t.Errorf("Expected hyphenated locale, got %q", gotTL)
	}
}

func TestGoogleProvider_RateLimited(t *testing.T) {
	p, _ := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := p.Translate(context.Background(), TranslateRequest{
		Text: "Hello", SourceLang: "en", TargetLang: "es",
	})
	if err == nil {
		t.Fatal("Expected error for 429")
	}

	var provErr *nbtai.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("Expected ProviderError, got %T", err)
	}
	if !provErr.Retryable {
		t.Error("429 must be retryable")
	}
}

func TestGoogleProvider_BadJSON(t *testing.T) {
	p, _ := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>blocked</html>"))
	})

	_, err := p.Translate(context.Background(), TranslateRequest{
		Text: "Hello", SourceLang: "en", TargetLang: "es",
	})
	if err == nil {
		t.Fatal("Expected error for malformed response")
	}

	var provErr *nbtai.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("Expected ProviderError, got %T", err)
	}
	if provErr.Retryable {
		t.Error("Decode failure must not be retryable")
	}
}
