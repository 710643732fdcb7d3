package nbtai

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func testTranslator(provider AIProvider, opts ...TranslatorOption) *Translator {
	return NewTranslator("es", provider, opts...)
}

func TestTranslateMarkdown_Header(t *testing.T) {
	translator := testTranslator(newMockProvider())

	got, err := translator.translateMarkdown(context.Background(), "## Hello World\n")
	if err != nil {
		t.Fatalf("translateMarkdown failed: %v", err)
	}
	if got != "## Hola Mundo\n" {
		t.Errorf("Expected header marker preserved, got %q", got)
	}
}

func TestTranslateMarkdown_HeaderWithoutSpace(t *testing.T) {
	translator := testTranslator(newMockProvider())

	got, err := translator.translateMarkdown(context.Background(), "#Hello")
	if err != nil {
		t.Fatalf("translateMarkdown failed: %v", err)
	}
	if got != "#Hola" {
		t.Errorf("Expected bare marker preserved, got %q", got)
	}
}

func TestTranslateMarkdown_LongestHeaderWins(t *testing.T) {
	translator := testTranslator(newMockProvider())

	got, err := translator.translateMarkdown(context.Background(), "### Hello")
	if err != nil {
		t.Fatalf("translateMarkdown failed: %v", err)
	}
	if got != "### Hola" {
		t.Errorf("A '###' prefix must not be split as '#', got %q", got)
	}
}

func TestTranslateMarkdown_EmptyPassThrough(t *testing.T) {
	translator := testTranslator(newMockProvider())

	got, err := translator.translateMarkdown(context.Background(), "")
	if err != nil {
		t.Fatalf("translateMarkdown failed: %v", err)
	}
	if got != "" {
		t.Errorf("Empty fragment must pass through, got %q", got)
	}
}

func TestTranslateMarkdown_HorizontalRule(t *testing.T) {
	translator := testTranslator(newMockProvider())

	for _, fragment := range []string{"---", "---\n", "  ---  "} {
		got, err := translator.translateMarkdown(context.Background(), fragment)
		if err != nil {
			t.Fatalf("translateMarkdown failed: %v", err)
		}
		if got != fragment {
			t.Errorf("Horizontal rule must pass through: %q -> %q", fragment, got)
		}
	}
}

func TestTranslateMarkdown_ImageEmbed(t *testing.T) {
	provider := newMockProvider()
	translator := testTranslator(provider)

	fragment := "![caption](images/plot.png)\n"
	got, err := translator.translateMarkdown(context.Background(), fragment)
	if err != nil {
		t.Fatalf("translateMarkdown failed: %v", err)
	}
	if got != fragment {
		t.Errorf("Image embed must pass through, got %q", got)
	}
	if provider.callCount != 0 {
		t.Errorf("Expected no backend calls, got %d", provider.callCount)
	}
}

func TestTranslateMarkdown_TrailingNewlineReattached(t *testing.T) {
	translator := testTranslator(newMockProvider())

	got, err := translator.translateMarkdown(context.Background(), "Hello\n")
	if err != nil {
		t.Fatalf("translateMarkdown failed: %v", err)
	}
	if got != "Hola\n" {
		t.Errorf("Trailing newline must be reattached, got %q", got)
	}
}

func TestTranslateMarkdown_ProtectedSpansRestored(t *testing.T) {
	provider := newMockProvider()
	translator := testTranslator(provider)

	fragment := "See [the docs](https://example.com) for $x^2$"
	got, err := translator.translateMarkdown(context.Background(), fragment)
	if err != nil {
		t.Fatalf("translateMarkdown failed: %v", err)
	}

	if !strings.Contains(got, "[the docs](https://example.com)") {
		t.Errorf("Link must survive translation untouched: %q", got)
	}
	if !strings.Contains(got, "$x^2$") {
		t.Errorf("Math must survive translation untouched: %q", got)
	}
	if strings.Contains(provider.lastText, "example.com") {
		t.Errorf("URL leaked to the backend: %q", provider.lastText)
	}
}

func TestTranslateMarkdown_IndentedCodeWarning(t *testing.T) {
	var progress bytes.Buffer
	translator := testTranslator(newMockProvider(), WithProgress(&progress))

	_, err := translator.translateMarkdown(context.Background(), "Example:\n    x = compute()")
	if err != nil {
		t.Fatalf("translateMarkdown failed: %v", err)
	}

	if !strings.Contains(progress.String(), "indented code block detected") {
		t.Errorf("Expected indentation warning, got %q", progress.String())
	}
}

func TestTranslateMarkdown_URLReport(t *testing.T) {
	var progress bytes.Buffer
	translator := testTranslator(newMockProvider(), WithProgress(&progress))

	_, err := translator.translateMarkdown(context.Background(),
		"See [docs](https://example.com/docs) and <https://example.org>")
	if err != nil {
		t.Fatalf("translateMarkdown failed: %v", err)
	}

	out := progress.String()
	if !strings.Contains(out, "https://example.com/docs") || !strings.Contains(out, "https://example.org") {
		t.Errorf("Expected protected URL report, got %q", out)
	}
}
