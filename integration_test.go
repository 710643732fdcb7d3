package nbtai

import (
	"context"
	"strings"
	"testing"

	"github.com/ZaguanLabs/nbtai/notebook"
)

// TestIntegration_FullNotebook runs the whole pipeline over a realistic
// notebook: markdown with headers, protected spans and fenced code, plus a
// code cell with comments and a formatted print.
func TestIntegration_FullNotebook(t *testing.T) {
	provider := newMockProvider()
	provider.translations["Linear Regression"] = "Regresión Lineal"
	provider.translations["The model is xx_inline_math_xx with weights xx_inline_math_xx."] =
		"El modelo es xx_inline_math_xx con pesos xx_inline_math_xx."
	provider.translations["fit the model"] = "ajusta el modelo"
	provider.translations["Score: xx_print_var_xx"] = "Puntuación: xx_print_var_xx"

	cache := newMockCache()
	translator := NewTranslator("es", provider, WithCache(cache))

	nb := &notebook.Notebook{Cells: []notebook.Cell{
		{
			CellType: notebook.CellMarkdown,
			Source: []string{
				"# Linear Regression\n",
				"The model is $y = Xw$ with weights $w$.\n",
				"```python\n",
				"model.fit(X, y)\n",
				"```\n",
			},
		},
		{
			CellType: notebook.CellCode,
			Source: []string{
				"model = LinearRegression()  # fit the model\n",
				"print(f\"Score: {score}\")\n",
			},
		},
	}}

	stats, err := translator.TranslateNotebook(context.Background(), nb)
	if err != nil {
		t.Fatalf("TranslateNotebook failed: %v", err)
	}

	md := nb.Cells[0].Source
	if md[0] != "# Regresión Lineal\n" {
		t.Errorf("Header: %q", md[0])
	}
	if md[1] != "El modelo es $y = Xw$ con pesos $w$.\n" {
		t.Errorf("Math spans not restored positionally: %q", md[1])
	}
	if md[3] != "model.fit(X, y)\n" {
		t.Errorf("Fenced code must pass through: %q", md[3])
	}

	code := nb.Cells[1].Source
	if code[0] != "model = LinearRegression()  # ajusta el modelo\n" {
		t.Errorf("Code comment: %q", code[0])
	}
	if code[1] != "print(f\"Puntuación: {score}\")\n" {
		t.Errorf("Print literal: %q", code[1])
	}

	if stats.TotalCells != 2 || stats.CodeCells != 1 || stats.MarkdownCells != 1 {
		t.Errorf("Wrong cell counts: %+v", stats)
	}
	if stats.TranslatedCount != 4 {
		t.Errorf("Expected 4 translated fragments, got %d", stats.TranslatedCount)
	}

	// The translated notebook still serializes as valid nbformat JSON.
	data, err := notebook.Write(nb)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.Contains(string(data), "Regresión Lineal") {
		t.Error("Serialized notebook missing translated content")
	}

	// A second run over the original content is served from cache.
	nb2 := &notebook.Notebook{Cells: []notebook.Cell{
		{CellType: notebook.CellMarkdown, Source: []string{"# Linear Regression\n"}},
	}}
	provider.callCount = 0
	stats2, err := translator.TranslateNotebook(context.Background(), nb2)
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	if provider.callCount != 0 || stats2.CachedCount != 1 {
		t.Errorf("Expected full cache hit, got %d calls, %+v", provider.callCount, stats2)
	}
}
