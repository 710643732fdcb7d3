package nbtai

import (
	"sort"
	"testing"
)

func TestGetLanguageName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"es", "Spanish"},
		{"pt", "Portuguese"},
		{"pt_BR", "Portuguese (Brazil)"},
		{"pt-BR", "Portuguese (Brazil)"},
		{"zh_CN", "Chinese (Simplified)"},
		{"fr_CA", "French"}, // unknown variant falls back to base language
		{"xx", "xx"},        // unknown code falls back to itself
	}

	for _, tt := range tests {
		if got := GetLanguageName(tt.code); got != tt.want {
			t.Errorf("GetLanguageName(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestBaseLang(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"pt_BR", "pt"},
		{"pt-BR", "pt"},
		{"en", "en"},
		{"ZH_TW", "zh"},
	}

	for _, tt := range tests {
		if got := BaseLang(tt.code); got != tt.want {
			t.Errorf("BaseLang(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestNormalizeLocale(t *testing.T) {
	if got := NormalizeLocale("pt-BR"); got != "pt_BR" {
		t.Errorf("Expected pt_BR, got %q", got)
	}
	if got := NormalizeLocale("es"); got != "es" {
		t.Errorf("Expected es, got %q", got)
	}
}

func TestIsKnownLanguage(t *testing.T) {
	for _, code := range []string{"en", "es", "pt_BR", "ja", "zh-TW"} {
		if !IsKnownLanguage(code) {
			t.Errorf("Expected %q to be known", code)
		}
	}
	for _, code := range []string{"xx", "", "klingon"} {
		if IsKnownLanguage(code) {
			t.Errorf("Expected %q to be unknown", code)
		}
	}
}

func TestSupportedCodes(t *testing.T) {
	codes := SupportedCodes()

	if len(codes) != len(LanguageNames) {
		t.Errorf("Expected %d codes, got %d", len(LanguageNames), len(codes))
	}
	if !sort.StringsAreSorted(codes) {
		t.Error("Codes must be sorted")
	}
}

func TestGetStyleDescription(t *testing.T) {
	if GetStyleDescription(StyleFormal) == "" {
		t.Error("Expected a description for the formal style")
	}
	// Unknown styles fall back to the neutral description.
	if GetStyleDescription(TranslationStyle("nonsense")) != GetStyleDescription(StyleNeutral) {
		t.Error("Unknown style must fall back to neutral")
	}
}
