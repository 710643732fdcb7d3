package nbtai

import (
	"sort"
	"strings"
)

// LanguageNames maps ISO 639-1 codes to human-readable names for AI prompts
// and diagnostics.
var LanguageNames = map[string]string{
	// Tier 1 (High Quality)
	"en": "English",
	"de": "German",
	"es": "Spanish",
	"fr": "French",
	"it": "Italian",
	"ja": "Japanese",
	"pt": "Portuguese",
	"zh": "Chinese",

	// Tier 2 (Good Quality)
	"ar": "Arabic",
	"bn": "Bengali",
	"cs": "Czech",
	"da": "Danish",
	"el": "Greek",
	"fi": "Finnish",
	"he": "Hebrew",
	"hi": "Hindi",
	"hu": "Hungarian",
	"id": "Indonesian",
	"ko": "Korean",
	"nl": "Dutch",
	"no": "Norwegian",
	"pl": "Polish",
	"ro": "Romanian",
	"ru": "Russian",
	"sv": "Swedish",
	"th": "Thai",
	"tr": "Turkish",
	"uk": "Ukrainian",
	"vi": "Vietnamese",

	// Tier 3 (Functional)
	"bg": "Bulgarian",
	"ca": "Catalan",
	"fa": "Persian",
	"hr": "Croatian",
	"lt": "Lithuanian",
	"lv": "Latvian",
	"ms": "Malay",
	"sk": "Slovak",
	"sl": "Slovenian",
	"sr": "Serbian",
	"sw": "Swahili",
	"tl": "Tagalog",
	"ur": "Urdu",
}

// LocaleVariants maps locale codes to the human-readable variant names used
// in prompts when a regional variant matters.
var LocaleVariants = map[string]string{
	"pt_BR": "Portuguese (Brazil)",
	"pt_PT": "Portuguese (Portugal)",
	"zh_CN": "Chinese (Simplified)",
	"zh_TW": "Chinese (Traditional)",
	"es_MX": "Spanish (Mexico)",
	"es_ES": "Spanish (Spain)",
	"en_GB": "English (United Kingdom)",
	"en_US": "English (United States)",
}

// GetLanguageName returns the human-readable name for a language code.
// Locale codes resolve to their variant name when known, otherwise to the
// base language. Falls back to the code itself if not found.
func GetLanguageName(langCode string) string {
	code := NormalizeLocale(langCode)
	if name, ok := LocaleVariants[code]; ok {
		return name
	}
	if name, ok := LanguageNames[BaseLang(code)]; ok {
		return name
	}
	return langCode
}

// BaseLang extracts the base language code (e.g., "pt" from "pt_BR").
func BaseLang(langCode string) string {
	parts := strings.Split(NormalizeLocale(langCode), "_")
	return strings.ToLower(parts[0])
}

// NormalizeLocale converts a language code to the standard format
// (e.g., "pt-BR" → "pt_BR").
func NormalizeLocale(langCode string) string {
	return strings.ReplaceAll(langCode, "-", "_")
}

// IsKnownLanguage reports whether the base language of a code appears in
// the language tables.
func IsKnownLanguage(langCode string) bool {
	_, ok := LanguageNames[BaseLang(langCode)]
	return ok
}

// SupportedCodes returns the sorted list of base language codes from the
// language tables. Backends that cannot enumerate their own supported set
// report this one in UnsupportedLanguageError.
func SupportedCodes() []string {
	codes := make([]string, 0, len(LanguageNames))
	for code := range LanguageNames {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
