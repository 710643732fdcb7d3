package nbtai

import "testing"

func TestHashText_Deterministic(t *testing.T) {
	h1 := HashText("Hello World")
	h2 := HashText("Hello World")

	if h1 != h2 {
		t.Error("Same text must produce same hash")
	}
	if len(h1) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(h1))
	}
}

func TestHashText_Trimmed(t *testing.T) {
	if HashText("  Hello  ") != HashText("Hello") {
		t.Error("Surrounding whitespace must not affect the hash")
	}
	if HashText("Hello") == HashText("World") {
		t.Error("Different text must produce different hashes")
	}
}

func TestCacheKey(t *testing.T) {
	key := CacheKey("abc123", "en", "pt_BR")

	if key != "abc123:en:pt_BR" {
		t.Errorf("Unexpected cache key: %q", key)
	}

	// Both languages belong in the key; a different target must produce a
	// different key for the same text.
	if CacheKey("abc123", "en", "es") == CacheKey("abc123", "en", "ja") {
		t.Error("Keys must differ across target languages")
	}
	if CacheKey("abc123", "en", "es") == CacheKey("abc123", "pt", "es") {
		t.Error("Keys must differ across source languages")
	}
}
