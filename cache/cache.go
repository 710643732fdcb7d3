// Package cache provides translation caching implementations.
//
// Keys are fragment-hash based (see nbtai.CacheKey); values are translated
// text. A warm cache makes retranslating a notebook after small edits
// nearly free, since unchanged fragments never reach the backend again.
package cache

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	// Get retrieves a cached translation. Returns empty string and false if
	// not found or expired.
	Get(key string) (string, bool)

	// Set stores a translation in the cache.
	Set(key string, value string) error
}
