package nbtai

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// CacheKey generates a cache key from a text hash and the source/target
// language pair. One notebook run fixes both languages, so both belong in
// the key: the same English fragment translated to "pt" and to "ja" must
// not collide.
func CacheKey(hash, sourceLang, targetLang string) string {
	return hash + ":" + sourceLang + ":" + targetLang
}
