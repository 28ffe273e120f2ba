package deepltool

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashText computes the SHA-256 hash of the text exactly as given.
func HashText(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:])
}

// CacheKey generates a cache key for a (text, source, target) triple.
// Codes are normalized; an empty source language is recorded as "auto".
func CacheKey(text, sourceLang, targetLang string) string {
	source := NormalizeLanguageCode(sourceLang)
	if source == "" {
		source = AutoDetect
	}
	return HashText(text) + ":" + source + ":" + NormalizeLanguageCode(targetLang)
}
