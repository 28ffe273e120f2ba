// Package cache provides translation caching implementations.
package cache

import "github.com/ZaguanLabs/deepltool"

// TranslationCache is the interface for translation caching.
type TranslationCache = deepltool.TranslationCache
