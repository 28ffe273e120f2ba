package deepltool

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DefaultTargetLang is used when a request names no target language.
const DefaultTargetLang = "KO"

// AutoDetect stands in for an empty source language in cache keys and messages.
const AutoDetect = "auto"

// SourceLanguages contains the codes DeepL accepts as source_lang.
var SourceLanguages = map[string]bool{
	"AR": true, "BG": true, "CS": true, "DA": true, "DE": true,
	"EL": true, "EN": true, "ES": true, "ET": true, "FI": true,
	"FR": true, "HU": true, "ID": true, "IT": true, "JA": true,
	"KO": true, "LT": true, "LV": true, "NB": true, "NL": true,
	"PL": true, "PT": true, "RO": true, "RU": true, "SK": true,
	"SL": true, "SV": true, "TR": true, "UK": true, "ZH": true,
}

// TargetLanguages contains the codes DeepL accepts as target_lang.
// English, Portuguese and Chinese must name a variant.
var TargetLanguages = map[string]bool{
	"AR": true, "BG": true, "CS": true, "DA": true, "DE": true,
	"EL": true, "EN-GB": true, "EN-US": true, "ES": true, "ET": true,
	"FI": true, "FR": true, "HU": true, "ID": true, "IT": true,
	"JA": true, "KO": true, "LT": true, "LV": true, "NB": true,
	"NL": true, "PL": true, "PT-BR": true, "PT-PT": true, "RO": true,
	"RU": true, "SK": true, "SL": true, "SV": true, "TR": true,
	"UK": true, "ZH-HANS": true, "ZH-HANT": true,
}

// NormalizeLanguageCode trims and upper-cases a code ("en-us" → "EN-US").
func NormalizeLanguageCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidSourceLanguage reports whether code is an accepted source language.
// An empty code means auto-detection and is always valid.
func IsValidSourceLanguage(code string) bool {
	normalized := NormalizeLanguageCode(code)
	if normalized == "" {
		return true
	}
	return SourceLanguages[normalized]
}

// IsValidTargetLanguage reports whether code is an accepted target language.
func IsValidTargetLanguage(code string) bool {
	normalized := NormalizeLanguageCode(code)
	if normalized == "" {
		return false
	}
	return TargetLanguages[normalized]
}

// LanguageName returns the English display name for a DeepL code.
// Falls back to the code itself if it cannot be parsed.
func LanguageName(code string) string {
	normalized := NormalizeLanguageCode(code)
	tag, err := language.Parse(normalized)
	if err != nil {
		return normalized
	}
	name := display.English.Languages().Name(tag)
	if name == "" {
		return normalized
	}
	return name
}

// SortedCodes returns the keys of a code set in lexical order.
func SortedCodes(set map[string]bool) []string {
	codes := make([]string, 0, len(set))
	for code := range set {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
