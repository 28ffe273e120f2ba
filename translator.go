package deepltool

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Translator is the translation adapter: validation, cache lookup, one provider call.
type Translator struct {
	provider Provider
	cache    TranslationCache
	retry    RetryConfig
	logger   zerolog.Logger
}

// Provider is the interface for translation backends.
type Provider interface {
	Translate(ctx context.Context, req TranslateRequest) (*TranslateResult, error)
}

// TranslationCache is the interface for translation caching.
// A miss is ("", false, nil); backend failures are reported as *CacheError
// and read as misses by the Translator.
type TranslationCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithCache sets the translation cache. Share one cache between translators
// to make it process-wide.
func WithCache(cache TranslationCache) TranslatorOption {
	return func(t *Translator) {
		t.cache = cache
	}
}

// WithRetryPolicy retries retryable provider failures. The zero value disables retries.
func WithRetryPolicy(cfg RetryConfig) TranslatorOption {
	return func(t *Translator) {
		t.retry = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) TranslatorOption {
	return func(t *Translator) {
		t.logger = logger
	}
}

// NewTranslator creates a new Translator backed by the given provider.
func NewTranslator(provider Provider, opts ...TranslatorOption) *Translator {
	t := &Translator{
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(t)
	}

	t.provider = t.wrapProvider(provider)

	return t
}

// withProvider returns a copy of t that shares its cache and settings.
func (t *Translator) withProvider(provider Provider) *Translator {
	clone := *t
	clone.provider = t.wrapProvider(provider)
	return &clone
}

// withRetryHook returns a copy of t whose retries report through hook.
// The provider is rewrapped so the hook takes effect.
func (t *Translator) withRetryHook(provider Provider, hook func(retry int, delay time.Duration, err error)) *Translator {
	clone := *t
	clone.retry.OnRetry = hook
	clone.provider = clone.wrapProvider(provider)
	return &clone
}

func (t *Translator) wrapProvider(provider Provider) Provider {
	if provider == nil || t.retry.MaxRetries <= 0 {
		return provider
	}
	return NewRetryableProvider(provider, t.retry)
}

// Translate validates req, serves it from the cache when possible and otherwise
// calls the provider once.
func (t *Translator) Translate(ctx context.Context, req TranslateRequest) (*TranslateResult, error) {
	normalized, err := normalizeRequest(req)
	if err != nil {
		t.logger.Error().Err(err).Msg("rejected translation request")
		return nil, err
	}

	useCache := normalized.UseCache && t.cache != nil
	key := CacheKey(normalized.Text, normalized.SourceLang, normalized.TargetLang)

	if useCache {
		cached, ok, err := t.cache.Get(ctx, key)
		if err != nil {
			t.logger.Warn().Err(err).Msg("translation cache lookup failed")
		}
		if ok {
			t.logger.Debug().
				Str("text", preview(normalized.Text)).
				Str("target_lang", normalized.TargetLang).
				Msg("translation served from cache")
			return &TranslateResult{
				Text:       cached,
				TargetLang: normalized.TargetLang,
				Cached:     true,
			}, nil
		}
	}

	if t.provider == nil {
		return nil, &ProviderError{Kind: KindUnknown, Message: "no provider configured"}
	}

	result, err := t.provider.Translate(ctx, normalized)
	if err != nil {
		t.logger.Error().
			Err(err).
			Str("source_lang", sourceLabel(normalized.SourceLang)).
			Str("target_lang", normalized.TargetLang).
			Msg("DeepL translation failed")
		return nil, err
	}
	result.TargetLang = normalized.TargetLang

	if useCache {
		if err := t.cache.Set(ctx, key, result.Text); err != nil {
			t.logger.Warn().Err(err).Msg("failed to store translation in cache")
		}
	}

	return result, nil
}

// RetryPolicy returns the configured retry policy.
func (t *Translator) RetryPolicy() RetryConfig {
	return t.retry
}

// normalizeRequest upper-cases language codes, applies the default target and
// rejects requests that must not reach the provider.
func normalizeRequest(req TranslateRequest) (TranslateRequest, error) {
	if strings.TrimSpace(req.Text) == "" {
		return req, &ValidationError{Field: "query", Message: "Translation text is empty."}
	}
	rawSource, rawTarget := req.SourceLang, req.TargetLang

	req.SourceLang = NormalizeLanguageCode(req.SourceLang)
	req.TargetLang = NormalizeLanguageCode(req.TargetLang)
	if req.TargetLang == "" {
		req.TargetLang = DefaultTargetLang
	}

	if !IsValidSourceLanguage(req.SourceLang) {
		return req, &ValidationError{
			Field:   "source_lang",
			Message: "Unsupported source language code: " + rawSource,
		}
	}
	if !IsValidTargetLanguage(req.TargetLang) {
		return req, &ValidationError{
			Field:   "target_lang",
			Message: "Unsupported target language code: " + rawTarget,
		}
	}

	return req, nil
}

func sourceLabel(lang string) string {
	if lang == "" {
		return AutoDetect
	}
	return lang
}

// preview shortens text for log fields.
func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= 30 {
		return text
	}
	return string(runes[:30]) + "..."
}
