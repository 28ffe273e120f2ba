package cli

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/ZaguanLabs/deepltool"
	"github.com/ZaguanLabs/deepltool/cache"
	"github.com/ZaguanLabs/deepltool/internal/config"
	"github.com/ZaguanLabs/deepltool/internal/logging"
	"github.com/ZaguanLabs/deepltool/provider"
)

// app carries everything a command needs, built from the environment.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger

	cache      deepltool.TranslationCache
	cacheStats func() any
	closers    []func() error
}

func newApp(ctx context.Context, stderr io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewWithWriter(stderr, cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}
	if err := a.openCache(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *app) openCache(ctx context.Context) error {
	if !a.cfg.CacheEnabled {
		a.logger.Info().Msg("translation cache disabled")
		return nil
	}

	if a.cfg.CacheURL == "" {
		mem := cache.NewInMemoryCache(a.cfg.CacheTTLSeconds)
		a.cache = mem
		a.cacheStats = func() any { return mem.Stats() }
		a.logger.Debug().Int("ttl_seconds", a.cfg.CacheTTLSeconds).Msg("using in-memory translation cache")
		return nil
	}

	rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		URL: a.cfg.CacheURL,
		TTL: a.cfg.CacheTTLSeconds,
	})
	if err != nil {
		return err
	}
	a.cache = rc
	a.closers = append(a.closers, rc.Close)
	a.logger.Info().Int("ttl_seconds", a.cfg.CacheTTLSeconds).Msg("using redis translation cache")
	return nil
}

func (a *app) providerFactory() deepltool.ProviderFactory {
	return func(apiKey string) deepltool.Provider {
		return a.deepl(apiKey)
	}
}

func (a *app) deepl(apiKey string) *provider.DeepLProvider {
	return provider.NewDeepLProvider(provider.DeepLConfig{
		APIKey:  apiKey,
		BaseURL: a.cfg.DeepLBaseURL,
		Timeout: a.cfg.DeepLTimeout,
	})
}

func (a *app) translatorOptions() []deepltool.TranslatorOption {
	opts := []deepltool.TranslatorOption{
		deepltool.WithLogger(a.logger),
		deepltool.WithRetryPolicy(a.cfg.RetryConfig()),
	}
	if a.cache != nil {
		opts = append(opts, deepltool.WithCache(a.cache))
	}
	return opts
}

func (a *app) newTool() *deepltool.Tool {
	return deepltool.NewTool(a.providerFactory(), a.translatorOptions()...)
}

func (a *app) Close() error {
	var firstErr error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
