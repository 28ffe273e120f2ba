package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/ZaguanLabs/deepltool"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	DeepLAPIKey     string        `envconfig:"DEEPL_API_KEY" default:""`
	DeepLBaseURL    string        `envconfig:"DEEPL_BASE_URL" default:""`
	DeepLTimeout    time.Duration `envconfig:"DEEPL_TIMEOUT" default:"30s"`
	DeepLMaxRetries int           `envconfig:"DEEPL_MAX_RETRIES" default:"0"`

	CacheEnabled    bool   `envconfig:"CACHE_ENABLED" default:"true"`
	CacheURL        string `envconfig:"CACHE_URL" default:""`
	CacheTTLSeconds int    `envconfig:"CACHE_TTL" default:"0"`

	HTTPHost            string        `envconfig:"HTTP_HOST" default:"0.0.0.0"`
	HTTPPort            int           `envconfig:"HTTP_PORT" default:"5003"`
	HTTPShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DeepLTimeout < 0 {
		return fmt.Errorf("DEEPL_TIMEOUT must be >= 0")
	}
	if c.DeepLMaxRetries < 0 || c.DeepLMaxRetries > 10 {
		return fmt.Errorf("DEEPL_MAX_RETRIES must be between 0 and 10")
	}
	if base := strings.TrimSpace(c.DeepLBaseURL); base != "" {
		if _, err := url.ParseRequestURI(base); err != nil {
			return fmt.Errorf("DEEPL_BASE_URL is not a valid URL: %w", err)
		}
	}
	if c.CacheTTLSeconds < 0 {
		return fmt.Errorf("CACHE_TTL must be >= 0")
	}
	if cacheURL := strings.TrimSpace(c.CacheURL); cacheURL != "" &&
		!strings.HasPrefix(cacheURL, "redis://") && !strings.HasPrefix(cacheURL, "rediss://") {
		return fmt.Errorf("CACHE_URL must be a redis:// or rediss:// URL")
	}
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.HTTPShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be > 0")
	}
	return nil
}

// RetryConfig maps DEEPL_MAX_RETRIES onto the default backoff.
// Zero retries yields the zero config: a single attempt.
func (c *Config) RetryConfig() deepltool.RetryConfig {
	if c == nil || c.DeepLMaxRetries <= 0 {
		return deepltool.RetryConfig{}
	}
	cfg := deepltool.DefaultRetryConfig()
	cfg.MaxRetries = c.DeepLMaxRetries
	return cfg
}
