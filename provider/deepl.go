package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/ZaguanLabs/deepltool"
	"github.com/go-resty/resty/v2"
)

const (
	// FreeAPIURL serves keys ending in ":fx".
	FreeAPIURL = "https://api-free.deepl.com"
	// ProAPIURL serves all other keys.
	ProAPIURL = "https://api.deepl.com"

	// statusQuotaExceeded is DeepL's non-standard "quota exceeded" status.
	statusQuotaExceeded = 456
)

// DeepLProvider implements Provider using DeepL's REST API.
type DeepLProvider struct {
	client *resty.Client
}

// DeepLConfig holds configuration for the DeepL provider.
type DeepLConfig struct {
	APIKey  string        // DeepL authentication key
	BaseURL string        // Custom base URL (default: chosen from the key type)
	Timeout time.Duration // Request timeout (0 = HTTP client default)
}

// NewDeepLProvider creates a new DeepL provider.
func NewDeepLProvider(cfg DeepLConfig) *DeepLProvider {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = BaseURLForKey(cfg.APIKey)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Authorization", "DeepL-Auth-Key "+cfg.APIKey).
		SetHeader("User-Agent", deepltool.UserAgent())
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &DeepLProvider{client: client}
}

// BaseURLForKey picks the free or pro endpoint from the key suffix.
func BaseURLForKey(apiKey string) string {
	if strings.HasSuffix(strings.TrimSpace(apiKey), ":fx") {
		return FreeAPIURL
	}
	return ProAPIURL
}

type translateBody struct {
	Text       []string `json:"text"`
	TargetLang string   `json:"target_lang"`
	SourceLang string   `json:"source_lang,omitempty"`
}

type translateResponse struct {
	Translations []struct {
		DetectedSourceLanguage string `json:"detected_source_language"`
		Text                   string `json:"text"`
	} `json:"translations"`
}

type errorResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// Usage is the character usage of the current billing period.
type Usage struct {
	CharacterCount int64 `json:"character_count"`
	CharacterLimit int64 `json:"character_limit"`
}

// Translate translates one text with DeepL.
func (p *DeepLProvider) Translate(ctx context.Context, req TranslateRequest) (*TranslateResult, error) {
	body := translateBody{
		Text:       []string{req.Text},
		TargetLang: strings.ToUpper(req.TargetLang),
		SourceLang: strings.ToUpper(req.SourceLang),
	}

	var out translateResponse
	var apiErr errorResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		SetError(&apiErr).
		Post("/v2/translate")
	if err != nil {
		return nil, transportError(err)
	}
	if resp.IsError() {
		return nil, statusError(resp.StatusCode(), apiErr, resp.String())
	}

	if len(out.Translations) == 0 {
		return nil, &deepltool.ProviderError{
			Kind:       deepltool.KindUnknown,
			StatusCode: resp.StatusCode(),
			Message:    "no translations in DeepL response",
		}
	}

	return &TranslateResult{
		Text:               out.Translations[0].Text,
		DetectedSourceLang: out.Translations[0].DetectedSourceLanguage,
		TargetLang:         body.TargetLang,
	}, nil
}

// Usage returns the character usage for the configured key.
func (p *DeepLProvider) Usage(ctx context.Context) (*Usage, error) {
	var out Usage
	var apiErr errorResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&apiErr).
		Get("/v2/usage")
	if err != nil {
		return nil, transportError(err)
	}
	if resp.IsError() {
		return nil, statusError(resp.StatusCode(), apiErr, resp.String())
	}
	return &out, nil
}

func transportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &deepltool.ProviderError{
			Kind:    deepltool.KindTimeout,
			Message: "DeepL API request timeout",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &deepltool.ProviderError{
			Kind:    deepltool.KindUnknown,
			Message: "DeepL API request cancelled",
			Cause:   err,
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &deepltool.ProviderError{
			Kind:    deepltool.KindTimeout,
			Message: "DeepL API request timeout",
			Cause:   err,
		}
	}

	return &deepltool.ProviderError{
		Kind:      deepltool.KindConnection,
		Message:   "DeepL API connection error",
		Cause:     err,
		Retryable: true,
	}
}

func statusError(status int, apiErr errorResponse, raw string) error {
	kind, retryable := classifyStatus(status)

	msg := strings.TrimSpace(apiErr.Message)
	if detail := strings.TrimSpace(apiErr.Detail); detail != "" {
		msg = strings.TrimSpace(msg + ", " + detail)
	}
	if msg == "" {
		msg = strings.TrimSpace(raw)
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	return &deepltool.ProviderError{
		Kind:       kind,
		StatusCode: status,
		Message:    fmt.Sprintf("DeepL API status %d: %s", status, msg),
		Retryable:  retryable,
	}
}

func classifyStatus(status int) (deepltool.ErrorKind, bool) {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return deepltool.KindAuthentication, false
	case status == statusQuotaExceeded:
		return deepltool.KindQuota, false
	case status == http.StatusTooManyRequests:
		return deepltool.KindRateLimited, true
	case status >= 500:
		return deepltool.KindUnavailable, true
	case status >= 400:
		return deepltool.KindInvalidRequest, false
	default:
		return deepltool.KindUnknown, false
	}
}

// Verify DeepLProvider implements Provider
var _ Provider = (*DeepLProvider)(nil)
