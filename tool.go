package deepltool

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ProviderFactory builds a provider for one API key.
type ProviderFactory func(apiKey string) Provider

// CredentialCheckText is translated to CredentialCheckTarget to verify an API key.
const (
	CredentialCheckText   = "Hello, world!"
	CredentialCheckTarget = "FR"
)

// Tool is the host-facing DeepL translator tool. It never reports failures
// as errors from Invoke: every outcome is a text message.
type Tool struct {
	factory ProviderFactory
	base    *Translator
}

// NewTool creates a tool; factory must not be nil. The options apply to every
// per-invocation Translator, so a cache passed with WithCache is shared by all
// invocations.
func NewTool(factory ProviderFactory, opts ...TranslatorOption) *Tool {
	return &Tool{
		factory: factory,
		base:    NewTranslator(nil, opts...),
	}
}

// Invoke runs one tool invocation with the host's raw parameter bag. With
// retries enabled, each connection retry adds a progress message before the
// final one.
func (t *Tool) Invoke(ctx context.Context, creds Credentials, rawParams map[string]any) []ToolInvokeMessage {
	params, err := ParseToolParameters(rawParams)
	if err != nil {
		msg := fmt.Sprintf("Error during parameter parsing: %v", err)
		t.base.logger.Error().Err(err).Msg("invalid tool parameters")
		return []ToolInvokeMessage{NewTextMessage(msg)}
	}

	var messages []ToolInvokeMessage
	notify := func(text string) {
		messages = append(messages, NewTextMessage(text))
	}

	result, err := t.translate(ctx, creds, params.request(), notify)
	if err != nil {
		return append(messages, NewTextMessage(t.FailureMessage(err)))
	}
	return append(messages, NewTextMessage(result.Text))
}

// Run translates params and returns either the translation or a failure message.
func (t *Tool) Run(ctx context.Context, creds Credentials, params ToolParameters) string {
	result, err := t.Translate(ctx, creds, params.request())
	if err != nil {
		return t.FailureMessage(err)
	}
	return result.Text
}

// Translate is the structured form of Run: input is validated before the
// credential is looked at, so bad input never needs a key or an API call.
func (t *Tool) Translate(ctx context.Context, creds Credentials, req TranslateRequest) (*TranslateResult, error) {
	return t.translate(ctx, creds, req, nil)
}

func (t *Tool) translate(ctx context.Context, creds Credentials, req TranslateRequest, notify func(string)) (*TranslateResult, error) {
	if _, err := normalizeRequest(req); err != nil {
		t.base.logger.Error().Err(err).Msg("rejected translation request")
		return nil, err
	}

	apiKey := strings.TrimSpace(creds.DeepLAPIKey)
	if apiKey == "" {
		t.base.logger.Error().Msg("DeepL API key is not configured")
		return nil, &ValidationError{Field: "deepl_api_key", Message: "DeepL API key is not configured."}
	}

	provider := t.factory(apiKey)
	translator := t.base.withProvider(provider)
	if notify != nil && t.base.retry.MaxRetries > 0 {
		maxRetries := t.base.retry.MaxRetries
		translator = t.base.withRetryHook(provider, func(retry int, delay time.Duration, err error) {
			if isConnectionError(err) {
				notify(retryNotice(retry, maxRetries, delay))
			}
		})
	}
	return translator.Translate(ctx, req)
}

// retryNotice is the progress message emitted before a connection retry.
func retryNotice(retry, maxRetries int, delay time.Duration) string {
	return fmt.Sprintf("Connection error, retrying in %g seconds... (%d/%d)", delay.Seconds(), retry, maxRetries)
}

func isConnectionError(err error) bool {
	var providerErr *ProviderError
	return errors.As(err, &providerErr) && providerErr.Kind == KindConnection
}

// ValidateCredentials checks that an API key is present and accepted by DeepL.
func (t *Tool) ValidateCredentials(ctx context.Context, creds Credentials) error {
	apiKey := strings.TrimSpace(creds.DeepLAPIKey)
	if apiKey == "" {
		return &ValidationError{Field: "deepl_api_key", Message: "DeepL API key is not found"}
	}

	_, err := t.factory(apiKey).Translate(ctx, TranslateRequest{
		Text:       CredentialCheckText,
		TargetLang: CredentialCheckTarget,
	})
	if err != nil {
		t.base.logger.Warn().Err(err).Msg("credential validation failed")
		return fmt.Errorf("validating DeepL API key: %w", err)
	}
	return nil
}

// FailureMessage flattens err into the text returned to the host.
func (t *Tool) FailureMessage(err error) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}

	if isConnectionError(err) {
		if t.base.retry.MaxRetries > 0 {
			return fmt.Sprintf("Connection error (maximum retries exceeded): %v", err)
		}
		return fmt.Sprintf("Connection error: %v", err)
	}

	return fmt.Sprintf("Error occurred during translation: %v", err)
}

// ParseToolParameters reads the host's parameter bag, applying defaults:
// target_lang "KO", use_cache true.
func ParseToolParameters(raw map[string]any) (ToolParameters, error) {
	params := ToolParameters{
		TargetLang: DefaultTargetLang,
		UseCache:   true,
	}

	query, err := stringParam(raw, "query")
	if err != nil {
		return params, err
	}
	params.Query = query

	target, err := stringParam(raw, "target_lang")
	if err != nil {
		return params, err
	}
	if strings.TrimSpace(target) != "" {
		params.TargetLang = target
	}

	source, err := stringParam(raw, "source_lang")
	if err != nil {
		return params, err
	}
	params.SourceLang = source

	if v, ok := raw["use_cache"]; ok && v != nil {
		switch b := v.(type) {
		case bool:
			params.UseCache = b
		case string:
			parsed, err := strconv.ParseBool(b)
			if err != nil {
				return params, fmt.Errorf("use_cache: %w", err)
			}
			params.UseCache = parsed
		default:
			return params, fmt.Errorf("use_cache: expected boolean, got %T", v)
		}
	}

	return params, nil
}

// stringParam returns "" for absent or null parameters.
func stringParam(raw map[string]any, name string) (string, error) {
	v, ok := raw[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s: expected string, got %T", name, v)
	}
	return s, nil
}
