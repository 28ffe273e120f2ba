package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ZaguanLabs/deepltool"
)

// newTestServer serves /v2/translate with the given status and body and
// records the last decoded request.
func newTestServer(t *testing.T, status int, body string, captured *translateBody) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/translate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "DeepL-Auth-Key test-key" {
			t.Errorf("unexpected Authorization header %q", got)
		}
		if captured != nil {
			if err := json.NewDecoder(r.Body).Decode(captured); err != nil {
				t.Errorf("decoding request body: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestDeepLProvider_Translate(t *testing.T) {
	var captured translateBody
	srv := newTestServer(t, http.StatusOK,
		`{"translations":[{"detected_source_language":"EN","text":"안녕하세요"}]}`, &captured)
	defer srv.Close()

	p := NewDeepLProvider(DeepLConfig{APIKey: "test-key", BaseURL: srv.URL})

	result, err := p.Translate(context.Background(), TranslateRequest{
		Text:       "Hello",
		TargetLang: "ko",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if result.Text != "안녕하세요" {
		t.Errorf("Expected 안녕하세요, got %q", result.Text)
	}
	if result.DetectedSourceLang != "EN" {
		t.Errorf("Expected detected source EN, got %q", result.DetectedSourceLang)
	}

	if len(captured.Text) != 1 || captured.Text[0] != "Hello" {
		t.Errorf("Unexpected text payload: %v", captured.Text)
	}
	if captured.TargetLang != "KO" {
		t.Errorf("Target language should be upper-cased, got %q", captured.TargetLang)
	}
	if captured.SourceLang != "" {
		t.Errorf("Source language should be omitted for auto-detect, got %q", captured.SourceLang)
	}
}

func TestDeepLProvider_TranslateWithSource(t *testing.T) {
	var captured translateBody
	srv := newTestServer(t, http.StatusOK,
		`{"translations":[{"detected_source_language":"DE","text":"Hello"}]}`, &captured)
	defer srv.Close()

	p := NewDeepLProvider(DeepLConfig{APIKey: "test-key", BaseURL: srv.URL})

	_, err := p.Translate(context.Background(), TranslateRequest{
		Text:       "Hallo",
		SourceLang: "de",
		TargetLang: "EN-US",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if captured.SourceLang != "DE" {
		t.Errorf("Expected source_lang DE, got %q", captured.SourceLang)
	}
}

func TestDeepLProvider_StatusMapping(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		kind      deepltool.ErrorKind
		retryable bool
	}{
		{"bad request", http.StatusBadRequest, `{"message":"Value for 'target_lang' not supported."}`, deepltool.KindInvalidRequest, false},
		{"forbidden", http.StatusForbidden, `{"message":"Wrong endpoint"}`, deepltool.KindAuthentication, false},
		{"quota", 456, `{"message":"Quota exceeded"}`, deepltool.KindQuota, false},
		{"too many requests", http.StatusTooManyRequests, `{"message":"Too many requests"}`, deepltool.KindRateLimited, true},
		{"server error", http.StatusServiceUnavailable, ``, deepltool.KindUnavailable, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.status, tt.body, nil)
			defer srv.Close()

			p := NewDeepLProvider(DeepLConfig{APIKey: "test-key", BaseURL: srv.URL})

			_, err := p.Translate(context.Background(), TranslateRequest{Text: "Hello", TargetLang: "KO"})
			if err == nil {
				t.Fatal("Expected error")
			}

			var providerErr *deepltool.ProviderError
			if !errors.As(err, &providerErr) {
				t.Fatalf("Expected ProviderError, got %T", err)
			}
			if providerErr.Kind != tt.kind {
				t.Errorf("Expected kind %s, got %s", tt.kind, providerErr.Kind)
			}
			if providerErr.Retryable != tt.retryable {
				t.Errorf("Expected retryable=%v, got %v", tt.retryable, providerErr.Retryable)
			}
			if providerErr.StatusCode != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, providerErr.StatusCode)
			}
		})
	}
}

func TestDeepLProvider_ErrorMessageFromBody(t *testing.T) {
	srv := newTestServer(t, http.StatusBadRequest, `{"message":"Value for 'target_lang' not supported."}`, nil)
	defer srv.Close()

	p := NewDeepLProvider(DeepLConfig{APIKey: "test-key", BaseURL: srv.URL})

	_, err := p.Translate(context.Background(), TranslateRequest{Text: "Hello", TargetLang: "XX"})
	if err == nil || !strings.Contains(err.Error(), "not supported") {
		t.Errorf("Expected DeepL message in error, got: %v", err)
	}
}

func TestDeepLProvider_EmptyTranslations(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"translations":[]}`, nil)
	defer srv.Close()

	p := NewDeepLProvider(DeepLConfig{APIKey: "test-key", BaseURL: srv.URL})

	_, err := p.Translate(context.Background(), TranslateRequest{Text: "Hello", TargetLang: "KO"})

	var providerErr *deepltool.ProviderError
	if !errors.As(err, &providerErr) || providerErr.Kind != deepltool.KindUnknown {
		t.Errorf("Expected unknown ProviderError, got %v", err)
	}
}

func TestDeepLProvider_ConnectionError(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{}`, nil)
	url := srv.URL
	srv.Close() // nothing listens any more

	p := NewDeepLProvider(DeepLConfig{APIKey: "test-key", BaseURL: url})

	_, err := p.Translate(context.Background(), TranslateRequest{Text: "Hello", TargetLang: "KO"})

	var providerErr *deepltool.ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("Expected ProviderError, got %T: %v", err, err)
	}
	if providerErr.Kind != deepltool.KindConnection || !providerErr.Retryable {
		t.Errorf("Expected retryable connection error, got %+v", providerErr)
	}
}

func TestDeepLProvider_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"translations":[{"text":"late"}]}`))
	}))
	defer srv.Close()

	p := NewDeepLProvider(DeepLConfig{APIKey: "test-key", BaseURL: srv.URL, Timeout: 20 * time.Millisecond})

	_, err := p.Translate(context.Background(), TranslateRequest{Text: "Hello", TargetLang: "KO"})

	var providerErr *deepltool.ProviderError
	if !errors.As(err, &providerErr) || providerErr.Kind != deepltool.KindTimeout {
		t.Errorf("Expected timeout ProviderError, got %v", err)
	}
}

func TestDeepLProvider_Usage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/usage" || r.Method != http.MethodGet {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"character_count":180118,"character_limit":1250000}`))
	}))
	defer srv.Close()

	p := NewDeepLProvider(DeepLConfig{APIKey: "test-key", BaseURL: srv.URL})

	usage, err := p.Usage(context.Background())
	if err != nil {
		t.Fatalf("Usage failed: %v", err)
	}
	if usage.CharacterCount != 180118 || usage.CharacterLimit != 1250000 {
		t.Errorf("Unexpected usage: %+v", usage)
	}
}

func TestBaseURLForKey(t *testing.T) {
	if got := BaseURLForKey("abc-123:fx"); got != FreeAPIURL {
		t.Errorf("Free key should use %s, got %s", FreeAPIURL, got)
	}
	if got := BaseURLForKey("abc-123"); got != ProAPIURL {
		t.Errorf("Pro key should use %s, got %s", ProAPIURL, got)
	}
}

func TestMockProvider(t *testing.T) {
	m := NewMockProvider()

	result, err := m.Translate(context.Background(), TranslateRequest{Text: "Hello", TargetLang: "KO"})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if result.Text != "안녕하세요" {
		t.Errorf("Expected 안녕하세요, got %q", result.Text)
	}

	result, _ = m.Translate(context.Background(), TranslateRequest{Text: "Unknown", TargetLang: "KO"})
	if result.Text != "[Unknown]" {
		t.Errorf("Expected bracketed fallback, got %q", result.Text)
	}

	if m.Calls() != 2 {
		t.Errorf("Expected 2 calls, got %d", m.Calls())
	}

	m.Reset()
	if m.Calls() != 0 || m.LastRequest != nil {
		t.Error("Reset should clear call state")
	}
}
