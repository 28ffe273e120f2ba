package provider

import (
	"context"
	"fmt"
	"sync"
)

// MockProvider is a mock translation provider for testing.
type MockProvider struct {
	Translations map[string]string // Map of source text to translation
	CallCount    int               // Number of times Translate was called
	LastRequest  *TranslateRequest // Last request received
	Err          error             // Returned from every call when set

	mu sync.Mutex
}

// NewMockProvider creates a new mock provider with default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"Hello":         "안녕하세요",
			"Good morning":  "좋은 아침입니다",
			"Hello, world!": "Bonjour, le monde !",
			"Thank you":     "감사합니다",
		},
	}
}

// Translate returns mock translations.
func (m *MockProvider) Translate(ctx context.Context, req TranslateRequest) (*TranslateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount++
	m.LastRequest = &req

	if m.Err != nil {
		return nil, m.Err
	}

	result := &TranslateResult{DetectedSourceLang: req.SourceLang}
	if result.DetectedSourceLang == "" {
		result.DetectedSourceLang = "EN"
	}
	if translation, ok := m.Translations[req.Text]; ok {
		result.Text = translation
	} else {
		// Return bracketed text for unknown translations
		result.Text = fmt.Sprintf("[%s]", req.Text)
	}

	return result, nil
}

// Calls returns the number of Translate calls so far.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}

// Reset resets the call count and last request.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount = 0
	m.LastRequest = nil
}

// Verify MockProvider implements Provider
var _ Provider = (*MockProvider)(nil)
