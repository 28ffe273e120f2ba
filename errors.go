package deepltool

import "fmt"

// ErrorKind classifies provider failures.
type ErrorKind string

const (
	KindConnection     ErrorKind = "connection"
	KindTimeout        ErrorKind = "timeout"
	KindAuthentication ErrorKind = "authentication"
	KindQuota          ErrorKind = "quota"
	KindInvalidRequest ErrorKind = "invalid_request"
	KindRateLimited    ErrorKind = "rate_limited"
	KindUnavailable    ErrorKind = "unavailable"
	KindUnknown        ErrorKind = "unknown"
)

// ValidationError reports a request rejected before reaching the provider.
// Message is phrased for the end user.
type ValidationError struct {
	Field   string // Tool parameter name ("query", "target_lang", ...)
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ProviderError indicates a translation provider failure (API error, quota, network, etc.).
type ProviderError struct {
	Kind       ErrorKind
	StatusCode int // HTTP status, 0 when no response was received
	Message    string
	Cause      error
	Retryable  bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error (%s): %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error (%s): %s", e.Kind, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a cache operation failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}
