package deepltool

// TranslateRequest contains the parameters for a single translation.
type TranslateRequest struct {
	Text       string // Text to translate, passed through untrimmed
	SourceLang string // Source language code; empty means auto-detect
	TargetLang string // Target language code (default: KO)
	UseCache   bool   // Consult and fill the translation cache; ignored by providers
}

// TranslateResult is the outcome of a translation.
type TranslateResult struct {
	Text               string // Translated text
	DetectedSourceLang string // Source language reported by the provider, if any
	TargetLang         string // Normalized target language
	Cached             bool   // Served from the cache without a provider call
}

// Credentials holds the secrets supplied by the host's credential store.
type Credentials struct {
	DeepLAPIKey string `json:"deepl_api_key"`
}

// ToolParameters are the parsed inputs of one tool invocation.
type ToolParameters struct {
	Query      string `json:"query"`
	TargetLang string `json:"target_lang"`
	SourceLang string `json:"source_lang,omitempty"`
	UseCache   bool   `json:"use_cache"`
}

func (p ToolParameters) request() TranslateRequest {
	return TranslateRequest{
		Text:       p.Query,
		SourceLang: p.SourceLang,
		TargetLang: p.TargetLang,
		UseCache:   p.UseCache,
	}
}

// MessageTypeText is the only message type this tool emits.
const MessageTypeText = "text"

// ToolInvokeMessage is one message returned to the host platform.
type ToolInvokeMessage struct {
	Type    string      `json:"type"`
	Message TextMessage `json:"message"`
}

// TextMessage is the payload of a text message.
type TextMessage struct {
	Text string `json:"text"`
}

// NewTextMessage wraps text in a tool message.
func NewTextMessage(text string) ToolInvokeMessage {
	return ToolInvokeMessage{
		Type:    MessageTypeText,
		Message: TextMessage{Text: text},
	}
}
