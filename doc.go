// Package deepltool exposes DeepL's translation API as a host-platform tool.
//
// A Translator validates a request, consults an optional cache and otherwise
// makes one call to a Provider. A Tool wraps it for the host: it parses the raw
// parameter bag, picks the provider for the caller's API key and flattens every
// failure into a text message.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/deepltool"
//	    "github.com/ZaguanLabs/deepltool/cache"
//	    "github.com/ZaguanLabs/deepltool/provider"
//	)
//
//	func main() {
//	    p := provider.NewDeepLProvider(provider.DeepLConfig{
//	        APIKey: os.Getenv("DEEPL_API_KEY"),
//	    })
//
//	    t := deepltool.NewTranslator(p,
//	        deepltool.WithCache(cache.NewInMemoryCache(0)),
//	    )
//
//	    result, err := t.Translate(context.Background(), deepltool.TranslateRequest{
//	        Text:       "Hello",
//	        TargetLang: "KO",
//	        UseCache:   true,
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(result.Text) // 안녕하세요
//	}
package deepltool
