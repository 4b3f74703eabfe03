package fetcher

import (
	"bytes"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// readabilityFallback runs a readability-style extractor over the full
// document. Use only when selector-based extraction yielded negligible
// content. Returns ok=false when readability fails or finds nothing.
func readabilityFallback(documentHTML []byte, pageURL *url.URL) (title, text string, ok bool) {
	if len(bytes.TrimSpace(documentHTML)) == 0 {
		return "", "", false
	}

	article, err := readability.FromReader(bytes.NewReader(documentHTML), pageURL)
	if err != nil {
		return "", "", false
	}

	text = normalizeWhitespace(article.TextContent)
	if text == "" {
		return "", "", false
	}
	return strings.TrimSpace(article.Title), text, true
}
