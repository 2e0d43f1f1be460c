// Package normalize converts raw fetched content into canonical text for
// extraction. The Normalizer is an opaque capability to its callers; the
// default implementation extracts the main textual content of HTML pages.
package normalize

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Normalizer converts raw content from a source URL into canonical text.
type Normalizer interface {
	Normalize(ctx context.Context, raw []byte, sourceURL string) (string, error)
}

// HTMLText extracts readable text from HTML documents. Script and style
// subtrees are dropped; the main content region is preferred over the full
// body when one can be identified.
type HTMLText struct{}

// NewHTMLText returns the goquery-backed normalizer.
func NewHTMLText() *HTMLText {
	return &HTMLText{}
}

// mainContentSelectors are tried in order before falling back to <body>.
var mainContentSelectors = []string{
	"main",
	"article",
	".content",
	"#content",
}

// Normalize parses the HTML and returns collapsed plain text. An empty
// document or unparseable input is a normalization failure.
func (n *HTMLText) Normalize(_ context.Context, raw []byte, sourceURL string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("normalize %s: %w", sourceURL, err)
	}

	doc.Find("script, style, noscript").Remove()

	var content string
	for _, selector := range mainContentSelectors {
		if selected := doc.Find(selector); selected.Length() > 0 {
			content = selected.Text()
			break
		}
	}
	if content == "" {
		content = doc.Find("body").Text()
	}

	content = collapseWhitespace(content)
	if content == "" {
		return "", fmt.Errorf("normalize %s: no textual content", sourceURL)
	}
	return content, nil
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(strings.Join(strings.Fields(s), " "))
}

var _ Normalizer = (*HTMLText)(nil)
