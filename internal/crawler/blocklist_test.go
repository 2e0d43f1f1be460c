package crawler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtensionBlocklist(t *testing.T) {
	t.Parallel()

	b := newExtensionBlocklist(defaultBlockedExtensions)

	blocked := []string{
		"https://example.com/report.pdf",
		"https://example.com/deck.PPTX",
		"https://example.com/archive.tar",
		"https://example.com/hero.jpg",
		"https://example.com/site.css",
		"https://example.com/app.js",
		"https://example.com/dir/file.zip?download=1",
	}
	for _, u := range blocked {
		require.True(t, b.IsBlocked(u), "expected %s to be blocked", u)
	}

	allowed := []string{
		"https://example.com/",
		"https://example.com/about",
		"https://example.com/about.html",
		"https://example.com/products/index.php",
		"https://example.com/pdf-guides", // extension check, not substring
	}
	for _, u := range allowed {
		require.False(t, b.IsBlocked(u), "expected %s to be allowed", u)
	}
}

func TestExtensionBlocklistNormalizesPatterns(t *testing.T) {
	t.Parallel()

	b := newExtensionBlocklist([]string{"PDF", " .zip ", ""})
	require.True(t, b.IsBlocked("https://example.com/a.pdf"))
	require.True(t, b.IsBlocked("https://example.com/a.zip"))
	require.False(t, b.IsBlocked("https://example.com/a.doc"))
}

func TestNilBlocklistBlocksNothing(t *testing.T) {
	t.Parallel()

	var b *extensionBlocklist
	require.False(t, b.IsBlocked("https://example.com/a.pdf"))
}
