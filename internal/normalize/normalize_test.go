package normalize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePrefersMainContent(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<nav>Home About Contact</nav>
		<main><h1>Acme Corp</h1><p>We build solar panels.</p></main>
		<footer>© 2026 Acme</footer>
	</body></html>`

	n := NewHTMLText()
	text, err := n.Normalize(context.Background(), []byte(html), "https://example.com/")
	require.NoError(t, err)
	require.Contains(t, text, "Acme Corp")
	require.Contains(t, text, "We build solar panels.")
	require.NotContains(t, text, "Home About Contact")
}

func TestNormalizeFallsBackToBody(t *testing.T) {
	t.Parallel()

	html := `<html><body><p>Plain   page
	with    uneven whitespace.</p></body></html>`

	n := NewHTMLText()
	text, err := n.Normalize(context.Background(), []byte(html), "https://example.com/")
	require.NoError(t, err)
	require.Equal(t, "Plain page with uneven whitespace.", text)
}

func TestNormalizeDropsScriptAndStyle(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<script>var secret = "tracking";</script>
		<style>.hidden { display: none }</style>
		<p>Visible text.</p>
	</body></html>`

	n := NewHTMLText()
	text, err := n.Normalize(context.Background(), []byte(html), "https://example.com/")
	require.NoError(t, err)
	require.Equal(t, "Visible text.", text)
}

func TestNormalizeEmptyDocumentFails(t *testing.T) {
	t.Parallel()

	n := NewHTMLText()
	_, err := n.Normalize(context.Background(), []byte("<html><body></body></html>"), "https://example.com/")
	require.Error(t, err)
}
