package crawler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractLinksResolvesAndScopes(t *testing.T) {
	t.Parallel()

	body := []byte(`<html><body>
		<a href="/about">About</a>
		<a href="contact">Contact</a>
		<a href="https://example.com/pricing#plans">Pricing</a>
		<a href="https://www.example.com/team">Team</a>
		<a href="https://other.test/external">External</a>
		<a href="mailto:hello@example.com">Mail</a>
		<a href="tel:+15551234567">Call</a>
		<a href="/about">Duplicate</a>
	</body></html>`)

	links, err := extractLinks(body, "https://example.com/company/", "example.com")
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://example.com/about",
		"https://example.com/company/contact",
		"https://example.com/pricing",
		"https://www.example.com/team",
	}, links)
}

func TestExtractLinksEmptyBody(t *testing.T) {
	t.Parallel()

	links, err := extractLinks(nil, "https://example.com/", "example.com")
	require.NoError(t, err)
	require.Empty(t, links)
}

func TestExtractLinksBadBaseURL(t *testing.T) {
	t.Parallel()

	_, err := extractLinks([]byte("<a href='/x'>x</a>"), "://bad", "example.com")
	require.Error(t, err)
}
