package crawler

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeURL standardizes a URL so the visited set never stores two
// spellings of the same page. It lowercases the scheme and host, removes
// default ports and fragments, and sorts query parameters.
func NormalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("url %q has no host", rawURL)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	if u.Scheme == "http" {
		u.Host = strings.TrimSuffix(u.Host, ":80")
	}
	if u.Scheme == "https" {
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	u.Fragment = ""
	u.RawQuery = u.Query().Encode()

	return u.String(), nil
}

// registrableHost strips the optional "www." prefix so host comparisons
// ignore it, per the domain-scope rule.
func registrableHost(host string) string {
	host = strings.ToLower(host)
	if h, _, ok := strings.Cut(host, ":"); ok && h != "" {
		host = h
	}
	return strings.TrimPrefix(host, "www.")
}

// sameDomain reports whether a candidate host belongs to the seed's
// registrable domain. Scheme never participates in the comparison.
func sameDomain(candidateHost, seedHost string) bool {
	return registrableHost(candidateHost) == registrableHost(seedHost)
}
