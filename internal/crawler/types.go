// Package crawler implements the depth-bounded, domain-scoped page discovery
// engine. It owns the visited set, the depth bound, and the non-page
// blocklist; fetchers only retrieve bytes and classify failures.
package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Page is the result of fetching a single URL.
type Page struct {
	URL        string
	FinalURL   string
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Fetcher fetches one URL and returns the body plus metadata. A non-2xx
// response or a network failure yields a *FetchError; the crawler decides
// fatal-vs-recoverable based on depth, not the fetcher.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (Page, error)
}

// Limiter blocks until a request to the URL's domain is admitted.
type Limiter interface {
	Wait(ctx context.Context, rawURL string) error
}

// FetchError classifies a failed fetch. StatusCode is zero for transport
// failures that never produced a response.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ErrSeedFetch wraps fetch failures at depth zero, which abort the whole
// crawl instead of abandoning a branch.
var ErrSeedFetch = errors.New("seed fetch failed")

// task is one work-queue item: a URL admitted for fetching at a given depth.
type task struct {
	url   string
	depth int
}
