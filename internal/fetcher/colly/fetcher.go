// Package collyfetcher implements crawler.Fetcher using gocolly.
package collyfetcher

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/companykit/webprofiler/internal/crawler"
)

// Config controls collector behavior.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

// Fetcher fetches single URLs through a cloned Colly collector per call, so
// transports and timers never outlive one fetch.
type Fetcher struct {
	cfg           Config
	baseCollector *colly.Collector
}

// New builds a Fetcher with a pooled HTTP transport.
func New(cfg Config) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	base := colly.NewCollector(colly.Async(false))
	base.IgnoreRobotsTxt = true
	base.WithTransport(newHTTPTransport())
	if cfg.UserAgent != "" {
		base.UserAgent = cfg.UserAgent
	}
	base.SetRequestTimeout(cfg.Timeout)

	return &Fetcher{
		cfg:           cfg,
		baseCollector: base,
	}
}

// Fetch executes a single HTTP GET. Non-2xx responses and transport failures
// both come back as *crawler.FetchError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (crawler.Page, error) {
	collector := f.baseCollector.Clone()

	var (
		once   sync.Once
		page   crawler.Page
		result error
	)
	settle := func(p crawler.Page, err error) {
		once.Do(func() {
			page = p
			result = err
		})
	}

	collector.OnResponse(func(r *colly.Response) {
		headers := http.Header{}
		if r.Headers != nil {
			headers = r.Headers.Clone()
		}
		settle(crawler.Page{
			URL:        rawURL,
			FinalURL:   r.Request.URL.String(),
			StatusCode: r.StatusCode,
			Headers:    headers,
			Body:       append([]byte(nil), r.Body...),
		}, nil)
	})

	collector.OnError(func(r *colly.Response, err error) {
		status := 0
		if r != nil {
			status = r.StatusCode
		}
		settle(crawler.Page{}, &crawler.FetchError{URL: rawURL, StatusCode: status, Err: err})
	})

	done := make(chan error, 1)
	go func() {
		visitErr := collector.Visit(rawURL)
		collector.Wait()
		done <- visitErr
	}()

	select {
	case <-ctx.Done():
		return crawler.Page{}, &crawler.FetchError{URL: rawURL, Err: ctx.Err()}
	case visitErr := <-done:
		if result != nil {
			return crawler.Page{}, result
		}
		if visitErr != nil {
			return crawler.Page{}, &crawler.FetchError{URL: rawURL, Err: visitErr}
		}
		if page.URL == "" {
			return crawler.Page{}, &crawler.FetchError{URL: rawURL, Err: errors.New("no response produced")}
		}
		return page, nil
	}
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   32,
		IdleConnTimeout:       90 * time.Second,
		ForceAttemptHTTP2:     true,
	}
}

var _ crawler.Fetcher = (*Fetcher)(nil)
