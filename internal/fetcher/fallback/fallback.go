// Package fallback composes a cheap HTTP probe with a browser-rendering
// fetcher, promoting only the pages that need it.
package fallback

import (
	"context"

	"go.uber.org/zap"

	"github.com/companykit/webprofiler/internal/crawler"
)

// Detector reports whether a probed page needs a rendered refetch.
type Detector interface {
	ShouldPromote(page crawler.Page) bool
}

// Fetcher probes with the plain fetcher first and refetches through the
// rendered fetcher when the detector flags a JS shell. A failed rendered
// refetch falls back to the probe result rather than failing the page.
type Fetcher struct {
	probe    crawler.Fetcher
	rendered crawler.Fetcher
	detector Detector
	logger   *zap.Logger
}

var _ crawler.Fetcher = (*Fetcher)(nil)

// New builds a promoting Fetcher. With a nil rendered fetcher or detector
// it degrades to the probe alone.
func New(probe, rendered crawler.Fetcher, detector Detector, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		probe:    probe,
		rendered: rendered,
		detector: detector,
		logger:   logger,
	}
}

// Fetch implements crawler.Fetcher.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (crawler.Page, error) {
	page, err := f.probe.Fetch(ctx, rawURL)
	if err != nil {
		return page, err
	}
	if f.rendered == nil || f.detector == nil || !f.detector.ShouldPromote(page) {
		return page, nil
	}

	rendered, rerr := f.rendered.Fetch(ctx, rawURL)
	if rerr != nil {
		f.logger.Warn("rendered refetch failed, keeping probe result",
			zap.String("url", rawURL),
			zap.Error(rerr),
		)
		return page, nil
	}
	f.logger.Debug("page promoted to rendered fetch", zap.String("url", rawURL))
	return rendered, nil
}
