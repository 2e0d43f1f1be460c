// Package analyzer runs the end-to-end website analysis: crawl the seed's
// domain, fetch and normalize every discovered page, extract the profile
// fields, and aggregate them into the response profile.
package analyzer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/companykit/webprofiler/internal/crawler"
	"github.com/companykit/webprofiler/internal/hash/sha256"
	"github.com/companykit/webprofiler/internal/metrics"
	"github.com/companykit/webprofiler/internal/normalize"
	"github.com/companykit/webprofiler/internal/profile"
)

// Crawler discovers the in-domain URL set for a seed.
type Crawler interface {
	Crawl(ctx context.Context, seedURL string, maxDepth int) ([]string, error)
}

// Extractor settles every profile field over the normalized text.
type Extractor interface {
	Extract(ctx context.Context, text string) map[profile.Field]profile.Outcome
}

// Config controls pipeline behavior.
type Config struct {
	// MaxDepth bounds the crawl from the seed.
	MaxDepth int
	// FetchConcurrency bounds parallel fetch+normalize of discovered pages.
	FetchConcurrency int
	// MaxTextChars caps the concatenated document text handed to the
	// extractor. Zero means no cap.
	MaxTextChars int
}

// Analyzer wires the crawl, normalization, and extraction stages together.
type Analyzer struct {
	crawler    Crawler
	fetcher    crawler.Fetcher
	normalizer normalize.Normalizer
	extractor  Extractor
	cfg        Config
	logger     *zap.Logger
}

// New constructs an Analyzer.
func New(
	c Crawler,
	fetcher crawler.Fetcher,
	normalizer normalize.Normalizer,
	extractor Extractor,
	cfg Config,
	logger *zap.Logger,
) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxDepth < 0 {
		cfg.MaxDepth = 0
	}
	if cfg.FetchConcurrency <= 0 {
		cfg.FetchConcurrency = 4
	}
	return &Analyzer{
		crawler:    c,
		fetcher:    fetcher,
		normalizer: normalizer,
		extractor:  extractor,
		cfg:        cfg,
		logger:     logger,
	}
}

// Analyze derives a company profile for the website at seedURL. A seed that
// cannot be fetched fails the whole analysis; every later failure degrades
// to sentinels instead. When no document survives normalization the profile
// short-circuits to all sentinels without calling the extractor.
func (a *Analyzer) Analyze(ctx context.Context, seedURL string) (profile.CompanyProfile, error) {
	start := time.Now()

	p, err := a.analyze(ctx, seedURL)
	if err != nil {
		metrics.AnalysisCompleted("error", time.Since(start))
		return profile.CompanyProfile{}, err
	}
	metrics.AnalysisCompleted("ok", time.Since(start))
	return p, nil
}

func (a *Analyzer) analyze(ctx context.Context, seedURL string) (profile.CompanyProfile, error) {
	seed, err := crawler.NormalizeURL(seedURL)
	if err != nil {
		return profile.CompanyProfile{}, fmt.Errorf("normalize seed: %w", err)
	}

	urls, err := a.crawler.Crawl(ctx, seed, a.cfg.MaxDepth)
	if err != nil {
		return profile.CompanyProfile{}, fmt.Errorf("crawl: %w", err)
	}
	a.logger.Info("crawl finished", zap.String("seed", seed), zap.Int("pages", len(urls)))

	// The seed document is fetched first and fatally: an unreachable seed is
	// an analysis failure, not a degraded profile.
	seedText, seedErr := a.fetchAndNormalize(ctx, seed, true)
	if seedErr != nil {
		return profile.CompanyProfile{}, seedErr
	}

	texts := make([]string, len(urls))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.FetchConcurrency)
	for i, pageURL := range urls {
		if pageURL == seed {
			texts[i] = seedText
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := a.fetchAndNormalize(gctx, pageURL, false)
			if err != nil {
				// Already logged; this document contributes nothing.
				return nil
			}
			mu.Lock()
			texts[i] = text
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return profile.CompanyProfile{}, fmt.Errorf("analysis canceled: %w", err)
	}

	combined := a.combine(texts)
	if combined == "" {
		a.logger.Warn("no document survived normalization, returning sentinel profile",
			zap.String("seed", seed))
		return profile.SentinelProfile(), nil
	}

	outcomes := a.extractor.Extract(ctx, combined)
	return profile.Aggregate(outcomes), nil
}

// fetchAndNormalize retrieves one page and converts it to canonical text.
// With fatal set, fetch errors propagate wrapped in ErrSeedFetch; otherwise
// both fetch and normalization failures are logged and swallowed. A
// normalization failure is never fatal, even for the seed.
func (a *Analyzer) fetchAndNormalize(ctx context.Context, pageURL string, fatal bool) (string, error) {
	page, err := a.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		if fatal {
			return "", fmt.Errorf("%w: %s: %v", crawler.ErrSeedFetch, pageURL, err)
		}
		a.logger.Warn("document fetch failed", zap.String("url", pageURL), zap.Error(err))
		return "", err
	}

	text, err := a.normalizer.Normalize(ctx, page.Body, pageURL)
	if err != nil {
		a.logger.Warn("document normalization failed", zap.String("url", pageURL), zap.Error(err))
		if fatal {
			return "", nil
		}
		return "", err
	}
	return text, nil
}

// combine joins the surviving documents in crawl-result order and applies
// the configured size cap. Documents with identical normalized text are
// folded to one occurrence so mirrored URLs do not repeat content.
func (a *Analyzer) combine(texts []string) string {
	var b strings.Builder
	seen := make(map[string]struct{}, len(texts))
	for _, text := range texts {
		if text == "" {
			continue
		}
		digest := sha256.DigestString(text)
		if _, dup := seen[digest]; dup {
			continue
		}
		seen[digest] = struct{}{}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(text)
	}
	combined := b.String()
	if a.cfg.MaxTextChars > 0 && len(combined) > a.cfg.MaxTextChars {
		combined = combined[:a.cfg.MaxTextChars]
	}
	return combined
}
