package crawler

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/companykit/webprofiler/internal/metrics"
)

// Config controls crawl behavior.
type Config struct {
	// Concurrency bounds how many frontier URLs are fetched in parallel.
	Concurrency int
	// BlockedExtensions overrides the default non-page extension blocklist.
	BlockedExtensions []string
}

// Crawler discovers pages within one website's registrable domain using an
// explicit work queue with per-item depth. One visited set is shared across
// the whole crawl and guarded by a mutex, so no URL is fetched twice even
// when frontier levels are explored in parallel.
type Crawler struct {
	fetcher     Fetcher
	limiter     Limiter
	blocklist   *extensionBlocklist
	concurrency int
	logger      *zap.Logger
}

// New constructs a Crawler. The limiter may be nil when politeness is
// handled elsewhere.
func New(fetcher Fetcher, limiter Limiter, cfg Config, logger *zap.Logger) *Crawler {
	if logger == nil {
		logger = zap.NewNop()
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	extensions := cfg.BlockedExtensions
	if len(extensions) == 0 {
		extensions = defaultBlockedExtensions
	}
	return &Crawler{
		fetcher:     fetcher,
		limiter:     limiter,
		blocklist:   newExtensionBlocklist(extensions),
		concurrency: concurrency,
		logger:      logger,
	}
}

// Crawl explores the seed's domain up to maxDepth and returns the set of
// fetched page URLs. The seed is always present in the result, even for
// maxDepth zero or a seed with no same-domain links. A fetch failure on the
// seed itself is fatal; failures deeper in the tree abandon that branch only.
func (c *Crawler) Crawl(ctx context.Context, seedURL string, maxDepth int) ([]string, error) {
	seed, err := NormalizeURL(seedURL)
	if err != nil {
		return nil, fmt.Errorf("normalize seed: %w", err)
	}
	seedParsed, err := url.Parse(seed)
	if err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	seedHost := seedParsed.Host

	result := map[string]struct{}{seed: {}}
	if maxDepth <= 0 || c.blocklist.IsBlocked(seed) {
		return sortedKeys(result), nil
	}

	seedPage, err := c.fetchPage(ctx, seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSeedFetch, seed, err)
	}

	visited := map[string]struct{}{seed: {}}
	frontier := c.admitChildren(seedPage, seed, seedHost, 1, maxDepth, visited)

	for len(frontier) > 0 {
		var (
			mu   sync.Mutex
			next []task
		)
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.concurrency)
		for _, item := range frontier {
			g.Go(func() error {
				// Context cancellation is the only error that stops the
				// crawl; a failed branch contributes nothing and moves on.
				if err := gctx.Err(); err != nil {
					return err
				}
				page, err := c.fetchPage(gctx, item.url)
				if err != nil {
					c.logger.Warn("branch abandoned",
						zap.String("url", item.url),
						zap.Int("depth", item.depth),
						zap.Error(err),
					)
					return nil
				}
				mu.Lock()
				defer mu.Unlock()
				result[item.url] = struct{}{}
				next = append(next, c.admitChildren(page, item.url, seedHost, item.depth+1, maxDepth, visited)...)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("crawl canceled: %w", err)
		}
		frontier = next
	}

	return sortedKeys(result), nil
}

// admitChildren extracts same-domain links from a fetched page and admits
// the ones that pass the pre-fetch filters: unvisited, below the depth
// bound, and not matching the extension blocklist. Admitted URLs are marked
// visited immediately so concurrent branches cannot re-admit them. The
// caller must hold any lock guarding the visited set.
func (c *Crawler) admitChildren(page Page, pageURL, seedHost string, depth, maxDepth int, visited map[string]struct{}) []task {
	if depth >= maxDepth {
		return nil
	}
	base := page.FinalURL
	if base == "" {
		base = pageURL
	}
	links, err := extractLinks(page.Body, base, seedHost)
	if err != nil {
		c.logger.Warn("link extraction failed", zap.String("url", pageURL), zap.Error(err))
		return nil
	}

	var admitted []task
	for _, link := range links {
		if _, seen := visited[link]; seen {
			continue
		}
		if c.blocklist.IsBlocked(link) {
			continue
		}
		visited[link] = struct{}{}
		admitted = append(admitted, task{url: link, depth: depth})
	}
	return admitted
}

func (c *Crawler) fetchPage(ctx context.Context, rawURL string) (Page, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, rawURL); err != nil {
			return Page{}, err
		}
	}
	page, err := c.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		metrics.PageFetched("error")
		return Page{}, err
	}
	metrics.PageFetched("ok")
	return page, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
