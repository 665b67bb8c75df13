package acquire

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/docfold/docfold"
	"github.com/docfold/docfold/crawl"
	"golang.org/x/sync/errgroup"
)

var _ docfold.Strategy = (*SitemapStrategy)(nil)

// SitemapStrategy acquires pages enumerated by the site's sitemaps.
// For each page it probes the GitBook-style markdown rendition
// (<url>.md) first and falls back to fetching the HTML, isolating the
// main content region and converting it to markdown.
type SitemapStrategy struct {
	Sitemaps  docfold.SitemapService
	Fetcher   docfold.Fetcher
	Regions   docfold.RegionExtractor
	Converter docfold.Converter
	Titles    docfold.TitleExtractor

	// Concurrency and Delay mirror the fetch pipeline's model: bounded
	// parallelism with a per-task politeness pause.
	Concurrency int
	Delay       time.Duration

	Logger *slog.Logger
}

// Name returns the strategy's identifier.
func (s *SitemapStrategy) Name() string {
	return "sitemap"
}

// ExtractPages enumerates the sitemap and downloads every page passing
// the section filter. Per-page failures are silent drops.
func (s *SitemapStrategy) ExtractPages(ctx context.Context, rootURL, section string) ([]*docfold.Page, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	urls, err := s.Sitemaps.DiscoverURLs(ctx, rootURL)
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, nil
	}

	if section != "" {
		filtered := urls[:0]
		for _, u := range urls {
			if matchesSection(u, section) {
				filtered = append(filtered, u)
			}
		}
		urls = filtered
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = crawl.DefaultConcurrency
	}

	resultCh := make(chan *docfold.Page, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, pageURL := range urls {
			g.Go(func() error {
				if !crawl.Pause(gctx, s.Delay) {
					return nil
				}
				if page := s.downloadPage(gctx, pageURL, logger); page != nil {
					resultCh <- page
				}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var pages []*docfold.Page
	for page := range resultCh {
		pages = append(pages, page)
	}
	return pages, nil
}

// downloadPage retrieves one sitemap entry, markdown rendition first.
// Returns nil when the page fails to fetch or has no substantive
// content.
func (s *SitemapStrategy) downloadPage(ctx context.Context, pageURL string, logger *slog.Logger) *docfold.Page {
	mdURL := strings.TrimRight(pageURL, "/") + ".md"
	if markdown, err := s.Fetcher.Fetch(ctx, mdURL); err == nil {
		if len(strings.TrimSpace(markdown)) > crawl.MinContentLength {
			title := firstMarkdownHeading(markdown)
			if title == "" {
				title = mdURL
			}
			return &docfold.Page{
				Title:   title,
				URL:     mdURL,
				Content: markdown,
				Source:  docfold.SourceSitemap,
			}
		}
	}

	markup, err := s.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		logger.Debug("sitemap page fetch failed", "url", pageURL, "error", err)
		return nil
	}

	region, err := s.Regions.ExtractRegion(markup)
	if err != nil {
		logger.Debug("sitemap page has no content region", "url", pageURL, "error", err)
		return nil
	}
	content, err := s.Converter.Convert(region)
	if err != nil {
		logger.Debug("sitemap page conversion failed", "url", pageURL, "error", err)
		return nil
	}
	if len(strings.TrimSpace(content)) <= crawl.MinContentLength {
		return nil
	}

	return &docfold.Page{
		Title:   s.Titles.Title(markup),
		URL:     pageURL,
		Content: content,
		Source:  docfold.SourceSitemap,
		RawHTML: markup,
	}
}
