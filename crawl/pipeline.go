// Package crawl provides the bounded-concurrency fetch pipeline and
// rate limiting primitives used by the acquisition strategies.
package crawl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/docfold/docfold"
	"golang.org/x/sync/errgroup"
)

// MinContentLength is the inclusive threshold below which extracted
// content is treated as noise and the page dropped.
const MinContentLength = 50

// DefaultConcurrency bounds simultaneous page fetches when the caller
// doesn't configure a ceiling.
const DefaultConcurrency = 15

// Pipeline fetches a set of candidate pages concurrently, extracting
// content from each and discarding pages without substantive content.
type Pipeline struct {
	Fetcher   docfold.Fetcher
	Extractor docfold.ContentExtractor

	// Concurrency is the fetch ceiling; DefaultConcurrency when <= 0.
	Concurrency int

	// Delay is the politeness pause each task observes after acquiring
	// a concurrency slot, before issuing its request. It is per task,
	// not a global rate limit, so the effective request rate is roughly
	// Concurrency / Delay.
	Delay time.Duration

	Logger *slog.Logger
}

// FetchAll fetches every link and returns the pages that produced more
// than MinContentLength characters of content. Fetch, status and parse
// failures contribute nothing and surface no error: missing pages are
// an accepted loss. The result order is completion order, not input
// order.
func (p *Pipeline) FetchAll(ctx context.Context, links []docfold.NavigationLink) []*docfold.Page {
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan *docfold.Page, len(links))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, link := range links {
			g.Go(func() error {
				if !Pause(gctx, p.Delay) {
					return nil
				}

				markup, err := p.Fetcher.Fetch(gctx, link.URL)
				if err != nil {
					logger.Debug("page fetch failed", "url", link.URL, "error", err)
					return nil
				}

				content := p.Extractor.Extract(markup)
				if len(strings.TrimSpace(content)) <= MinContentLength {
					logger.Debug("page below content threshold", "url", link.URL)
					return nil
				}

				resultCh <- &docfold.Page{
					Title:   link.Title,
					URL:     link.URL,
					Content: content,
					Source:  docfold.SourceScraping,
					RawHTML: markup,
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
	return pages
}

// Pause sleeps for d unless the context is canceled first. Reports
// whether the full pause elapsed.
func Pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
