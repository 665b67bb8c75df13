package acquire

import (
	"context"

	"github.com/docfold/docfold"
	"github.com/docfold/docfold/crawl"
)

var _ docfold.Strategy = (*ScrapingStrategy)(nil)

// ScrapingStrategy acquires pages by discovering the site's navigation
// structure and fetching every discovered page. It works on any site
// that serves static HTML, which makes it the cascade's last resort.
type ScrapingStrategy struct {
	Discoverer docfold.NavigationDiscoverer
	Pipeline   *crawl.Pipeline
}

// Name returns the strategy's identifier.
func (s *ScrapingStrategy) Name() string {
	return "scraping"
}

// ExtractPages discovers navigation links from the root page and
// fetches them concurrently. When discovery yields nothing, the root
// page itself becomes the single candidate so a renderable root never
// produces a null result.
func (s *ScrapingStrategy) ExtractPages(ctx context.Context, rootURL, section string) ([]*docfold.Page, error) {
	links := s.Discoverer.Discover(ctx, rootURL)
	if len(links) == 0 {
		links = []docfold.NavigationLink{{URL: rootURL, Title: "Main Page"}}
	}

	if section != "" {
		filtered := links[:0]
		for _, link := range links {
			if matchesSection(link.URL, section) {
				filtered = append(filtered, link)
			}
		}
		links = filtered
	}

	return s.Pipeline.FetchAll(ctx, links), nil
}
