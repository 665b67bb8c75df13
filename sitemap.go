package docfold

import "context"

// SitemapService enumerates page URLs from a site's structured index.
type SitemapService interface {
	// DiscoverURLs finds all page URLs from a site's sitemaps. It
	// checks robots.txt for Sitemap directives first, then probes
	// well-known sitemap locations. Sitemap indexes are resolved
	// recursively and results are deduplicated. Returns an empty slice
	// when the site has no sitemap.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
