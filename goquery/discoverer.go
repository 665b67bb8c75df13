// Package goquery provides CSS-selector based implementations of
// navigation discovery, content extraction and title extraction.
package goquery

import (
	"context"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/docfold/docfold"
)

// maxTitleLength caps the display title taken from a link's text.
const maxTitleLength = 100

// enoughLinks is the early-exit threshold for the selector cascade.
// Once a selector has yielded more than this many candidates the rest
// of the cascade is skipped, so unrelated navigation blocks matched by
// later selectors cannot pollute the list.
const enoughLinks = 5

// navigationSelectors is the ordered cascade tried against the root
// page: modern hosted-GitBook sidebars first, then the legacy
// book-summary layout, then generic navigation containers.
var navigationSelectors = []string{
	`[data-testid="sidebar"] a[href]`,
	`[data-testid="navigation"] a[href]`,
	`.sidebar a[href]`,
	`.navigation a[href]`,
	`.book-summary a[href]`,
	`.summary a[href]`,
	`nav a[href]`,
	`.nav a[href]`,
	`.toc a[href]`,
	`aside a[href]`,
}

// excludedURLPatterns rejects non-content URLs: auxiliary endpoints,
// API/asset paths, non-HTML file extensions and non-HTTP schemes.
var excludedURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/search`),
	regexp.MustCompile(`/login`),
	regexp.MustCompile(`/logout`),
	regexp.MustCompile(`/edit`),
	regexp.MustCompile(`/admin`),
	regexp.MustCompile(`/api/`),
	regexp.MustCompile(`/assets/`),
	regexp.MustCompile(`/static/`),
	regexp.MustCompile(`\.(css|js|json|xml|rss|txt)$`),
	regexp.MustCompile(`\.(jpg|png|gif|svg|ico|pdf)$`),
	regexp.MustCompile(`mailto:`),
	regexp.MustCompile(`tel:`),
	regexp.MustCompile(`javascript:`),
}

// Ensure Discoverer implements docfold.NavigationDiscoverer.
var _ docfold.NavigationDiscoverer = (*Discoverer)(nil)

// Discoverer finds candidate documentation pages by testing an ordered
// cascade of structural selectors against a site's root page.
type Discoverer struct {
	fetcher docfold.Fetcher
	logger  *slog.Logger
}

// NewDiscoverer creates a Discoverer that fetches the root page through
// the given fetcher. A nil logger disables logging.
func NewDiscoverer(fetcher docfold.Fetcher, logger *slog.Logger) *Discoverer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Discoverer{fetcher: fetcher, logger: logger}
}

// Discover fetches rootURL and returns a deduplicated list of candidate
// links in first-seen order. Failures of any kind yield an empty list.
func (d *Discoverer) Discover(ctx context.Context, rootURL string) []docfold.NavigationLink {
	markup, err := d.fetcher.Fetch(ctx, rootURL)
	if err != nil {
		d.logger.Debug("navigation discovery fetch failed", "url", rootURL, "error", err)
		return nil
	}

	base, err := url.Parse(rootURL)
	if err != nil {
		d.logger.Debug("invalid root URL", "url", rootURL, "error", err)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		d.logger.Debug("navigation discovery parse failed", "url", rootURL, "error", err)
		return nil
	}

	seen := make(map[string]bool)
	var links []docfold.NavigationLink

	for _, selector := range navigationSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			href, ok := sel.Attr("href")
			text := strings.TrimSpace(sel.Text())
			if !ok || href == "" || text == "" {
				return
			}

			// Fragment-only references point back into the same page.
			if strings.HasPrefix(href, "#") {
				return
			}

			resolved := resolveURL(base, href)
			if resolved == "" || !isValidPageURL(resolved, base.Host) {
				return
			}
			if seen[resolved] {
				return
			}
			seen[resolved] = true

			links = append(links, docfold.NavigationLink{
				URL:   resolved,
				Title: truncate(text, maxTitleLength),
			})
		})

		if len(links) > enoughLinks {
			break
		}
	}

	d.logger.Info("discovered navigation links", "url", rootURL, "count", len(links))
	return links
}

// isValidPageURL reports whether a resolved absolute URL is a content
// page worth fetching: same host as the root, and not matching the
// exclusion set.
func isValidPageURL(rawURL, baseHost string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host != baseHost {
		return false
	}

	lower := strings.ToLower(rawURL)
	for _, re := range excludedURLPatterns {
		if re.MatchString(lower) {
			return false
		}
	}
	return true
}

// resolveURL resolves href against base and strips the fragment so that
// URLs differing only by anchor deduplicate to one page.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
