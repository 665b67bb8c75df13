package docfold

import (
	"context"
	"time"
)

// PageSource identifies which acquisition strategy produced a page.
type PageSource string

// Page provenance values.
const (
	SourceScraping PageSource = "scraping"
	SourceMirror   PageSource = "mirror"
	SourceSitemap  PageSource = "sitemap"
)

// Page is the unit of extracted content. Within one strategy run the URL
// is unique: deduplication happens at discovery time, before fetching.
type Page struct {
	// Title is the display title, capped at 100 characters. It may be
	// generic (e.g. "Main Page") when the site offers nothing better.
	Title string

	// URL is the canonical absolute URL of the page, or a local file
	// path for pages obtained from a source mirror.
	URL string

	// Content is normalized text with lightweight markdown markup.
	Content string

	// Source records which strategy produced the page.
	Source PageSource

	// RawHTML is the original markup, retained transiently for asset
	// scanning. It is never persisted.
	RawHTML string
}

// NavigationLink is an intermediate discovery result, produced before
// fetching and consumed by the fetch pipeline. It is not persisted.
type NavigationLink struct {
	URL   string
	Title string
}

// Strategy is a pluggable page-acquisition method. The scraping, sitemap
// and mirror strategies all conform to this contract.
type Strategy interface {
	// Name returns the strategy's identifier (e.g. "scraping").
	Name() string

	// ExtractPages acquires the full page set for a documentation site.
	// A nil or empty result means the strategy cannot serve this site;
	// errors are advisory and must never abort the caller's fallback
	// loop. When section is non-empty, only pages whose URL contains it
	// (case-insensitively) are returned.
	ExtractPages(ctx context.Context, rootURL, section string) ([]*Page, error)
}

// RunResult summarizes a completed download run. It is read-only after
// the run completes.
type RunResult struct {
	StrategyUsed     string
	PagesDownloaded  int
	AssetsDownloaded int
	Duration         time.Duration
	PagesPerSecond   float64
	OutputPath       string
}
