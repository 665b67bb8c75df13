package docfold

import "context"

// NavigationDiscoverer finds candidate documentation pages from a site's
// root page.
type NavigationDiscoverer interface {
	// Discover fetches the root page and returns a deduplicated list of
	// candidate links in first-seen order. It never fails: transport,
	// status and parse errors all yield an empty list.
	Discover(ctx context.Context, rootURL string) []NavigationLink
}

// ContentExtractor renders the main content region of a page as
// normalized text with lightweight markdown markup.
//
// The rendering is lossy by design: tables, inline emphasis and links
// inside prose degrade to plain text.
type ContentExtractor interface {
	// Extract is a pure function of the markup. Markup with no
	// recognizable content region degrades to body text, then to the
	// full document text; it never fails.
	Extract(markup string) string
}

// RegionExtractor isolates the main content region of a page as cleaned
// HTML, with boilerplate (nav, header, footer, sidebar) removed. The
// result is suitable for a Converter.
type RegionExtractor interface {
	ExtractRegion(markup string) (string, error)
}

// TitleExtractor finds a page's display title in its markup.
type TitleExtractor interface {
	// Title returns the best available title, or a generic placeholder
	// when the markup offers none.
	Title(markup string) string
}
