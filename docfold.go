// Package docfold downloads paginated documentation sites of unknown
// internal structure and folds them into a single ordered markdown
// document. Acquisition happens through a cascade of strategies (source
// mirror clone, sitemap enumeration, navigation scraping) tried in order
// until one yields pages; the pages are then consolidated into one
// document with a deterministic, content-derived reading order.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency or concern
// (e.g., goquery/, http/, git/, crawl/).
package docfold
