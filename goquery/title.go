package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/docfold/docfold"
)

// fallbackTitle is returned when the markup offers no usable title.
const fallbackTitle = "Untitled Page"

// titleSelectors is the ordered cascade of title sources.
var titleSelectors = []string{
	"h1",
	`[data-testid="page-title"]`,
	"title",
	".page-title",
}

var _ docfold.TitleExtractor = (*Titles)(nil)

// Titles extracts page display titles from markup.
type Titles struct{}

// NewTitles creates a new Titles extractor.
func NewTitles() *Titles {
	return &Titles{}
}

// Title returns the first non-empty title under 200 characters found by
// the cascade, or a generic placeholder.
func (t *Titles) Title(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return fallbackTitle
	}

	for _, selector := range titleSelectors {
		title := strings.TrimSpace(doc.Find(selector).First().Text())
		if title != "" && len(title) < 200 {
			return title
		}
	}
	return fallbackTitle
}
