package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/docfold/docfold"
)

// repoLinkSelectors finds anchors likely to point at the repository
// backing a documentation site: explicit code-host links and "edit this
// page" affordances.
var repoLinkSelectors = []string{
	`a[href*="github.com"]`,
	`a[aria-label*="Edit"]`,
	`a[title*="GitHub"]`,
}

var _ docfold.RepoDetector = (*RepoFinder)(nil)

// RepoFinder detects the source repository advertised on a page.
type RepoFinder struct{}

// NewRepoFinder creates a new RepoFinder.
func NewRepoFinder() *RepoFinder {
	return &RepoFinder{}
}

// DetectRepo returns the clone URL of the repository behind the page,
// derived from a blob link (everything before /blob/ plus ".git"), or
// "" when no repository link is present.
func (f *RepoFinder) DetectRepo(markup, baseURL string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	var repoURL string
	for _, selector := range repoLinkSelectors {
		doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			href, ok := sel.Attr("href")
			if !ok || href == "" {
				return true
			}
			if base != nil {
				href = resolveURL(base, href)
			}
			if !strings.Contains(href, "github.com") || !strings.Contains(href, "/blob/") {
				return true
			}
			repoURL = strings.SplitN(href, "/blob/", 2)[0] + ".git"
			return false
		})
		if repoURL != "" {
			return repoURL
		}
	}
	return ""
}
