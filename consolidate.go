package docfold

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var (
	firstNumberRe     = regexp.MustCompile(`\d+`)
	demotableRe       = regexp.MustCompile(`^#{1,5}\s`)
	excessNewlinesRe  = regexp.MustCompile(`\n{4,}`)
	overdeepHeadingRe = regexp.MustCompile(`(?m)^#{7,}`)
)

// Title keywords that pull a page to the front of the document.
var (
	openerTitleWords   = []string{"readme", "introduction", "intro", "start", "index"}
	overviewTitleWords = []string{"getting started", "quick start", "overview"}
)

// Consolidate merges pages into a single markdown document: a header
// block, then each page in reading order separated by horizontal rules,
// each prefixed with a provenance line naming its source URL.
//
// The result is deterministic for a given page set and timestamp;
// fetch completion order does not influence it.
func Consolidate(pages []*Page, rootURL, section string, now time.Time) string {
	if len(pages) == 0 {
		return "# No Content Found\n\nNo pages were successfully downloaded.\n"
	}

	sorted := SortPages(pages)

	parts := []string{documentHeader(rootURL, section, len(pages), now)}
	for _, page := range sorted {
		rendered := renderPageSection(page)
		if rendered == "" {
			continue
		}
		parts = append(parts, rendered, "\n---\n")
	}

	doc := strings.Join(parts, "\n")
	doc = excessNewlinesRe.ReplaceAllString(doc, "\n\n\n")
	doc = overdeepHeadingRe.ReplaceAllString(doc, "######")
	return strings.TrimRight(doc, " \t\n") + "\n"
}

// SortPages orders pages into an approximate reading order. The scoring
// rewards README/introduction pages, then overview pages, then low
// numeric prefixes ("01 Intro" before "10 Appendix"), then short titles
// and shallow URL paths. Equal scores keep input order.
//
// This is a best-effort heuristic over common documentation
// conventions, not a guarantee of true document order.
func SortPages(pages []*Page) []*Page {
	sorted := make([]*Page, len(pages))
	copy(sorted, pages)

	scores := make(map[*Page]int, len(sorted))
	for _, p := range sorted {
		scores[p] = pageScore(p)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return scores[sorted[i]] > scores[sorted[j]]
	})
	return sorted
}

func pageScore(p *Page) int {
	title := strings.ToLower(p.Title)

	score := 0
	for _, w := range openerTitleWords {
		if strings.Contains(title, w) {
			score += 1000
			break
		}
	}
	for _, w := range overviewTitleWords {
		if strings.Contains(title, w) {
			score += 900
			break
		}
	}

	// Reward low numeric prefixes; first decimal run wins when a title
	// contains several.
	if m := firstNumberRe.FindString(title); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			score += 800 - n
		}
	}

	if words := len(strings.Fields(title)); words < 100 {
		score += 100 - words
	}
	if segments := len(strings.Split(strings.ToLower(p.URL), "/")); segments < 50 {
		score += 50 - segments
	}
	return score
}

// documentHeader renders the document's own title block. The title is
// derived from the source host with common suffixes stripped.
func documentHeader(rootURL, section string, pageCount int, now time.Time) string {
	host := rootURL
	if u, err := url.Parse(rootURL); err == nil && u.Host != "" {
		host = u.Host
	}

	title := strings.ReplaceAll(host, ".gitbook.io", "")
	title = strings.ReplaceAll(title, ".com", "")
	title = titleCase(title)
	if section != "" {
		title += " - " + titleCase(strings.ReplaceAll(section, "/", " / "))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**Source:** %s  \n", rootURL)
	fmt.Fprintf(&b, "**Pages:** %d  \n", pageCount)
	fmt.Fprintf(&b, "**Downloaded:** %s  \n", now.UTC().Format("2006-01-02 15:04:05 UTC"))
	if section != "" {
		fmt.Fprintf(&b, "**Section:** %s  \n", section)
	}
	b.WriteString("\n---\n")
	return b.String()
}

// renderPageSection produces one page's contribution to the document: a
// provenance line followed by the cleaned content. Pages whose content
// is empty after cleaning contribute nothing.
func renderPageSection(p *Page) string {
	cleaned := cleanPageContent(p.Content)
	if cleaned == "" {
		return ""
	}
	if p.URL == "" {
		return cleaned
	}
	return "*Source: " + p.URL + "*\n\n" + cleaned
}

// cleanPageContent strips a page's leading top-level heading (the title
// is not re-emitted; only the provenance line identifies the page) and
// demotes every remaining heading by one level so pages nest under the
// document's own title.
func cleanPageContent(content string) string {
	lines := strings.Split(content, "\n")

	start := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "# ") {
			start = i + 1
			continue
		}
		break
	}
	lines = lines[start:]

	for i, line := range lines {
		if demotableRe.MatchString(line) {
			lines[i] = "#" + line
		}
	}

	out := strings.Join(lines, "\n")
	out = excessNewlinesRe.ReplaceAllString(out, "\n\n\n")
	return strings.TrimSpace(out)
}

// titleCase uppercases the first letter of every word, lowercasing the
// rest, with any non-letter acting as a word boundary.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		switch {
		case !unicode.IsLetter(r):
			b.WriteRune(r)
			prevLetter = false
		case prevLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(unicode.ToUpper(r))
			prevLetter = true
		}
	}
	return b.String()
}
