package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/docfold/docfold"
	"golang.org/x/net/html"
)

// boilerplateSelector matches everything that must be removed before any
// content is read, so content selection never double-reads navigation
// text.
const boilerplateSelector = "nav, header, footer, aside, " +
	".sidebar, .navigation, .nav, .header, .footer, " +
	".breadcrumb, .breadcrumbs, .page-edit-link, " +
	"script, style, noscript, " +
	".search, .share, .comments"

// contentSelectors is the ordered cascade of main-content containers;
// the first match wins. Falls back to body, then to the full document
// text.
var contentSelectors = []string{
	`[data-testid="page-content"]`,
	".page-content",
	".content",
	"main",
	"article",
	".post-content",
	".entry-content",
}

var squeezeNewlinesRe = regexp.MustCompile(`\n{3,}`)

// Ensure Extractor implements both extraction interfaces.
var (
	_ docfold.ContentExtractor = (*Extractor)(nil)
	_ docfold.RegionExtractor  = (*Extractor)(nil)
)

// Extractor strips boilerplate from page markup and renders the main
// content region as normalized text with lightweight markdown markup.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract renders the main content of markup as text. Headings become
// markdown headings, paragraphs and list items become lines, code
// becomes backticked or fenced blocks; everything else degrades to
// plain text. The result is a pure function of the markup.
func (e *Extractor) Extract(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	doc.Find(boilerplateSelector).Remove()

	if sel := findContentRegion(doc); sel != nil {
		return renderSelection(sel)
	}
	if body := doc.Find("body"); body.Length() > 0 {
		return renderSelection(body)
	}
	return strings.TrimSpace(doc.Text())
}

// ExtractRegion isolates the main content region as cleaned HTML,
// suitable for markdown conversion.
func (e *Extractor) ExtractRegion(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", docfold.Errorf(docfold.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(boilerplateSelector).Remove()

	sel := findContentRegion(doc)
	if sel == nil {
		sel = doc.Find("body")
	}
	if sel.Length() == 0 {
		return "", docfold.Errorf(docfold.ENOTFOUND, "no content region found")
	}
	return goquery.OuterHtml(sel)
}

// findContentRegion returns the first match of the content cascade, or
// nil when no selector matches.
func findContentRegion(doc *goquery.Document) *goquery.Selection {
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}
	return nil
}

// renderSelection walks the selected subtree and emits normalized text.
func renderSelection(sel *goquery.Selection) string {
	var lines []string
	for _, node := range sel.Nodes {
		renderNode(node, &lines)
	}

	out := strings.Join(lines, "\n")
	out = squeezeNewlinesRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

func renderNode(n *html.Node, lines *[]string) {
	switch n.Type {
	case html.TextNode:
		if text := strings.TrimSpace(n.Data); text != "" {
			*lines = append(*lines, text)
		}
		return
	case html.ElementNode:
		// Handled below.
	default:
		return
	}

	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(n.Data[1] - '0')
		*lines = append(*lines, strings.Repeat("#", level)+" "+nodeText(n), "")
	case "p":
		*lines = append(*lines, nodeText(n), "")
	case "ul", "ol":
		// Only direct list items; nested lists contribute their text
		// through the item, not as separate sublists.
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "li" {
				*lines = append(*lines, "- "+nodeText(c))
			}
		}
		*lines = append(*lines, "")
	case "code":
		*lines = append(*lines, "`"+nodeText(n)+"`")
	case "pre":
		*lines = append(*lines, "```", nodeText(n), "```", "")
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderNode(c, lines)
		}
	}
}

// nodeText returns the trimmed concatenated text of a node's subtree.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
