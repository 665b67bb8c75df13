// Package htmltomarkdown converts cleaned content HTML to Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/docfold/docfold"
)

// Ensure Converter implements docfold.Converter at compile time.
var _ docfold.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown. It is used on main-content HTML
// that has already had boilerplate removed.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", docfold.Errorf(docfold.EINVALID, "empty HTML input")
	}
	return c.conv.ConvertString(html)
}
