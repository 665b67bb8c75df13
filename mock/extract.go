package mock

import (
	"context"

	"github.com/docfold/docfold"
)

var _ docfold.NavigationDiscoverer = (*NavigationDiscoverer)(nil)

type NavigationDiscoverer struct {
	DiscoverFn func(ctx context.Context, rootURL string) []docfold.NavigationLink
}

func (d *NavigationDiscoverer) Discover(ctx context.Context, rootURL string) []docfold.NavigationLink {
	return d.DiscoverFn(ctx, rootURL)
}

var _ docfold.ContentExtractor = (*ContentExtractor)(nil)

type ContentExtractor struct {
	ExtractFn func(markup string) string
}

func (e *ContentExtractor) Extract(markup string) string {
	return e.ExtractFn(markup)
}

var _ docfold.RegionExtractor = (*RegionExtractor)(nil)

type RegionExtractor struct {
	ExtractRegionFn func(markup string) (string, error)
}

func (e *RegionExtractor) ExtractRegion(markup string) (string, error) {
	return e.ExtractRegionFn(markup)
}

var _ docfold.TitleExtractor = (*TitleExtractor)(nil)

type TitleExtractor struct {
	TitleFn func(markup string) string
}

func (e *TitleExtractor) Title(markup string) string {
	return e.TitleFn(markup)
}

var _ docfold.Converter = (*Converter)(nil)

type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
