package acquire_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/docfold/docfold"
	"github.com/docfold/docfold/acquire"
	"github.com/docfold/docfold/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var longMarkdown = "# Install Guide\n\n" + strings.Repeat("markdown body text ", 5)

func sitemapReturning(urls []string, err error) *mock.SitemapService {
	return &mock.SitemapService{
		DiscoverURLsFn: func(context.Context, string) ([]string, error) {
			return urls, err
		},
	}
}

func TestSitemapStrategy_PrefersMarkdownRendition(t *testing.T) {
	t.Parallel()

	s := &acquire.SitemapStrategy{
		Sitemaps: sitemapReturning([]string{"https://d.example/install"}, nil),
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if strings.HasSuffix(url, ".md") {
					return longMarkdown, nil
				}
				return "", errors.New("should not fetch HTML when markdown works")
			},
		},
		Concurrency: 1,
	}

	pages, err := s.ExtractPages(context.Background(), "https://d.example", "")
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "Install Guide", pages[0].Title)
	assert.Equal(t, "https://d.example/install.md", pages[0].URL)
	assert.Equal(t, docfold.SourceSitemap, pages[0].Source)
}

func TestSitemapStrategy_HTMLFallback(t *testing.T) {
	t.Parallel()

	converted := strings.Repeat("converted markdown ", 5)

	s := &acquire.SitemapStrategy{
		Sitemaps: sitemapReturning([]string{"https://d.example/page"}, nil),
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if strings.HasSuffix(url, ".md") {
					return "", errors.New("HTTP 404")
				}
				return "<html><body><main><p>hi</p></main></body></html>", nil
			},
		},
		Regions: &mock.RegionExtractor{
			ExtractRegionFn: func(string) (string, error) { return "<main><p>hi</p></main>", nil },
		},
		Converter: &mock.Converter{
			ConvertFn: func(string) (string, error) { return converted, nil },
		},
		Titles: &mock.TitleExtractor{
			TitleFn: func(string) string { return "Fallback Title" },
		},
		Concurrency: 1,
	}

	pages, err := s.ExtractPages(context.Background(), "https://d.example", "")
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "Fallback Title", pages[0].Title)
	assert.Equal(t, "https://d.example/page", pages[0].URL)
	assert.Equal(t, converted, pages[0].Content)
}

func TestSitemapStrategy_EmptySitemapYieldsNoPagesNoError(t *testing.T) {
	t.Parallel()

	s := &acquire.SitemapStrategy{
		Sitemaps: sitemapReturning(nil, nil),
	}

	pages, err := s.ExtractPages(context.Background(), "https://d.example", "")
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestSitemapStrategy_DiscoveryErrorPropagates(t *testing.T) {
	t.Parallel()

	s := &acquire.SitemapStrategy{
		Sitemaps: sitemapReturning(nil, errors.New("robots unreachable")),
	}

	_, err := s.ExtractPages(context.Background(), "https://d.example", "")
	assert.Error(t, err)
}

func TestSitemapStrategy_SectionFilter(t *testing.T) {
	t.Parallel()

	s := &acquire.SitemapStrategy{
		Sitemaps: sitemapReturning([]string{
			"https://d.example/guides/a",
			"https://d.example/reference/b",
		}, nil),
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return longMarkdown, nil
			},
		},
		Concurrency: 1,
	}

	pages, err := s.ExtractPages(context.Background(), "https://d.example", "guides")
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "https://d.example/guides/a.md", pages[0].URL)
}
