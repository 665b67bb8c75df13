package goquery_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/docfold/docfold/goquery"
	"github.com/docfold/docfold/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fetcherReturning(markup string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(context.Context, string) (string, error) {
			return markup, nil
		},
	}
}

func TestDiscoverer_SidebarLinks(t *testing.T) {
	t.Parallel()

	markup := `<html><body>
		<div data-testid="sidebar">
			<a href="/intro">Introduction</a>
			<a href="/usage">Usage</a>
			<a href="https://docs.example.com/api">API</a>
		</div>
	</body></html>`

	d := goquery.NewDiscoverer(fetcherReturning(markup), nil)
	links := d.Discover(context.Background(), "https://docs.example.com/")

	require.Len(t, links, 3)
	assert.Equal(t, "https://docs.example.com/intro", links[0].URL)
	assert.Equal(t, "Introduction", links[0].Title)
	assert.Equal(t, "https://docs.example.com/usage", links[1].URL)
	assert.Equal(t, "https://docs.example.com/api", links[2].URL)
}

func TestDiscoverer_CascadeStopsWhenEnoughLinks(t *testing.T) {
	t.Parallel()

	// The sidebar yields six links, so the nav block must never be
	// consulted.
	var sidebar strings.Builder
	for i := 0; i < 6; i++ {
		fmt.Fprintf(&sidebar, `<a href="/page-%d">Page %d</a>`, i, i)
	}
	markup := `<html><body>
		<div class="sidebar">` + sidebar.String() + `</div>
		<nav><a href="/unwanted">Unwanted</a></nav>
	</body></html>`

	d := goquery.NewDiscoverer(fetcherReturning(markup), nil)
	links := d.Discover(context.Background(), "https://docs.example.com/")

	require.Len(t, links, 6)
	for _, l := range links {
		assert.NotContains(t, l.URL, "unwanted")
	}
}

func TestDiscoverer_CascadeContinuesPastSparseSelectors(t *testing.T) {
	t.Parallel()

	// Two sidebar links are not enough; nav links accumulate on top.
	markup := `<html><body>
		<div class="sidebar">
			<a href="/a">A</a>
			<a href="/b">B</a>
		</div>
		<nav><a href="/c">C</a></nav>
	</body></html>`

	d := goquery.NewDiscoverer(fetcherReturning(markup), nil)
	links := d.Discover(context.Background(), "https://docs.example.com/")

	require.Len(t, links, 3)
	assert.Equal(t, "https://docs.example.com/c", links[2].URL)
}

func TestDiscoverer_Filtering(t *testing.T) {
	t.Parallel()

	markup := `<html><body><nav>
		<a href="/guide">Guide</a>
		<a href="/search">Search</a>
		<a href="/login">Login</a>
		<a href="/api/v1/things">API endpoint</a>
		<a href="/styles.css">Styles</a>
		<a href="/logo.png">Logo</a>
		<a href="mailto:team@example.com">Mail</a>
		<a href="https://other.example.net/page">External</a>
		<a href="#section">Anchor</a>
		<a href="/empty"></a>
	</nav></body></html>`

	d := goquery.NewDiscoverer(fetcherReturning(markup), nil)
	links := d.Discover(context.Background(), "https://docs.example.com/")

	require.Len(t, links, 1)
	assert.Equal(t, "https://docs.example.com/guide", links[0].URL)
}

func TestDiscoverer_DeduplicatesAcrossFragments(t *testing.T) {
	t.Parallel()

	markup := `<html><body><nav>
		<a href="/page">Page</a>
		<a href="/page#intro">Page Intro</a>
		<a href="/page">Page Again</a>
	</nav></body></html>`

	d := goquery.NewDiscoverer(fetcherReturning(markup), nil)
	links := d.Discover(context.Background(), "https://docs.example.com/")

	require.Len(t, links, 1)
	assert.Equal(t, "Page", links[0].Title)
}

func TestDiscoverer_TruncatesLongTitles(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 150)
	markup := `<html><body><nav><a href="/page">` + long + `</a></nav></body></html>`

	d := goquery.NewDiscoverer(fetcherReturning(markup), nil)
	links := d.Discover(context.Background(), "https://docs.example.com/")

	require.Len(t, links, 1)
	assert.Len(t, links[0].Title, 100)
}

func TestDiscoverer_EmptyOnFetchError(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(context.Context, string) (string, error) {
			return "", errors.New("connection refused")
		},
	}

	d := goquery.NewDiscoverer(fetcher, nil)
	links := d.Discover(context.Background(), "https://docs.example.com/")
	assert.Empty(t, links)
}

func TestDiscoverer_EmptyWhenNothingValid(t *testing.T) {
	t.Parallel()

	markup := `<html><body><nav>
		<a href="/search">Search</a>
		<a href="https://elsewhere.example.org/x">External</a>
	</nav></body></html>`

	d := goquery.NewDiscoverer(fetcherReturning(markup), nil)
	links := d.Discover(context.Background(), "https://docs.example.com/")
	assert.Empty(t, links)
}
