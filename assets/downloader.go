// Package assets downloads binary assets (images, archives) referenced
// by downloaded pages and rewrites page content to point at the local
// copies.
package assets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/docfold/docfold"
	"github.com/docfold/docfold/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel asset downloads.
const DefaultConcurrency = 10

// Reference extraction patterns, applied to both the extracted markdown
// and the raw page HTML.
var (
	markdownImageRe = regexp.MustCompile(`!\[[^\]]*\]\(([^)\s]+)`)
	markdownLinkRe  = regexp.MustCompile(`\[[^\]]*\]\(([^)\s]+)`)
	imgSrcRe        = regexp.MustCompile(`<img[^>]+src=["']([^"']+)["']`)
	srcAttrRe       = regexp.MustCompile(`src=["']([^"']+)["']`)
	hrefAttrRe      = regexp.MustCompile(`href=["']([^"']+)["']`)
)

var referencePatterns = []*regexp.Regexp{
	markdownImageRe,
	imgSrcRe,
	srcAttrRe,
	markdownLinkRe,
	hrefAttrRe,
}

// assetExtensions marks URL paths worth downloading.
var assetExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
	".webp": true,
	".ico":  true,
	".pdf":  true,
	".zip":  true,
	".tar":  true,
	".gz":   true,
}

var _ docfold.AssetService = (*Service)(nil)

// Service implements docfold.AssetService over HTTP. Downloads are
// deduplicated with a Bloom filter and rate limited per domain.
type Service struct {
	Client      *http.Client
	Limiter     docfold.DomainLimiter
	Concurrency int
	Logger      *slog.Logger
}

// NewService creates a Service with sensible defaults.
func NewService(client *http.Client, limiter docfold.DomainLimiter, logger *slog.Logger) *Service {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		Client:      client,
		Limiter:     limiter,
		Concurrency: DefaultConcurrency,
		Logger:      logger,
	}
}

// DownloadAssets finds asset references in pages and downloads each
// unique asset into destDir. Individual failures are logged and
// skipped; the returned count covers successful downloads only.
func (s *Service) DownloadAssets(ctx context.Context, pages []*docfold.Page, destDir string) (int, error) {
	urls := s.collectAssetURLs(pages)
	if len(urls) == 0 {
		return 0, nil
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return 0, err
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var downloaded atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, assetURL := range urls {
		g.Go(func() error {
			if err := s.downloadOne(gctx, assetURL, destDir); err != nil {
				s.Logger.Warn("asset download failed", "url", assetURL, "error", err)
				return nil
			}
			downloaded.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(downloaded.Load()), err
	}
	return int(downloaded.Load()), nil
}

// collectAssetURLs extracts deduplicated absolute asset URLs from the
// pages' markdown and raw HTML.
func (s *Service) collectAssetURLs(pages []*docfold.Page) []string {
	seen := bloom.New(10000, 0.001)
	var urls []string

	for _, page := range pages {
		base, err := url.Parse(page.URL)
		if err != nil {
			base = nil
		}
		for _, body := range []string{page.Content, page.RawHTML} {
			for _, re := range referencePatterns {
				for _, m := range re.FindAllStringSubmatch(body, -1) {
					ref := strings.TrimSpace(m[1])
					abs, ok := resolveAssetURL(ref, base)
					if !ok {
						continue
					}
					if seen.Has(abs) {
						continue
					}
					seen.Add(abs)
					urls = append(urls, abs)
				}
			}
		}
	}
	return urls
}

// resolveAssetURL resolves ref against base and reports whether it
// points at a downloadable asset.
func resolveAssetURL(ref string, base *url.URL) (string, bool) {
	if ref == "" ||
		strings.HasPrefix(ref, "#") ||
		strings.HasPrefix(ref, "data:") ||
		strings.HasPrefix(ref, "javascript:") {
		return "", false
	}

	parsed, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	if base != nil {
		parsed = base.ResolveReference(parsed)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", false
	}
	if !assetExtensions[strings.ToLower(path.Ext(parsed.Path))] {
		return "", false
	}

	parsed.Fragment = ""
	return parsed.String(), true
}

// downloadOne fetches a single asset into destDir, respecting the
// per-domain rate limit. Existing files are left alone.
func (s *Service) downloadOne(ctx context.Context, assetURL, destDir string) error {
	parsed, err := url.Parse(assetURL)
	if err != nil {
		return err
	}

	dest := filepath.Join(destDir, AssetFilename(assetURL))
	if _, err := os.Stat(dest); err == nil {
		return nil
	}

	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx, parsed.Hostname()); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("HTTP %d for %s", resp.StatusCode, assetURL)
	}

	tmp, err := os.CreateTemp(destDir, ".asset-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, dest)
}

// UpdateReferences rewrites markdown image targets that point at
// downloadable assets to relDir-relative local paths.
func (s *Service) UpdateReferences(content, relDir string) string {
	return markdownImageRe.ReplaceAllStringFunc(content, func(m string) string {
		sub := markdownImageRe.FindStringSubmatch(m)
		target := sub[1]
		if !assetExtensions[strings.ToLower(path.Ext(stripQuery(target)))] {
			return m
		}
		local := path.Join(relDir, AssetFilename(target))
		return strings.Replace(m, target, local, 1)
	})
}

// AssetFilename derives a stable local filename for an asset URL. URLs
// without a usable basename hash to a synthetic name.
func AssetFilename(assetURL string) string {
	name := path.Base(stripQuery(assetURL))
	if name == "" || name == "." || name == "/" || !strings.Contains(name, ".") {
		return fmt.Sprintf("asset-%x%s", xxhash.Sum64String(assetURL), path.Ext(name))
	}
	return name
}

func stripQuery(rawURL string) string {
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}
