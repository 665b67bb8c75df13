// Package download runs a complete documentation download: strategy
// acquisition, consolidation, optional asset download and the final
// atomic write.
package download

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/docfold/docfold"
)

// Acquirer produces pages for a documentation site, reporting which
// strategy succeeded.
type Acquirer interface {
	Acquire(ctx context.Context, rootURL, section string) ([]*docfold.Page, string, error)
}

// Options configure a single download run.
type Options struct {
	URL           string
	OutputPath    string
	Section       string
	IncludeAssets bool
}

// Downloader ties acquisition, consolidation and output together.
type Downloader struct {
	Acquirer Acquirer
	Assets   docfold.AssetService
	Writer   docfold.DocumentWriter
	Logger   *slog.Logger

	// WorkDir holds per-run scratch data (mirror checkouts). Removed
	// after the run unless KeepTemp is set.
	WorkDir  string
	KeepTemp bool

	// Now supplies timestamps; defaults to time.Now.
	Now func() time.Time
}

// Run downloads the site at opts.URL into a single consolidated
// markdown document at opts.OutputPath.
func (d *Downloader) Run(ctx context.Context, opts Options) (*docfold.RunResult, error) {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}
	start := now()

	if d.WorkDir != "" && !d.KeepTemp {
		defer func() {
			if err := os.RemoveAll(d.WorkDir); err != nil {
				logger.Warn("failed to remove work directory", "dir", d.WorkDir, "error", err)
			}
		}()
	}

	pages, strategyName, err := d.Acquirer.Acquire(ctx, opts.URL, opts.Section)
	if err != nil {
		return nil, err
	}

	document := docfold.Consolidate(pages, opts.URL, opts.Section, now().UTC())

	assetCount := 0
	if opts.IncludeAssets && d.Assets != nil {
		assetDir := filepath.Join(filepath.Dir(opts.OutputPath), "assets")
		assetCount, err = d.Assets.DownloadAssets(ctx, pages, assetDir)
		if err != nil {
			logger.Warn("asset download failed", "error", err)
		}
		if assetCount > 0 {
			document = d.Assets.UpdateReferences(document, "assets")
		}
	}

	if err := d.Writer.WriteDocument(opts.OutputPath, document); err != nil {
		return nil, err
	}

	duration := now().Sub(start)
	return &docfold.RunResult{
		StrategyUsed:     strategyName,
		PagesDownloaded:  len(pages),
		AssetsDownloaded: assetCount,
		Duration:         duration,
		PagesPerSecond:   float64(len(pages)) / max(duration.Seconds(), 0.1),
		OutputPath:       opts.OutputPath,
	}, nil
}
