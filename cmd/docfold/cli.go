package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/docfold/docfold"
	"github.com/docfold/docfold/acquire"
	"github.com/docfold/docfold/assets"
	"github.com/docfold/docfold/crawl"
	"github.com/docfold/docfold/download"
	"github.com/docfold/docfold/fs"
	"github.com/docfold/docfold/git"
	"github.com/docfold/docfold/goquery"
	"github.com/docfold/docfold/htmltomarkdown"
	dhttp "github.com/docfold/docfold/http"
	dslog "github.com/docfold/docfold/slog"
	"github.com/google/uuid"
)

// assetRequestsPerSecond bounds asset downloads per domain.
const assetRequestsPerSecond = 5

// CLI defines the docfold command line.
type CLI struct {
	URL           string        `arg:"" help:"Root URL of the documentation site."`
	Output        string        `short:"o" default:"gitbook_download.md" help:"Output file path."`
	Strategy      string        `default:"auto" enum:"auto,mirror,sitemap,scraping" help:"Acquisition strategy (auto tries mirror, sitemap, scraping in order)."`
	SectionPath   string        `help:"Restrict the download to URLs containing this path fragment."`
	MaxConcurrent int           `default:"15" help:"Maximum concurrent page downloads."`
	Delay         time.Duration `default:"100ms" help:"Politeness delay before each request."`
	Timeout       time.Duration `default:"30s" help:"Per-request HTTP timeout."`
	IncludeAssets bool          `help:"Download referenced images and archives alongside the document."`
	KeepTemp      bool          `help:"Keep the temporary work directory after the run."`
	Verbose       bool          `short:"v" help:"Enable debug logging."`
}

// Main is the testable CLI entrypoint.
type Main struct{}

// NewMain creates a Main.
func NewMain() *Main {
	return &Main{}
}

// Run parses args and executes a download, writing the summary to
// stdout and logs to stderr.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("docfold"),
		kong.Description("Download a documentation site into a single markdown document."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(yamlConfig, configPaths...),
	)
	if err != nil {
		return err
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}

	if !strings.HasPrefix(cli.URL, "http://") && !strings.HasPrefix(cli.URL, "https://") {
		return docfold.Errorf(docfold.EINVALID, "URL must start with http:// or https://: %s", cli.URL)
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	workDir := filepath.Join(os.TempDir(), "docfold-"+uuid.NewString())

	fetcher := dhttp.NewFetcher(dhttp.WithTimeout(cli.Timeout))
	defer fetcher.Close()

	extractor := goquery.NewExtractor()
	titles := goquery.NewTitles()
	converter := htmltomarkdown.NewConverter()

	pipeline := &crawl.Pipeline{
		Fetcher:     fetcher,
		Extractor:   extractor,
		Concurrency: cli.MaxConcurrent,
		Delay:       cli.Delay,
		Logger:      logger,
	}

	mirror := &acquire.MirrorStrategy{
		Fetcher: fetcher,
		Repos:   goquery.NewRepoFinder(),
		Cloner:  git.NewCloner(),
		WorkDir: workDir,
		Logger:  logger,
	}
	sitemap := &acquire.SitemapStrategy{
		Sitemaps:    dhttp.NewSitemapService(&http.Client{Timeout: cli.Timeout}),
		Fetcher:     fetcher,
		Regions:     extractor,
		Converter:   converter,
		Titles:      titles,
		Concurrency: cli.MaxConcurrent,
		Delay:       cli.Delay,
		Logger:      logger,
	}
	scraping := &acquire.ScrapingStrategy{
		Discoverer: goquery.NewDiscoverer(fetcher, logger),
		Pipeline:   pipeline,
	}

	strategies, err := selectStrategies(cli.Strategy, mirror, sitemap, scraping)
	if err != nil {
		return err
	}
	for i, s := range strategies {
		strategies[i] = dslog.NewLoggingStrategy(s, logger)
	}

	downloader := &download.Downloader{
		Acquirer: &acquire.Orchestrator{Strategies: strategies, Logger: logger},
		Assets: assets.NewService(
			&http.Client{Timeout: cli.Timeout},
			crawl.NewDomainLimiter(assetRequestsPerSecond),
			logger,
		),
		Writer:   fs.NewWriter(),
		Logger:   logger,
		WorkDir:  workDir,
		KeepTemp: cli.KeepTemp,
	}

	result, err := downloader.Run(ctx, download.Options{
		URL:           cli.URL,
		OutputPath:    cli.Output,
		Section:       cli.SectionPath,
		IncludeAssets: cli.IncludeAssets,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Strategy: %s\n", result.StrategyUsed)
	fmt.Fprintf(stdout, "Pages: %d\n", result.PagesDownloaded)
	if cli.IncludeAssets {
		fmt.Fprintf(stdout, "Assets: %d\n", result.AssetsDownloaded)
	}
	fmt.Fprintf(stdout, "Time: %s\n", result.Duration.Round(time.Millisecond))
	fmt.Fprintf(stdout, "Speed: %.1f pages/sec\n", result.PagesPerSecond)
	fmt.Fprintf(stdout, "Output: %s\n", result.OutputPath)
	return nil
}

// selectStrategies maps the --strategy flag to an ordered cascade.
func selectStrategies(name string, mirror, sitemap, scraping docfold.Strategy) ([]docfold.Strategy, error) {
	switch name {
	case "auto":
		return []docfold.Strategy{mirror, sitemap, scraping}, nil
	case "mirror":
		return []docfold.Strategy{mirror}, nil
	case "sitemap":
		return []docfold.Strategy{sitemap}, nil
	case "scraping":
		return []docfold.Strategy{scraping}, nil
	default:
		return nil, docfold.Errorf(docfold.EINVALID, "unknown strategy %q", name)
	}
}
