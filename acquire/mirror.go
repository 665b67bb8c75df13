package acquire

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/docfold/docfold"
)

var _ docfold.Strategy = (*MirrorStrategy)(nil)

// MirrorStrategy acquires pages from a version-controlled source mirror
// instead of scraping: it detects the repository advertised on the root
// page, checks it out shallowly and collects the markdown files. This
// is the fastest strategy when it applies, so it runs first in the
// default cascade.
type MirrorStrategy struct {
	Fetcher docfold.Fetcher
	Repos   docfold.RepoDetector
	Cloner  docfold.Cloner

	// WorkDir is the parent directory for checkouts. The caller owns
	// it and removes it after the run.
	WorkDir string

	Logger *slog.Logger
}

// Name returns the strategy's identifier.
func (s *MirrorStrategy) Name() string {
	return "mirror"
}

// ExtractPages detects and clones the site's source repository, then
// reads every markdown file under the section path (or the whole
// checkout). Returns nil when the site advertises no repository.
func (s *MirrorStrategy) ExtractPages(ctx context.Context, rootURL, section string) ([]*docfold.Page, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	markup, err := s.Fetcher.Fetch(ctx, rootURL)
	if err != nil {
		return nil, err
	}

	repoURL := s.Repos.DetectRepo(markup, rootURL)
	if repoURL == "" {
		return nil, nil
	}
	logger.Info("detected source repository", "repo", repoURL)

	checkout := filepath.Join(s.WorkDir, "mirror")
	if err := s.Cloner.Clone(ctx, repoURL, checkout); err != nil {
		return nil, err
	}

	searchDir := checkout
	if section != "" {
		searchDir = filepath.Join(checkout, filepath.FromSlash(section))
		if _, err := os.Stat(searchDir); err != nil {
			logger.Warn("section path not found in mirror", "section", section)
			return nil, nil
		}
	}

	return collectMarkdownPages(searchDir, logger)
}

// collectMarkdownPages reads every .md file under dir into a Page.
func collectMarkdownPages(dir string, logger *slog.Logger) ([]*docfold.Page, error) {
	var pages []*docfold.Page

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("failed to read mirror file", "path", path, "error", err)
			return nil
		}

		markdown := string(content)
		title := firstMarkdownHeading(markdown)
		if title == "" {
			title = humanizeStem(path)
		}

		pages = append(pages, &docfold.Page{
			Title:   title,
			URL:     path,
			Content: markdown,
			Source:  docfold.SourceMirror,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pages, nil
}

// humanizeStem turns a filename like "getting-started.md" into
// "Getting Started".
func humanizeStem(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	stem = strings.NewReplacer("-", " ", "_", " ").Replace(stem)

	var b strings.Builder
	prevLetter := false
	for _, r := range stem {
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
