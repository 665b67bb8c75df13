// Package acquire implements the page-acquisition strategies and the
// fallback orchestrator that tries them in order.
package acquire

import (
	"context"
	"log/slog"
	"strings"

	"github.com/docfold/docfold"
)

// Orchestrator tries acquisition strategies in order, accepting the
// first that returns a non-empty page list. There is no quality
// comparison across strategies: first success wins.
type Orchestrator struct {
	Strategies []docfold.Strategy
	Logger     *slog.Logger
}

// Acquire runs the strategy cascade for rootURL. Strategy errors are
// logged and non-fatal; the next strategy is tried. When every strategy
// is exhausted without pages, Acquire fails terminally.
func (o *Orchestrator) Acquire(ctx context.Context, rootURL, section string) ([]*docfold.Page, string, error) {
	logger := o.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	for _, strategy := range o.Strategies {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		pages, err := strategy.ExtractPages(ctx, rootURL, section)
		if err != nil {
			logger.Warn("strategy failed", "strategy", strategy.Name(), "error", err)
			continue
		}
		if len(pages) == 0 {
			logger.Warn("strategy found no pages", "strategy", strategy.Name())
			continue
		}

		logger.Info("strategy succeeded", "strategy", strategy.Name(), "pages", len(pages))
		return pages, strategy.Name(), nil
	}

	return nil, "", docfold.Errorf(docfold.EUNAVAILABLE, "no strategy could extract pages from %s", rootURL)
}

// matchesSection reports whether a URL passes the section filter: a
// case-insensitive substring match. An empty filter passes everything.
func matchesSection(rawURL, section string) bool {
	if section == "" {
		return true
	}
	return strings.Contains(strings.ToLower(rawURL), strings.ToLower(section))
}

// firstMarkdownHeading returns the text of a top-level heading found in
// the first ten lines of markdown, or "".
func firstMarkdownHeading(markdown string) string {
	lines := strings.Split(markdown, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return ""
}
