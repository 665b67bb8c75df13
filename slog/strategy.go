// Package slog provides logging decorators for docfold services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/docfold/docfold"
)

var _ docfold.Strategy = (*LoggingStrategy)(nil)

// LoggingStrategy wraps a Strategy and logs each attempt's outcome and
// duration.
type LoggingStrategy struct {
	strategy docfold.Strategy
	logger   *slog.Logger
}

// NewLoggingStrategy creates a logging decorator around strategy.
func NewLoggingStrategy(strategy docfold.Strategy, logger *slog.Logger) *LoggingStrategy {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LoggingStrategy{strategy: strategy, logger: logger}
}

// Name returns the wrapped strategy's name.
func (s *LoggingStrategy) Name() string {
	return s.strategy.Name()
}

// ExtractPages delegates to the wrapped strategy and logs the attempt.
func (s *LoggingStrategy) ExtractPages(ctx context.Context, rootURL, section string) ([]*docfold.Page, error) {
	s.logger.Info("trying strategy", "strategy", s.strategy.Name(), "url", rootURL)
	start := time.Now()

	pages, err := s.strategy.ExtractPages(ctx, rootURL, section)

	elapsed := time.Since(start).Round(time.Millisecond)
	if err != nil {
		s.logger.Warn("strategy failed",
			"strategy", s.strategy.Name(),
			"duration", elapsed,
			"error", err,
		)
		return nil, err
	}
	s.logger.Info("strategy finished",
		"strategy", s.strategy.Name(),
		"duration", elapsed,
		"pages", len(pages),
	)
	return pages, nil
}
