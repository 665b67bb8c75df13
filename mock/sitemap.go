package mock

import (
	"context"

	"github.com/docfold/docfold"
)

var _ docfold.SitemapService = (*SitemapService)(nil)

type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL)
}
