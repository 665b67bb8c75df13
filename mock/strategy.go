package mock

import (
	"context"

	"github.com/docfold/docfold"
)

var _ docfold.Strategy = (*Strategy)(nil)

type Strategy struct {
	NameFn         func() string
	ExtractPagesFn func(ctx context.Context, rootURL, section string) ([]*docfold.Page, error)
}

func (s *Strategy) Name() string {
	return s.NameFn()
}

func (s *Strategy) ExtractPages(ctx context.Context, rootURL, section string) ([]*docfold.Page, error) {
	return s.ExtractPagesFn(ctx, rootURL, section)
}
