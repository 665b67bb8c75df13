package mock

import (
	"context"

	"github.com/docfold/docfold"
)

var _ docfold.RepoDetector = (*RepoDetector)(nil)

type RepoDetector struct {
	DetectRepoFn func(markup, baseURL string) string
}

func (d *RepoDetector) DetectRepo(markup, baseURL string) string {
	return d.DetectRepoFn(markup, baseURL)
}

var _ docfold.Cloner = (*Cloner)(nil)

type Cloner struct {
	CloneFn func(ctx context.Context, repoURL, dir string) error
}

func (c *Cloner) Clone(ctx context.Context, repoURL, dir string) error {
	return c.CloneFn(ctx, repoURL, dir)
}
