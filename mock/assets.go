package mock

import (
	"context"

	"github.com/docfold/docfold"
)

var _ docfold.AssetService = (*AssetService)(nil)

type AssetService struct {
	DownloadAssetsFn   func(ctx context.Context, pages []*docfold.Page, destDir string) (int, error)
	UpdateReferencesFn func(content, relDir string) string
}

func (s *AssetService) DownloadAssets(ctx context.Context, pages []*docfold.Page, destDir string) (int, error) {
	return s.DownloadAssetsFn(ctx, pages, destDir)
}

func (s *AssetService) UpdateReferences(content, relDir string) string {
	return s.UpdateReferencesFn(content, relDir)
}

var _ docfold.DocumentWriter = (*DocumentWriter)(nil)

type DocumentWriter struct {
	WriteDocumentFn func(path, content string) error
}

func (w *DocumentWriter) WriteDocument(path, content string) error {
	return w.WriteDocumentFn(path, content)
}

var _ docfold.DomainLimiter = (*DomainLimiter)(nil)

type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, domain)
}
