package docfold

import "context"

// AssetService downloads binary resources referenced by merged content
// and rewrites references to point at the local copies.
type AssetService interface {
	// DownloadAssets scans the pages for asset references (images,
	// archives, PDFs), downloads them into destDir and returns the
	// number downloaded. Individual download failures are skipped.
	DownloadAssets(ctx context.Context, pages []*Page, destDir string) (int, error)

	// UpdateReferences rewrites asset URLs embedded in the merged
	// document to point at relDir.
	UpdateReferences(content, relDir string) string
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// DocumentWriter persists the final merged document.
type DocumentWriter interface {
	// WriteDocument writes content to path atomically: no other
	// process may observe a half-written file.
	WriteDocument(path, content string) error
}
