package docfold

import "context"

// RepoDetector locates a source-repository URL advertised on a page,
// typically through "edit this page" links pointing at a code host.
type RepoDetector interface {
	// DetectRepo returns the clone URL of the repository backing the
	// page, or "" when none can be found. Relative hrefs are resolved
	// against baseURL.
	DetectRepo(markup, baseURL string) string
}

// Cloner produces a local checkout of a remote repository.
type Cloner interface {
	// Clone checks out repoURL into dir. The checkout is shallow; the
	// caller owns dir and is responsible for removing it.
	Clone(ctx context.Context, repoURL, dir string) error
}
