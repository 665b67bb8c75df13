// Package git provides a go-git based implementation of docfold.Cloner
// for mirror checkouts.
package git

import (
	"context"
	"fmt"
	"os"

	"github.com/docfold/docfold"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// defaultBranches are tried in order when cloning; documentation repos
// overwhelmingly use one of the two.
var defaultBranches = []string{"main", "master"}

var _ docfold.Cloner = (*Cloner)(nil)

// Cloner produces shallow single-branch checkouts of remote
// repositories.
type Cloner struct {
	// Depth of the shallow clone; 1 when <= 0.
	Depth int
}

// NewCloner creates a Cloner with depth-1 checkouts.
func NewCloner() *Cloner {
	return &Cloner{Depth: 1}
}

// Clone checks out repoURL into dir, trying the default branches in
// order. A failed attempt removes its partial checkout before the next
// branch is tried.
func (c *Cloner) Clone(ctx context.Context, repoURL, dir string) error {
	depth := c.Depth
	if depth <= 0 {
		depth = 1
	}

	var lastErr error
	for _, branch := range defaultBranches {
		_, err := gogit.PlainCloneContext(ctx, dir, false, &gogit.CloneOptions{
			URL:           repoURL,
			Depth:         depth,
			ReferenceName: plumbing.NewBranchReferenceName(branch),
			SingleBranch:  true,
		})
		if err == nil {
			return nil
		}
		lastErr = err

		_ = os.RemoveAll(dir)
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return fmt.Errorf("cloning %s: %w", repoURL, lastErr)
}
