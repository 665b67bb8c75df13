package crawl

import (
	"context"
	"sync"

	"github.com/docfold/docfold"
	"golang.org/x/time/rate"
)

var _ docfold.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter rate-limits requests per domain using token buckets.
// Requests to distinct domains proceed independently; within one domain
// they are spaced to the configured rate with no bursting.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per
// second to each domain.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the domain's limiter releases a token, or the
// context is canceled.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
