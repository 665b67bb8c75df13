// Package bloom provides probabilistic URL deduplication.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter is a Bloom filter keyed by URL. Membership tests may report
// false positives (a URL wrongly considered seen) but never false
// negatives, which for deduplication means an occasional skipped
// download and never a duplicate one.
type Filter struct {
	f *bloom.BloomFilter
}

// New creates a filter sized for n expected URLs at the given false
// positive rate.
func New(n uint, fpRate float64) *Filter {
	return &Filter{f: bloom.NewWithEstimates(n, fpRate)}
}

// Add records a URL as seen.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Has reports whether the URL has (probably) been seen.
func (f *Filter) Has(url string) bool {
	return f.f.TestString(url)
}

// Count returns the approximate number of URLs added.
func (f *Filter) Count() uint {
	return uint(f.f.ApproximatedSize())
}
