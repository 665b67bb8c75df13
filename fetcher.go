package docfold

import "context"

// Fetcher retrieves raw markup from URLs.
type Fetcher interface {
	// Fetch retrieves the body of the given URL. Any non-2xx status is
	// an error. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
