package traversal

import (
	"context"

	"github.com/linkscope/linkscope/internal/page"
)

// Request identifies one page the engine wants fetched.
type Request struct {
	URL       string
	ParentURL string
	Depth     int
}

// Result is the fetcher's answer for one request. Network and HTTP failures
// are ordinary outcomes reported with Success=false and an Error message; a
// fetcher returns a non-nil Go error only for defects in the fetcher itself.
type Result struct {
	Success bool
	Head    *page.Head
	Links   []page.Link
	Error   string
}

// Fetcher retrieves pages on behalf of the engine. Implementations must be
// safe for concurrent use; the engine issues up to Concurrency fetches at
// once.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (*Result, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, req Request) (*Result, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, req Request) (*Result, error) {
	return f(ctx, req)
}
