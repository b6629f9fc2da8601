package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/linkscope/linkscope/internal/page"
	"github.com/linkscope/linkscope/internal/parser"
	"github.com/linkscope/linkscope/internal/traversal"
)

// Options configures the HTTP fetcher.
type Options struct {
	UserAgent    string
	Timeout      time.Duration
	Delay        time.Duration // minimum spacing between requests to one host
	MaxBodyBytes int64
	IgnoreRobots bool
}

// HTTPFetcher is the default Fetcher: GET the page, honor robots.txt and the
// per-host delay, and extract head signals plus outbound links from HTML
// responses. Network and HTTP failures are ordinary results, never Go errors.
type HTTPFetcher struct {
	client  *client
	robots  *robotsChecker
	limiter *hostLimiter
	parser  *parser.Parser
}

// NewHTTPFetcher builds a fetcher from the given options.
func NewHTTPFetcher(opts Options) *HTTPFetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = "LinkScope/1.0"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	c := newClient(opts.UserAgent, opts.Timeout, opts.MaxBodyBytes)
	return &HTTPFetcher{
		client:  c,
		robots:  newRobotsChecker(c, opts.IgnoreRobots),
		limiter: newHostLimiter(opts.Delay),
		parser:  parser.New(),
	}
}

// Fetch implements traversal.Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, req traversal.Request) (*traversal.Result, error) {
	if !f.robots.isAllowed(ctx, req.URL) {
		return &traversal.Result{Success: false, Error: "robots disallowed"}, nil
	}

	if err := f.limiter.wait(ctx, req.URL); err != nil {
		return &traversal.Result{Success: false, Error: fmt.Sprintf("rate limit wait: %v", err)}, nil
	}

	resp, err := f.client.get(ctx, req.URL)
	if err != nil {
		return &traversal.Result{Success: false, Error: err.Error()}, nil
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return &traversal.Result{Success: false, Error: fmt.Sprintf("HTTP %d", resp.StatusCode)}, nil
	}

	if !isHTML(resp.ContentType) {
		// Fetched fine but not a document we can expand links from.
		return &traversal.Result{
			Success: true,
			Head:    &page.Head{ContentType: resp.ContentType},
		}, nil
	}

	doc, err := f.parser.Parse(resp.FinalURL, resp.Body, resp.ContentType)
	if err != nil {
		slog.Debug("parse failed", "url", req.URL, "error", err)
		return &traversal.Result{Success: false, Error: fmt.Sprintf("parse: %v", err)}, nil
	}

	return &traversal.Result{
		Success: true,
		Head:    &doc.Head,
		Links:   doc.Links,
	}, nil
}

// Close releases idle connections.
func (f *HTTPFetcher) Close() {
	f.client.close()
}

func isHTML(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.HasPrefix(ct, "text/html") || strings.HasPrefix(ct, "application/xhtml+xml")
}
