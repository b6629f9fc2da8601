// Package fetch provides the default HTTP implementation of the engine's
// Fetcher contract: a polite GET client with per-host rate limiting and
// robots.txt compliance, feeding the HTML parser.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// defaultMaxBody caps how much of a response body is read.
const defaultMaxBody = 2 << 20

type response struct {
	StatusCode  int
	Body        []byte
	ContentType string
	FinalURL    string
}

// client is a thin GET-only HTTP client shared by page fetches and
// robots.txt lookups.
type client struct {
	http      *http.Client
	userAgent string
	maxBody   int64
}

func newClient(userAgent string, timeout time.Duration, maxBody int64) *client {
	if maxBody <= 0 {
		maxBody = defaultMaxBody
	}
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	return &client{
		http: &http.Client{
			Transport: transport,
			Timeout:   timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		userAgent: userAgent,
		maxBody:   maxBody,
	}
}

func (c *client) get(ctx context.Context, url string) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &response{
		StatusCode:  resp.StatusCode,
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		FinalURL:    resp.Request.URL.String(),
	}, nil
}

func (c *client) close() {
	c.http.CloseIdleConnections()
}
