package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/linkscope/linkscope/internal/traversal"
)

func newTestFetcher() *HTTPFetcher {
	return NewHTTPFetcher(Options{
		UserAgent:    "LinkScope-test/1.0",
		Timeout:      5 * time.Second,
		IgnoreRobots: true,
	})
}

func TestFetchParsesHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><head><title>Home</title></head>
<body><a href="/about">About us</a></body></html>`)
	}))
	defer srv.Close()

	f := newTestFetcher()
	defer f.Close()

	res, err := f.Fetch(context.Background(), traversal.Request{URL: srv.URL + "/"})
	if err != nil {
		t.Fatalf("Fetch returned a Go error: %v", err)
	}
	if !res.Success {
		t.Fatalf("Fetch failed: %s", res.Error)
	}
	if res.Head == nil || res.Head.Title != "Home" {
		t.Errorf("Head = %+v, want title Home", res.Head)
	}
	if len(res.Links) != 1 || res.Links[0].URL != srv.URL+"/about" {
		t.Errorf("Links = %+v", res.Links)
	}
	if res.Links[0].AnchorText != "About us" {
		t.Errorf("AnchorText = %q", res.Links[0].AnchorText)
	}
}

func TestFetchHTTPErrorIsOrdinaryFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := newTestFetcher()
	defer f.Close()

	res, err := f.Fetch(context.Background(), traversal.Request{URL: srv.URL + "/missing"})
	if err != nil {
		t.Fatalf("Fetch returned a Go error: %v", err)
	}
	if res.Success {
		t.Error("404 reported as success")
	}
	if res.Error != "HTTP 404" {
		t.Errorf("Error = %q, want %q", res.Error, "HTTP 404")
	}
}

func TestFetchNetworkFailureIsOrdinaryFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	f := newTestFetcher()
	defer f.Close()

	res, err := f.Fetch(context.Background(), traversal.Request{URL: srv.URL + "/"})
	if err != nil {
		t.Fatalf("Fetch returned a Go error: %v", err)
	}
	if res.Success {
		t.Error("unreachable host reported as success")
	}
	if res.Error == "" {
		t.Error("missing error message for network failure")
	}
}

func TestFetchNonHTMLSkipsLinkExtraction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		fmt.Fprint(w, "%PDF-1.4")
	}))
	defer srv.Close()

	f := newTestFetcher()
	defer f.Close()

	res, err := f.Fetch(context.Background(), traversal.Request{URL: srv.URL + "/doc"})
	if err != nil {
		t.Fatalf("Fetch returned a Go error: %v", err)
	}
	if !res.Success {
		t.Fatalf("Fetch failed: %s", res.Error)
	}
	if len(res.Links) != 0 {
		t.Errorf("extracted %d links from a PDF", len(res.Links))
	}
	if res.Head == nil || !strings.HasPrefix(res.Head.ContentType, "application/pdf") {
		t.Errorf("Head = %+v, want pdf content type", res.Head)
	}
}

func TestFetchHonorsRobots(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "User-agent: *\nDisallow: /private\n")
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body>ok</body></html>")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := NewHTTPFetcher(Options{Timeout: 5 * time.Second})
	defer f.Close()

	res, err := f.Fetch(context.Background(), traversal.Request{URL: srv.URL + "/private/data"})
	if err != nil {
		t.Fatalf("Fetch returned a Go error: %v", err)
	}
	if res.Success {
		t.Error("disallowed path fetched")
	}
	if res.Error != "robots disallowed" {
		t.Errorf("Error = %q", res.Error)
	}

	res, err = f.Fetch(context.Background(), traversal.Request{URL: srv.URL + "/public"})
	if err != nil {
		t.Fatalf("Fetch returned a Go error: %v", err)
	}
	if !res.Success {
		t.Errorf("allowed path rejected: %s", res.Error)
	}
}

func TestRobotsPatternMatching(t *testing.T) {
	tests := []struct {
		path    string
		pattern string
		want    bool
	}{
		{"/private/data", "/private", true},
		{"/public", "/private", false},
		{"/a/tmp/b", "/a/*/b", true},
		{"/a/b", "/a/*/b", false},
		{"/exact", "/exact$", true},
		{"/exact/sub", "/exact$", false},
	}

	for _, tt := range tests {
		if got := matchesRobotsPattern(tt.path, tt.pattern); got != tt.want {
			t.Errorf("matchesRobotsPattern(%q, %q) = %v, want %v", tt.path, tt.pattern, got, tt.want)
		}
	}
}

func TestParseRobotsScopesToAgent(t *testing.T) {
	content := `
User-agent: googlebot
Disallow: /only-google

User-agent: *
Disallow: /everyone
Allow: /everyone/except
`
	rules := parseRobots(content)
	if len(rules.disallowed) != 1 || rules.disallowed[0] != "/everyone" {
		t.Errorf("disallowed = %v", rules.disallowed)
	}
	if len(rules.allowed) != 1 || rules.allowed[0] != "/everyone/except" {
		t.Errorf("allowed = %v", rules.allowed)
	}
}
