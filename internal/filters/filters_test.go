package filters

import (
	"errors"
	"testing"

	"github.com/linkscope/linkscope/internal/page"
)

type stubFilter struct {
	name   string
	allow  bool
	err    error
	called *bool
}

func (f *stubFilter) Name() string { return f.name }

func (f *stubFilter) Allow(c *page.Candidate) (bool, error) {
	if f.called != nil {
		*f.called = true
	}
	return f.allow, f.err
}

func TestChainIsLogicalAnd(t *testing.T) {
	cand := &page.Candidate{URL: "https://x.com/a"}

	pass := NewChain(&stubFilter{name: "a", allow: true}, &stubFilter{name: "b", allow: true})
	if !pass.Allow(cand) {
		t.Error("all-pass chain rejected candidate")
	}

	reject := NewChain(&stubFilter{name: "a", allow: true}, &stubFilter{name: "b", allow: false})
	if reject.Allow(cand) {
		t.Error("chain with one rejecting filter admitted candidate")
	}
}

func TestChainShortCircuits(t *testing.T) {
	var secondRan bool
	ch := NewChain(
		&stubFilter{name: "first", allow: false},
		&stubFilter{name: "second", allow: true, called: &secondRan},
	)

	if ch.Allow(&page.Candidate{URL: "https://x.com/a"}) {
		t.Error("chain admitted a rejected candidate")
	}
	if secondRan {
		t.Error("filter after a rejection still ran")
	}
}

func TestChainTreatsErrorAsRejection(t *testing.T) {
	ch := NewChain(&stubFilter{name: "broken", err: errors.New("boom")})
	if ch.Allow(&page.Candidate{URL: "https://x.com/a"}) {
		t.Error("chain admitted a candidate whose filter errored")
	}
}

func TestNilChainAllowsAll(t *testing.T) {
	var ch *Chain
	if !ch.Allow(&page.Candidate{URL: "https://x.com/a"}) {
		t.Error("nil chain rejected candidate")
	}
}

func TestDomainFilter(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		blocked []string
		url     string
		want    bool
	}{
		{"allow_exact", []string{"x.com"}, nil, "https://x.com/a", true},
		{"reject_other", []string{"x.com"}, nil, "https://y.com/a", false},
		{"wildcard_subdomain", []string{"*.x.com"}, nil, "https://docs.x.com/a", true},
		{"wildcard_excludes_apex", []string{"*.x.com"}, nil, "https://x.com/a", false},
		{"blocked_wins", []string{"x.com"}, []string{"x.com"}, "https://x.com/a", false},
		{"empty_allow_admits", nil, nil, "https://anything.io/", true},
		{"empty_allow_still_blocks", nil, []string{"bad.io"}, "https://bad.io/", false},
		{"blocked_wildcard", nil, []string{"*.ads.net"}, "https://track.ads.net/p", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewDomainFilter(tt.allowed, tt.blocked)
			got, err := f.Allow(&page.Candidate{URL: tt.url})
			if err != nil {
				t.Fatalf("Allow failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Allow(%s) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestURLPatternFilter(t *testing.T) {
	f, err := NewURLPatternFilter([]string{"https://x.com/blog/*", "*/docs/*"})
	if err != nil {
		t.Fatalf("NewURLPatternFilter failed: %v", err)
	}

	tests := []struct {
		url  string
		want bool
	}{
		{"https://x.com/blog/post-1", true},
		{"https://y.com/docs/install", true},
		{"https://x.com/shop/cart", false},
		{"https://x.com/blog", false},
	}

	for _, tt := range tests {
		got, err := f.Allow(&page.Candidate{URL: tt.url})
		if err != nil {
			t.Fatalf("Allow(%s) failed: %v", tt.url, err)
		}
		if got != tt.want {
			t.Errorf("Allow(%s) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestURLPatternFilterEmptyAdmitsAll(t *testing.T) {
	f, err := NewURLPatternFilter(nil)
	if err != nil {
		t.Fatalf("NewURLPatternFilter failed: %v", err)
	}
	if ok, _ := f.Allow(&page.Candidate{URL: "https://x.com/a"}); !ok {
		t.Error("empty pattern filter rejected candidate")
	}
}

func TestContentTypeFilter(t *testing.T) {
	f := NewContentTypeFilter([]string{"text/html"})

	tests := []struct {
		name string
		head *page.Head
		want bool
	}{
		{"no_head_passes", nil, true},
		{"html_passes", &page.Head{ContentType: "text/html; charset=utf-8"}, true},
		{"pdf_rejected", &page.Head{ContentType: "application/pdf"}, false},
		{"missing_type_passes", &page.Head{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.Allow(&page.Candidate{URL: "https://x.com/a", Head: tt.head})
			if err != nil {
				t.Fatalf("Allow failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Allow = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContentRelevanceFilter(t *testing.T) {
	f := NewContentRelevanceFilter("distributed tracing", 0.2)

	onTopic := &page.Candidate{
		URL:  "https://x.com/a",
		Head: &page.Head{Title: "Distributed tracing in practice", Text: "spans, traces, distributed tracing systems"},
	}
	offTopic := &page.Candidate{
		URL:  "https://x.com/b",
		Head: &page.Head{Title: "Sourdough basics", Text: "flour, water, salt"},
	}
	unfetched := &page.Candidate{URL: "https://x.com/c"}

	if ok, _ := f.Allow(onTopic); !ok {
		t.Error("on-topic page rejected")
	}
	if ok, _ := f.Allow(offTopic); ok {
		t.Error("off-topic page admitted")
	}
	if ok, _ := f.Allow(unfetched); !ok {
		t.Error("unfetched candidate rejected; relevance needs content")
	}
}

func TestSEOQualityFilter(t *testing.T) {
	f := NewSEOQualityFilter([]string{"golang"}, 5.0)

	good := &page.Head{
		Title:           "Golang concurrency patterns explained",
		MetaDescription: "A practical walkthrough of goroutines, channels, and worker pools in Go programs.",
		Headings:        []string{"Goroutines", "Channels"},
	}
	bare := &page.Head{}

	if q := f.Quality(good); q < 5.0 {
		t.Errorf("well-structured page scored %f, want >= 5", q)
	}
	if q := f.Quality(bare); q != 0 {
		t.Errorf("bare page scored %f, want 0", q)
	}

	if ok, _ := f.Allow(&page.Candidate{URL: "https://x.com/a", Head: bare}); ok {
		t.Error("structureless page admitted")
	}
	if ok, _ := f.Allow(&page.Candidate{URL: "https://x.com/a"}); !ok {
		t.Error("unfetched candidate rejected; quality needs content")
	}
}
