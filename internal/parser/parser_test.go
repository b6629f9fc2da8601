package parser

import (
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>  Queueing   Theory  </title>
  <meta name="description" content="Notes on queues and schedulers.">
  <script>var ignored = true;</script>
  <style>.hidden { display: none; }</style>
</head>
<body>
  <h1>Queueing Theory</h1>
  <h2>Little's Law</h2>
  <p>Arrival rate times wait time equals queue length.</p>
  <a href="/chapters/two">Chapter Two</a>
  <a href="https://other.example.org/ref">External reference</a>
  <a href="mailto:author@example.com">Email</a>
  <a href="#top">Back to top</a>
  <a href="javascript:void(0)">Noop</a>
</body>
</html>`

func TestParseExtractsHead(t *testing.T) {
	p := New()
	doc, err := p.Parse("https://example.com/book", []byte(samplePage), "text/html; charset=utf-8")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if doc.Head.Title != "Queueing Theory" {
		t.Errorf("Title = %q, want %q", doc.Head.Title, "Queueing Theory")
	}
	if doc.Head.MetaDescription != "Notes on queues and schedulers." {
		t.Errorf("MetaDescription = %q", doc.Head.MetaDescription)
	}
	if doc.Head.ContentType != "text/html; charset=utf-8" {
		t.Errorf("ContentType = %q", doc.Head.ContentType)
	}

	wantHeadings := []string{"Queueing Theory", "Little's Law"}
	if len(doc.Head.Headings) != len(wantHeadings) {
		t.Fatalf("Headings = %v, want %v", doc.Head.Headings, wantHeadings)
	}
	for i, h := range wantHeadings {
		if doc.Head.Headings[i] != h {
			t.Errorf("Headings[%d] = %q, want %q", i, doc.Head.Headings[i], h)
		}
	}

	if !strings.Contains(doc.Head.Text, "Arrival rate times wait time") {
		t.Errorf("Text missing body copy: %q", doc.Head.Text)
	}
	if strings.Contains(doc.Head.Text, "ignored") {
		t.Error("script content leaked into text")
	}
	if strings.Contains(doc.Head.Text, "display") {
		t.Error("style content leaked into text")
	}
}

func TestParseExtractsLinks(t *testing.T) {
	p := New()
	doc, err := p.Parse("https://example.com/book", []byte(samplePage), "text/html")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := map[string]string{
		"https://example.com/chapters/two": "Chapter Two",
		"https://other.example.org/ref":    "External reference",
	}

	if len(doc.Links) != len(want) {
		t.Fatalf("got %d links %v, want %d", len(doc.Links), doc.Links, len(want))
	}
	for _, l := range doc.Links {
		anchor, ok := want[l.URL]
		if !ok {
			t.Errorf("unexpected link %q", l.URL)
			continue
		}
		if l.AnchorText != anchor {
			t.Errorf("anchor for %q = %q, want %q", l.URL, l.AnchorText, anchor)
		}
	}
}

func TestParseRelativeResolution(t *testing.T) {
	body := `<a href="../up">Up</a><a href="?page=2">Next</a>`
	p := New()
	doc, err := p.Parse("https://example.com/a/b/c", []byte(body), "text/html")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	got := map[string]bool{}
	for _, l := range doc.Links {
		got[l.URL] = true
	}
	for _, want := range []string{"https://example.com/a/up", "https://example.com/a/b/c?page=2"} {
		if !got[want] {
			t.Errorf("missing resolved link %q; got %v", want, doc.Links)
		}
	}
}

func TestParseInvalidBaseURL(t *testing.T) {
	p := New()
	if _, err := p.Parse("://not-a-url", []byte("<p>x</p>"), "text/html"); err == nil {
		t.Error("expected error for invalid base URL")
	}
}

func TestParseTextCapped(t *testing.T) {
	body := "<p>" + strings.Repeat("word ", maxTextRunes) + "</p>"
	p := New()
	doc, err := p.Parse("https://example.com/", []byte(body), "text/html")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if n := len([]rune(doc.Head.Text)); n > maxTextRunes {
		t.Errorf("text excerpt has %d runes, cap is %d", n, maxTextRunes)
	}
}
