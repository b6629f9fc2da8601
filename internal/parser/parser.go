// Package parser extracts the head signals and outbound links a traversal
// needs from fetched HTML documents.
package parser

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/linkscope/linkscope/internal/page"
)

// maxTextRunes caps the body text excerpt kept for relevance scoring.
// Full page bodies are not stored; a few thousand runes of leading text
// carry enough signal for BM25.
const maxTextRunes = 4000

// Document is the parsed form of a fetched page.
type Document struct {
	Head  page.Head
	Links []page.Link
}

// Parser turns raw HTML into a Document. A single Parser is stateless and
// safe for concurrent use.
type Parser struct{}

// New creates a Parser.
func New() *Parser {
	return &Parser{}
}

// Parse extracts head signals and outbound links from body. Relative link
// targets are resolved against baseURL; only http and https links are kept.
func (p *Parser) Parse(baseURL string, body []byte, contentType string) (*Document, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	d := &Document{
		Head:  page.Head{ContentType: contentType},
		Links: []page.Link{},
	}

	var text strings.Builder
	p.walk(doc, base, d, &text)
	d.Head.Text = clampRunes(collapseSpace(text.String()), maxTextRunes)

	return d, nil
}

// walk traverses the HTML tree once, filling the document as it goes.
func (p *Parser) walk(n *html.Node, base *url.URL, d *Document, text *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript", "template":
			return

		case "title":
			if d.Head.Title == "" {
				d.Head.Title = collapseSpace(textContent(n))
			}
			return

		case "meta":
			p.parseMeta(n, d)

		case "h1", "h2", "h3":
			if h := collapseSpace(textContent(n)); h != "" {
				d.Head.Headings = append(d.Head.Headings, h)
			}

		case "a":
			p.parseAnchor(n, base, d)
		}
	}

	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			text.WriteString(t)
			text.WriteByte(' ')
		}
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c, base, d, text)
	}
}

func (p *Parser) parseMeta(n *html.Node, d *Document) {
	var name, content string
	for _, attr := range n.Attr {
		switch attr.Key {
		case "name":
			name = strings.ToLower(attr.Val)
		case "content":
			content = attr.Val
		}
	}
	if name == "description" && d.Head.MetaDescription == "" {
		d.Head.MetaDescription = strings.TrimSpace(content)
	}
}

func (p *Parser) parseAnchor(n *html.Node, base *url.URL, d *Document) {
	var href string
	for _, attr := range n.Attr {
		if attr.Key == "href" {
			href = strings.TrimSpace(attr.Val)
			break
		}
	}
	if href == "" || strings.HasPrefix(href, "#") {
		return
	}

	u, err := url.Parse(href)
	if err != nil {
		return
	}
	resolved := base.ResolveReference(u)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return
	}

	d.Links = append(d.Links, page.Link{
		URL:        resolved.String(),
		AnchorText: collapseSpace(textContent(n)),
	})
}

// textContent concatenates the text nodes under n.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var parts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := textContent(c); strings.TrimSpace(t) != "" {
			parts = append(parts, strings.TrimSpace(t))
		}
	}
	return strings.Join(parts, " ")
}

// collapseSpace squeezes runs of whitespace into single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func clampRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
