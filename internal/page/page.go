// Package page defines the data shared between the traversal engine, the
// filter chain, and the scorers: discovered links, candidate links awaiting
// admission, and the lightweight head content a fetcher extracts from a page.
package page

import "strings"

// Link is an outbound link reported by a fetcher.
type Link struct {
	URL        string `json:"url"`
	AnchorText string `json:"anchor_text,omitempty"`
}

// Head holds the lightweight metadata a fetcher extracts from a page.
// It is enough for content-type, relevance, and structural quality checks
// without keeping the full document around.
type Head struct {
	Title           string   `json:"title,omitempty"`
	MetaDescription string   `json:"meta_description,omitempty"`
	ContentType     string   `json:"content_type,omitempty"`
	Headings        []string `json:"headings,omitempty"`
	Text            string   `json:"text,omitempty"`
}

// Candidate is a link under consideration for admission into the frontier.
// Head is nil before the candidate itself has been fetched; filters that need
// content must admit in that case.
type Candidate struct {
	URL        string
	ParentURL  string
	AnchorText string
	Depth      int
	Head       *Head
}

// FullText concatenates the textual fields of a head for relevance scoring.
func (h *Head) FullText() string {
	if h == nil {
		return ""
	}
	parts := make([]string, 0, 3+len(h.Headings))
	if h.Title != "" {
		parts = append(parts, h.Title)
	}
	if h.MetaDescription != "" {
		parts = append(parts, h.MetaDescription)
	}
	parts = append(parts, h.Headings...)
	if h.Text != "" {
		parts = append(parts, h.Text)
	}
	return strings.Join(parts, " ")
}
