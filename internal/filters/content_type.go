package filters

import (
	"strings"

	"github.com/linkscope/linkscope/internal/page"
)

// ContentTypeFilter rejects pages whose response content type is outside the
// allowed set. The content type only exists after a fetch, so this filter
// gates the expansion of an already-fetched page's outbound links; candidates
// without head content pass untouched.
type ContentTypeFilter struct {
	allowed []string
}

// NewContentTypeFilter creates a filter for the given media type prefixes
// (e.g. "text/html", "application/xhtml+xml").
func NewContentTypeFilter(allowed []string) *ContentTypeFilter {
	types := make([]string, 0, len(allowed))
	for _, t := range allowed {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			types = append(types, t)
		}
	}
	return &ContentTypeFilter{allowed: types}
}

// Name implements Filter.
func (f *ContentTypeFilter) Name() string { return "content-type" }

// Allow implements Filter.
func (f *ContentTypeFilter) Allow(c *page.Candidate) (bool, error) {
	if len(f.allowed) == 0 || c.Head == nil || c.Head.ContentType == "" {
		return true, nil
	}

	ct := strings.ToLower(c.Head.ContentType)
	for _, want := range f.allowed {
		if strings.HasPrefix(ct, want) {
			return true, nil
		}
	}
	return false, nil
}
