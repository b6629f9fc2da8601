package filters

import (
	"strings"

	"github.com/linkscope/linkscope/internal/page"
	"github.com/linkscope/linkscope/internal/urlutil"
)

// DomainFilter admits candidates by hostname. Blocked patterns win over
// allowed ones; an empty allow list admits every host not blocked. A pattern
// is either an exact hostname or a "*." prefix matching any subdomain
// ("*.example.com" matches "docs.example.com" but not "example.com").
type DomainFilter struct {
	allowed []string
	blocked []string
}

// NewDomainFilter creates a domain filter from allow and deny lists.
func NewDomainFilter(allowed, blocked []string) *DomainFilter {
	return &DomainFilter{
		allowed: normalizePatterns(allowed),
		blocked: normalizePatterns(blocked),
	}
}

// Name implements Filter.
func (f *DomainFilter) Name() string { return "domain" }

// Allow implements Filter.
func (f *DomainFilter) Allow(c *page.Candidate) (bool, error) {
	host, err := urlutil.Host(c.URL)
	if err != nil {
		return false, err
	}

	for _, pattern := range f.blocked {
		if matchHost(host, pattern) {
			return false, nil
		}
	}

	if len(f.allowed) == 0 {
		return true, nil
	}
	for _, pattern := range f.allowed {
		if matchHost(host, pattern) {
			return true, nil
		}
	}
	return false, nil
}

func matchHost(host, pattern string) bool {
	if sub, ok := strings.CutPrefix(pattern, "*."); ok {
		return strings.HasSuffix(host, "."+sub)
	}
	return host == pattern
}

func normalizePatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
