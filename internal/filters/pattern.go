package filters

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/linkscope/linkscope/internal/page"
)

// URLPatternFilter admits candidates whose full URL matches at least one
// glob-style inclusion pattern. "*" matches any run of characters, including
// slashes ("https://x.com/blog/*" admits everything under /blog/).
type URLPatternFilter struct {
	patterns []*regexp.Regexp
}

// NewURLPatternFilter compiles the given glob patterns. An unparseable
// pattern is a configuration error.
func NewURLPatternFilter(globs []string) (*URLPatternFilter, error) {
	patterns := make([]*regexp.Regexp, 0, len(globs))
	for _, g := range globs {
		re, err := compileGlob(g)
		if err != nil {
			return nil, fmt.Errorf("invalid URL pattern %q: %w", g, err)
		}
		patterns = append(patterns, re)
	}
	return &URLPatternFilter{patterns: patterns}, nil
}

// Name implements Filter.
func (f *URLPatternFilter) Name() string { return "url-pattern" }

// Allow implements Filter.
func (f *URLPatternFilter) Allow(c *page.Candidate) (bool, error) {
	if len(f.patterns) == 0 {
		return true, nil
	}
	for _, re := range f.patterns {
		if re.MatchString(c.URL) {
			return true, nil
		}
	}
	return false, nil
}

// compileGlob translates a glob into an anchored regular expression.
func compileGlob(glob string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")
	for i, part := range strings.Split(glob, "*") {
		if i > 0 {
			b.WriteString(".*")
		}
		b.WriteString(regexp.QuoteMeta(part))
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}
