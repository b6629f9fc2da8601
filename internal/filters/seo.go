package filters

import (
	"strings"

	"github.com/linkscope/linkscope/internal/page"
)

// SEO quality scoring weights, on a 0-10 scale.
const (
	seoTitleWeight    = 2.0
	seoMetaWeight     = 2.0
	seoHeadingsWeight = 2.0
	seoKeywordWeight  = 1.5
	seoMaxScore       = 10.0
)

// SEOQualityFilter scores structural quality signals of a fetched page
// (title, meta description, heading structure, keyword presence) and rejects
// pages below a threshold. Candidates without head content pass.
type SEOQualityFilter struct {
	keywords  []string
	threshold float64
}

// NewSEOQualityFilter creates a quality filter. The threshold is on the
// 0-10 quality scale.
func NewSEOQualityFilter(keywords []string, threshold float64) *SEOQualityFilter {
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			lowered = append(lowered, k)
		}
	}
	return &SEOQualityFilter{keywords: lowered, threshold: threshold}
}

// Name implements Filter.
func (f *SEOQualityFilter) Name() string { return "seo-quality" }

// Allow implements Filter.
func (f *SEOQualityFilter) Allow(c *page.Candidate) (bool, error) {
	if c.Head == nil {
		return true, nil
	}
	return f.Quality(c.Head) >= f.threshold, nil
}

// Quality computes the structural quality score of a page head.
func (f *SEOQualityFilter) Quality(h *page.Head) float64 {
	var score float64

	if n := len(h.Title); n >= 10 && n <= 70 {
		score += seoTitleWeight
	} else if n > 0 {
		score += seoTitleWeight / 2
	}

	if n := len(h.MetaDescription); n >= 50 && n <= 160 {
		score += seoMetaWeight
	} else if n > 0 {
		score += seoMetaWeight / 2
	}

	if len(h.Headings) > 0 {
		score += seoHeadingsWeight
	}

	if len(f.keywords) > 0 {
		haystack := strings.ToLower(h.Title + " " + h.MetaDescription + " " + strings.Join(h.Headings, " "))
		var hits float64
		for _, kw := range f.keywords {
			if strings.Contains(haystack, kw) {
				hits++
			}
		}
		// Reward coverage of the keyword list, capped at two keywords' worth.
		if hits > 2 {
			hits = 2
		}
		score += hits * seoKeywordWeight
	}

	if score > seoMaxScore {
		score = seoMaxScore
	}
	return score
}
