package filters

import (
	"github.com/linkscope/linkscope/internal/page"
	"github.com/linkscope/linkscope/internal/scoring"
)

// ContentRelevanceFilter rejects pages whose head content scores below a
// relevance threshold against a configured query. It needs fetched content,
// so candidates without a head pass; the check runs when the page itself has
// been fetched and its links are about to be considered.
type ContentRelevanceFilter struct {
	scorer    *scoring.ContextualScorer
	threshold float64
}

// NewContentRelevanceFilter creates a relevance filter for the query. The
// threshold is on the normalized BM25 scale [0, 1).
func NewContentRelevanceFilter(query string, threshold float64) *ContentRelevanceFilter {
	return &ContentRelevanceFilter{
		scorer:    scoring.NewContextualScorer(query),
		threshold: threshold,
	}
}

// Name implements Filter.
func (f *ContentRelevanceFilter) Name() string { return "content-relevance" }

// Allow implements Filter.
func (f *ContentRelevanceFilter) Allow(c *page.Candidate) (bool, error) {
	if !f.scorer.Scorable(c) {
		return true, nil
	}
	return f.scorer.Relevance(c.Head.FullText()) >= f.threshold, nil
}
