// Package scoring computes relevance scores for candidate links. Scorers are
// pure evaluators: they read a candidate and return a number, never touching
// traversal state. The intrinsic scorer works from the URL and anchor text
// alone, while the contextual scorer matches fetched head content against a
// query. CompositeScorer blends the two.
package scoring

import "github.com/linkscope/linkscope/internal/page"

// Scorer assigns a relevance score to a candidate link.
type Scorer interface {
	// Score returns the candidate's relevance. An error means the candidate
	// could not be evaluated; callers treat that as a conservative rejection.
	Score(c *page.Candidate) (float64, error)
}

// Func adapts a plain function to the Scorer interface.
type Func func(c *page.Candidate) (float64, error)

// Score implements Scorer.
func (f Func) Score(c *page.Candidate) (float64, error) {
	return f(c)
}
