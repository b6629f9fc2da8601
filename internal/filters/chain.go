// Package filters implements the link-admission pipeline. A chain is an
// ordered list of independent predicates; a candidate must pass every one of
// them to enter the frontier. Evaluation short-circuits on the first
// rejection, so cheap URL-based filters should precede content filters.
package filters

import (
	"log/slog"

	"github.com/linkscope/linkscope/internal/page"
)

// Filter is a single admission predicate. Implementations must be pure and
// safe for concurrent use: they read the candidate and decide, nothing else.
type Filter interface {
	// Name identifies the filter in logs.
	Name() string

	// Allow reports whether the candidate may proceed. An error means the
	// candidate could not be evaluated; the chain treats that as a
	// rejection so that one bad candidate never halts the traversal.
	Allow(c *page.Candidate) (bool, error)
}

// Chain is an immutable AND-composition of filters.
type Chain struct {
	filters []Filter
}

// NewChain builds a chain that evaluates filters in the given order.
func NewChain(filters ...Filter) *Chain {
	return &Chain{filters: filters}
}

// Allow runs the candidate through every filter in order. The first
// rejection or evaluation error stops the chain.
func (ch *Chain) Allow(c *page.Candidate) bool {
	if ch == nil {
		return true
	}
	for _, f := range ch.filters {
		ok, err := f.Allow(c)
		if err != nil {
			slog.Warn("filter evaluation failed, rejecting candidate",
				"filter", f.Name(), "url", c.URL, "error", err)
			return false
		}
		if !ok {
			slog.Debug("candidate rejected", "filter", f.Name(), "url", c.URL)
			return false
		}
	}
	return true
}

// Len returns the number of filters in the chain.
func (ch *Chain) Len() int {
	if ch == nil {
		return 0
	}
	return len(ch.filters)
}
