package scoring

import (
	"strings"

	"github.com/linkscope/linkscope/internal/page"
)

// BM25 constants. With no corpus statistics available the scorer runs in a
// single-document regime: term-frequency saturation with length
// normalization against a fixed expected document length.
const (
	bm25K1     = 1.2
	bm25B      = 0.75
	bm25AvgLen = 100.0
)

// ContextualScorer rates a candidate's fetched head content against a query
// using BM25-style term matching, normalized to [0, 1]. It only produces a
// score once head content is available; before that the candidate is
// reported as unscorable via Scorable.
type ContextualScorer struct {
	terms []string
}

// NewContextualScorer creates a contextual scorer for the given query string.
func NewContextualScorer(query string) *ContextualScorer {
	return &ContextualScorer{terms: Tokenize(query)}
}

// Scorable reports whether the candidate carries enough content to score.
func (s *ContextualScorer) Scorable(c *page.Candidate) bool {
	return len(s.terms) > 0 && c.Head != nil && c.Head.FullText() != ""
}

// Score implements Scorer. A candidate without head content scores zero;
// callers that care about the distinction should check Scorable first.
func (s *ContextualScorer) Score(c *page.Candidate) (float64, error) {
	if !s.Scorable(c) {
		return 0, nil
	}
	return s.Relevance(c.Head.FullText()), nil
}

// Relevance computes the normalized BM25 relevance of a text against the
// configured query. The raw sum over query terms is squashed into [0, 1);
// matching more distinct terms pushes the result toward 1.
func (s *ContextualScorer) Relevance(text string) float64 {
	if len(s.terms) == 0 {
		return 0
	}

	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return 0
	}

	freq := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		freq[tok]++
	}

	docLen := float64(len(tokens))
	norm := bm25K1 * (1 - bm25B + bm25B*docLen/bm25AvgLen)

	var raw float64
	for _, term := range s.terms {
		tf := float64(freq[term])
		if tf == 0 {
			continue
		}
		raw += tf * (bm25K1 + 1) / (tf + norm)
	}

	return raw / (raw + float64(len(s.terms)))
}

// Tokenize lowercases and splits a text into alphanumeric terms.
func Tokenize(text string) []string {
	var terms []string
	for _, f := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		if len(f) > 1 {
			terms = append(terms, f)
		}
	}
	return terms
}
