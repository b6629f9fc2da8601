package cmd

import (
	"testing"

	"github.com/linkscope/linkscope/internal/config"
	"github.com/linkscope/linkscope/internal/scoring"
)

func TestBuildChainComposition(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.TraversalConfig)
		want   int
	}{
		{"no_filters", func(c *config.TraversalConfig) {}, 0},
		{"domains", func(c *config.TraversalConfig) { c.AllowedDomains = []string{"x.com"} }, 1},
		{"blocked_only", func(c *config.TraversalConfig) { c.BlockedDomains = []string{"ads.net"} }, 1},
		{"patterns", func(c *config.TraversalConfig) { c.URLPatterns = []string{"*/blog/*"} }, 1},
		{"content_types", func(c *config.TraversalConfig) { c.ContentTypes = []string{"text/html"} }, 1},
		{
			"relevance_needs_query",
			func(c *config.TraversalConfig) { c.RelevanceThreshold = 0.3 },
			0,
		},
		{
			"relevance_with_query",
			func(c *config.TraversalConfig) {
				c.Query = "golang"
				c.RelevanceThreshold = 0.3
			},
			1,
		},
		{"seo", func(c *config.TraversalConfig) { c.SEOThreshold = 4 }, 1},
		{
			"everything",
			func(c *config.TraversalConfig) {
				c.AllowedDomains = []string{"x.com"}
				c.URLPatterns = []string{"*/docs/*"}
				c.ContentTypes = []string{"text/html"}
				c.Query = "golang"
				c.RelevanceThreshold = 0.3
				c.SEOThreshold = 4
			},
			5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			chain, err := buildChain(cfg)
			if err != nil {
				t.Fatalf("buildChain failed: %v", err)
			}
			if chain.Len() != tt.want {
				t.Errorf("chain has %d filters, want %d", chain.Len(), tt.want)
			}
		})
	}
}

func TestBuildChainRejectsBadPattern(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.URLPatterns = []string{"https://x.com/blog/*"}
	if _, err := buildChain(cfg); err != nil {
		t.Errorf("valid pattern rejected: %v", err)
	}
}

func TestBuildScorerSelection(t *testing.T) {
	cfg := config.DefaultConfig()
	if _, ok := buildScorer(cfg).(*scoring.IntrinsicScorer); !ok {
		t.Error("expected intrinsic-only scorer without a query")
	}

	cfg.Query = "distributed systems"
	if _, ok := buildScorer(cfg).(*scoring.CompositeScorer); !ok {
		t.Error("expected composite scorer with a query")
	}
}
