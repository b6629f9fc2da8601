// Package config defines the traversal configuration surface: defaults,
// the YAML/flag/env-bound structure, and validation.
package config

import (
	"time"

	"github.com/linkscope/linkscope/internal/frontier"
)

// TraversalConfig holds every knob of a traversal run.
type TraversalConfig struct {
	// Traversal shape
	SeedURLs        []string `mapstructure:"seed_urls" yaml:"seed_urls"`               // Starting URLs
	Strategy        string   `mapstructure:"strategy" yaml:"strategy"`                 // bfs, dfs or best-first
	MaxDepth        int      `mapstructure:"max_depth" yaml:"max_depth"`               // Link distance budget from the seeds
	MaxPages        int      `mapstructure:"max_pages" yaml:"max_pages"`               // Total page budget, 0 = unbounded
	Concurrency     int      `mapstructure:"concurrency" yaml:"concurrency"`           // Simultaneous fetches
	IncludeExternal bool     `mapstructure:"include_external" yaml:"include_external"` // Follow links off the seed sites
	Stream          bool     `mapstructure:"stream" yaml:"stream"`                     // Emit outcomes as they resolve

	// Scoring
	Query          string   `mapstructure:"query" yaml:"query"`                     // Relevance query for contextual scoring
	Keywords       []string `mapstructure:"keywords" yaml:"keywords"`               // Keywords for the intrinsic scorer
	ScoreThreshold float64  `mapstructure:"score_threshold" yaml:"score_threshold"` // BFS/DFS pruning floor, negative = disabled

	// Filtering
	AllowedDomains     []string `mapstructure:"allowed_domains" yaml:"allowed_domains"`         // Hostname allow list, *.example.com wildcards
	BlockedDomains     []string `mapstructure:"blocked_domains" yaml:"blocked_domains"`         // Hostname deny list, wins over allows
	URLPatterns        []string `mapstructure:"url_patterns" yaml:"url_patterns"`               // Glob inclusion patterns on full URLs
	ContentTypes       []string `mapstructure:"content_types" yaml:"content_types"`             // Allowed response media type prefixes
	RelevanceThreshold float64  `mapstructure:"relevance_threshold" yaml:"relevance_threshold"` // BM25 floor for fetched pages, 0 = disabled
	SEOThreshold       float64  `mapstructure:"seo_threshold" yaml:"seo_threshold"`             // Structural quality floor, 0 = disabled

	// Fetching
	UserAgent      string        `mapstructure:"user_agent" yaml:"user_agent"`           // HTTP User-Agent header
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"` // Per-request timeout
	RequestDelay   time.Duration `mapstructure:"request_delay" yaml:"request_delay"`     // Per-host politeness delay
	IgnoreRobots   bool          `mapstructure:"ignore_robots" yaml:"ignore_robots"`     // Skip robots.txt checks

	// Persistence
	DatabasePath string `mapstructure:"database_path" yaml:"database_path"` // SQLite checkpoint/results file
	Resume       bool   `mapstructure:"resume" yaml:"resume"`               // Continue from the stored checkpoint
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *TraversalConfig {
	return &TraversalConfig{
		Strategy:       string(frontier.BFS),
		MaxDepth:       3,
		MaxPages:       0, // unbounded
		Concurrency:    10,
		ScoreThreshold: -1, // disabled
		UserAgent:      "LinkScope/1.0",
		RequestTimeout: 30 * time.Second,
		RequestDelay:   1 * time.Second,
		DatabasePath:   "./linkscope.db",
	}
}

// StrategyKind parses the configured strategy name.
func (c *TraversalConfig) StrategyKind() (frontier.Kind, error) {
	kind, err := frontier.ParseKind(c.Strategy)
	if err != nil {
		return "", ErrInvalidStrategy
	}
	return kind, nil
}

// ThresholdPtr returns the score threshold in the engine's optional form:
// nil when disabled.
func (c *TraversalConfig) ThresholdPtr() *float64 {
	if c.ScoreThreshold < 0 {
		return nil
	}
	t := c.ScoreThreshold
	return &t
}

// Validate checks the configuration. It is called before any engine or
// store is constructed, so every violation surfaces before work begins.
func (c *TraversalConfig) Validate() error {
	kind, err := c.StrategyKind()
	if err != nil {
		return err
	}
	if kind == frontier.BestFirst && c.ScoreThreshold >= 0 {
		return ErrThresholdWithBestFirst
	}

	if c.MaxDepth < 0 {
		return ErrInvalidMaxDepth
	}
	if c.MaxPages < 0 {
		return ErrInvalidMaxPages
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.RequestTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.DatabasePath == "" {
		return ErrEmptyDatabasePath
	}
	return nil
}
