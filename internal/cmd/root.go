// Package cmd provides the command-line interface for LinkScope.
// It binds flags, environment, and config file into a TraversalConfig and
// wires the engine, fetcher, filters, scorer, and store together.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/linkscope/linkscope/internal/config"
	"github.com/linkscope/linkscope/internal/fetch"
	"github.com/linkscope/linkscope/internal/filters"
	"github.com/linkscope/linkscope/internal/frontier"
	"github.com/linkscope/linkscope/internal/logging"
	"github.com/linkscope/linkscope/internal/scoring"
	"github.com/linkscope/linkscope/internal/storage"
	"github.com/linkscope/linkscope/internal/traversal"
)

var (
	cfgFile   string
	version   string
	buildTime string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "linkscope [URLs...]",
	Short: "A web-graph traversal engine with pluggable strategies and scoring",
	Long: `LinkScope walks a site's link graph breadth-first, depth-first, or
best-first, scoring and filtering candidate links as it goes. Every fetch
resolution is checkpointed to SQLite, so an interrupted traversal resumes
exactly where it stopped.`,
	Args: cobra.ArbitraryArgs,
	RunE: runTraversal,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command under the given context, so an
// external signal can cancel the traversal.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersionInfo sets version information for the CLI.
func SetVersionInfo(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./linkscope.yml)")

	rootCmd.Flags().Bool("show-config", false, "Display current configuration in YAML format and exit")

	// Traversal shape
	rootCmd.Flags().StringP("strategy", "s", "bfs", "Traversal strategy: bfs, dfs or best-first")
	rootCmd.Flags().Int("max-depth", 3, "Maximum link distance from the seeds")
	rootCmd.Flags().IntP("max-pages", "l", 0, "Stop after N pages (0=unlimited)")
	rootCmd.Flags().IntP("concurrency", "c", 10, "Number of concurrent fetches")
	rootCmd.Flags().Bool("include-external", false, "Follow links that leave the seed sites")
	rootCmd.Flags().Bool("stream", false, "Print outcomes as they resolve instead of at the end")

	// Scoring
	rootCmd.Flags().StringP("query", "q", "", "Relevance query for contextual scoring")
	rootCmd.Flags().StringSlice("keywords", []string{}, "Keywords rewarded by the intrinsic URL scorer")
	rootCmd.Flags().Float64("score-threshold", -1, "Drop candidates scoring below this (bfs/dfs only, negative=disabled)")

	// Filtering
	rootCmd.Flags().StringSlice("allowed-domains", []string{}, "Hostnames to allow (*.example.com wildcards)")
	rootCmd.Flags().StringSlice("blocked-domains", []string{}, "Hostnames to block")
	rootCmd.Flags().StringSlice("url-patterns", []string{}, "Glob patterns a URL must match to be followed")
	rootCmd.Flags().StringSlice("content-types", []string{}, "Allowed response content type prefixes")
	rootCmd.Flags().Float64("relevance-threshold", 0, "Minimum BM25 relevance of a fetched page (0=disabled)")
	rootCmd.Flags().Float64("seo-threshold", 0, "Minimum structural quality of a fetched page (0=disabled)")

	// Fetching
	rootCmd.Flags().StringP("user-agent", "u", "LinkScope/1.0", "HTTP User-Agent header")
	rootCmd.Flags().DurationP("timeout", "t", 30*time.Second, "HTTP request timeout")
	rootCmd.Flags().DurationP("delay", "r", time.Second, "Minimum delay between requests to one host")
	rootCmd.Flags().Bool("ignore-robots", false, "Ignore robots.txt rules")

	// Persistence
	rootCmd.Flags().StringP("database", "d", "./linkscope.db", "Path to SQLite database file")
	rootCmd.Flags().Bool("resume", false, "Resume from the checkpoint in the database")

	// Logging
	rootCmd.Flags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.Flags().String("log-file", "", "Mirror logs to this file")

	bindFlags := []struct {
		viperKey string
		flagName string
	}{
		{"strategy", "strategy"},
		{"max_depth", "max-depth"},
		{"max_pages", "max-pages"},
		{"concurrency", "concurrency"},
		{"include_external", "include-external"},
		{"stream", "stream"},
		{"query", "query"},
		{"keywords", "keywords"},
		{"score_threshold", "score-threshold"},
		{"allowed_domains", "allowed-domains"},
		{"blocked_domains", "blocked-domains"},
		{"url_patterns", "url-patterns"},
		{"content_types", "content-types"},
		{"relevance_threshold", "relevance-threshold"},
		{"seo_threshold", "seo-threshold"},
		{"user_agent", "user-agent"},
		{"request_timeout", "timeout"},
		{"request_delay", "delay"},
		{"ignore_robots", "ignore-robots"},
		{"database_path", "database"},
		{"resume", "resume"},
		{"log_level", "log-level"},
		{"log_file", "log-file"},
	}

	for _, bind := range bindFlags {
		if err := viper.BindPFlag(bind.viperKey, rootCmd.Flags().Lookup(bind.flagName)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to bind flag %s: %v\n", bind.flagName, err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("linkscope")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("LS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

func showCurrentConfig(cfg *config.TraversalConfig) error {
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: configuration validation failed: %v\n\n", err)
	}

	yamlData, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration to YAML: %w", err)
	}

	fmt.Printf("# Current LinkScope configuration\n")
	fmt.Printf("# Generated at: %s\n", time.Now().Format(time.RFC3339))
	fmt.Printf("# Config file search path: ./linkscope.yml, env prefix: LS_\n\n")
	fmt.Print(string(yamlData))
	return nil
}

func runTraversal(cmd *cobra.Command, args []string) error {
	showConfig, _ := cmd.Flags().GetBool("show-config")

	cfg := config.DefaultConfig()
	cfg.SeedURLs = args
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if len(args) > 0 {
		cfg.SeedURLs = args
	}

	if showConfig {
		return showCurrentConfig(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if len(cfg.SeedURLs) == 0 && !cfg.Resume {
		return fmt.Errorf("no URLs provided; pass seed URLs or --resume to continue from %s", cfg.DatabasePath)
	}

	logLevel := viper.GetString("log_level")
	logFile := viper.GetString("log_file")
	logOpts := logging.DefaultOptions()
	logOpts.Level = logging.ParseLevel(logLevel)
	logOpts.FilePath = logFile
	if err := logging.Setup(logOpts); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	store, err := storage.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	var resumeState *frontier.State
	if cfg.Resume {
		resumeState, err = store.LoadState()
		if err != nil {
			return fmt.Errorf("failed to load checkpoint: %w", err)
		}
		if resumeState == nil {
			return fmt.Errorf("no checkpoint found in %s", cfg.DatabasePath)
		}
	}

	chain, err := buildChain(cfg)
	if err != nil {
		return fmt.Errorf("invalid filter configuration: %w", err)
	}

	kind, err := cfg.StrategyKind()
	if err != nil {
		return err
	}

	fetcher := fetch.NewHTTPFetcher(fetch.Options{
		UserAgent:    cfg.UserAgent,
		Timeout:      cfg.RequestTimeout,
		Delay:        cfg.RequestDelay,
		IgnoreRobots: cfg.IgnoreRobots,
	})
	defer fetcher.Close()

	eng, err := traversal.NewEngine(fetcher, traversal.Options{
		Strategy:        kind,
		MaxDepth:        cfg.MaxDepth,
		MaxPages:        cfg.MaxPages,
		Concurrency:     cfg.Concurrency,
		IncludeExternal: cfg.IncludeExternal,
		ScoreThreshold:  cfg.ThresholdPtr(),
		Filters:         chain,
		Scorer:          buildScorer(cfg),
		OnStateChange:   store.SaveState,
		ResumeState:     resumeState,
	})
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}

	stream, err := eng.Stream(cmd.Context(), cfg.SeedURLs)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	var (
		outcomes []traversal.PageOutcome
		pages    int
	)
	for o := range stream {
		pages++
		if rerr := store.RecordOutcome(o); rerr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to record outcome for %s: %v\n", o.URL, rerr)
		}
		if cfg.Stream {
			if eerr := enc.Encode(o); eerr != nil {
				return eerr
			}
		} else {
			outcomes = append(outcomes, o)
		}
	}
	if err := eng.Err(); err != nil {
		return err
	}

	if !cfg.Stream {
		if err := enc.Encode(outcomes); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stderr, "Traversal %s: %d pages\n", eng.Status(), pages)
	return nil
}

// buildChain assembles the admission pipeline in cheapest-first order:
// URL-only filters ahead of the content-dependent ones.
func buildChain(cfg *config.TraversalConfig) (*filters.Chain, error) {
	var fs []filters.Filter

	if len(cfg.AllowedDomains) > 0 || len(cfg.BlockedDomains) > 0 {
		fs = append(fs, filters.NewDomainFilter(cfg.AllowedDomains, cfg.BlockedDomains))
	}
	if len(cfg.URLPatterns) > 0 {
		pf, err := filters.NewURLPatternFilter(cfg.URLPatterns)
		if err != nil {
			return nil, err
		}
		fs = append(fs, pf)
	}
	if len(cfg.ContentTypes) > 0 {
		fs = append(fs, filters.NewContentTypeFilter(cfg.ContentTypes))
	}
	if cfg.Query != "" && cfg.RelevanceThreshold > 0 {
		fs = append(fs, filters.NewContentRelevanceFilter(cfg.Query, cfg.RelevanceThreshold))
	}
	if cfg.SEOThreshold > 0 {
		fs = append(fs, filters.NewSEOQualityFilter(cfg.Keywords, cfg.SEOThreshold))
	}

	return filters.NewChain(fs...), nil
}

// buildScorer picks the richest scorer the configuration supports.
func buildScorer(cfg *config.TraversalConfig) scoring.Scorer {
	intrinsic := scoring.NewIntrinsicScorer(cfg.Keywords)
	if cfg.Query == "" {
		return intrinsic
	}
	return scoring.NewCompositeScorer(intrinsic, scoring.NewContextualScorer(cfg.Query))
}
