package config

import "errors"

var (
	// ErrInvalidStrategy is returned for an unrecognized traversal strategy
	ErrInvalidStrategy = errors.New("strategy must be one of bfs, dfs, best-first")
	// ErrInvalidMaxDepth is returned when max_depth is negative
	ErrInvalidMaxDepth = errors.New("max_depth must not be negative")
	// ErrInvalidMaxPages is returned when max_pages is negative
	ErrInvalidMaxPages = errors.New("max_pages must not be negative")
	// ErrInvalidConcurrency is returned when concurrency is not greater than 0
	ErrInvalidConcurrency = errors.New("concurrency must be greater than 0")
	// ErrInvalidTimeout is returned when request timeout is not greater than 0
	ErrInvalidTimeout = errors.New("request_timeout must be greater than 0")
	// ErrThresholdWithBestFirst is returned when a score threshold is combined
	// with the best-first strategy, which ranks instead of pruning
	ErrThresholdWithBestFirst = errors.New("score_threshold cannot be used with best-first")
	// ErrEmptyDatabasePath is returned when database path is empty
	ErrEmptyDatabasePath = errors.New("database_path cannot be empty")
)
