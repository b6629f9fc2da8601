package frontier

import "errors"

var (
	// ErrUnknownStrategy is returned for a strategy name outside bfs, dfs, best-first
	ErrUnknownStrategy = errors.New("unknown traversal strategy")
	// ErrNegativeMaxDepth is returned when the depth budget is negative
	ErrNegativeMaxDepth = errors.New("max depth must not be negative")
	// ErrNilState is returned when restoring from a nil snapshot
	ErrNilState = errors.New("resume state is nil")
	// ErrInvalidState is returned when a snapshot violates its own invariants
	ErrInvalidState = errors.New("invalid resume state")
)
