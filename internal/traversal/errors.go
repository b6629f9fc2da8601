package traversal

import "errors"

var (
	// ErrNilFetcher is returned when an engine is built without a fetcher.
	ErrNilFetcher = errors.New("fetcher is required")

	// ErrInvalidConcurrency is returned for a concurrency limit below one.
	ErrInvalidConcurrency = errors.New("concurrency must be positive")

	// ErrNegativeMaxPages is returned for a negative page budget.
	ErrNegativeMaxPages = errors.New("max pages must not be negative")

	// ErrNoSeeds is returned when a fresh run starts with no seed URLs.
	ErrNoSeeds = errors.New("at least one seed URL is required")

	// ErrAlreadyStarted is returned when Run or Stream is called on an
	// engine that has already left the idle state. Engines are single-use.
	ErrAlreadyStarted = errors.New("traversal already started")

	// ErrFetcherDefect wraps a non-nil Go error returned by the fetcher.
	// It marks a broken collaborator, not a failed page.
	ErrFetcherDefect = errors.New("fetcher defect")
)
