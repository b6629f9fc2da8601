// Package traversal implements the scheduling engine: it pulls entries from
// the frontier, fans fetches out to a bounded worker set, admits discovered
// links through the filter chain and scorer, checkpoints after every
// resolution, and emits one outcome per visited page.
package traversal

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/linkscope/linkscope/internal/filters"
	"github.com/linkscope/linkscope/internal/frontier"
	"github.com/linkscope/linkscope/internal/page"
	"github.com/linkscope/linkscope/internal/scoring"
	"github.com/linkscope/linkscope/internal/urlutil"
)

// Status is the engine's lifecycle state.
type Status string

const (
	StatusIdle            Status = "idle"
	StatusRunning         Status = "running"
	StatusCompleted       Status = "completed"
	StatusCancelled       Status = "cancelled"
	StatusBudgetExhausted Status = "budget-exhausted"
)

// PageOutcome reports one resolved fetch. Score and Scored are the values the
// page entered the frontier with, not a post-fetch rescoring.
type PageOutcome struct {
	URL       string     `json:"url"`
	ParentURL string     `json:"parent_url,omitempty"`
	Depth     int        `json:"depth"`
	Score     float64    `json:"score,omitempty"`
	Scored    bool       `json:"scored,omitempty"`
	Success   bool       `json:"success"`
	Error     string     `json:"error,omitempty"`
	Head      *page.Head `json:"head,omitempty"`
}

// Options configures an Engine.
type Options struct {
	Strategy        frontier.Kind
	MaxDepth        int
	MaxPages        int // 0 means no page budget
	Concurrency     int
	IncludeExternal bool
	ScoreThreshold  *float64

	// Filters gates every candidate before it enters the frontier and every
	// fetched page before its links are expanded. Nil admits everything.
	Filters *filters.Chain

	// Scorer assigns frontier scores to candidates. Nil leaves every
	// candidate unscored.
	Scorer scoring.Scorer

	// OnStateChange receives a checkpoint snapshot after every resolution.
	// A failing callback is logged and the traversal continues.
	OnStateChange func(*frontier.State) error

	// ResumeState rebuilds the frontier from an earlier checkpoint instead
	// of starting fresh. Visited URLs are never dispatched again.
	ResumeState *frontier.State
}

// Engine drives one traversal. Engines are single-use: after Run or Stream
// the terminal status is readable but the engine cannot be started again.
type Engine struct {
	fetcher Fetcher
	opts    Options

	mu     sync.Mutex
	status Status
	err    error
}

// NewEngine validates the options and builds an engine in the idle state.
func NewEngine(fetcher Fetcher, opts Options) (*Engine, error) {
	if fetcher == nil {
		return nil, ErrNilFetcher
	}
	if opts.Concurrency < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidConcurrency, opts.Concurrency)
	}
	if opts.MaxPages < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeMaxPages, opts.MaxPages)
	}
	return &Engine{fetcher: fetcher, opts: opts, status: StatusIdle}, nil
}

// Status returns the engine's current lifecycle state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Err returns the fatal error that stopped the traversal, if any. It is
// meaningful once the engine has reached a terminal status.
func (e *Engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// Run executes the traversal to completion and returns every page outcome in
// resolution order.
func (e *Engine) Run(ctx context.Context, seeds []string) ([]PageOutcome, error) {
	stream, err := e.Stream(ctx, seeds)
	if err != nil {
		return nil, err
	}

	outcomes := make([]PageOutcome, 0)
	for o := range stream {
		outcomes = append(outcomes, o)
	}
	return outcomes, e.Err()
}

// Stream starts the traversal and returns a channel of page outcomes. The
// channel closes when the traversal reaches a terminal status; the caller
// must drain it. Configuration errors are returned before any fetch is
// dispatched.
func (e *Engine) Stream(ctx context.Context, seeds []string) (<-chan PageOutcome, error) {
	e.mu.Lock()
	if e.status != StatusIdle {
		e.mu.Unlock()
		return nil, ErrAlreadyStarted
	}
	e.status = StatusRunning
	e.mu.Unlock()

	mgr, seedHosts, err := e.prepare(seeds)
	if err != nil {
		e.mu.Lock()
		e.status = StatusIdle
		e.mu.Unlock()
		return nil, err
	}

	out := make(chan PageOutcome)
	go e.schedule(ctx, mgr, seedHosts, out)
	return out, nil
}

// prepare builds the frontier, either fresh from seeds or restored from a
// checkpoint, and derives the seed host set used for external-link gating.
func (e *Engine) prepare(seeds []string) (*frontier.Manager, map[string]struct{}, error) {
	fopts := frontier.Options{
		Kind:           e.opts.Strategy,
		MaxDepth:       e.opts.MaxDepth,
		ScoreThreshold: e.opts.ScoreThreshold,
	}

	var (
		mgr *frontier.Manager
		err error
	)
	if e.opts.ResumeState != nil {
		mgr, err = frontier.Restore(e.opts.ResumeState, fopts)
	} else {
		if len(seeds) == 0 {
			return nil, nil, ErrNoSeeds
		}
		mgr, err = frontier.NewManager(fopts)
	}
	if err != nil {
		return nil, nil, err
	}

	for _, s := range seeds {
		u, nerr := urlutil.Normalize(s)
		if nerr != nil {
			return nil, nil, fmt.Errorf("invalid seed URL %q: %w", s, nerr)
		}
		mgr.Push(frontier.Entry{URL: u, Depth: 0})
	}

	seedHosts := make(map[string]struct{})
	for _, u := range mgr.DepthZeroURLs() {
		if h, herr := urlutil.Host(u); herr == nil {
			seedHosts[h] = struct{}{}
		}
	}
	return mgr, seedHosts, nil
}

// resolution carries one finished fetch back to the scheduler.
type resolution struct {
	entry frontier.Entry
	res   *Result
	err   error
}

// schedule is the single goroutine that owns the frontier. Dispatch, budget
// reservation, link admission, and checkpointing all happen here; only the
// fetches themselves run concurrently.
func (e *Engine) schedule(ctx context.Context, mgr *frontier.Manager, seedHosts map[string]struct{}, out chan<- PageOutcome) {
	defer close(out)

	results := make(chan resolution)
	var (
		inFlight  int
		reserved  = mgr.Pages() // a resumed run has already spent part of the budget
		cancelled bool
	)
	done := ctx.Done()

	budgetLeft := func() bool {
		return e.opts.MaxPages == 0 || reserved < e.opts.MaxPages
	}

	// Fetches run detached from the caller's context so an in-flight page
	// always resolves; cancellation only blocks new dispatch.
	fetchCtx := context.WithoutCancel(ctx)

	for {
		for !cancelled && inFlight < e.opts.Concurrency && budgetLeft() {
			entry, ok := mgr.Pop()
			if !ok {
				break
			}
			reserved++
			inFlight++
			go func(en frontier.Entry) {
				res, err := e.fetcher.Fetch(fetchCtx, Request{URL: en.URL, ParentURL: en.ParentURL, Depth: en.Depth})
				results <- resolution{entry: en, res: res, err: err}
			}(entry)
		}

		if inFlight == 0 {
			break
		}

		select {
		case <-done:
			cancelled = true
			done = nil

		case r := <-results:
			inFlight--
			mgr.MarkVisited(r.entry.URL, r.entry.Depth)

			if r.err == nil && r.res == nil {
				r.err = fmt.Errorf("nil result without error")
			}
			if r.err != nil {
				e.mu.Lock()
				if e.err == nil {
					e.err = fmt.Errorf("%w: %s: %v", ErrFetcherDefect, r.entry.URL, r.err)
				}
				e.mu.Unlock()
				cancelled = true
				done = nil
				e.checkpoint(mgr)
				continue
			}

			outcome := e.resolve(mgr, seedHosts, r.entry, r.res)
			e.checkpoint(mgr)
			out <- outcome
		}
	}

	var terminal Status
	switch {
	case cancelled:
		terminal = StatusCancelled
	case !budgetLeft() && !mgr.IsEmpty():
		terminal = StatusBudgetExhausted
	default:
		terminal = StatusCompleted
	}

	e.mu.Lock()
	e.status = terminal
	e.mu.Unlock()
	slog.Info("traversal finished", "status", string(terminal), "pages", mgr.Pages(), "pending", mgr.Len())
}

// resolve turns one finished fetch into an outcome and, when the page passes
// the post-fetch filters, admits its outbound links into the frontier.
func (e *Engine) resolve(mgr *frontier.Manager, seedHosts map[string]struct{}, entry frontier.Entry, res *Result) PageOutcome {
	outcome := PageOutcome{
		URL:       entry.URL,
		ParentURL: entry.ParentURL,
		Depth:     entry.Depth,
		Score:     entry.Score,
		Scored:    entry.Scored,
		Success:   res.Success,
		Error:     res.Error,
		Head:      res.Head,
	}

	if !res.Success {
		slog.Debug("fetch failed", "url", entry.URL, "depth", entry.Depth, "error", res.Error)
		return outcome
	}

	// Content filters see the fetched page before any of its links spread.
	self := &page.Candidate{
		URL:       entry.URL,
		ParentURL: entry.ParentURL,
		Depth:     entry.Depth,
		Head:      res.Head,
	}
	if !e.opts.Filters.Allow(self) {
		return outcome
	}

	for _, l := range res.Links {
		e.admit(mgr, seedHosts, entry, l)
	}
	return outcome
}

// admit runs one discovered link through normalization, the external-domain
// gate, the filter chain, and the scorer, then offers it to the frontier.
func (e *Engine) admit(mgr *frontier.Manager, seedHosts map[string]struct{}, parent frontier.Entry, l page.Link) {
	u, err := urlutil.Normalize(l.URL)
	if err != nil {
		slog.Debug("discarding link", "url", l.URL, "error", err)
		return
	}

	if !e.opts.IncludeExternal && !sameSiteAsSeed(seedHosts, u) {
		return
	}

	cand := &page.Candidate{
		URL:        u,
		ParentURL:  parent.URL,
		AnchorText: l.AnchorText,
		Depth:      parent.Depth + 1,
	}
	if !e.opts.Filters.Allow(cand) {
		return
	}

	entry := frontier.Entry{URL: u, ParentURL: parent.URL, Depth: parent.Depth + 1}
	if e.opts.Scorer != nil {
		if s, serr := e.opts.Scorer.Score(cand); serr != nil {
			slog.Warn("scorer failed, candidate stays unscored", "url", u, "error", serr)
		} else {
			entry.Score, entry.Scored = s, true
		}
	}
	mgr.Push(entry)
}

func (e *Engine) checkpoint(mgr *frontier.Manager) {
	if e.opts.OnStateChange == nil {
		return
	}
	if err := e.opts.OnStateChange(mgr.Export()); err != nil {
		slog.Warn("checkpoint persistence failed", "error", err)
	}
}

func sameSiteAsSeed(seedHosts map[string]struct{}, u string) bool {
	h, err := urlutil.Host(u)
	if err != nil {
		return false
	}
	for seed := range seedHosts {
		if urlutil.SameSite(h, seed) {
			return true
		}
	}
	return false
}
