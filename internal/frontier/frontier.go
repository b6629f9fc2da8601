// Package frontier implements the traversal frontier: the set of discovered
// but not yet visited URLs, with pluggable visit-order disciplines
// (breadth-first, depth-first, best-first) behind a single Manager that owns
// the visited set, the pending set, and the per-URL depth records.
package frontier

import (
	"fmt"
	"sort"
	"sync"
)

// Kind selects the visit-order discipline.
type Kind string

const (
	// BFS drains each depth level completely before the next one begins.
	BFS Kind = "bfs"
	// DFS explores each branch to its end before backtracking.
	DFS Kind = "dfs"
	// BestFirst always visits the highest-scored pending entry next.
	BestFirst Kind = "best-first"
)

// ParseKind converts a strategy name into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case BFS, DFS, BestFirst:
		return Kind(s), nil
	case "best_first", "bestfirst":
		return BestFirst, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Entry is a candidate link awaiting its visit.
type Entry struct {
	URL       string  `json:"url"`
	ParentURL string  `json:"parent_url,omitempty"`
	Depth     int     `json:"depth"`
	Score     float64 `json:"score,omitempty"`
	Scored    bool    `json:"scored,omitempty"`

	// seq is the discovery order, assigned at push time. It breaks score
	// ties in best-first ordering and is not part of the serialized state.
	seq uint64
}

// discipline is the strategy-specific pending structure. Implementations are
// not safe for concurrent use; the Manager serializes access.
type discipline interface {
	push(e Entry)
	pop() (Entry, bool)
	len() int
	// snapshot lists pending entries in an order that, pushed back one by
	// one into a fresh discipline, reproduces the same pop order.
	snapshot() []Entry
}

// Options configures a Manager.
type Options struct {
	Kind     Kind
	MaxDepth int // entries deeper than this are rejected at push time

	// ScoreThreshold rejects scored candidates below the threshold at push
	// time. Only meaningful for BFS and DFS; best-first ranks instead.
	ScoreThreshold *float64
}

// Manager owns the complete traversal bookkeeping: the pending structure of
// the selected discipline, the visited set, the depth of every known URL, and
// the page counter. All methods are safe for concurrent use.
type Manager struct {
	mu        sync.Mutex
	kind      Kind
	maxDepth  int
	threshold *float64

	visited map[string]struct{}
	pending map[string]struct{}
	depths  map[string]int
	pages   int
	seq     uint64

	queue discipline
}

// NewManager creates an empty frontier for the given options.
func NewManager(opts Options) (*Manager, error) {
	if opts.MaxDepth < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeMaxDepth, opts.MaxDepth)
	}

	m := &Manager{
		kind:      opts.Kind,
		maxDepth:  opts.MaxDepth,
		threshold: opts.ScoreThreshold,
		visited:   make(map[string]struct{}),
		pending:   make(map[string]struct{}),
		depths:    make(map[string]int),
	}

	switch opts.Kind {
	case BFS:
		m.queue = newDepthBuckets()
	case DFS:
		m.queue = &stack{}
	case BestFirst:
		m.queue = newScoreHeap()
		m.threshold = nil // best-first ranks, it never rejects on score
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, opts.Kind)
	}

	return m, nil
}

// Restore rebuilds a frontier from a previously exported state. Visited
// entries are honored as-is and pending entries are re-enqueued in snapshot
// order, which preserves the discipline's pop order.
func Restore(state *State, opts Options) (*Manager, error) {
	if state == nil {
		return nil, ErrNilState
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}
	opts.Kind = state.Strategy

	m, err := NewManager(opts)
	if err != nil {
		return nil, err
	}

	for _, u := range state.Visited {
		m.visited[u] = struct{}{}
	}
	for u, d := range state.Depths {
		m.depths[u] = d
	}
	m.pages = state.PagesCrawled

	for _, e := range state.Pending {
		if _, ok := m.visited[e.URL]; ok {
			continue
		}
		if _, ok := m.pending[e.URL]; ok {
			continue
		}
		m.seq++
		e.seq = m.seq
		m.pending[e.URL] = struct{}{}
		m.depths[e.URL] = e.Depth
		m.queue.push(e)
	}

	return m, nil
}

// Kind returns the discipline of this frontier.
func (m *Manager) Kind() Kind {
	return m.kind
}

// Push admits a candidate into the pending set. It returns false when the URL
// is already visited or pending, exceeds the depth budget, or falls below the
// score threshold. A threshold rejection leaves no trace: the same URL may be
// re-discovered later through a different parent and re-evaluated.
func (m *Manager) Push(e Entry) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e.Depth > m.maxDepth {
		return false
	}
	if _, ok := m.visited[e.URL]; ok {
		return false
	}
	if _, ok := m.pending[e.URL]; ok {
		return false
	}
	if m.threshold != nil && e.Scored && e.Score < *m.threshold {
		return false
	}

	m.seq++
	e.seq = m.seq
	m.pending[e.URL] = struct{}{}
	m.depths[e.URL] = e.Depth
	m.queue.push(e)
	return true
}

// Pop removes and returns the next entry per the discipline.
func (m *Manager) Pop() (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.queue.pop()
	if !ok {
		return Entry{}, false
	}
	delete(m.pending, e.URL)
	return e, true
}

// IsEmpty reports whether no entries are pending.
func (m *Manager) IsEmpty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.len() == 0
}

// Len returns the number of pending entries.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.len()
}

// MarkVisited records a completed fetch attempt, success or failure. The page
// counter advances with the visited set so the two never drift apart.
func (m *Manager) MarkVisited(url string, depth int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.visited[url]; ok {
		return
	}
	m.visited[url] = struct{}{}
	if _, ok := m.depths[url]; !ok {
		m.depths[url] = depth
	}
	m.pages++
}

// Visited reports whether a URL has completed its fetch attempt.
func (m *Manager) Visited(url string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.visited[url]
	return ok
}

// Pages returns the number of completed fetch attempts.
func (m *Manager) Pages() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pages
}

// Export captures the complete traversal state as a serializable snapshot.
// It must only be called between fetch resolutions, never mid-update.
func (m *Manager) Export() *State {
	m.mu.Lock()
	defer m.mu.Unlock()

	visited := make([]string, 0, len(m.visited))
	for u := range m.visited {
		visited = append(visited, u)
	}
	sort.Strings(visited)

	depths := make(map[string]int, len(m.depths))
	for u, d := range m.depths {
		depths[u] = d
	}

	return &State{
		Strategy:     m.kind,
		Visited:      visited,
		Pending:      m.queue.snapshot(),
		Depths:       depths,
		PagesCrawled: m.pages,
	}
}

// DepthZeroURLs returns every known URL at depth zero. After a resume this
// reconstructs the seed set for external-domain gating.
func (m *Manager) DepthZeroURLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var urls []string
	for u, d := range m.depths {
		if d == 0 {
			urls = append(urls, u)
		}
	}
	sort.Strings(urls)
	return urls
}
