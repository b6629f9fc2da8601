package frontier

import (
	"encoding/json"
	"fmt"
)

// State is the complete, serializable traversal snapshot. It carries only
// strings, integers, and nested maps and lists, so it round-trips through
// JSON without loss and can be handed to any external store.
type State struct {
	Strategy     Kind           `json:"strategy"`
	Visited      []string       `json:"visited"`
	Pending      []Entry        `json:"pending"`
	Depths       map[string]int `json:"depths"`
	PagesCrawled int            `json:"pages_crawled"`
}

// Validate checks the snapshot's internal invariants: a recognized strategy,
// disjoint visited and pending sets, a depth record for every known URL, and
// a page counter matching the visited set.
func (s *State) Validate() error {
	if _, err := ParseKind(string(s.Strategy)); err != nil {
		return err
	}

	visited := make(map[string]struct{}, len(s.Visited))
	for _, u := range s.Visited {
		visited[u] = struct{}{}
		if _, ok := s.Depths[u]; !ok {
			return fmt.Errorf("%w: visited URL %q has no depth record", ErrInvalidState, u)
		}
	}

	for _, e := range s.Pending {
		if _, ok := visited[e.URL]; ok {
			return fmt.Errorf("%w: URL %q is both visited and pending", ErrInvalidState, e.URL)
		}
		if e.Depth < 0 {
			return fmt.Errorf("%w: pending URL %q has negative depth", ErrInvalidState, e.URL)
		}
		if _, ok := s.Depths[e.URL]; !ok {
			return fmt.Errorf("%w: pending URL %q has no depth record", ErrInvalidState, e.URL)
		}
	}

	if s.PagesCrawled != len(visited) {
		return fmt.Errorf("%w: pages_crawled %d does not match %d visited URLs",
			ErrInvalidState, s.PagesCrawled, len(visited))
	}

	return nil
}

// MarshalJSON keeps empty collections as [] and {} rather than null so the
// payload shape is stable for external consumers.
func (s *State) MarshalJSON() ([]byte, error) {
	type alias State
	a := alias(*s)
	if a.Visited == nil {
		a.Visited = []string{}
	}
	if a.Pending == nil {
		a.Pending = []Entry{}
	}
	if a.Depths == nil {
		a.Depths = map[string]int{}
	}
	return json.Marshal(a)
}
