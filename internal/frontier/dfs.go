package frontier

// stack implements depth-first ordering: the most recently pushed entry is
// popped first, so each branch runs to its end before a sibling starts.
type stack struct {
	entries []Entry
}

func (s *stack) push(e Entry) {
	s.entries = append(s.entries, e)
}

func (s *stack) pop() (Entry, bool) {
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	e := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return e, true
}

func (s *stack) len() int {
	return len(s.entries)
}

// snapshot lists bottom to top; pushing the list back in order rebuilds an
// identical stack.
func (s *stack) snapshot() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
