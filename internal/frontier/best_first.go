package frontier

import "container/heap"

// scoreHeap implements best-first ordering: a max-heap on score, ties broken
// by earliest discovery. Unscored entries rank as score zero, which degrades
// to discovery order when no scorer is configured.
type scoreHeap struct {
	entries entryHeap
}

func newScoreHeap() *scoreHeap {
	return &scoreHeap{}
}

func (h *scoreHeap) push(e Entry) {
	heap.Push(&h.entries, e)
}

func (h *scoreHeap) pop() (Entry, bool) {
	if h.entries.Len() == 0 {
		return Entry{}, false
	}
	return heap.Pop(&h.entries).(Entry), true
}

func (h *scoreHeap) len() int {
	return h.entries.Len()
}

// snapshot lists entries in pop order. Rebuilding a heap from this order
// reassigns discovery sequence numbers to match the ranking, so a restored
// frontier pops in the same order as the original would have.
func (h *scoreHeap) snapshot() []Entry {
	clone := make(entryHeap, len(h.entries))
	copy(clone, h.entries)

	out := make([]Entry, 0, len(clone))
	for clone.Len() > 0 {
		out = append(out, heap.Pop(&clone).(Entry))
	}
	return out
}

type entryHeap []Entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	a, b := effectiveScore(h[i]), effectiveScore(h[j])
	if a != b {
		return a > b
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) {
	*h = append(*h, x.(Entry))
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

func effectiveScore(e Entry) float64 {
	if !e.Scored {
		return 0
	}
	return e.Score
}
