package frontier

import "sort"

// depthBuckets implements breadth-first ordering: a FIFO queue per depth
// level, drained shallowest level first. All of depth d is popped before any
// entry of depth d+1.
type depthBuckets struct {
	buckets map[int][]Entry
	levels  []int // sorted depths with a live bucket
	size    int
}

func newDepthBuckets() *depthBuckets {
	return &depthBuckets{buckets: make(map[int][]Entry)}
}

func (b *depthBuckets) push(e Entry) {
	if _, ok := b.buckets[e.Depth]; !ok {
		i := sort.SearchInts(b.levels, e.Depth)
		b.levels = append(b.levels, 0)
		copy(b.levels[i+1:], b.levels[i:])
		b.levels[i] = e.Depth
	}
	b.buckets[e.Depth] = append(b.buckets[e.Depth], e)
	b.size++
}

func (b *depthBuckets) pop() (Entry, bool) {
	for len(b.levels) > 0 {
		d := b.levels[0]
		bucket := b.buckets[d]
		if len(bucket) == 0 {
			delete(b.buckets, d)
			b.levels = b.levels[1:]
			continue
		}
		e := bucket[0]
		b.buckets[d] = bucket[1:]
		b.size--
		return e, true
	}
	return Entry{}, false
}

func (b *depthBuckets) len() int {
	return b.size
}

func (b *depthBuckets) snapshot() []Entry {
	out := make([]Entry, 0, b.size)
	for _, d := range b.levels {
		out = append(out, b.buckets[d]...)
	}
	return out
}
