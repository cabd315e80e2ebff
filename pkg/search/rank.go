package search

import (
	"cmp"

	"github.com/emirpasic/gods/trees/binaryheap"
)

// compareRecords orders records best first: higher K, then fewer vertices,
// then fewer edges, then earlier candidate.
func compareRecords(a, b Record) int {
	if c := cmp.Compare(b.K, a.K); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Vertices, b.Vertices); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Edges, b.Edges); c != 0 {
		return c
	}
	return cmp.Compare(a.Candidate, b.Candidate)
}

// topN keeps the n best records seen so far. The heap root is the worst
// kept record so it can be evicted in O(log n).
type topN struct {
	n    int
	heap *binaryheap.Heap
}

func newTopN(n int) *topN {
	return &topN{
		n: n,
		heap: binaryheap.NewWith(func(a, b any) int {
			return compareRecords(b.(Record), a.(Record))
		}),
	}
}

func (t *topN) push(r Record) {
	t.heap.Push(r)
	if t.heap.Size() > t.n {
		t.heap.Pop()
	}
}

// ranked drains the heap and returns its records best first with ranks
// assigned from 1.
func (t *topN) ranked() []Record {
	out := make([]Record, t.heap.Size())
	for i := len(out) - 1; i >= 0; i-- {
		v, _ := t.heap.Pop()
		out[i] = v.(Record)
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
