package algorithms

import (
	"cmp"
	"container/heap"
	"slices"

	"golang.org/x/exp/constraints"
)

// DefaultTopK is the number of entries reported when none is given
const DefaultTopK = 10

// RankedNode represents a node with its score
type RankedNode[N constraints.Ordered] struct {
	NodeID N
	Score  float64
}

// compareRanked orders a before b when a has the higher score, breaking
// exact ties by ascending node id
func compareRanked[N constraints.Ordered](a, b RankedNode[N]) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	return cmp.Compare(a.NodeID, b.NodeID)
}

// rankedHeap is a min-heap whose root is the worst retained entry
// under compareRanked. Keeping at most k elements gives O(n log k) selection.
type rankedHeap[N constraints.Ordered] []RankedNode[N]

func (h rankedHeap[N]) Len() int           { return len(h) }
func (h rankedHeap[N]) Less(i, j int) bool { return compareRanked(h[i], h[j]) > 0 }
func (h rankedHeap[N]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *rankedHeap[N]) Push(x any) {
	*h = append(*h, x.(RankedNode[N]))
}

func (h *rankedHeap[N]) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// TopK returns the k highest-scoring entries, best first. Equal scores are
// ordered by ascending node id. When k exceeds the number of entries all
// entries are returned; k == 0 returns an empty slice. scores is not modified.
func TopK[N constraints.Ordered](scores map[N]float64, k int) ([]RankedNode[N], error) {
	if k < 0 {
		return nil, invalidArgument("TopK", "k", k)
	}
	if k == 0 || len(scores) == 0 {
		return []RankedNode[N]{}, nil
	}

	if k >= len(scores) {
		return Rank(scores), nil
	}

	h := make(rankedHeap[N], 0, k)
	for id, score := range scores {
		rn := RankedNode[N]{NodeID: id, Score: score}

		if h.Len() < k {
			heap.Push(&h, rn)
		} else if compareRanked(rn, h[0]) < 0 {
			// Better than the current worst, replace it
			h[0] = rn
			heap.Fix(&h, 0)
		}
	}

	// Pop yields worst first
	result := make([]RankedNode[N], h.Len())
	for i := h.Len() - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(RankedNode[N])
	}

	return result, nil
}

// Rank returns every entry of scores ordered best first
func Rank[N constraints.Ordered](scores map[N]float64) []RankedNode[N] {
	result := make([]RankedNode[N], 0, len(scores))
	for id, score := range scores {
		result = append(result, RankedNode[N]{NodeID: id, Score: score})
	}
	slices.SortFunc(result, compareRanked[N])
	return result
}
