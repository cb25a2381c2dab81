package graph

import (
	"golang.org/x/exp/constraints"
)

// Index is a bidirectional mapping between node ids and dense positions
// 0..n-1. Positions follow ascending node order. An Index is built for one
// computation and must not be shared across graphs.
type Index[N constraints.Ordered] struct {
	ids []N
	pos map[N]int
}

// NewIndex builds the index table for g
func NewIndex[N constraints.Ordered](g *Digraph[N]) *Index[N] {
	ids := g.Nodes()
	pos := make(map[N]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	return &Index[N]{ids: ids, pos: pos}
}

// Len returns the number of indexed nodes
func (x *Index[N]) Len() int {
	return len(x.ids)
}

// ID returns the node id at position i
func (x *Index[N]) ID(i int) N {
	return x.ids[i]
}

// Position returns the dense position of id
func (x *Index[N]) Position(id N) (int, bool) {
	i, ok := x.pos[id]
	return i, ok
}

// Zip maps a position-ordered vector back to node ids. values must have
// length Len().
func (x *Index[N]) Zip(values []float64) map[N]float64 {
	out := make(map[N]float64, len(x.ids))
	for i, id := range x.ids {
		out[id] = values[i]
	}
	return out
}
