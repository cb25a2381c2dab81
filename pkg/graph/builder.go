package graph

import (
	"slices"

	"golang.org/x/exp/constraints"
)

// Builder accumulates (from, to) pairs into a Digraph.
//
// Self-loops are counted and discarded. Repeated pairs increase the weight of
// a single edge; the reverse pair is tracked independently.
type Builder[N constraints.Ordered] struct {
	weights   map[Edge[N]]int
	nodes     map[N]struct{}
	total     int
	selfLoops int
}

// NewBuilder creates an empty builder
func NewBuilder[N constraints.Ordered]() *Builder[N] {
	return &Builder[N]{
		weights: make(map[Edge[N]]int),
		nodes:   make(map[N]struct{}),
	}
}

// Add records one occurrence of from->to
func (b *Builder[N]) Add(from, to N) {
	if from == to {
		b.selfLoops++
		return
	}
	b.weights[Edge[N]{From: from, To: to}]++
	b.nodes[from] = struct{}{}
	b.nodes[to] = struct{}{}
	b.total++
}

// AddAll records every pair in edges
func (b *Builder[N]) AddAll(edges []Edge[N]) {
	for _, e := range edges {
		b.Add(e.From, e.To)
	}
}

// SelfLoops returns how many self-loop pairs were discarded so far
func (b *Builder[N]) SelfLoops() int {
	return b.selfLoops
}

// Build returns an immutable snapshot of the accumulated graph. The builder
// may keep accepting pairs afterwards without affecting the snapshot.
func (b *Builder[N]) Build() *Digraph[N] {
	nodes := make([]N, 0, len(b.nodes))
	for id := range b.nodes {
		nodes = append(nodes, id)
	}
	slices.Sort(nodes)

	weights := make(map[Edge[N]]int, len(b.weights))
	for e, w := range b.weights {
		weights[e] = w
	}

	return &Digraph[N]{
		nodes:   nodes,
		weights: weights,
		total:   b.total,
	}
}

// Build constructs a Digraph from a finite sequence of pairs. An empty
// sequence yields an empty graph.
func Build[N constraints.Ordered](edges []Edge[N]) *Digraph[N] {
	b := NewBuilder[N]()
	b.AddAll(edges)
	return b.Build()
}
