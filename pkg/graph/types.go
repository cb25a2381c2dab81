package graph

import (
	"cmp"
	"slices"

	"golang.org/x/exp/constraints"
)

// Edge is an ordered (From, To) node pair
type Edge[N constraints.Ordered] struct {
	From N
	To   N
}

// WeightedEdge is an edge together with its repetition count
type WeightedEdge[N constraints.Ordered] struct {
	From   N
	To     N
	Weight int
}

// Digraph is an immutable weighted directed graph.
//
// Weights count how many times an ordered pair was observed. Self-loops are
// never stored and every stored weight is at least 1. The node set holds every
// endpoint of every stored edge, including nodes that only appear on one side.
type Digraph[N constraints.Ordered] struct {
	nodes   []N // ascending
	weights map[Edge[N]]int
	total   int
}

// NodeCount returns the number of nodes
func (g *Digraph[N]) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of distinct weighted edges
func (g *Digraph[N]) EdgeCount() int {
	return len(g.weights)
}

// TotalWeight returns the sum of all edge weights, i.e. the number of
// non-self-loop pairs the graph was built from
func (g *Digraph[N]) TotalWeight() int {
	return g.total
}

// Nodes returns the node ids in ascending order. The returned slice is a copy.
func (g *Digraph[N]) Nodes() []N {
	return slices.Clone(g.nodes)
}

// HasNode reports whether id is an endpoint of some edge
func (g *Digraph[N]) HasNode(id N) bool {
	_, found := slices.BinarySearch(g.nodes, id)
	return found
}

// Weight returns the weight of from->to, or 0 when there is no such edge
func (g *Digraph[N]) Weight(from, to N) int {
	return g.weights[Edge[N]{From: from, To: to}]
}

// HasEdge reports whether from->to exists
func (g *Digraph[N]) HasEdge(from, to N) bool {
	_, ok := g.weights[Edge[N]{From: from, To: to}]
	return ok
}

// ForEachEdge calls fn for every edge in unspecified order.
func (g *Digraph[N]) ForEachEdge(fn func(from, to N, weight int)) {
	for e, w := range g.weights {
		fn(e.From, e.To, w)
	}
}

// Edges returns all edges sorted by (From, To)
func (g *Digraph[N]) Edges() []WeightedEdge[N] {
	edges := make([]WeightedEdge[N], 0, len(g.weights))
	for e, w := range g.weights {
		edges = append(edges, WeightedEdge[N]{From: e.From, To: e.To, Weight: w})
	}
	slices.SortFunc(edges, func(a, b WeightedEdge[N]) int {
		if c := cmp.Compare(a.From, b.From); c != 0 {
			return c
		}
		return cmp.Compare(a.To, b.To)
	})
	return edges
}
