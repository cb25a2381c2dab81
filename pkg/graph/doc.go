// Package graph holds the weighted directed graph that the ranking
// algorithms operate on.
//
// A Digraph is built once from a sequence of (from, to) pairs through a
// Builder and is immutable afterwards. Pairs with from == to are dropped and
// repeated pairs collapse into one edge whose weight is the repetition count.
//
// Numeric code addresses nodes by dense position rather than by id. Index
// provides that mapping for a single computation and Adjacency stores the
// weighted adjacency matrix in compressed row form against it.
package graph
