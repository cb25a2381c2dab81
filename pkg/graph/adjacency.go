package graph

import (
	"golang.org/x/exp/constraints"
)

// Adjacency is the weighted adjacency matrix M of a digraph in compressed
// row storage, where M[i][j] is the weight of the edge from position i to
// position j. Columns within a row are ascending.
type Adjacency struct {
	n      int
	rowPtr []int
	cols   []int
	vals   []float64
}

// NewAdjacency builds M for g using the positions of idx
func NewAdjacency[N constraints.Ordered](g *Digraph[N], idx *Index[N]) *Adjacency {
	n := idx.Len()
	edges := g.Edges()

	a := &Adjacency{
		n:      n,
		rowPtr: make([]int, n+1),
		cols:   make([]int, 0, len(edges)),
		vals:   make([]float64, 0, len(edges)),
	}

	// Edges are sorted by (From, To) and positions follow the same order,
	// so rows and columns come out sorted without a second pass.
	row := 0
	for _, e := range edges {
		from, _ := idx.Position(e.From)
		to, _ := idx.Position(e.To)
		for row < from {
			row++
			a.rowPtr[row] = len(a.cols)
		}
		a.cols = append(a.cols, to)
		a.vals = append(a.vals, float64(e.Weight))
	}
	for row < n {
		row++
		a.rowPtr[row] = len(a.cols)
	}

	return a
}

// Dim returns n for the n×n matrix
func (a *Adjacency) Dim() int {
	return a.n
}

// NonZero returns the number of stored entries
func (a *Adjacency) NonZero() int {
	return len(a.cols)
}

// At returns M[i][j]
func (a *Adjacency) At(i, j int) float64 {
	for k := a.rowPtr[i]; k < a.rowPtr[i+1]; k++ {
		if a.cols[k] == j {
			return a.vals[k]
		}
	}
	return 0
}

// MulLeft stores the row-vector product x·M in dst.
// dst and x must both have length Dim() and must not alias.
func (a *Adjacency) MulLeft(dst, x []float64) {
	clear(dst)
	for i := 0; i < a.n; i++ {
		xi := x[i]
		if xi == 0 {
			continue
		}
		for k := a.rowPtr[i]; k < a.rowPtr[i+1]; k++ {
			dst[a.cols[k]] += xi * a.vals[k]
		}
	}
}

// MulRight stores the column-vector product M·y in dst, which equals the
// row-vector product y·Mᵗ.
// dst and y must both have length Dim() and must not alias.
func (a *Adjacency) MulRight(dst, y []float64) {
	for i := 0; i < a.n; i++ {
		var sum float64
		for k := a.rowPtr[i]; k < a.rowPtr[i+1]; k++ {
			sum += a.vals[k] * y[a.cols[k]]
		}
		dst[i] = sum
	}
}
