package algorithms

import (
	"github.com/dd0wney/cluso-hits/pkg/graph"
	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/mat"
)

// HITSDense computes the same scores as HITS but materializes the hub
// matrix H = M·Mᵗ and the authority matrix A = Mᵗ·M as dense matrices.
// Memory is O(n²) in the node count, so it is intended for small graphs and
// for cross-checking the sparse engine.
func HITSDense[N constraints.Ordered](g *graph.Digraph[N], opts HITSOptions) (*HITSResult[N], error) {
	if err := opts.validate("HITSDense"); err != nil {
		return nil, err
	}
	if g.NodeCount() == 0 {
		return emptyHITSResult[N](), nil
	}

	idx := graph.NewIndex(g)
	n := idx.Len()

	m := mat.NewDense(n, n, nil)
	g.ForEachEdge(func(from, to N, weight int) {
		i, _ := idx.Position(from)
		j, _ := idx.Position(to)
		m.Set(i, j, float64(weight))
	})

	var h, a mat.Dense
	h.Mul(m, m.T())
	a.Mul(m.T(), m)

	// Row-vector products x·H are computed as Hᵗ·x.
	hubStep := func(dst, hub []float64) {
		mat.NewVecDense(n, dst).MulVec(h.T(), mat.NewVecDense(n, hub))
	}
	authStep := func(dst, auth []float64) {
		mat.NewVecDense(n, dst).MulVec(a.T(), mat.NewVecDense(n, auth))
	}

	return powerIterate(idx, opts, hubStep, authStep), nil
}
