package algorithms

import (
	"math"

	"github.com/dd0wney/cluso-hits/pkg/graph"
	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats"
)

// DefaultHITSIterations is the fixed iteration count used when none is given
const DefaultHITSIterations = 20

// ScoreVector maps node ids to non-negative scores
type ScoreVector[N constraints.Ordered] map[N]float64

// HITSOptions configures the HITS power iteration
type HITSOptions struct {
	Iterations int     // Number of iterations to run, must be positive
	Tolerance  float64 // Early exit when no score moves more than this; 0 runs all iterations
}

// DefaultHITSOptions returns the fixed-count configuration: 20 iterations, no early exit
func DefaultHITSOptions() HITSOptions {
	return HITSOptions{
		Iterations: DefaultHITSIterations,
	}
}

func (o HITSOptions) validate(op string) error {
	if o.Iterations <= 0 {
		return invalidArgument(op, "iterations", o.Iterations)
	}
	if o.Tolerance < 0 || math.IsNaN(o.Tolerance) {
		return invalidArgument(op, "tolerance", o.Tolerance)
	}
	return nil
}

// HITSResult contains hub and authority scores for all nodes
type HITSResult[N constraints.Ordered] struct {
	Hubs        ScoreVector[N] // Node ID -> hub score
	Authorities ScoreVector[N] // Node ID -> authority score
	Iterations  int            // Number of iterations performed
	Converged   bool           // Whether the tolerance exit fired; true with 0 iterations for an empty graph
}

// TopHubs returns the k best hubs
func (r *HITSResult[N]) TopHubs(k int) ([]RankedNode[N], error) {
	return TopK(r.Hubs, k)
}

// TopAuthorities returns the k best authorities
func (r *HITSResult[N]) TopAuthorities(k int) ([]RankedNode[N], error) {
	return TopK(r.Authorities, k)
}

// HITS computes hub and authority scores with power iteration over the
// sparse adjacency matrix M of g.
//
// Both vectors start at 1.0 for every node. Each iteration computes
// hub ← hub·(M·Mᵗ) as (hub·M)·Mᵗ and auth ← auth·(Mᵗ·M) as (auth·Mᵗ)·M,
// then scales each vector to unit L2 norm. A vector whose norm is zero stays
// zero. Exactly opts.Iterations iterations run unless opts.Tolerance is
// positive and both vectors move less than it in a single iteration.
func HITS[N constraints.Ordered](g *graph.Digraph[N], opts HITSOptions) (*HITSResult[N], error) {
	if err := opts.validate("HITS"); err != nil {
		return nil, err
	}
	if g.NodeCount() == 0 {
		return emptyHITSResult[N](), nil
	}

	idx := graph.NewIndex(g)
	m := graph.NewAdjacency(g, idx)
	tmp := make([]float64, idx.Len())

	hubStep := func(dst, hub []float64) {
		m.MulLeft(tmp, hub)
		m.MulRight(dst, tmp)
	}
	authStep := func(dst, auth []float64) {
		m.MulRight(tmp, auth)
		m.MulLeft(dst, tmp)
	}

	return powerIterate(idx, opts, hubStep, authStep), nil
}

// ComputeHITS runs HITS for a fixed number of iterations and returns the
// hub and authority score vectors
func ComputeHITS[N constraints.Ordered](g *graph.Digraph[N], iterations int) (ScoreVector[N], ScoreVector[N], error) {
	result, err := HITS(g, HITSOptions{Iterations: iterations})
	if err != nil {
		return nil, nil, err
	}
	return result.Hubs, result.Authorities, nil
}

func emptyHITSResult[N constraints.Ordered]() *HITSResult[N] {
	return &HITSResult[N]{
		Hubs:        make(ScoreVector[N]),
		Authorities: make(ScoreVector[N]),
		Converged:   true,
	}
}

// stepFunc writes one un-normalized update of src into dst
type stepFunc func(dst, src []float64)

// powerIterate runs the shared iteration loop. The step functions only
// differ between matrix representations.
func powerIterate[N constraints.Ordered](idx *graph.Index[N], opts HITSOptions, hubStep, authStep stepFunc) *HITSResult[N] {
	n := idx.Len()
	hub := make([]float64, n)
	auth := make([]float64, n)
	for i := range n {
		hub[i] = 1.0
		auth[i] = 1.0
	}
	nextHub := make([]float64, n)
	nextAuth := make([]float64, n)

	iterations := 0
	converged := false

	for iterations < opts.Iterations {
		iterations++

		hubStep(nextHub, hub)
		authStep(nextAuth, auth)
		normalizeL2(nextHub)
		normalizeL2(nextAuth)

		if opts.Tolerance > 0 {
			delta := math.Max(
				floats.Distance(nextHub, hub, math.Inf(1)),
				floats.Distance(nextAuth, auth, math.Inf(1)),
			)
			converged = delta < opts.Tolerance
		}

		hub, nextHub = nextHub, hub
		auth, nextAuth = nextAuth, auth

		if converged {
			break
		}
	}

	return &HITSResult[N]{
		Hubs:        idx.Zip(hub),
		Authorities: idx.Zip(auth),
		Iterations:  iterations,
		Converged:   converged,
	}
}

// normalizeL2 scales v to unit Euclidean norm; the zero vector is left as is
func normalizeL2(v []float64) {
	norm := floats.Norm(v, 2)
	if norm == 0 {
		return
	}
	floats.Scale(1/norm, v)
}
