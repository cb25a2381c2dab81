package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/dd0wney/cluso-hits/pkg/algorithms"
	"github.com/dd0wney/cluso-hits/pkg/graph"
)

func main() {
	users := flag.Int("users", 1000, "Number of users")
	retweets := flag.Int("retweets", 5000, "Number of retweets to generate")
	iterations := flag.Int("iterations", algorithms.DefaultHITSIterations, "HITS iterations")
	top := flag.Int("top", 5, "Entries to print per score")
	dense := flag.Bool("dense", true, "Also run the dense engine and compare")
	seed := flag.Int64("seed", 1, "Random seed")
	flag.Parse()

	fmt.Printf("Retweet HITS Benchmark\n")
	fmt.Printf("======================\n\n")
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Users: %d\n", *users)
	fmt.Printf("  Retweets: %d\n", *retweets)
	fmt.Printf("  Iterations: %d\n\n", *iterations)

	// A few popular authors receive most retweets
	rng := rand.New(rand.NewSource(*seed))
	zipf := rand.NewZipf(rng, 1.2, 1, uint64(*users-1))

	fmt.Printf("Building graph from %d retweets...\n", *retweets)
	start := time.Now()

	b := graph.NewBuilder[int64]()
	for i := 0; i < *retweets; i++ {
		b.Add(int64(rng.Intn(*users)), int64(zipf.Uint64()))
	}
	g := b.Build()

	fmt.Printf("Built in %v\n", time.Since(start))
	fmt.Printf("  Nodes: %d\n", g.NodeCount())
	fmt.Printf("  Edges: %d (total weight %d)\n", g.EdgeCount(), g.TotalWeight())
	fmt.Printf("  Self-retweets dropped: %d\n", b.SelfLoops())

	opts := algorithms.HITSOptions{Iterations: *iterations}

	// Benchmark 1: sparse engine
	fmt.Printf("\nBenchmark 1: HITS (sparse)\n")
	start = time.Now()
	sparse, err := algorithms.HITS(g, opts)
	if err != nil {
		log.Fatalf("HITS failed: %v", err)
	}
	fmt.Printf("Completed in %v\n", time.Since(start))

	// Benchmark 2: top-k selection
	fmt.Printf("\nBenchmark 2: Top-%d selection\n", *top)
	start = time.Now()
	hubs, err := sparse.TopHubs(*top)
	if err != nil {
		log.Fatalf("TopK failed: %v", err)
	}
	auths, err := sparse.TopAuthorities(*top)
	if err != nil {
		log.Fatalf("TopK failed: %v", err)
	}
	fmt.Printf("Completed in %v\n", time.Since(start))
	printRanked("hubs", hubs)
	printRanked("authorities", auths)

	if !*dense {
		return
	}

	// Benchmark 3: dense engine
	fmt.Printf("\nBenchmark 3: HITS (dense)\n")
	start = time.Now()
	ref, err := algorithms.HITSDense(g, opts)
	if err != nil {
		log.Fatalf("HITSDense failed: %v", err)
	}
	fmt.Printf("Completed in %v\n", time.Since(start))
	fmt.Printf("  Max hub difference: %.3g\n", maxDiff(sparse.Hubs, ref.Hubs))
	fmt.Printf("  Max authority difference: %.3g\n", maxDiff(sparse.Authorities, ref.Authorities))

	fmt.Printf("\nBenchmark complete\n")
}

func printRanked(label string, ranked []algorithms.RankedNode[int64]) {
	fmt.Printf("  Top %s:\n", label)
	for i, rn := range ranked {
		fmt.Printf("    %d. User %d (score: %.6f)\n", i+1, rn.NodeID, rn.Score)
	}
}

func maxDiff(a, b algorithms.ScoreVector[int64]) float64 {
	var d float64
	for id, s := range a {
		d = math.Max(d, math.Abs(s-b[id]))
	}
	return d
}
