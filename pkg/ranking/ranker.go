// Package ranking runs the retweet HITS pipeline: load records from a
// source, build the weighted retweet graph, score it and select the top
// hubs and authorities.
package ranking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dd0wney/cluso-hits/pkg/algorithms"
	"github.com/dd0wney/cluso-hits/pkg/config"
	"github.com/dd0wney/cluso-hits/pkg/graph"
	"github.com/dd0wney/cluso-hits/pkg/logging"
	"github.com/dd0wney/cluso-hits/pkg/metrics"
	"github.com/dd0wney/cluso-hits/pkg/retweet"
	"github.com/google/uuid"
)

// Pipeline phases as reported in logs and metrics
const (
	PhaseLoad   = "load"
	PhaseBuild  = "build"
	PhaseScore  = "score"
	PhaseSelect = "select"
)

// ErrUnknownEngine is returned for an engine name other than sparse or dense
var ErrUnknownEngine = errors.New("unknown engine")

// Ranker runs ranking jobs with a fixed configuration
type Ranker struct {
	cfg     *config.Config
	logger  logging.Logger
	metrics *metrics.Registry
}

// New creates a Ranker. A nil logger discards logs and a nil registry
// records into a private one.
func New(cfg *config.Config, logger logging.Logger, reg *metrics.Registry) *Ranker {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &Ranker{
		cfg:     cfg,
		logger:  logger.With(logging.Component("ranking")),
		metrics: reg,
	}
}

// Rank loads every record from src and returns the top hubs and
// authorities of the resulting graph
func (r *Ranker) Rank(ctx context.Context, src retweet.Source) (*Report, error) {
	start := time.Now()
	rep := &Report{
		RunID:  uuid.NewString(),
		Source: src.Name(),
		Engine: r.cfg.Engine,
	}
	log := r.logger.With(logging.RunID(rep.RunID), logging.Engine(rep.Engine), logging.Source(rep.Source))

	err := r.run(ctx, log, src, rep)
	rep.Duration = time.Since(start)

	if err != nil {
		r.metrics.RecordRun(rep.Engine, metrics.StatusError, rep.Duration)
		log.Error("ranking failed", logging.Error(err), logging.Latency(rep.Duration))
		return nil, err
	}

	r.metrics.RecordRun(rep.Engine, metrics.StatusSuccess, rep.Duration)
	log.Info("ranking complete",
		logging.Nodes(rep.Nodes),
		logging.Edges(rep.Edges),
		logging.Iterations(rep.Iterations),
		logging.Latency(rep.Duration),
	)
	return rep, nil
}

func (r *Ranker) run(ctx context.Context, log logging.Logger, src retweet.Source, rep *Report) error {
	// Load
	timer := logging.StartTimer(log, "records loaded")
	batch, err := src.Load(ctx)
	if err != nil {
		timer.EndError(err)
		return fmt.Errorf("load %s: %w", src.Name(), err)
	}
	r.metrics.RecordPhase(PhaseLoad, timer.End(
		logging.Path(batch.Source),
		logging.Count(len(batch.Records)),
		logging.Int("skipped", batch.Skipped),
		logging.Int64("bytes", batch.Bytes),
	))
	r.metrics.RecordRecords(src.Name(), len(batch.Records), batch.Skipped)
	if batch.Bytes > 0 {
		r.metrics.RecordInputBytes(src.Name(), batch.Bytes)
	}
	if batch.Skipped > 0 {
		log.Warn("skipped unusable records", logging.Count(batch.Skipped), logging.Path(batch.Source))
	}
	rep.RecordsRead = batch.Read
	rep.RecordsSkipped = batch.Skipped

	if err := ctx.Err(); err != nil {
		return err
	}

	// Build
	timer = logging.StartTimer(log, "graph built")
	b := graph.NewBuilder[int64]()
	b.AddAll(batch.Pairs())
	g := b.Build()
	rep.Nodes, rep.Edges, rep.SelfLoops = g.NodeCount(), g.EdgeCount(), b.SelfLoops()
	r.metrics.RecordPhase(PhaseBuild, timer.End(
		logging.Nodes(rep.Nodes),
		logging.Edges(rep.Edges),
		logging.Int("self_loops", rep.SelfLoops),
	))
	r.metrics.UpdateGraph(rep.Nodes, rep.Edges, rep.SelfLoops)

	if err := ctx.Err(); err != nil {
		return err
	}

	// Score
	timer = logging.StartTimer(log, "scores computed",
		logging.Int("max_iterations", r.cfg.Iterations),
		logging.Float64("tolerance", r.cfg.Tolerance),
	)
	result, err := r.score(g)
	if err != nil {
		timer.EndError(err)
		return err
	}
	rep.Iterations, rep.Converged = result.Iterations, result.Converged
	r.metrics.RecordPhase(PhaseScore, timer.End(
		logging.Iterations(result.Iterations),
		logging.Bool("converged", result.Converged),
	))
	r.metrics.RecordIterations(result.Iterations, result.Converged)

	// Select
	timer = logging.StartTimer(log, "top entries selected", logging.Int("k", r.cfg.TopK))
	hubs, err := result.TopHubs(r.cfg.TopK)
	if err != nil {
		timer.EndError(err)
		return fmt.Errorf("select hubs: %w", err)
	}
	auths, err := result.TopAuthorities(r.cfg.TopK)
	if err != nil {
		timer.EndError(err)
		return fmt.Errorf("select authorities: %w", err)
	}
	r.metrics.RecordPhase(PhaseSelect, timer.EndDebug())

	names := batch.Names()
	rep.Hubs = entries(hubs, names)
	rep.Authorities = entries(auths, names)
	return nil
}

func (r *Ranker) score(g *graph.Digraph[int64]) (*algorithms.HITSResult[int64], error) {
	opts := algorithms.HITSOptions{
		Iterations: r.cfg.Iterations,
		Tolerance:  r.cfg.Tolerance,
	}

	switch r.cfg.Engine {
	case config.EngineSparse, "":
		return algorithms.HITS(g, opts)
	case config.EngineDense:
		return algorithms.HITSDense(g, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, r.cfg.Engine)
	}
}

func entries(ranked []algorithms.RankedNode[int64], names map[int64]string) []Entry {
	out := make([]Entry, len(ranked))
	for i, rn := range ranked {
		out[i] = Entry{ID: rn.NodeID, Name: names[rn.NodeID], Score: rn.Score}
	}
	return out
}
