package pipeline

import (
	"context"

	"github.com/matzehuels/chromaplane/pkg/cache"
	"github.com/matzehuels/chromaplane/pkg/chroma"
	"github.com/matzehuels/chromaplane/pkg/critical"
	"github.com/matzehuels/chromaplane/pkg/udg"
)

// Build constructs the unit-distance graph of points and its content hash.
func (r *Runner) Build(points []udg.Point, opts Options) (*udg.Graph, string, error) {
	if err := r.prepare(&opts); err != nil {
		return nil, "", err
	}
	g, err := udg.Build(points, opts.Tolerance)
	if err != nil {
		return nil, "", err
	}
	return g, cache.HashPoints(points, opts.Tolerance), nil
}

// AnalyzeWithCacheInfo builds the graph of points and estimates its
// chromatic number, reporting whether the estimate came from the cache.
// Only exact estimates are cached.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, points []udg.Point, opts Options) (*Analysis, bool, error) {
	if err := r.prepare(&opts); err != nil {
		return nil, false, err
	}
	g, hash, err := r.Build(points, opts)
	if err != nil {
		return nil, false, err
	}
	a := &Analysis{Graph: g, GraphHash: hash, Vertices: g.N(), Edges: g.EdgeCount()}

	key := r.Keyer.EstimateKey(hash, cache.EstimateKeyOpts{
		ExactLimit: opts.ExactLimit,
		NodeBudget: opts.NodeBudget,
	})

	var cached chroma.Estimate
	if r.load(ctx, key, opts.Refresh, &cached) && cached.Exact() && g.ValidColoring(cached.Witness, cached.Chi) {
		a.Estimate = cached
		return a, true, nil
	}

	est, err := chroma.NewEstimator(opts.estimator()).Estimate(ctx, g)
	if err != nil {
		return nil, false, err
	}
	a.Estimate = est
	if est.Exact() {
		r.store(ctx, key, est, opts.ttl(cache.TTLEstimate))
	}
	return a, false, nil
}

// Analyze is a convenience wrapper that calls AnalyzeWithCacheInfo and discards the cache hit info.
func (r *Runner) Analyze(ctx context.Context, points []udg.Point, opts Options) (*Analysis, error) {
	a, _, err := r.AnalyzeWithCacheInfo(ctx, points, opts)
	return a, err
}

// ReduceWithCacheInfo reduces the graph of points, whose chromatic number
// must be chi, to a critical subgraph. Only critical results (certified,
// every deletion decided) are cached.
func (r *Runner) ReduceWithCacheInfo(ctx context.Context, points []udg.Point, chi int, opts Options) (*critical.Subgraph, bool, error) {
	if err := r.prepare(&opts); err != nil {
		return nil, false, err
	}
	g, hash, err := r.Build(points, opts)
	if err != nil {
		return nil, false, err
	}
	return r.reduceGraph(ctx, g, hash, chi, opts)
}

// Reduce is a convenience wrapper that calls ReduceWithCacheInfo and discards the cache hit info.
func (r *Runner) Reduce(ctx context.Context, points []udg.Point, chi int, opts Options) (*critical.Subgraph, error) {
	sub, _, err := r.ReduceWithCacheInfo(ctx, points, chi, opts)
	return sub, err
}

func (r *Runner) reduceGraph(ctx context.Context, g *udg.Graph, hash string, chi int, opts Options) (*critical.Subgraph, bool, error) {
	key := r.Keyer.CriticalKey(hash, cache.CriticalKeyOpts{
		Chi:        chi,
		Order:      string(opts.Order),
		ExactLimit: opts.ExactLimit,
		NodeBudget: opts.NodeBudget,
	})

	var cached critical.Subgraph
	if r.load(ctx, key, opts.Refresh, &cached) && cached.Chi == chi && cached.Critical() {
		if sub, err := g.InducedSubgraph(cached.Vertices); err == nil {
			cached.Graph = sub
			return &cached, true, nil
		}
	}

	sub, err := critical.ReduceToCenter(ctx, g, chi, opts.reducer())
	if err != nil {
		return nil, false, err
	}
	if sub.Critical() {
		r.store(ctx, key, sub, opts.ttl(cache.TTLCritical))
	}
	return sub, false, nil
}
