package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chromaplane/pkg/cache"
	"github.com/matzehuels/chromaplane/pkg/udg"
)

// Runner executes pipeline stages with caching.
//
// The Runner holds no results, only the cache and logger, so one Runner
// may serve concurrent calls with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute analyzes points and, when opts.Critical is set and the
// chromatic number was determined, reduces the graph to a critical
// subgraph.
func (r *Runner) Execute(ctx context.Context, points []udg.Point, opts Options) (*Result, error) {
	if err := r.prepare(&opts); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	start := time.Now()
	a, hit, err := r.AnalyzeWithCacheInfo(ctx, points, opts)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	result.Analysis = a
	result.Stats.AnalyzeTime = time.Since(start)
	result.CacheInfo.AnalyzeHit = hit

	r.Logger.Info("analyzed graph",
		"vertices", a.Vertices,
		"edges", a.Edges,
		"estimate", a.Estimate.String(),
		"cached", hit,
		"duration", result.Stats.AnalyzeTime)

	if !opts.Critical {
		return result, nil
	}
	if !a.Estimate.Exact() {
		r.Logger.Warn("skipping reduction: chromatic number undetermined",
			"lower", a.Estimate.Lower, "upper", a.Estimate.Upper)
		return result, nil
	}

	start = time.Now()
	sub, hit, err := r.reduceGraph(ctx, a.Graph, a.GraphHash, a.Estimate.Chi, opts)
	if err != nil {
		return nil, fmt.Errorf("reduce: %w", err)
	}
	result.Critical = sub
	result.Stats.ReduceTime = time.Since(start)
	result.CacheInfo.ReduceHit = hit

	r.Logger.Info("reduced to critical subgraph",
		"vertices", len(sub.Vertices),
		"certified", sub.Certified,
		"undecided", len(sub.Undecided),
		"cached", hit,
		"duration", result.Stats.ReduceTime)

	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// prepare applies the runner's logger and the option defaults.
func (r *Runner) prepare(opts *Options) error {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	opts.SetDefaults()
	return opts.Validate()
}

// load decodes the cached value for key into v. Read failures and corrupt
// entries count as misses.
func (r *Runner) load(ctx context.Context, key string, refresh bool, v any) bool {
	if refresh {
		return false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
		return false
	}
	if !hit {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		r.Logger.Debug("discarding corrupt cache entry", "key", key, "error", err)
		return false
	}
	return true
}

// store writes v under key. Failures are logged, never returned: the cache
// is an optimization.
func (r *Runner) store(ctx context.Context, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		r.Logger.Warn("cache encode failed", "key", key, "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
	}
}
