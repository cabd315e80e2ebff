package chroma

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chromaplane/pkg/oracle"
	"github.com/matzehuels/chromaplane/pkg/udg"
)

// Default estimator limits.
const (
	DefaultExactLimit = 400
	DefaultNodeBudget = 2_000_000
)

// Options configures an [Estimator].
type Options struct {
	// ExactLimit is the largest vertex count handed to the exact oracle.
	// Negative disables the exact oracle.
	ExactLimit int `json:"exact_limit,omitempty"`

	// NodeBudget bounds each heuristic call. Negative means unlimited.
	NodeBudget int64 `json:"node_budget,omitempty"`

	// Exact tunes the exact oracle.
	Exact oracle.ExactOptions `json:"-"`

	Logger *log.Logger `json:"-"`
}

// SetDefaults fills zero-valued fields.
func (o *Options) SetDefaults() {
	if o.ExactLimit == 0 {
		o.ExactLimit = DefaultExactLimit
	}
	if o.NodeBudget == 0 {
		o.NodeBudget = DefaultNodeBudget
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Estimator computes chromatic numbers, choosing oracles by graph size.
//
// Graphs with at most ExactLimit vertices are tested with the heuristic
// first and with the exact oracle whenever the heuristic answers Unknown, so
// their estimates are always exact. Larger graphs use the heuristic alone and
// may come back Unknown with bounds.
//
// An Estimator is safe for concurrent use.
type Estimator struct {
	opts Options
}

// NewEstimator returns an estimator with opts, defaults applied.
func NewEstimator(opts Options) *Estimator {
	opts.SetDefaults()
	return &Estimator{opts: opts}
}

// Options returns the effective options.
func (e *Estimator) Options() Options { return e.opts }

// Estimate computes the chromatic number of g from the default bounds.
func (e *Estimator) Estimate(ctx context.Context, g *udg.Graph) (Estimate, error) {
	return e.EstimateBounds(ctx, g, 0, 0)
}

// EstimateBounds is [Estimator.Estimate] with caller-supplied bounds; values
// <= 0 select the clique number and greedy count.
func (e *Estimator) EstimateBounds(ctx context.Context, g *udg.Graph, lowerBound, upperBound int) (Estimate, error) {
	start := time.Now()
	est, err := scan(ctx, g, lowerBound, upperBound, e.DecideWithClique)
	if err != nil {
		return est, err
	}
	e.opts.Logger.Debug("estimated chromatic number",
		"vertices", g.N(), "edges", g.EdgeCount(), "result", est.String(),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return est, nil
}

// Decide answers a single k-colorability query with the size-selected
// oracles. The result is Unknown only for graphs above ExactLimit whose
// heuristic budget ran out, or on cancellation.
func (e *Estimator) Decide(ctx context.Context, g *udg.Graph, k int) (oracle.Result, error) {
	return e.DecideWithClique(ctx, g, k, nil)
}

// DecideWithClique is [Estimator.Decide] with a known clique of g handed to
// the exact oracle, sparing it a clique search.
func (e *Estimator) DecideWithClique(ctx context.Context, g *udg.Graph, k int, clique []int) (oracle.Result, error) {
	res, err := oracle.TryColorContext(ctx, g, k, e.opts.NodeBudget)
	if err != nil || res.Status != oracle.Unknown || !e.Exact(g) {
		return res, err
	}
	e.opts.Logger.Debug("heuristic undecided, falling back to exact",
		"vertices", g.N(), "k", k, "nodes", res.Nodes)
	opts := e.opts.Exact
	if clique != nil {
		opts.Clique = clique
	}
	return oracle.IsKColorableWith(ctx, g, k, opts)
}

// Exact reports whether g is small enough for the exact oracle.
func (e *Estimator) Exact(g *udg.Graph) bool { return g.N() <= e.opts.ExactLimit }
