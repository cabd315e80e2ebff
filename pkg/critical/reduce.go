package critical

import (
	"context"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chromaplane/pkg/chroma"
	cperrors "github.com/matzehuels/chromaplane/pkg/errors"
	"github.com/matzehuels/chromaplane/pkg/oracle"
	"github.com/matzehuels/chromaplane/pkg/udg"
)

// Order selects the vertex order of the deletion scan.
type Order string

const (
	// OrderIndex scans vertices by ascending id.
	OrderIndex Order = "index"
	// OrderDegree scans vertices by ascending degree in the current
	// subgraph, ties by id. Low-degree vertices are the likeliest to go.
	OrderDegree Order = "degree"
)

// Options configures [ReduceToCenter].
type Options struct {
	Order Order `json:"order,omitempty"`

	// NodeBudget bounds each heuristic test. Zero selects
	// chroma.DefaultNodeBudget.
	NodeBudget int64 `json:"node_budget,omitempty"`

	// ExactLimit is the largest subgraph tested with the exact oracle when
	// the heuristic is undecided. Zero selects chroma.DefaultExactLimit,
	// negative disables the exact oracle.
	ExactLimit int `json:"exact_limit,omitempty"`

	// Verify checks with the exact oracle that chi really is the chromatic
	// number of the input before reducing.
	Verify bool `json:"verify,omitempty"`

	Logger *log.Logger `json:"-"`
}

// SetDefaults fills zero-valued fields.
func (o *Options) SetDefaults() {
	if o.Order == "" {
		o.Order = OrderIndex
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks option values.
func (o *Options) Validate() error {
	switch o.Order {
	case OrderIndex, OrderDegree:
		return nil
	default:
		return cperrors.New(cperrors.ErrCodeInvalidArgument, "invalid order %q (must be index or degree)", o.Order)
	}
}

// Subgraph is the result of a reduction. It is immutable once produced.
type Subgraph struct {
	// Vertices are the kept vertex ids of the input graph, ascending.
	Vertices []int `json:"vertices"`

	// Graph is the subgraph induced by Vertices; its vertex i is Vertices[i].
	Graph *udg.Graph `json:"-"`

	Chi int `json:"chi"`

	// Certified is set when the exact oracle confirmed that Graph is not
	// (Chi-1)-colorable.
	Certified bool `json:"certified"`

	// Undecided lists kept vertices whose deletion could not be decided.
	Undecided []int `json:"undecided,omitempty"`
}

// Critical reports whether the subgraph is proven to carry Chi and every
// deletion was decided, so it is locally vertex-critical.
func (s *Subgraph) Critical() bool { return s.Certified && len(s.Undecided) == 0 }

// reducer holds the state of one reduction.
type reducer struct {
	g       *udg.Graph
	chi     int
	opts    Options
	est     *chroma.Estimator
	clique  []int
	current []int
}

// cliqueIn returns the vertices of r.clique present in subset, as indices
// into subset. A subset of a clique is a clique of the induced subgraph.
func (r *reducer) cliqueIn(subset []int) []int {
	out := []int{}
	for _, v := range r.clique {
		if i := slices.Index(subset, v); i >= 0 {
			out = append(out, i)
		}
	}
	return out
}

// ReduceToCenter returns a locally vertex-minimal subgraph of g with
// chromatic number chi. chi must be the chromatic number of g; it is not
// re-derived unless opts.Verify is set.
func ReduceToCenter(ctx context.Context, g *udg.Graph, chi int, opts Options) (*Subgraph, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if g.N() == 0 {
		if chi != 0 {
			return nil, cperrors.New(cperrors.ErrCodeInvalidArgument, "empty graph has chromatic number 0, got %d", chi)
		}
		empty, _ := g.InducedSubgraph(nil)
		return &Subgraph{Vertices: []int{}, Graph: empty, Certified: true}, nil
	}
	if chi < 1 || chi > g.N() {
		return nil, cperrors.New(cperrors.ErrCodeInvalidArgument, "chromatic number %d out of range [1, %d]", chi, g.N())
	}

	r := &reducer{
		g:    g,
		chi:  chi,
		opts: opts,
		est: chroma.NewEstimator(chroma.Options{
			ExactLimit: opts.ExactLimit,
			NodeBudget: opts.NodeBudget,
			Logger:     opts.Logger,
		}),
		clique: udg.MaxClique(g),
	}

	if opts.Verify {
		if err := r.verify(ctx); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	r.current = make([]int, g.N())
	for i := range r.current {
		r.current[i] = i
	}
	if err := r.peel(); err != nil {
		return nil, err
	}
	undecided, err := r.scan(ctx)
	if err != nil {
		return nil, err
	}

	sub, err := g.InducedSubgraph(r.current)
	if err != nil {
		return nil, err
	}
	out := &Subgraph{
		Vertices:  slices.Clone(r.current),
		Graph:     sub,
		Chi:       chi,
		Undecided: undecided,
	}
	if r.est.Exact(sub) {
		res, err := oracle.IsKColorableWith(ctx, sub, chi-1, oracle.ExactOptions{Clique: r.cliqueIn(r.current)})
		if err != nil {
			return nil, err
		}
		out.Certified = res.Status == oracle.Unsatisfiable
		if res.Status == oracle.Satisfiable {
			opts.Logger.Warn("reduced subgraph is colorable with fewer colors", "chi", chi, "vertices", sub.N())
		}
	}

	opts.Logger.Debug("reduced to critical subgraph",
		"from", g.N(), "to", sub.N(), "chi", chi, "certified", out.Certified,
		"undecided", len(undecided), "elapsed", time.Since(start).Round(time.Millisecond))
	return out, nil
}

// verify asserts that chi is the chromatic number of the input.
func (r *reducer) verify(ctx context.Context) error {
	hint := oracle.ExactOptions{Clique: r.clique}
	below, err := oracle.IsKColorableWith(ctx, r.g, r.chi-1, hint)
	if err != nil {
		return err
	}
	at, err := oracle.IsKColorableWith(ctx, r.g, r.chi, hint)
	if err != nil {
		return err
	}
	if below.Status != oracle.Unsatisfiable || at.Status != oracle.Satisfiable {
		return cperrors.New(cperrors.ErrCodeInvalidArgument, "%d is not the chromatic number of the graph", r.chi)
	}
	return nil
}

// peel repeatedly drops vertices of degree below chi-1.
func (r *reducer) peel() error {
	for {
		sub, err := r.g.InducedSubgraph(r.current)
		if err != nil {
			return err
		}
		keep := r.current[:0:0]
		for i, v := range r.current {
			if sub.Degree(i) >= r.chi-1 {
				keep = append(keep, v)
			}
		}
		if len(keep) == len(r.current) {
			return nil
		}
		r.opts.Logger.Debug("peeled low-degree vertices", "count", len(r.current)-len(keep))
		r.current = keep
	}
}

// scan deletes vertices until a full pass removes nothing and returns the
// vertices left undecided in that final pass.
func (r *reducer) scan(ctx context.Context) ([]int, error) {
	for {
		removed := false
		var undecided []int
		for _, v := range r.scanOrder() {
			rest := slices.DeleteFunc(slices.Clone(r.current), func(u int) bool { return u == v })
			sub, err := r.g.InducedSubgraph(rest)
			if err != nil {
				return nil, err
			}
			res, err := r.est.DecideWithClique(ctx, sub, r.chi-1, r.cliqueIn(rest))
			if err != nil {
				return nil, err
			}
			switch res.Status {
			case oracle.Unsatisfiable:
				r.opts.Logger.Debug("dropped vertex", "vertex", v, "remaining", len(rest))
				r.current = rest
				removed = true
			case oracle.Unknown:
				undecided = append(undecided, v)
			}
			if removed {
				break
			}
		}
		if !removed {
			slices.Sort(undecided)
			return undecided, nil
		}
		if err := r.peel(); err != nil {
			return nil, err
		}
	}
}

// scanOrder returns the current vertices in the configured scan order.
func (r *reducer) scanOrder() []int {
	order := slices.Clone(r.current)
	if r.opts.Order != OrderDegree {
		return order
	}
	sub, _ := r.g.InducedSubgraph(r.current)
	degree := make(map[int]int, len(r.current))
	for i, v := range r.current {
		degree[v] = sub.Degree(i)
	}
	slices.SortStableFunc(order, func(a, b int) int { return degree[a] - degree[b] })
	return order
}
