package oracle

import (
	"context"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	cperrors "github.com/matzehuels/chromaplane/pkg/errors"
	"github.com/matzehuels/chromaplane/pkg/observability"
	"github.com/matzehuels/chromaplane/pkg/udg"
)

// DefaultPollInterval is the poll tick charged against MaxPolls.
const DefaultPollInterval = 10 * time.Millisecond

// firstCheck is the initial wait before a background solve is tested for a
// result. The wait doubles up to the poll interval.
const firstCheck = 50 * time.Microsecond

// ExactOptions tunes the exact oracle.
type ExactOptions struct {
	// PollInterval between context checks of the background solve.
	// Defaults to DefaultPollInterval.
	PollInterval time.Duration

	// MaxPolls bounds the solve to this many poll ticks; the result is
	// Unknown when exceeded. Zero means unlimited.
	MaxPolls int64

	// Clique, if set, is a clique of the graph whose vertices are pinned to
	// distinct colors. Any clique will do; a slice that is not a clique of
	// the graph is ignored and a maximum clique is searched instead.
	Clique []int
}

// SetDefaults fills zero-valued fields.
func (o *ExactOptions) SetDefaults() {
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
}

// IsKColorable decides exactly whether g admits a proper coloring with at
// most k colors. The result is Satisfiable with a validated witness or
// Unsatisfiable, unless ctx is cancelled first, in which case it is Unknown
// and the error carries [cperrors.ErrCodeCanceled].
func IsKColorable(ctx context.Context, g *udg.Graph, k int) (Result, error) {
	return IsKColorableWith(ctx, g, k, ExactOptions{})
}

// IsKColorableWith is [IsKColorable] with explicit options.
func IsKColorableWith(ctx context.Context, g *udg.Graph, k int, opts ExactOptions) (Result, error) {
	if err := cperrors.ValidateColorCount(k); err != nil {
		return unknown(0), err
	}
	opts.SetDefaults()

	hooks := observability.Oracle()
	hooks.OnOracleStart(ctx, "exact", g.N(), k)
	start := time.Now()

	res, err := solveExact(ctx, g, k, opts)

	hooks.OnOracleComplete(ctx, "exact", g.N(), k, res.Status.String(), res.Nodes, time.Since(start))
	return res, err
}

func solveExact(ctx context.Context, g *udg.Graph, k int, opts ExactOptions) (Result, error) {
	n := g.N()
	switch {
	case n == 0:
		return sat([]int{}, 0), nil
	case k <= 0:
		return unsat(0), nil
	case k >= n:
		coloring := make([]int, n)
		for v := range coloring {
			coloring[v] = v
		}
		return sat(coloring, 0), nil
	}

	clique := opts.Clique
	if clique == nil || !g.IsClique(clique) {
		clique = udg.MaxClique(g)
	}
	if len(clique) > k {
		return unsat(0), nil
	}

	solver := encode(g, k, clique)

	status, polls, err := run(ctx, solver, opts)
	if err != nil || status == Unknown {
		return unknown(polls), err
	}
	if status == Unsatisfiable {
		return unsat(polls), nil
	}

	coloring := decode(solver, n, k)
	if !g.ValidColoring(coloring, k) {
		return unknown(polls), cperrors.New(cperrors.ErrCodeInternal, "solver returned an invalid %d-coloring", k)
	}
	return sat(coloring, polls), nil
}

// colorVar is the variable asserting that vertex v has color c.
func colorVar(v, c, k int) z.Var { return z.Var(v*k + c + 1) }

// encode builds the k-coloring CNF of g. Vertices of clique are pinned to
// colors 0..len(clique)-1; colors are interchangeable so this loses nothing.
func encode(g *udg.Graph, k int, clique []int) *gini.Gini {
	s := gini.New()
	clause := func(lits ...z.Lit) {
		for _, m := range lits {
			s.Add(m)
		}
		s.Add(z.LitNull)
	}

	for v := range g.N() {
		some := make([]z.Lit, k)
		for c := range k {
			some[c] = colorVar(v, c, k).Pos()
		}
		clause(some...)

		for c1 := range k {
			for c2 := c1 + 1; c2 < k; c2++ {
				clause(colorVar(v, c1, k).Neg(), colorVar(v, c2, k).Neg())
			}
		}
	}

	for _, e := range g.Edges() {
		for c := range k {
			clause(colorVar(e[0], c, k).Neg(), colorVar(e[1], c, k).Neg())
		}
	}

	for c, v := range clique {
		clause(colorVar(v, c, k).Pos())
	}
	return s
}

// run solves s in the background. The solve is tested for a result with
// a doubling wait, so short solves return promptly; ctx is checked while
// waiting. The returned count is the number of poll ticks spent.
func run(ctx context.Context, s *gini.Gini, opts ExactOptions) (Status, int64, error) {
	if ctx.Done() == nil && opts.MaxPolls <= 0 {
		return statusOf(s.Solve()), 0, nil
	}

	if err := ctx.Err(); err != nil {
		return Unknown, 0, cperrors.Wrap(cperrors.ErrCodeCanceled, err, "exact solve cancelled")
	}

	budget := NewBudget(opts.MaxPolls)
	solve := s.GoSolve()
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()
	wait := min(firstCheck, opts.PollInterval)
	check := time.NewTimer(wait)
	defer check.Stop()

	for {
		if r, done := solve.Test(); done {
			return statusOf(r), budget.Spent(), nil
		}
		select {
		case <-ctx.Done():
			solve.Stop()
			return Unknown, budget.Spent(), cperrors.Wrap(cperrors.ErrCodeCanceled, ctx.Err(), "exact solve cancelled")
		case <-ticker.C:
			if !budget.Spend() {
				solve.Stop()
				return Unknown, budget.Spent(), nil
			}
		case <-check.C:
			wait = min(2*wait, opts.PollInterval)
			check.Reset(wait)
		}
	}
}

func statusOf(r int) Status {
	switch r {
	case 1:
		return Satisfiable
	case -1:
		return Unsatisfiable
	default:
		return Unknown
	}
}

func decode(s *gini.Gini, n, k int) []int {
	coloring := make([]int, n)
	for v := range n {
		coloring[v] = -1
		for c := range k {
			if s.Value(colorVar(v, c, k).Pos()) {
				coloring[v] = c
				break
			}
		}
	}
	return coloring
}
