package oracle

import (
	"context"
	"slices"
	"time"

	cperrors "github.com/matzehuels/chromaplane/pkg/errors"
	"github.com/matzehuels/chromaplane/pkg/observability"
	"github.com/matzehuels/chromaplane/pkg/udg"
)

// cancelCheckInterval is the number of search nodes between context checks.
const cancelCheckInterval = 1024

// DegreeOrder returns the vertices of g sorted by descending degree, ties
// broken by ascending id. This is the branching order of the heuristic.
func DegreeOrder(g *udg.Graph) []int {
	order := make([]int, g.N())
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return g.Degree(b) - g.Degree(a)
	})
	return order
}

// TryColor searches for a k-coloring of g by budgeted backtracking. One
// budget unit is spent per search node; nodeBudget <= 0 means unlimited.
//
// Unsatisfiable is returned only after the whole search space was explored
// within the budget. An exhausted budget yields Unknown.
func TryColor(g *udg.Graph, k int, nodeBudget int64) Result {
	res, _ := TryColorContext(context.Background(), g, k, nodeBudget)
	return res
}

// TryColorContext is [TryColor] with cooperative cancellation. The context is
// checked at the budget checkpoint on the first node and every 1024 nodes
// after; a cancelled context yields Unknown together with an
// [cperrors.ErrCodeCanceled] error.
func TryColorContext(ctx context.Context, g *udg.Graph, k int, nodeBudget int64) (Result, error) {
	if err := cperrors.ValidateColorCount(k); err != nil {
		return unknown(0), err
	}

	hooks := observability.Oracle()
	hooks.OnOracleStart(ctx, "heuristic", g.N(), k)
	start := time.Now()

	res, err := backtrack(ctx, g, k, NewBudget(nodeBudget))

	hooks.OnOracleComplete(ctx, "heuristic", g.N(), k, res.Status.String(), res.Nodes, time.Since(start))
	return res, err
}

// backtrack runs the depth-first search on an explicit stack. Depth d colors
// the vertex order[d]; next[d] is the next color to try there and top[d] the
// highest color used by depths below d. A vertex may only open one new color
// beyond top[d], which prunes color permutations without losing solutions.
func backtrack(ctx context.Context, g *udg.Graph, k int, budget *Budget) (Result, error) {
	n := g.N()
	if n == 0 {
		return sat([]int{}, 0), nil
	}
	if k <= 0 {
		return unsat(0), nil
	}

	order := DegreeOrder(g)
	colors := make([]int, n)
	for i := range colors {
		colors[i] = -1
	}
	next := make([]int, n)
	top := make([]int, n+1)
	top[0] = -1

	d := 0
	entering := true
	for {
		if entering {
			if !budget.Spend() {
				return unknown(budget.Spent()), nil
			}
			if budget.Spent()%cancelCheckInterval == 1 {
				if err := ctx.Err(); err != nil {
					return unknown(budget.Spent()), cperrors.Wrap(cperrors.ErrCodeCanceled, err, "heuristic search cancelled")
				}
			}
			next[d] = 0
			entering = false
		}

		v := order[d]
		limit := min(k-1, top[d]+1)
		c := next[d]
		for c <= limit && !free(g, colors, v, c) {
			c++
		}

		if c <= limit {
			colors[v] = c
			next[d] = c + 1
			top[d+1] = max(top[d], c)
			d++
			if d == n {
				return sat(colors, budget.Spent()), nil
			}
			entering = true
			continue
		}

		colors[v] = -1
		d--
		if d < 0 {
			return unsat(budget.Spent()), nil
		}
		colors[order[d]] = -1
	}
}

// free reports whether no neighbor of v currently holds color c.
func free(g *udg.Graph, colors []int, v, c int) bool {
	for _, u := range g.Neighbors(v) {
		if colors[u] == c {
			return false
		}
	}
	return true
}
