// Package oracle decides whether a unit-distance graph is k-colorable.
//
// # Outcomes
//
// Every oracle call returns a [Result] whose [Status] is one of:
//
//   - [Satisfiable]: a witness coloring with at most k colors is attached
//   - [Unsatisfiable]: no k-coloring exists; the whole space was searched
//   - [Unknown]: the search stopped early (node budget exhausted or context
//     cancelled); this is not evidence of either outcome
//
// Unknown must never be treated as Unsatisfiable. The zero Status is Unknown
// so an unset result can never claim a proof.
//
// # Exact Oracle
//
// [IsKColorable] encodes k-coloring as CNF (one variable per vertex and
// color, exactly one color per vertex, no color shared across an edge) and
// hands it to the gini SAT solver. It always terminates with a definite
// answer but its running time is unbounded; use it on small or reduced
// graphs. A cancelled context stops the background solve and yields Unknown.
//
// # Heuristic Oracle
//
// [TryColor] is a depth-first backtracking search over vertices sorted by
// descending degree (ties by id). It runs on an explicit stack so graphs with
// thousands of vertices cannot overflow the goroutine stack. One [Budget]
// unit is spent per search node; when the budget runs out the result is
// Unknown.
//
// # Budgets
//
// [Budget] is the single remaining-budget counter shared by both oracles: the
// heuristic spends one unit per node and the exact oracle one unit per poll
// of the background solver.
package oracle
