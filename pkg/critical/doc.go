// Package critical shrinks a graph to a vertex-minimal subgraph with the same
// chromatic number.
//
// A graph is (vertex) critical when deleting any single vertex lowers its
// chromatic number. [ReduceToCenter] finds such a subgraph greedily:
//
//  1. Peel: vertices of degree below chi-1 are dropped. Any (chi-1)-coloring
//     of the rest would extend to them, so they cannot carry chi.
//  2. Scan: each remaining vertex is tentatively deleted. If the rest is
//     still not (chi-1)-colorable the deletion is kept and the scan restarts.
//  3. Confirm: the final subgraph is checked once more with the exact oracle.
//
// The result is locally minimal, not necessarily the smallest critical
// subgraph. Vertices whose deletion could not be decided within the budget
// are kept and reported in [Subgraph.Undecided].
package critical
