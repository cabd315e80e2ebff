// Package chroma computes the chromatic number of a unit-distance graph.
//
// The chromatic number is found by a linear scan: starting at a lower bound
// (the clique number by default) every k is tested in turn and the first
// k-colorable one is chi. Because k-colorability is monotone in k the first
// success is the answer, provided every smaller k was proven Unsatisfiable.
//
// [ChromaticNumber] drives the scan with the exact SAT oracle alone.
// [Estimator] picks oracles by graph size: small graphs are pre-filtered by
// the budgeted heuristic and fall back to the exact oracle; large graphs use
// the heuristic only and report [oracle.Unknown] with bounds when the budget
// runs out, rather than guessing.
package chroma
