// Package udg builds unit-distance graphs from planar point sets.
//
// # Overview
//
// A unit-distance graph has one vertex per point and an edge between every
// pair of points at Euclidean distance exactly 1. Coordinates are floating
// point, so "exactly" means within a fixed tolerance eps: an edge is added
// when |dist - 1| <= eps.
//
// Graphs are built once with [Build] and are frozen afterwards. Vertices are
// dense integer ids 0..n-1 that index the point slice the graph was built
// from; external labels should be translated to indices once, at the boundary.
// Subgraph extraction via [Graph.InducedSubgraph] returns a new Graph and
// never mutates the receiver.
//
//	g, err := udg.Build(points, 1e-9)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(g.N(), g.EdgeCount())
//
// # Tolerance
//
// The same eps must be used for every graph that is compared with another
// (for example an original point set and a rotated copy of it). Mixing
// tolerances silently changes which edges exist; this package cannot detect
// it.
//
// # Bounds
//
// [MaxClique] returns a largest clique, whose size lower-bounds the chromatic
// number. [GreedyColoring] (DSatur) and [InvertedGreedy] (first-fit in
// reverse smallest-last order) return feasible colorings whose color counts
// upper-bound it. Clique enumeration and DSatur run on a gonum view of the
// graph.
//
// # Concurrency
//
// A Graph is immutable after construction and safe for concurrent readers.
package udg
