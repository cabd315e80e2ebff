// Package pkg provides the libraries behind chromaplane, a chromatic-number
// engine for unit-distance graphs in the plane.
//
// # Overview
//
// A unit-distance graph joins two points when they are (within a tolerance)
// exactly one unit apart. The chromatic number of the plane is bounded below
// by the chromatic number of every such graph, so finding small graphs that
// need many colors is the practical way to push the bound. The packages are:
//
//  1. [udg] - points, tolerance-aware graph construction, cheap bounds
//  2. [oracle] - k-colorability: exact (SAT) and budgeted heuristic
//  3. [chroma] - chromatic-number estimation on top of the oracles
//  4. [critical] - reduction to locally vertex-critical subgraphs
//  5. [search] - transformed unions of base graphs, ranked by chromatic number
//  6. [pipeline] - cached orchestration of the above for the CLI
//
// Supporting packages: [pointset] (point and record files), [cache] (file,
// Redis and null result caches), [config] (TOML run files), [render]
// (Graphviz drawings), [observability] (hooks), [errors] (coded errors) and
// [buildinfo].
//
// # Data Flow
//
//	point file
//	     ↓
//	[udg.Build] unit-distance graph
//	     ↓
//	[chroma] chi, or bounds marked unknown
//	     ↓                    ↓
//	[critical] subgraph   [search] higher-chi candidates
//
// # Quick Start
//
//	g, _ := udg.Build(udg.MoserSpindle(), 1e-9)
//	est, _ := chroma.ChromaticNumber(ctx, g, 0, 0)
//	fmt.Println(est) // chi=4
//
//	sub, _ := critical.ReduceToCenter(ctx, g, est.Chi, critical.Options{})
//	fmt.Println(len(sub.Vertices)) // 7
//
// # Outcomes
//
// Every colorability question has three answers: satisfiable, unsatisfiable
// and unknown. Unknown comes from an exhausted budget or a cancelled solve
// and is carried through every layer; it is never reported as a proof.
package pkg
