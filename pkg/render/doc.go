// Package render draws unit-distance graphs with Graphviz.
//
// [ToDOT] emits DOT source with every vertex pinned at its planar
// coordinates, filled by its color class when a witness coloring is given.
// Vertices of a critical subgraph can be highlighted. [Render] turns the
// source into SVG or PNG in-process via go-graphviz, using the neato engine
// so the pinned positions are kept.
//
//	dot := render.ToDOT(g, render.Options{Coloring: est.Witness})
//	svg, err := render.RenderSVG(ctx, dot)
package render
