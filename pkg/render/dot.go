package render

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/matzehuels/chromaplane/pkg/udg"
)

// Palette is the fill color of each color class; classes beyond its length
// wrap around.
var Palette = []string{
	"#e6194b", "#3cb44b", "#4363d8", "#ffe119",
	"#f58231", "#911eb4", "#42d4f4", "#f032e6",
}

// DefaultScale is the drawing size of one unit of distance, in inches.
const DefaultScale = 1.5

// Options configures a drawing.
type Options struct {
	// Coloring fills vertex v with Palette[Coloring[v]]. Nil leaves all
	// vertices white; negative entries are left white too.
	Coloring []int

	// Highlight outlines the listed vertices in bold, e.g. a critical
	// subgraph.
	Highlight []int

	// Labels prints vertex ids inside the vertices.
	Labels bool

	// Scale is inches per unit distance. Defaults to DefaultScale.
	Scale float64
}

// ToDOT returns Graphviz source drawing g with every vertex pinned at its
// coordinates. The output is meant for the neato engine.
func ToDOT(g *udg.Graph, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	highlight := make(map[int]bool, len(opts.Highlight))
	for _, v := range opts.Highlight {
		highlight[v] = true
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fixedsize=true, width=0.3, fontsize=10];\n")
	buf.WriteString("  edge [color=\"#555555\"];\n\n")

	for v := range g.N() {
		p := g.Point(v)
		attrs := fmt.Sprintf("pos=\"%s,%s!\"", fmtCoord(p.X*scale), fmtCoord(p.Y*scale))
		if opts.Labels {
			attrs += fmt.Sprintf(", label=\"%d\"", v)
		} else {
			attrs += ", label=\"\""
		}
		if v < len(opts.Coloring) && opts.Coloring[v] >= 0 {
			attrs += fmt.Sprintf(", fillcolor=%q", Palette[opts.Coloring[v]%len(Palette)])
		}
		if highlight[v] {
			attrs += ", penwidth=3"
		}
		fmt.Fprintf(&buf, "  v%d [%s];\n", v, attrs)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if highlight[e[0]] && highlight[e[1]] {
			fmt.Fprintf(&buf, "  v%d -- v%d [penwidth=2, color=black];\n", e[0], e[1])
			continue
		}
		fmt.Fprintf(&buf, "  v%d -- v%d;\n", e[0], e[1])
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtCoord(f float64) string { return strconv.FormatFloat(f, 'f', 4, 64) }
